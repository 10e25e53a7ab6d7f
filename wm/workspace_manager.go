package wm

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shardwm/shardwm/config"
)

// WorkspaceObserver receives workspace lifecycle broadcasts. No type in
// this module implements it; the IPC server's Publish is not wired to
// these broadcasts.
type WorkspaceObserver interface {
	WorkspaceCreated(ws *Workspace)
	WorkspaceRemoved(ws *Workspace)
	WorkspaceFocused(ws *Workspace)
}

// WorkspaceKey identifies a workspace by number or by name; exactly one
// field should be non-nil.
type WorkspaceKey struct {
	Num  *int
	Name *string
}

// WorkspaceManager handles lookup, create-on-demand, and focus-with-history
// for workspaces across all outputs.
type WorkspaceManager struct {
	mu         sync.Mutex
	compositor *CompositorState
	cfg        config.Config
	observers  []WorkspaceObserver

	// lastSelected tracks, per output, the workspace that was active before
	// the most recent switch away from it — the "back and forth" target.
	// Per-output matches i3's own workspace_back_and_forth semantics.
	lastSelected map[*Output]*Workspace
}

func NewWorkspaceManager(cs *CompositorState, cfg config.Config) *WorkspaceManager {
	return &WorkspaceManager{
		compositor:   cs,
		cfg:          cfg,
		lastSelected: make(map[*Output]*Workspace),
	}
}

// Subscribe registers an observer for created/removed/focused broadcasts.
func (m *WorkspaceManager) Subscribe(o WorkspaceObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

func (m *WorkspaceManager) broadcastCreated(ws *Workspace) {
	for _, o := range m.observers {
		o.WorkspaceCreated(ws)
	}
}

func (m *WorkspaceManager) broadcastRemoved(ws *Workspace) {
	for _, o := range m.observers {
		o.WorkspaceRemoved(ws)
	}
}

func (m *WorkspaceManager) broadcastFocused(ws *Workspace) {
	for _, o := range m.observers {
		o.WorkspaceFocused(ws)
	}
}

// findByKey searches every output (and orphaned workspaces) for a match.
func (m *WorkspaceManager) findByKey(key WorkspaceKey) *Workspace {
	for _, o := range m.compositor.Outputs {
		if ws := findInList(o.Workspaces, key); ws != nil {
			return ws
		}
	}
	return findInList(m.compositor.OrphanWorkspaces, key)
}

func findInList(list []*Workspace, key WorkspaceKey) *Workspace {
	for _, ws := range list {
		if key.Num != nil && ws.Num != nil && *ws.Num == *key.Num {
			return ws
		}
		if key.Name != nil && ws.Name != nil && *ws.Name == *key.Name {
			return ws
		}
	}
	return nil
}

// RequestFirstAvailable assigns the lowest free number in
// 1..DefaultWorkspaceCount, counting the workspaces of o, of every
// registered output and of the orphan list as taken; if all are taken it
// falls back to 0.
func (m *WorkspaceManager) RequestFirstAvailable(o *Output) int {
	taken := make(map[int]bool)
	lists := [][]*Workspace{o.Workspaces, m.compositor.OrphanWorkspaces}
	for _, out := range m.compositor.Outputs {
		lists = append(lists, out.Workspaces)
	}
	for _, list := range lists {
		for _, ws := range list {
			if ws.Num != nil {
				taken[*ws.Num] = true
			}
		}
	}
	for n := 1; n <= m.cfg.DefaultWorkspaceCount; n++ {
		if !taken[n] {
			return n
		}
	}
	return 0
}

// RequestWorkspace focuses the workspace matching key, creating it on
// outputHint if it doesn't exist. If it is already the focused workspace on
// its output and backAndForth is set, focuses the last-selected workspace
// instead.
func (m *WorkspaceManager) RequestWorkspace(outputHint *Output, key WorkspaceKey, backAndForth bool) *Workspace {
	m.mu.Lock()
	existing := m.findByKey(key)
	m.mu.Unlock()

	if existing != nil {
		if backAndForth && existing.Output != nil && existing.Output.Active == existing {
			return m.RequestBackAndForth(existing.Output)
		}
		m.focus(existing)
		return existing
	}

	if outputHint == nil {
		if len(m.compositor.Outputs) == 0 {
			return nil
		}
		outputHint = m.compositor.Outputs[0]
	}
	ws := newWorkspace(key.Num, key.Name, outputHint)
	outputHint.AttachWorkspace(ws)
	m.broadcastCreated(ws)
	m.focus(ws)
	return ws
}

func (m *WorkspaceManager) focus(ws *Workspace) {
	if ws.Output == nil {
		return
	}
	m.mu.Lock()
	if ws.Output.Active != nil && ws.Output.Active != ws {
		m.lastSelected[ws.Output] = ws.Output.Active
	}
	m.mu.Unlock()
	m.compositor.SwitchWorkspace(ws.Output, ws, m)
	m.broadcastFocused(ws)
}

// RequestBackAndForth focuses the stored last-selected workspace for o's
// output, if any.
func (m *WorkspaceManager) RequestBackAndForth(o *Output) *Workspace {
	m.mu.Lock()
	target := m.lastSelected[o]
	m.mu.Unlock()
	if target == nil {
		return nil
	}
	m.focus(target)
	return target
}

// RequestNext walks the global sorted workspace list (all outputs
// concatenated in output order) and focuses the one after the currently
// focused workspace, wrapping around.
func (m *WorkspaceManager) RequestNext(current *Workspace) *Workspace {
	return m.step(current, +1, allWorkspaces(m.compositor.Outputs))
}

// RequestPrev is RequestNext's mirror.
func (m *WorkspaceManager) RequestPrev(current *Workspace) *Workspace {
	return m.step(current, -1, allWorkspaces(m.compositor.Outputs))
}

// RequestNextOnOutput/RequestPrevOnOutput walk only o's own workspace list,
// with wraparound.
func (m *WorkspaceManager) RequestNextOnOutput(o *Output) *Workspace {
	return m.step(o.Active, +1, o.Workspaces)
}

func (m *WorkspaceManager) RequestPrevOnOutput(o *Output) *Workspace {
	return m.step(o.Active, -1, o.Workspaces)
}

func (m *WorkspaceManager) step(current *Workspace, delta int, list []*Workspace) *Workspace {
	if len(list) == 0 {
		return nil
	}
	idx := 0
	for i, ws := range list {
		if ws == current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(list)) % len(list)
	target := list[next]
	m.focus(target)
	return target
}

func allWorkspaces(outputs []*Output) []*Workspace {
	var all []*Workspace
	for _, o := range outputs {
		all = append(all, o.Workspaces...)
	}
	sortWorkspaces(all)
	return all
}

// DeleteWorkspace removes the workspace with the given id from its output
// and broadcasts its removal. Only registered outputs are searched; an
// orphaned workspace is left in place.
func (m *WorkspaceManager) DeleteWorkspace(id uuid.UUID) {
	for _, o := range m.compositor.Outputs {
		for _, ws := range o.Workspaces {
			if ws.ID == id {
				o.DetachWorkspace(ws)
				m.broadcastRemoved(ws)
				return
			}
		}
	}
}
