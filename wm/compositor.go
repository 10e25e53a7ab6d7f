package wm

import (
	"sync"

	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/config"
)

// RenderDatum is one surface's published render state.
type RenderDatum struct {
	Window    uint64
	Transform animation.Transform
	Clip      Rect
	ClipEnabled bool
	Focused   bool
}

// RenderPublisher is the mutex-guarded snapshot the renderer consumes per
// frame. It is intentionally the only piece
// of state in this package touched from the animation ticker goroutine;
// everything else is confined to the main/command-controller path.
type RenderPublisher struct {
	mu   sync.Mutex
	data map[uint64]RenderDatum
}

func NewRenderPublisher() *RenderPublisher {
	return &RenderPublisher{data: make(map[uint64]RenderDatum)}
}

func (p *RenderPublisher) Publish(d RenderDatum) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[d.Window] = d
}

func (p *RenderPublisher) Remove(window uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, window)
}

// Snapshot returns a copy of the current render data, safe to iterate
// without holding the publisher's lock.
func (p *RenderPublisher) Snapshot() []RenderDatum {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]RenderDatum, 0, len(p.data))
	for _, d := range p.data {
		out = append(out, d)
	}
	return out
}

// FocusEntry is one weak-style entry in the MRU focus order. live reports
// whether the container is still attached to a workspace; entries that go
// stale are pruned lazily rather than eagerly.
type FocusEntry struct {
	Container *Container
}

func (e FocusEntry) live() bool {
	return e.Container != nil && e.Container.Workspace != nil
}

// CompositorState is the process-wide hub: focus order, pointer state, WM
// mode, and the render-data publisher. Create one at boot,
// pass it (or a narrow accessor) to subsystems, and never reach it from
// package-level global state.
type CompositorState struct {
	mu sync.Mutex

	focusOrder []FocusEntry
	pointer    Point
	modifiers  uint32
	mode       Mode

	Outputs          []*Output
	OrphanWorkspaces []*Workspace

	Animator  *animation.Animator
	Publisher *RenderPublisher
	Config    config.Config

	pendingSwitches map[animation.Handle]*pendingSwitch
	nextHandle      func() animation.Handle

	// containerApply lets the command controller install a callback
	// translating a non-switch StepResult into container geometry and a
	// render-publisher update, without this package importing the command
	// package (which would cycle back through CompositorState).
	containerApply func(animation.StepResult)
}

// SetContainerApply registers the callback used for every StepResult that
// is not a pending workspace-switch.
func (cs *CompositorState) SetContainerApply(fn func(animation.StepResult)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.containerApply = fn
}

type pendingSwitch struct {
	output *Output
	prior  *Workspace
	next   *Workspace
}

// NewCompositorState wires an animator and config into a fresh compositor
// state and registers the animator's tick callback, which is the one path
// by which the animation goroutine touches wm state: workspace-switch
// steps are applied to their output directly, and every other StepResult
// goes to the containerApply callback, which the command controller
// installs and which takes the controller's own lock.
func NewCompositorState(anim *animation.Animator, cfg config.Config) *CompositorState {
	cs := &CompositorState{
		mode:            NormalMode(),
		Animator:        anim,
		Publisher:       NewRenderPublisher(),
		Config:          cfg,
		pendingSwitches: make(map[animation.Handle]*pendingSwitch),
		nextHandle:      anim.NextHandle,
	}
	anim.OnTick(cs.applyTick)
	return cs
}

// SetModifiers records the current modifier-key mask, as reported by the
// display server on every key/pointer event.
func (cs *CompositorState) SetModifiers(mask uint32) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.modifiers = mask
}

// Modifiers returns the most recently recorded modifier-key mask.
func (cs *CompositorState) Modifiers() uint32 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.modifiers
}

// NextHandle allocates a fresh animation handle, for subsystems (drag/move)
// that need to address an animation without going through a container.
func (cs *CompositorState) NextHandle() animation.Handle {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.nextHandle()
}

// Mode returns the current WM mode.
func (cs *CompositorState) Mode() Mode {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.mode
}

// SetMode transitions the compositor's mode. Entering dragging from any
// non-normal mode is rejected.
func (cs *CompositorState) SetMode(m Mode) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if m.kind == ModeDragging && cs.mode.kind != ModeNormal {
		return false
	}
	cs.mode = m
	return true
}

// PushFocus moves c to the front of the MRU focus order, pruning dead
// entries as it goes.
func (cs *CompositorState) PushFocus(c *Container) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	live := make([]FocusEntry, 0, len(cs.focusOrder)+1)
	live = append(live, FocusEntry{Container: c})
	for _, e := range cs.focusOrder {
		if e.Container == c || !e.live() {
			continue
		}
		live = append(live, e)
	}
	cs.focusOrder = live
}

// Focused returns the front of the focus order, or nil if empty.
func (cs *CompositorState) Focused() *Container {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, e := range cs.focusOrder {
		if e.live() {
			return e.Container
		}
	}
	return nil
}

// PruneFocusOrder drops focus-order entries whose container no longer
// exists; called at tick boundaries so the history never outlives what it
// points to.
func (cs *CompositorState) PruneFocusOrder() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	live := cs.focusOrder[:0]
	for _, e := range cs.focusOrder {
		if e.live() {
			live = append(live, e)
		}
	}
	cs.focusOrder = live
}

// SetPointer records the latest absolute pointer position.
func (cs *CompositorState) SetPointer(p Point) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.pointer = p
}

func (cs *CompositorState) Pointer() Point {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.pointer
}

// FocusedOutput returns the output the pointer currently sits over, or nil.
// Callers must treat nil as "log and return", never panic.
func (cs *CompositorState) FocusedOutput() *Output {
	cs.mu.Lock()
	p := cs.pointer
	outputs := cs.Outputs
	cs.mu.Unlock()

	for _, o := range outputs {
		if o.Defunct {
			continue
		}
		if p.X >= float64(o.Area.X) && p.X < float64(o.Area.X+o.Area.W) &&
			p.Y >= float64(o.Area.Y) && p.Y < float64(o.Area.Y+o.Area.H) {
			return o
		}
	}
	if len(outputs) > 0 {
		return outputs[0]
	}
	logf("FocusedOutput: no output contains pointer and none are registered")
	return nil
}

// SwitchWorkspace switches the active workspace on an output. It publishes
// focus to next before the transition starts, shows
// both workspaces during the animation, and queues a position-offset slide
// whose completion (observed on a later tick) hides the non-active
// workspace and requests deletion of an emptied prior workspace.
func (cs *CompositorState) SwitchWorkspace(o *Output, next *Workspace, wsm *WorkspaceManager) {
	if o == nil || next == nil || o.Active == next {
		return
	}
	prior := o.Active

	// Transfer pinned floating subtrees before animating (step 6).
	if prior != nil {
		transferPinned(prior, next)
	}

	o.Active = next
	cs.PushFocus(findFirstLeaf(next.TiledRoot))

	for _, ws := range o.Workspaces {
		ws.visible = true
	}

	priorX := 0
	if prior != nil {
		priorX = virtualOffset(prior, o.Workspaces, o.Area.W)
	}
	nextX := virtualOffset(next, o.Workspaces, o.Area.W)

	anim := cs.Config.Animations.WorkspaceSwitch
	h := o.SwitchHandle
	if h == animation.NoHandle {
		h = cs.nextHandle()
		o.SwitchHandle = h
	}

	from := animation.Rect{X: float64(-priorX), Y: 0, W: float64(o.Area.W), H: float64(o.Area.H)}
	to := animation.Rect{X: float64(-nextX), Y: 0, W: float64(o.Area.W), H: float64(o.Area.H)}
	committed := animation.Rect{W: float64(o.Area.W), H: float64(o.Area.H)}

	tween := animation.TweenFunc(anim.Easing, anim.Params)
	if !anim.Enabled {
		res := cs.Animator.AppendDisabled(h, to)
		o.PositionOffset = Point{X: res.Position.X, Y: res.Position.Y}
		cs.finishSwitch(o, prior, next, wsm)
		return
	}

	cs.mu.Lock()
	cs.pendingSwitches[h] = &pendingSwitch{output: o, prior: prior, next: next}
	cs.mu.Unlock()

	first := cs.Animator.AppendSlide(h, from, to, committed, anim.Duration, tween)
	o.PositionOffset = Point{X: first.Position.X, Y: first.Position.Y}

	if first.IsComplete {
		cs.finishSwitchLocked(h, wsm)
	}
}

func transferPinned(prior, next *Workspace) {
	kept := prior.FloatingRoots[:0]
	for _, root := range prior.FloatingRoots {
		if root.Pinned {
			root.Workspace = next
			next.FloatingRoots = append(next.FloatingRoots, root)
		} else {
			kept = append(kept, root)
		}
	}
	prior.FloatingRoots = kept
}

// applyTick is the Animator's registered OnTick callback. It updates the
// position offset of pending workspace switches and resolves their
// completions, hands every other step to the containerApply callback
// (which takes the command-controller mutex), and prunes the focus order
// once the tick's results are applied.
func (cs *CompositorState) applyTick(results []animation.StepResult) {
	for _, r := range results {
		cs.mu.Lock()
		pending, isSwitch := cs.pendingSwitches[r.Handle]
		cs.mu.Unlock()
		if isSwitch {
			if r.Position != nil {
				pending.output.PositionOffset = Point{X: r.Position.X, Y: r.Position.Y}
			}
			if r.IsComplete {
				cs.finishSwitchLocked(r.Handle, nil)
			}
			continue
		}
		cs.applyContainerStep(r)
	}
	cs.PruneFocusOrder()
}

func (cs *CompositorState) applyContainerStep(r animation.StepResult) {
	// Container-addressed steps are applied by whichever caller owns the
	// handle->container mapping (the command controller keeps that map,
	// since it is the only place handles are minted alongside containers).
	// The compositor state only forwards the transform/clip to the render
	// publisher when a publisher callback has been registered for it.
	cs.mu.Lock()
	fn := cs.containerApply
	cs.mu.Unlock()
	if fn != nil {
		fn(r)
	}
}

func (cs *CompositorState) finishSwitch(o *Output, prior, next *Workspace, wsm *WorkspaceManager) {
	for _, ws := range o.Workspaces {
		ws.visible = ws == next
	}
	if prior != nil && prior.IsEmpty() && wsm != nil {
		wsm.DeleteWorkspace(prior.ID)
	}
	o.SwitchHandle = animation.NoHandle
}

func (cs *CompositorState) finishSwitchLocked(h animation.Handle, wsm *WorkspaceManager) {
	cs.mu.Lock()
	pending, ok := cs.pendingSwitches[h]
	if ok {
		delete(cs.pendingSwitches, h)
	}
	cs.mu.Unlock()
	if !ok {
		return
	}
	cs.finishSwitch(pending.output, pending.prior, pending.next, wsm)
}
