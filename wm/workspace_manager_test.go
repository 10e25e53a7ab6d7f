package wm

import (
	"testing"

	"github.com/shardwm/shardwm/config"
)

func newManagerWithOutput() (*WorkspaceManager, *Output, *CompositorState) {
	cs := newTestCompositor()
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	cs.Outputs = []*Output{o}
	return NewWorkspaceManager(cs, cs.Config), o, cs
}

func TestRequestFirstAvailableSkipsTaken(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	o.AttachWorkspace(newWorkspace(num(1), nil, o))
	o.AttachWorkspace(newWorkspace(num(2), nil, o))

	if got := wsm.RequestFirstAvailable(o); got != 3 {
		t.Errorf("RequestFirstAvailable() = %d, want 3", got)
	}
}

func TestRequestFirstAvailableFallsBackToZeroWhenFull(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	cfg := config.Default()
	cfg.DefaultWorkspaceCount = 2
	wsm.cfg = cfg
	o.AttachWorkspace(newWorkspace(num(1), nil, o))
	o.AttachWorkspace(newWorkspace(num(2), nil, o))

	if got := wsm.RequestFirstAvailable(o); got != 0 {
		t.Errorf("RequestFirstAvailable() = %d, want 0 fallback", got)
	}
}

func TestRequestWorkspaceCreatesOnDemand(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()

	ws := wsm.RequestWorkspace(o, WorkspaceKey{Num: num(5)}, false)
	if ws == nil {
		t.Fatal("expected a new workspace to be created")
	}
	if ws.Output != o {
		t.Errorf("new workspace should attach to the hinted output")
	}
	if o.Active != ws {
		t.Errorf("requesting a workspace should focus it")
	}
}

func TestRequestWorkspaceFocusesExisting(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	existing := newWorkspace(num(7), nil, o)
	o.AttachWorkspace(existing)

	got := wsm.RequestWorkspace(nil, WorkspaceKey{Num: num(7)}, false)
	if got != existing {
		t.Errorf("RequestWorkspace should find the existing workspace by number")
	}
}

func TestRequestBackAndForthReturnsNilWithNoHistory(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	if got := wsm.RequestBackAndForth(o); got != nil {
		t.Errorf("expected nil with no switch history, got %v", got)
	}
}

func TestRequestBackAndForthReturnsToPrior(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	one := newWorkspace(num(1), nil, o)
	two := newWorkspace(num(2), nil, o)
	o.AttachWorkspace(one)
	o.AttachWorkspace(two)
	o.Active = one

	wsm.RequestWorkspace(o, WorkspaceKey{Num: num(2)}, false)
	if o.Active != two {
		t.Fatalf("precondition: expected to have switched to workspace 2")
	}

	got := wsm.RequestBackAndForth(o)
	if got != one {
		t.Errorf("RequestBackAndForth() = %v, want workspace 1", got)
	}
}

func TestRequestNextWrapsAround(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	one := newWorkspace(num(1), nil, o)
	two := newWorkspace(num(2), nil, o)
	o.AttachWorkspace(one)
	o.AttachWorkspace(two)

	got := wsm.RequestNext(two)
	if got != one {
		t.Errorf("RequestNext from the last workspace should wrap to the first, got %v", got)
	}
}

func TestDeleteWorkspaceBroadcastsRemoval(t *testing.T) {
	wsm, o, _ := newManagerWithOutput()
	ws := newWorkspace(num(1), nil, o)
	o.AttachWorkspace(ws)

	var removed *Workspace
	wsm.Subscribe(observerFuncs{
		removed: func(w *Workspace) { removed = w },
	})

	wsm.DeleteWorkspace(ws.ID)

	if removed != ws {
		t.Errorf("expected removal broadcast for the deleted workspace")
	}
	if len(o.Workspaces) != 0 {
		t.Errorf("expected workspace to be detached from its output")
	}
}

// observerFuncs adapts plain funcs to the WorkspaceObserver interface for
// tests that only care about one callback.
type observerFuncs struct {
	created func(*Workspace)
	removed func(*Workspace)
	focused func(*Workspace)
}

func (o observerFuncs) WorkspaceCreated(ws *Workspace) {
	if o.created != nil {
		o.created(ws)
	}
}

func (o observerFuncs) WorkspaceRemoved(ws *Workspace) {
	if o.removed != nil {
		o.removed(ws)
	}
}

func (o observerFuncs) WorkspaceFocused(ws *Workspace) {
	if o.focused != nil {
		o.focused(ws)
	}
}
