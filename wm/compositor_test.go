package wm

import (
	"testing"

	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/config"
)

func newTestCompositor() *CompositorState {
	anim := animation.New()
	return NewCompositorState(anim, config.Default())
}

func TestSetModeRejectsDraggingFromNonNormal(t *testing.T) {
	cs := newTestCompositor()
	if !cs.SetMode(ResizingMode(animation.NoHandle)) {
		t.Fatal("entering resizing from normal should succeed")
	}
	if cs.SetMode(DraggingMode(animation.NoHandle, Point{}, Rect{})) {
		t.Error("entering dragging from resizing should be rejected")
	}
	if cs.Mode().Kind() != ModeResizing {
		t.Errorf("mode should remain resizing after the rejected transition")
	}
}

func TestSetModeAllowsDraggingFromNormal(t *testing.T) {
	cs := newTestCompositor()
	if !cs.SetMode(DraggingMode(animation.NoHandle, Point{}, Rect{})) {
		t.Fatal("entering dragging from normal should succeed")
	}
	if cs.Mode().Kind() != ModeDragging {
		t.Errorf("expected dragging mode")
	}
}

func TestPushFocusMRUOrderAndDedup(t *testing.T) {
	cs := newTestCompositor()
	ws := &Workspace{}
	a := &Container{Kind: KindLeaf, Workspace: ws}
	b := &Container{Kind: KindLeaf, Workspace: ws}

	cs.PushFocus(a)
	cs.PushFocus(b)
	cs.PushFocus(a)

	if cs.Focused() != a {
		t.Fatalf("most recently pushed container should be focused")
	}
	if len(cs.focusOrder) != 2 {
		t.Errorf("pushing a again should not duplicate its entry, got %d entries", len(cs.focusOrder))
	}
}

func TestFocusedSkipsDeadEntries(t *testing.T) {
	cs := newTestCompositor()
	ws := &Workspace{}
	dead := &Container{Kind: KindLeaf, Workspace: ws}
	alive := &Container{Kind: KindLeaf, Workspace: ws}

	cs.PushFocus(dead)
	cs.PushFocus(alive)
	dead.Workspace = nil // detached: no longer live

	if got := cs.Focused(); got != alive {
		t.Errorf("Focused() = %v, want the live entry %v", got, alive)
	}
}

func TestPruneFocusOrderDropsDeadEntries(t *testing.T) {
	cs := newTestCompositor()
	ws := &Workspace{}
	c := &Container{Kind: KindLeaf, Workspace: ws}
	cs.PushFocus(c)
	c.Workspace = nil

	cs.PruneFocusOrder()

	if len(cs.focusOrder) != 0 {
		t.Errorf("expected dead entry to be pruned, got %d remaining", len(cs.focusOrder))
	}
}

func TestFocusedOutputResolvesByPointerPosition(t *testing.T) {
	cs := newTestCompositor()
	left := &Output{Name: "left", Area: Rect{X: 0, Y: 0, W: 1000, H: 1000}}
	right := &Output{Name: "right", Area: Rect{X: 1000, Y: 0, W: 1000, H: 1000}}
	cs.Outputs = []*Output{left, right}

	cs.SetPointer(Point{X: 1500, Y: 500})
	if got := cs.FocusedOutput(); got != right {
		t.Errorf("FocusedOutput() = %v, want right", got)
	}
}

func TestFocusedOutputFallsBackToFirstWhenPointerOutside(t *testing.T) {
	cs := newTestCompositor()
	only := &Output{Name: "only", Area: Rect{X: 0, Y: 0, W: 100, H: 100}}
	cs.Outputs = []*Output{only}
	cs.SetPointer(Point{X: 9999, Y: 9999})

	if got := cs.FocusedOutput(); got != only {
		t.Errorf("FocusedOutput() = %v, want the sole registered output as fallback", got)
	}
}

func TestFocusedOutputNilWhenNoneRegistered(t *testing.T) {
	cs := newTestCompositor()
	if got := cs.FocusedOutput(); got != nil {
		t.Errorf("FocusedOutput() = %v, want nil with no outputs registered", got)
	}
}

func TestSwitchWorkspaceShowsBothDuringAnimation(t *testing.T) {
	cs := newTestCompositor()
	o := &Output{Name: "o", Area: Rect{X: 0, Y: 0, W: 1280, H: 720}}
	one := newWorkspace(num(1), nil, o)
	two := newWorkspace(num(2), nil, o)
	o.AttachWorkspace(one)
	o.AttachWorkspace(two)
	o.Active = one
	one.visible = true

	wsm := NewWorkspaceManager(cs, cs.Config)
	cs.SwitchWorkspace(o, two, wsm)

	if o.Active != two {
		t.Fatalf("Active should switch immediately to the requested workspace")
	}
	if o.SwitchHandle == animation.NoHandle {
		t.Errorf("expected a switch animation handle to be assigned")
	}
	if !one.Visible() || !two.Visible() {
		t.Errorf("both workspaces should be visible while the switch animates: one=%v two=%v", one.Visible(), two.Visible())
	}
}

func TestSwitchWorkspaceNoopWhenAlreadyActive(t *testing.T) {
	cs := newTestCompositor()
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, o)
	o.AttachWorkspace(ws)
	o.Active = ws

	cs.SwitchWorkspace(o, ws, nil)

	if o.SwitchHandle != animation.NoHandle {
		t.Errorf("switching to the already-active workspace should be a no-op")
	}
}

func TestSwitchWorkspaceDisabledAnimationFinishesSynchronously(t *testing.T) {
	cfg := config.Default()
	cfg.Animations.WorkspaceSwitch.Enabled = false
	anim := animation.New()
	cs := NewCompositorState(anim, cfg)

	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	one := newWorkspace(num(1), nil, o)
	two := newWorkspace(num(2), nil, o)
	o.AttachWorkspace(one)
	o.AttachWorkspace(two)
	o.Active = one

	cs.SwitchWorkspace(o, two, NewWorkspaceManager(cs, cfg))

	if !two.visible {
		t.Errorf("expected the target workspace to be marked visible once the disabled-animation switch finishes")
	}
	if one.visible {
		t.Errorf("expected the prior workspace to be hidden once the switch finishes")
	}
}
