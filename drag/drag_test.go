package drag

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/command"
	"github.com/shardwm/shardwm/config"
	"github.com/shardwm/shardwm/displayserver"
	"github.com/shardwm/shardwm/wm"
)

type fakeController struct{}

func (fakeController) AssignGeometry(displayserver.WindowID, displayserver.Rect) error { return nil }
func (fakeController) SetWindowState(displayserver.WindowID, displayserver.WindowState) error {
	return nil
}
func (fakeController) SetDepthLayer(displayserver.WindowID, displayserver.DepthLayer) error {
	return nil
}
func (fakeController) SetClip(displayserver.WindowID, displayserver.Rect, bool) error { return nil }
func (fakeController) Raise(displayserver.WindowID) error                            { return nil }
func (fakeController) SendToBack(displayserver.WindowID) error                       { return nil }
func (fakeController) SelectActive(displayserver.WindowID) error                     { return nil }
func (fakeController) RequestClose(displayserver.WindowID) error                     { return nil }
func (fakeController) MoveCursor(int, int) error                                     { return nil }

func newFixture(t *testing.T) (*wm.CompositorState, *command.Controller, *wm.Container) {
	t.Helper()
	cfg := config.Default()
	anim := animation.New()
	cs := wm.NewCompositorState(anim, cfg)
	wsm := wm.NewWorkspaceManager(cs, cfg)
	scratch := wm.NewScratchpad()
	ctrl := command.New(cs, wsm, scratch, fakeController{}, cfg)

	ws := &wm.Workspace{}
	floater := &wm.Container{Kind: wm.KindFloatingWindow, Workspace: ws, Window: 1, Logical: wm.Rect{X: 100, Y: 100, W: 200, H: 150}}
	ws.FloatingRoots = append(ws.FloatingRoots, floater)
	cs.PushFocus(floater)
	return cs, ctrl, floater
}

func TestServiceButtonDownRequiresModifier(t *testing.T) {
	cs, ctrl, floater := newFixture(t)
	svc := New(cs, ctrl, fakeController{}, tcell.ModAlt)

	ev := displayserver.PointerEvent{X: 10, Y: 10, Modifiers: 0}
	if svc.ButtonDown(ev, floater) {
		t.Error("ButtonDown should reject an event missing the required modifier")
	}
	if svc.Active() {
		t.Error("no drag should be active")
	}
}

func TestServiceDragMovesFloatingWindow(t *testing.T) {
	cs, ctrl, floater := newFixture(t)
	svc := New(cs, ctrl, fakeController{}, tcell.ModAlt)

	down := displayserver.PointerEvent{X: 100, Y: 100, Modifiers: tcell.ModAlt}
	if !svc.ButtonDown(down, floater) {
		t.Fatal("ButtonDown should succeed with the modifier held")
	}
	if cs.Mode().Kind() != wm.ModeDragging {
		t.Fatalf("mode = %v, want dragging", cs.Mode().Kind())
	}

	move := displayserver.PointerEvent{X: 130, Y: 90, Modifiers: tcell.ModAlt}
	svc.Motion(move)
	if floater.Logical.X != 130 || floater.Logical.Y != 90 {
		t.Errorf("Logical = %+v, want origin shifted by (30,-10)", floater.Logical)
	}

	svc.ButtonUp(move)
	if svc.Active() {
		t.Error("drag should have ended")
	}
	if cs.Mode().Kind() != wm.ModeNormal {
		t.Errorf("mode = %v, want normal after ButtonUp", cs.Mode().Kind())
	}
}

func TestServiceRejectsSecondDragWhileOneInProgress(t *testing.T) {
	cs, ctrl, floater := newFixture(t)
	svc := New(cs, ctrl, fakeController{}, tcell.ModAlt)

	down := displayserver.PointerEvent{X: 0, Y: 0, Modifiers: tcell.ModAlt}
	if !svc.ButtonDown(down, floater) {
		t.Fatal("first ButtonDown should succeed")
	}
	if svc.ButtonDown(down, floater) {
		t.Error("a second ButtonDown should be rejected while a drag is in progress")
	}
}
