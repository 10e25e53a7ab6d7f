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

func TestMoveServiceRejectsTiledContainer(t *testing.T) {
	cfg := config.Default()
	anim := animation.New()
	cs := wm.NewCompositorState(anim, cfg)
	wsm := wm.NewWorkspaceManager(cs, cfg)
	scratch := wm.NewScratchpad()
	ctrl := command.New(cs, wsm, scratch, fakeController{}, cfg)

	ws := &wm.Workspace{TiledRoot: &wm.Container{Kind: wm.KindParent}}
	leaf := &wm.Container{Kind: wm.KindLeaf, Workspace: ws}
	cs.PushFocus(leaf)

	svc := NewMoveService(cs, ctrl, tcell.ModAlt)
	ev := displayserver.PointerEvent{X: 0, Y: 0, Modifiers: tcell.ModAlt}
	if svc.ButtonDown(ev, leaf) {
		t.Error("ButtonDown should reject a tiled leaf")
	}
}

func TestMoveServiceTranslatesFloatingWindow(t *testing.T) {
	cfg := config.Default()
	anim := animation.New()
	cs := wm.NewCompositorState(anim, cfg)
	wsm := wm.NewWorkspaceManager(cs, cfg)
	scratch := wm.NewScratchpad()
	ctrl := command.New(cs, wsm, scratch, fakeController{}, cfg)

	ws := &wm.Workspace{}
	floater := &wm.Container{Kind: wm.KindFloatingWindow, Workspace: ws, Window: 9, Logical: wm.Rect{X: 0, Y: 0, W: 100, H: 100}}
	ws.FloatingRoots = append(ws.FloatingRoots, floater)
	cs.PushFocus(floater)

	svc := NewMoveService(cs, ctrl, tcell.ModAlt)
	down := displayserver.PointerEvent{X: 50, Y: 50, Modifiers: tcell.ModAlt}
	if !svc.ButtonDown(down, floater) {
		t.Fatal("ButtonDown should accept a floating window")
	}

	svc.Motion(displayserver.PointerEvent{X: 60, Y: 40, Modifiers: tcell.ModAlt})
	if floater.Logical.X != 10 || floater.Logical.Y != -10 {
		t.Errorf("Logical = %+v, want origin shifted by (10,-10)", floater.Logical)
	}

	svc.ButtonUp()
	if svc.Active() {
		t.Error("move should have ended")
	}
}
