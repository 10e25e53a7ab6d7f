package wm

import (
	"testing"

	"github.com/shardwm/shardwm/displayserver"
)

type fakeController struct {
	geometry map[displayserver.WindowID]displayserver.Rect
	layer    map[displayserver.WindowID]displayserver.DepthLayer
}

func newFakeController() *fakeController {
	return &fakeController{
		geometry: make(map[displayserver.WindowID]displayserver.Rect),
		layer:    make(map[displayserver.WindowID]displayserver.DepthLayer),
	}
}

func (f *fakeController) AssignGeometry(id displayserver.WindowID, area displayserver.Rect) error {
	f.geometry[id] = area
	return nil
}

func (f *fakeController) SetWindowState(id displayserver.WindowID, state displayserver.WindowState) error {
	return nil
}

func (f *fakeController) SetDepthLayer(id displayserver.WindowID, layer displayserver.DepthLayer) error {
	f.layer[id] = layer
	return nil
}

func (f *fakeController) SetClip(id displayserver.WindowID, clip displayserver.Rect, enabled bool) error {
	return nil
}

func (f *fakeController) Raise(id displayserver.WindowID) error        { return nil }
func (f *fakeController) SendToBack(id displayserver.WindowID) error   { return nil }
func (f *fakeController) SelectActive(id displayserver.WindowID) error { return nil }
func (f *fakeController) RequestClose(id displayserver.WindowID) error { return nil }
func (f *fakeController) MoveCursor(x, y int) error                    { return nil }

func TestScratchpadMoveToDetachesTiledLeaf(t *testing.T) {
	root := &Container{Kind: KindParent, Scheme: SchemeHorizontal}
	ws := &Workspace{TiledRoot: root}
	root.Workspace = ws
	leaf := &Container{Kind: KindLeaf, Workspace: ws, Window: 42}
	placeLeaf(root, leaf)

	sp := NewScratchpad()
	if !sp.MoveTo(leaf) {
		t.Fatal("MoveTo should accept a tiled leaf")
	}
	if leaf.Kind != KindFloatingWindow {
		t.Errorf("moving a tiled leaf to the scratchpad should convert it to floating, got %v", leaf.Kind)
	}
	if leaf.Workspace != nil {
		t.Errorf("scratchpad members should have no workspace while hidden")
	}
	if len(root.Children) != 0 {
		t.Errorf("leaf should be detached from the tiled tree")
	}
	if sp.find(leaf) == nil {
		t.Errorf("leaf should be registered as a scratchpad member")
	}
}

func TestScratchpadMoveToRejectsNonLeafLike(t *testing.T) {
	sp := NewScratchpad()
	parent := &Container{Kind: KindParent}
	if sp.MoveTo(parent) {
		t.Error("MoveTo should reject a Parent container")
	}
}

func TestScratchpadToggleShowRoundTrip(t *testing.T) {
	ws := &Workspace{}
	leaf := &Container{Kind: KindFloatingWindow, Window: 7, Logical: Rect{W: 200, H: 100}}
	ws.FloatingRoots = append(ws.FloatingRoots, leaf)

	sp := NewScratchpad()
	sp.MoveTo(leaf)

	ctrl := newFakeController()
	output := &Output{Name: "o", Area: Rect{X: 0, Y: 0, W: 1280, H: 720}}

	if !sp.ToggleShow(leaf, output, ctrl) {
		t.Fatal("ToggleShow should succeed for a registered member")
	}
	if ctrl.layer[leaf.Window] != displayserver.DepthLayerAlwaysOnTop {
		t.Errorf("showing should raise the window to always-on-top")
	}
	wantX := output.Area.X + (output.Area.W-leaf.Logical.W)/2
	if ctrl.geometry[leaf.Window].X != wantX {
		t.Errorf("geometry X = %d, want centered %d", ctrl.geometry[leaf.Window].X, wantX)
	}

	if !sp.ToggleShow(leaf, output, ctrl) {
		t.Fatal("ToggleShow should succeed hiding an already-shown member")
	}
	if ctrl.layer[leaf.Window] != displayserver.DepthLayerApplication {
		t.Errorf("hiding should restore the default depth layer")
	}
}

func TestScratchpadToggleShowUnknownMemberFails(t *testing.T) {
	sp := NewScratchpad()
	leaf := &Container{Kind: KindFloatingWindow}
	if sp.ToggleShow(leaf, &Output{}, newFakeController()) {
		t.Error("ToggleShow should fail for a container never moved to the scratchpad")
	}
}

func TestScratchpadToggleShowAllTogglesEveryMember(t *testing.T) {
	sp := NewScratchpad()
	a := &Container{Kind: KindFloatingWindow, Window: 1, Logical: Rect{W: 50, H: 50}}
	b := &Container{Kind: KindFloatingWindow, Window: 2, Logical: Rect{W: 50, H: 50}}
	sp.MoveTo(a)
	sp.MoveTo(b)

	ctrl := newFakeController()
	output := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	sp.ToggleShowAll(output, ctrl)

	if !sp.find(a).showing || !sp.find(b).showing {
		t.Errorf("ToggleShowAll should show every member")
	}
}
