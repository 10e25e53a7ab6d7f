package wm

import (
	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/displayserver"
	"testing"
)

func stubHandle() animation.Handle { return animation.NoHandle }

func num(n int) *int { return &n }

func TestAllocateWindowTiledJoinsFocusedParent(t *testing.T) {
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, o)
	ws.TiledRoot.Anchored = true

	first := ws.AllocateWindow(displayserver.WindowCreated{ID: 1, Area: displayserver.Rect{Width: 1280, Height: 720}}, nil, false, stubHandle)
	if first.Kind != KindLeaf {
		t.Fatalf("expected a tiled leaf, got %v", first.Kind)
	}
	if first.Parent != ws.TiledRoot {
		t.Fatalf("first window should attach directly under the workspace root")
	}

	second := ws.AllocateWindow(displayserver.WindowCreated{ID: 2, Area: displayserver.Rect{Width: 1280, Height: 720}}, first, false, stubHandle)
	if second.Parent != ws.TiledRoot {
		t.Errorf("second window focused on first (a leaf whose parent is the root) should join the root")
	}
	if len(ws.TiledRoot.Children) != 2 {
		t.Errorf("root should now have 2 children, got %d", len(ws.TiledRoot.Children))
	}
}

func TestAllocateWindowFloatingHintCreatesFloatingRoot(t *testing.T) {
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, o)

	leaf := ws.AllocateWindow(displayserver.WindowCreated{ID: 5, Area: displayserver.Rect{X: 10, Y: 10, Width: 300, Height: 200}}, nil, true, stubHandle)
	if leaf.Kind != KindFloatingWindow {
		t.Fatalf("expected a floating window, got %v", leaf.Kind)
	}
	if len(ws.FloatingRoots) != 1 || ws.FloatingRoots[0] != leaf {
		t.Errorf("floating window should be registered as a floating root")
	}
}

func TestAllocateWindowShellIsForwardedNotTiled(t *testing.T) {
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, o)

	shell := ws.AllocateWindow(displayserver.WindowCreated{ID: 9, IsShell: true, Area: displayserver.Rect{Width: 200, Height: 40}}, nil, false, stubHandle)
	if shell.Kind != KindShell {
		t.Fatalf("expected a shell container, got %v", shell.Kind)
	}
	if len(ws.TiledRoot.Children) != 0 {
		t.Errorf("shell windows should never join the tiled tree")
	}
}

func TestWorkspaceIsEmpty(t *testing.T) {
	o := &Output{Name: "o", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, o)
	if !ws.IsEmpty() {
		t.Fatal("freshly created workspace should be empty")
	}

	ws.AllocateWindow(displayserver.WindowCreated{ID: 1, Area: displayserver.Rect{Width: 100, Height: 100}}, nil, false, stubHandle)
	if ws.IsEmpty() {
		t.Error("workspace with a tiled leaf should not be empty")
	}
}

func TestWorkspaceLabelPrefersNumThenNameThenID(t *testing.T) {
	o := &Output{Name: "o"}
	numbered := newWorkspace(num(3), nil, o)
	if got := numbered.Label(); got != "3" {
		t.Errorf("Label() = %q, want %q", got, "3")
	}

	name := "editor"
	named := newWorkspace(nil, &name, o)
	if got := named.Label(); got != "editor" {
		t.Errorf("Label() = %q, want %q", got, "editor")
	}

	anon := newWorkspace(nil, nil, o)
	if got := anon.Label(); got != anon.ID.String() {
		t.Errorf("Label() = %q, want id string %q", got, anon.ID.String())
	}
}

func TestVirtualOffsetNumberedByPosition(t *testing.T) {
	o := &Output{Area: Rect{W: 1000}}
	ws1 := newWorkspace(num(1), nil, o)
	ws2 := newWorkspace(num(2), nil, o)
	ordered := []*Workspace{ws1, ws2}

	if got := virtualOffset(ws1, ordered, 1000); got != 0 {
		t.Errorf("ws1 offset = %d, want 0", got)
	}
	if got := virtualOffset(ws2, ordered, 1000); got != 1000 {
		t.Errorf("ws2 offset = %d, want 1000", got)
	}
}

func TestVirtualOffsetNamedFollowsNumbered(t *testing.T) {
	o := &Output{}
	ws1 := newWorkspace(num(1), nil, o)
	name := "side"
	named := newWorkspace(nil, &name, o)
	ordered := []*Workspace{ws1, named}

	if got := virtualOffset(named, ordered, 500); got != 1*500 {
		t.Errorf("named offset = %d, want %d", got, 500)
	}
}

func TestSortWorkspacesNumberedBeforeNamed(t *testing.T) {
	o := &Output{}
	name := "z"
	named := newWorkspace(nil, &name, o)
	ws2 := newWorkspace(num(2), nil, o)
	ws1 := newWorkspace(num(1), nil, o)

	list := []*Workspace{named, ws2, ws1}
	sortWorkspaces(list)

	if list[0] != ws1 || list[1] != ws2 || list[2] != named {
		t.Errorf("sortWorkspaces order wrong: %v", list)
	}
}

func TestAttachDetachWorkspace(t *testing.T) {
	o := &Output{Name: "o"}
	ws := newWorkspace(num(1), nil, o)

	o.AttachWorkspace(ws)
	if ws.Output != o || len(o.Workspaces) != 1 {
		t.Fatal("AttachWorkspace should register ws under o")
	}

	o.Active = ws
	o.DetachWorkspace(ws)
	if len(o.Workspaces) != 0 {
		t.Errorf("expected workspace list to be empty after detach")
	}
	if o.Active != nil {
		t.Errorf("detaching the active workspace should clear Active")
	}
}
