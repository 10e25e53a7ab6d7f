package wm

import "testing"

func TestMoveWorkspaceToOutputRewritesBackReference(t *testing.T) {
	src := &Output{Name: "src", Area: Rect{W: 1280, H: 720}}
	dest := &Output{Name: "dest", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, src)
	src.AttachWorkspace(ws)
	leaf := &Container{Kind: KindLeaf, Workspace: ws}
	placeLeaf(ws.TiledRoot, leaf)

	wsm, _, cs := newManagerWithOutput()
	cs.Outputs = append(cs.Outputs, src, dest)

	MoveWorkspaceToOutput(ws, dest, wsm)

	if ws.Output != dest {
		t.Errorf("ws.Output = %v, want dest", ws.Output)
	}
	if len(src.Workspaces) != 0 {
		t.Errorf("expected ws removed from src's workspace list")
	}
	if len(dest.Workspaces) != 1 || dest.Workspaces[0] != ws {
		t.Errorf("expected ws attached to dest's workspace list")
	}
	if ws.Visible() {
		t.Errorf("moved workspace should be hidden until explicitly switched to")
	}
}

func TestMoveWorkspaceToOutputDeletesIfEmpty(t *testing.T) {
	src := &Output{Name: "src", Area: Rect{W: 1280, H: 720}}
	dest := &Output{Name: "dest", Area: Rect{W: 1280, H: 720}}
	ws := newWorkspace(num(1), nil, src)
	src.AttachWorkspace(ws)

	wsm, _, cs := newManagerWithOutput()
	cs.Outputs = append(cs.Outputs, src, dest)

	MoveWorkspaceToOutput(ws, dest, wsm)

	found := false
	for _, w := range dest.Workspaces {
		if w == ws {
			found = true
		}
	}
	if found {
		t.Errorf("an empty workspace should be deleted after moving, not left attached")
	}
}

func TestRemoveOutputMovesWorkspacesToSurvivor(t *testing.T) {
	cs := newTestCompositor()
	a := &Output{Name: "a", Area: Rect{W: 1280, H: 720}}
	b := &Output{Name: "b", Area: Rect{W: 1280, H: 720}}
	cs.Outputs = []*Output{a, b}

	ws := newWorkspace(num(1), nil, a)
	a.AttachWorkspace(ws)
	leaf := &Container{Kind: KindLeaf, Workspace: ws}
	placeLeaf(ws.TiledRoot, leaf)

	RemoveOutput(cs, a)

	if len(cs.Outputs) != 1 || cs.Outputs[0] != b {
		t.Fatalf("expected a to be removed from cs.Outputs, got %v", cs.Outputs)
	}
	if len(b.Workspaces) != 1 || b.Workspaces[0] != ws {
		t.Errorf("expected ws to have moved onto b")
	}
}

func TestRemoveOutputOrphansWorkspacesWhenLastOutput(t *testing.T) {
	cs := newTestCompositor()
	only := &Output{Name: "only", Area: Rect{W: 1280, H: 720}}
	cs.Outputs = []*Output{only}
	ws := newWorkspace(num(1), nil, only)
	only.AttachWorkspace(ws)

	RemoveOutput(cs, only)

	if !only.Defunct {
		t.Errorf("the last output should be marked defunct rather than removed")
	}
	if len(cs.OrphanWorkspaces) != 1 || cs.OrphanWorkspaces[0] != ws {
		t.Errorf("expected ws retained as an orphan")
	}
}

func TestAdoptOrphansAttachesToNewOutput(t *testing.T) {
	cs := newTestCompositor()
	stale := &Output{Name: "stale", Defunct: true}
	ws := newWorkspace(num(1), nil, stale)
	cs.OrphanWorkspaces = []*Workspace{ws}

	fresh := &Output{Name: "fresh", Area: Rect{W: 1280, H: 720}}
	AdoptOrphans(cs, fresh)

	if ws.Output != fresh {
		t.Errorf("ws.Output = %v, want fresh", ws.Output)
	}
	if len(cs.OrphanWorkspaces) != 0 {
		t.Errorf("orphan list should be drained after adoption")
	}
}
