package wm

// MoveWorkspaceToOutput detaches ws from its source output (container
// invariants untouched), grafts it onto dest's sorted workspace list,
// rewrites its Output reference, then hides it. If ws is empty afterward it
// is deleted.
func MoveWorkspaceToOutput(ws *Workspace, dest *Output, wsm *WorkspaceManager) {
	src := ws.Output
	if src == dest {
		return
	}
	if src != nil {
		src.DetachWorkspace(ws)
	}
	dest.AttachWorkspace(ws)
	ws.visible = false

	if ws.IsEmpty() && wsm != nil {
		wsm.DeleteWorkspace(ws.ID)
	}
}

// RemoveOutput handles an output disconnecting.
// If o is the only live output, it is marked defunct and its workspaces are
// retained as orphans until a new output appears. Otherwise every one of
// o's workspaces is moved to the next output in the list first.
func RemoveOutput(cs *CompositorState, o *Output) {
	others := make([]*Output, 0, len(cs.Outputs))
	for _, other := range cs.Outputs {
		if other != o && !other.Defunct {
			others = append(others, other)
		}
	}

	if len(others) == 0 {
		o.Defunct = true
		cs.OrphanWorkspaces = append(cs.OrphanWorkspaces, o.Workspaces...)
		o.Workspaces = nil
		o.Active = nil
		return
	}

	dest := others[0]
	workspaces := append([]*Workspace{}, o.Workspaces...)
	for _, ws := range workspaces {
		MoveWorkspaceToOutput(ws, dest, nil)
	}

	idx := -1
	for i, out := range cs.Outputs {
		if out == o {
			idx = i
			break
		}
	}
	if idx != -1 {
		cs.Outputs = append(cs.Outputs[:idx], cs.Outputs[idx+1:]...)
	}
}

// AdoptOrphans attaches any orphaned workspaces (retained from a fully
// disconnected output) onto a newly appeared output.
func AdoptOrphans(cs *CompositorState, o *Output) {
	if len(cs.OrphanWorkspaces) == 0 {
		return
	}
	for _, ws := range cs.OrphanWorkspaces {
		o.AttachWorkspace(ws)
	}
	cs.OrphanWorkspaces = nil
}
