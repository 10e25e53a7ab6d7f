package wm

import (
	"github.com/shardwm/shardwm/animation"
)

// Output is a physical display: a rectangle in global coordinates holding
// an ordered workspace list.
type Output struct {
	Name   string
	ID     uint32
	Area   Rect
	Defunct bool

	Workspaces []*Workspace
	Active     *Workspace

	// PositionOffset is animated during workspace-switch transitions.
	PositionOffset Point
	Transform      animation.Transform

	// SwitchHandle addresses the in-flight workspace-switch animation, if
	// any, so a second switch request can replace it cleanly.
	SwitchHandle animation.Handle
}

// Point is a 2D offset.
type Point struct {
	X, Y float64
}

// AttachWorkspace inserts ws into o's workspace list in sorted order
// and rewrites ws's Output back-reference.
func (o *Output) AttachWorkspace(ws *Workspace) {
	ws.Output = o
	o.Workspaces = append(o.Workspaces, ws)
	sortWorkspaces(o.Workspaces)
}

// DetachWorkspace removes ws from o's workspace list without touching its
// container tree.
func (o *Output) DetachWorkspace(ws *Workspace) {
	idx := -1
	for i, w := range o.Workspaces {
		if w == ws {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	o.Workspaces = append(o.Workspaces[:idx], o.Workspaces[idx+1:]...)
	if o.Active == ws {
		o.Active = nil
	}
}
