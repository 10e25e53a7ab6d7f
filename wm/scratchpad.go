package wm

import "github.com/shardwm/shardwm/displayserver"

// scratchpadMember pairs a hidden container with its shown/hidden state.
type scratchpadMember struct {
	container *Container
	showing   bool
}

// Scratchpad is the hidden holding area for windows toggled onto the
// focused output.
type Scratchpad struct {
	members []*scratchpadMember
}

func NewScratchpad() *Scratchpad {
	return &Scratchpad{}
}

// MoveTo accepts a leaf-like container, converting a tiled leaf to floating
// first, marks it `fresh`, detaches it from its workspace, and records it
// as a hidden member; no display-server call is made here.
func (sp *Scratchpad) MoveTo(c *Container) bool {
	if !c.IsLeafLike() {
		logf("scratchpad: move_to rejected non-leaf-like container kind=%s", c.Kind)
		return false
	}
	if c.Kind == KindLeaf {
		detachFromTiledTree(c)
		c.Kind = KindFloatingWindow
		c.Anchored = false
	} else if c.Workspace != nil {
		detachFromFloatingRoots(c)
	}

	c.Scratchpad = ScratchpadFresh
	c.Workspace = nil
	sp.members = append(sp.members, &scratchpadMember{container: c, showing: false})
	return true
}

func detachFromTiledTree(c *Container) {
	parent := c.Parent
	if parent == nil {
		return
	}
	idx := indexOf(parent.Children, c)
	if idx == -1 {
		return
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	if len(parent.Children) == 1 {
		promoteSingleChild(parent)
	} else {
		normalizeRatios(parent)
		destroyIfEmpty(parent)
	}
	c.Parent = nil
}

func detachFromFloatingRoots(c *Container) {
	ws := c.Workspace
	if ws == nil {
		return
	}
	idx := -1
	for i, root := range ws.FloatingRoots {
		if root == c {
			idx = i
			break
		}
	}
	if idx != -1 {
		ws.FloatingRoots = append(ws.FloatingRoots[:idx], ws.FloatingRoots[idx+1:]...)
	}
}

func (sp *Scratchpad) find(c *Container) *scratchpadMember {
	for _, m := range sp.members {
		if m.container == c {
			return m
		}
	}
	return nil
}

// ToggleShow shows or hides a scratchpad member. Showing centers it in the
// focused output and raises its depth layer to always-on-top; hiding
// restores the default depth layer.
func (sp *Scratchpad) ToggleShow(c *Container, focusedOutput *Output, ctrl displayserver.WindowController) bool {
	m := sp.find(c)
	if m == nil {
		return false
	}
	if m.showing {
		m.showing = false
		c.Scratchpad = ScratchpadChanged
		_ = ctrl.SetDepthLayer(c.Window, displayserver.DepthLayerApplication)
		return true
	}
	if focusedOutput == nil {
		logf("scratchpad: toggle_show has no focused output to center into")
		return false
	}
	m.showing = true
	c.Logical = centerIn(c.Logical, focusedOutput.Area)
	_ = ctrl.AssignGeometry(c.Window, c.Logical.toDisplayServer())
	_ = ctrl.SetDepthLayer(c.Window, displayserver.DepthLayerAlwaysOnTop)
	return true
}

// ToggleShowAll toggles every member's visibility.
func (sp *Scratchpad) ToggleShowAll(focusedOutput *Output, ctrl displayserver.WindowController) {
	for _, m := range sp.members {
		sp.ToggleShow(m.container, focusedOutput, ctrl)
	}
}

func centerIn(r Rect, within Rect) Rect {
	return Rect{
		X: within.X + (within.W-r.W)/2,
		Y: within.Y + (within.H-r.H)/2,
		W: r.W,
		H: r.H,
	}
}
