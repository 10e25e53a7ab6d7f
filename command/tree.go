package command

import "github.com/shardwm/shardwm/wm"

// TreeNode mirrors the i3 "get_tree" reply shape: root -> outputs ->
// workspaces -> containers, each carrying enough to reconstruct layout and
// focus state client-side.
type TreeNode struct {
	ID              uintptr    `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Rect            RectJSON   `json:"rect"`
	Nodes           []TreeNode `json:"nodes"`
	FloatingNodes   []TreeNode `json:"floating_nodes"`
	Focused         bool       `json:"focused"`
	Layout          string     `json:"layout"`
	FullscreenMode  int        `json:"fullscreen_mode"`
	AppID           uint64     `json:"app_id,omitempty"`
	Sticky          bool       `json:"sticky"`
	ScratchpadState string     `json:"scratchpad_state"`

	Num     *int   `json:"num,omitempty"`
	Output  string `json:"output,omitempty"`
	Visible bool   `json:"visible,omitempty"`
	Urgent  bool   `json:"urgent,omitempty"`
}

type RectJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func rectJSON(r wm.Rect) RectJSON {
	return RectJSON{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// GetTree builds the full i3-compatible tree snapshot: one root node
// containing one node per output, each containing its workspaces.
func (c *Controller) GetTree() TreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	focused := c.focusedLocked()
	root := TreeNode{Name: "root", Type: "root", Layout: "splith"}
	for _, o := range c.cs.Outputs {
		root.Nodes = append(root.Nodes, outputNode(o, focused))
	}
	return root
}

func outputNode(o *wm.Output, focused *wm.Container) TreeNode {
	node := TreeNode{
		Name: o.Name,
		Type: "output",
		Rect: rectJSON(o.Area),
	}
	for _, ws := range o.Workspaces {
		node.Nodes = append(node.Nodes, workspaceNode(ws, focused))
	}
	return node
}

func workspaceNode(ws *wm.Workspace, focused *wm.Container) TreeNode {
	node := TreeNode{
		Name:    ws.Label(),
		Type:    "workspace",
		Num:     ws.Num,
		Visible: ws.Visible(),
	}
	if ws.Output != nil {
		node.Output = ws.Output.Name
		node.Rect = rectJSON(ws.Output.Area)
	}
	if ws.TiledRoot != nil {
		node.Nodes = append(node.Nodes, containerNode(ws.TiledRoot, focused))
	}
	for _, f := range ws.FloatingRoots {
		node.FloatingNodes = append(node.FloatingNodes, containerNode(f, focused))
	}
	return node
}

func containerNode(c *wm.Container, focused *wm.Container) TreeNode {
	node := TreeNode{
		Name:            c.Kind.String(),
		Type:            "con",
		Rect:            rectJSON(c.Logical),
		Focused:         c == focused,
		Layout:          c.Scheme.String(),
		Sticky:          c.Pinned,
		ScratchpadState: scratchpadStateName(c),
	}
	if c.Fullscreen {
		node.FullscreenMode = 1
	}
	if id, ok := windowOf(c); ok {
		node.AppID = uint64(id)
	}
	for _, child := range c.Children {
		node.Nodes = append(node.Nodes, containerNode(child, focused))
	}
	return node
}

func scratchpadStateName(c *wm.Container) string {
	switch c.Scratchpad {
	case wm.ScratchpadFresh:
		return "fresh"
	case wm.ScratchpadChanged:
		return "changed"
	default:
		return "none"
	}
}
