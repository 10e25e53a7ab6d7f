package wm

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/config"
	"github.com/shardwm/shardwm/displayserver"
)

// Workspace groups one tiling tree plus zero-or-more floating trees under a
// numbered or named identity.
type Workspace struct {
	ID     uuid.UUID
	Num    *int
	Name   *string
	Output *Output

	TiledRoot     *Container
	FloatingRoots []*Container

	lastFocused *Container
	visible     bool
}

// Visible reports whether this workspace is currently shown on its output
// (both workspaces are visible during a switch animation; only the active
// one remains visible once it completes).
func (w *Workspace) Visible() bool { return w.visible }

func newWorkspace(num *int, name *string, output *Output) *Workspace {
	ws := &Workspace{
		ID:     uuid.New(),
		Num:    num,
		Name:   name,
		Output: output,
	}
	ws.TiledRoot = &Container{Kind: KindParent, Workspace: ws, Scheme: SchemeHorizontal, Anchored: true}
	return ws
}

// Label returns the workspace's display identity: its number if numbered,
// else its name, else its id.
func (w *Workspace) Label() string {
	if w.Num != nil {
		return itoa(*w.Num)
	}
	if w.Name != nil {
		return *w.Name
	}
	return w.ID.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// IsEmpty reports whether the workspace has no leaves, leaf-likes, or
// shells anywhere in its tiled or floating trees.
func (w *Workspace) IsEmpty() bool {
	if countLeaves(w.TiledRoot) > 0 {
		return false
	}
	for _, root := range w.FloatingRoots {
		if countLeaves(root) > 0 {
			return false
		}
	}
	return true
}

func countLeaves(n *Container) int {
	if n == nil {
		return 0
	}
	if n.IsLeafLike() || n.Kind == KindShell {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += countLeaves(c)
	}
	return count
}

// AllocateWindow decides how a newly-created window is placed: shell-like
// windows (panels, menus — forwarded rather than
// tiled) become Shell containers; everything else becomes a tiled leaf
// under the focused parent if it belongs to this workspace, else the
// workspace root; an explicit floating hint instead creates a single-leaf
// floating subtree.
func (w *Workspace) AllocateWindow(evt displayserver.WindowCreated, focused *Container, floatingHint bool, handle func() animation.Handle) *Container {
	area := Rect{X: evt.Area.X, Y: evt.Area.Y, W: evt.Area.Width, H: evt.Area.Height}

	if evt.IsShell {
		shell := &Container{
			Kind:        KindShell,
			Handle:      handle(),
			Workspace:   w,
			Logical:     area,
			ShellWindow: evt.ID,
			Anchored:    true,
		}
		return shell
	}

	if floatingHint {
		leaf := &Container{
			Kind:      KindFloatingWindow,
			Handle:    handle(),
			Workspace: w,
			Logical:   area,
			Window:    evt.ID,
			Anchored:  false,
		}
		w.FloatingRoots = append(w.FloatingRoots, leaf)
		return leaf
	}

	leaf := &Container{
		Kind:      KindLeaf,
		Handle:    handle(),
		Workspace: w,
		Logical:   area,
		Window:    evt.ID,
		Anchored:  true,
	}

	target := w.TiledRoot
	if focused != nil && focused.Workspace == w && focused.Anchored {
		if focused.Kind == KindParent {
			target = focused
		} else if focused.Parent != nil {
			split(focused, focused.Parent.Scheme, leaf)
			return leaf
		}
	}
	placeLeaf(target, leaf)
	return leaf
}

// Relayout recomputes geometry for the tiled tree and every floating root,
// given cfg's gap/border settings.
func (w *Workspace) Relayout(cfg config.Config) {
	if w.TiledRoot != nil {
		computeLayout(w.TiledRoot, cfg.InnerGapPixels, cfg.BorderWidth)
	}
	for _, root := range w.FloatingRoots {
		computeLayout(root, cfg.InnerGapPixels, cfg.BorderWidth)
	}
}

// virtualOffset computes the virtual x-offset used by workspace-switch
// animation: numbered workspaces lay out left to
// right at (num-1)*outputWidth; named workspaces come after all numbered
// ones, ordered by position in `ordered`.
func virtualOffset(ws *Workspace, ordered []*Workspace, outputWidth int) int {
	if ws.Num != nil {
		return (*ws.Num - 1) * outputWidth
	}
	numbered := 0
	for _, o := range ordered {
		if o.Num != nil {
			numbered++
		}
	}
	named := 0
	for _, o := range ordered {
		if o == ws {
			return (numbered + named) * outputWidth
		}
		if o.Num == nil {
			named++
		}
	}
	return 0
}

// sortWorkspaces orders workspaces: numbered workspaces sort
// before named ones, numerics by number, names by insertion (stable sort
// over the slice's current order, which callers maintain in insertion
// order).
func sortWorkspaces(list []*Workspace) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Num != nil && b.Num != nil {
			return *a.Num < *b.Num
		}
		if a.Num != nil {
			return true
		}
		if b.Num != nil {
			return false
		}
		return false // both named: insertion order preserved by stable sort
	})
}
