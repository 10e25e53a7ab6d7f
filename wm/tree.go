package wm

import (
	"math"

	"github.com/shardwm/shardwm/config"
)

// Direction is a movement/selection/resize direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// axisScheme reports the Scheme whose axis a direction moves along: left and
// right move along a horizontal split's width axis, up and down along a
// vertical split's height axis.
func (d Direction) axisScheme() Scheme {
	switch d {
	case DirLeft, DirRight:
		return SchemeHorizontal
	default:
		return SchemeVertical
	}
}

// forward reports whether d walks toward the end of a parent's children
// (right/down) or toward the start (left/up).
func (d Direction) forward() bool {
	return d == DirRight || d == DirDown
}

// computeLayout assigns Logical/Visible rects to every descendant of root,
// given root's own Logical rect is already set. For a Parent, each child's
// share of the scheme's axis is ceil(ratio*axis) except the last child,
// which absorbs the rounding remainder so children stay contiguous.
// Tabbing/stacking
// parents give every child the parent's full tile; no child is marked
// hidden, and which tab or stack entry is on top is not tracked here.
func computeLayout(root *Container, gapPixels, borderWidth int) {
	if root == nil {
		return
	}
	switch root.Kind {
	case KindLeaf, KindFloatingWindow, KindShell:
		root.Visible = deflate(root.Logical, gapPixels, borderWidth)
		return
	case KindGroup:
		return
	}
	if root.Kind != KindParent {
		return
	}
	root.Visible = deflate(root.Logical, gapPixels, borderWidth)

	n := len(root.Children)
	if n == 0 {
		return
	}
	normalizeRatios(root)

	if root.Scheme == SchemeTabbing || root.Scheme == SchemeStacking {
		for _, child := range root.Children {
			child.Logical = root.Logical
			computeLayout(child, gapPixels, borderWidth)
		}
		return
	}

	area := root.Logical
	if root.Scheme == SchemeHorizontal {
		x := area.X
		for i, child := range root.Children {
			w := int(math.Ceil(root.SplitRatios[i] * float64(area.W)))
			if i == n-1 {
				w = area.W - (x - area.X)
			}
			child.Logical = Rect{X: x, Y: area.Y, W: w, H: area.H}
			computeLayout(child, gapPixels, borderWidth)
			x += w
		}
	} else {
		y := area.Y
		for i, child := range root.Children {
			h := int(math.Ceil(root.SplitRatios[i] * float64(area.H)))
			if i == n-1 {
				h = area.H - (y - area.Y)
			}
			child.Logical = Rect{X: area.X, Y: y, W: area.W, H: h}
			computeLayout(child, gapPixels, borderWidth)
			y += h
		}
	}
}

// deflate shrinks a logical rect by half the inner gap on each shared edge
// plus the border width, producing the visible area. At the tree edges
// there's no neighboring tile to share a gap with,
// but the core doesn't track adjacency here, and no outer gap is trimmed
// from the root before layout, so every container deflates uniformly by
// the same half-gap-plus-border on all four sides.
func deflate(r Rect, gapPixels, borderWidth int) Rect {
	inset := gapPixels/2 + borderWidth
	w := r.W - 2*inset
	h := r.H - 2*inset
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + inset, Y: r.Y + inset, W: w, H: h}
}

// placeLeaf creates a new leaf for window under parent, following the
// equal-N+1-share reservation policy: existing children are rebalanced to
// equal ratios alongside the new one.
func placeLeaf(parent *Container, leaf *Container) {
	leaf.Parent = parent
	parent.Children = append(parent.Children, leaf)
	equal := 1.0 / float64(len(parent.Children))
	parent.SplitRatios = make([]float64, len(parent.Children))
	for i := range parent.SplitRatios {
		parent.SplitRatios[i] = equal
	}
}

// wrapInNewParent replaces target in its parent's child list (or becomes
// the new workspace/floating root if target had no parent) with a fresh
// Parent of the given scheme containing exactly target, and returns the new
// parent. Used by both split-into-new-group and the root-wrap case of
// movement.
func wrapInNewParent(target *Container, scheme Scheme) *Container {
	wrapper := &Container{
		Kind:      KindParent,
		Handle:    target.Handle,
		Workspace: target.Workspace,
		Parent:    target.Parent,
		Anchored:  target.Anchored,
		Logical:   target.Logical,
		Scheme:    scheme,
	}
	if target.Parent != nil {
		idx := indexOf(target.Parent.Children, target)
		if idx != -1 {
			target.Parent.Children[idx] = wrapper
		}
	} else if target.Workspace != nil {
		if target.Workspace.TiledRoot == target {
			target.Workspace.TiledRoot = wrapper
		}
		for i, root := range target.Workspace.FloatingRoots {
			if root == target {
				target.Workspace.FloatingRoots[i] = wrapper
			}
		}
	}
	target.Parent = wrapper
	wrapper.Children = []*Container{target}
	wrapper.SplitRatios = []float64{1.0}
	return wrapper
}

// split places newLeaf alongside active: if active's parent already uses
// the requested scheme with equal ratios, the new leaf just joins that
// group; otherwise
// active is wrapped in a fresh parent of the requested scheme alongside the
// new leaf. Returns the new leaf.
func split(active *Container, scheme Scheme, newLeaf *Container) *Container {
	parent := active.Parent
	addToExisting := parent != nil && parent.Scheme == scheme && ratiosAreEqual(parent.SplitRatios)

	if addToExisting {
		placeLeaf(parent, newLeaf)
		newLeaf.Workspace = active.Workspace
		return newLeaf
	}

	wrapper := wrapInNewParent(active, scheme)
	newLeaf.Workspace = active.Workspace
	placeLeaf(wrapper, newLeaf)
	return newLeaf
}

// closeLeaf removes leaf from its parent, cascading promotion/destruction of
// now-empty ancestors, and returns a reasonable next-focus container (the
// sibling that took its place, or nil if the tree is now empty).
func closeLeaf(leaf *Container) *Container {
	parent := leaf.Parent
	if parent == nil {
		return nil
	}
	idx := indexOf(parent.Children, leaf)
	if idx == -1 {
		return nil
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)

	if len(parent.Children) == 1 {
		if parent.Parent == nil {
			// parent is a tiled/floating root: it stays a Parent with its
			// one remaining child rather than being collapsed away.
			return findFirstLeaf(parent)
		}
		promoteSingleChild(parent)
		return findFirstLeaf(parent.Parent)
	}
	normalizeRatios(parent)
	destroyIfEmpty(parent)

	newIdx := idx
	if newIdx >= len(parent.Children) {
		newIdx = len(parent.Children) - 1
	}
	if newIdx < 0 {
		return nil
	}
	return findFirstLeaf(parent.Children[newIdx])
}

func findFirstLeaf(n *Container) *Container {
	if n == nil {
		return nil
	}
	for len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n
}

func findLastLeaf(n *Container) *Container {
	if n == nil {
		return nil
	}
	for len(n.Children) > 0 {
		n = n.Children[len(n.Children)-1]
	}
	return n
}

// selectNext ascends from `from` until a parent's axis matches direction
// and a sibling exists in the
// requested sense, then descend into that sibling choosing the near child
// (the one closest to `from`) on each step, stopping at the first leaf. Returns nil if the walk reaches the
// root without finding one.
func selectNext(from *Container, d Direction) *Container {
	curr := from
	for curr.Parent != nil {
		parent := curr.Parent
		idx := indexOf(parent.Children, curr)
		if idx == -1 {
			return nil
		}
		if parent.Scheme == d.axisScheme() {
			if d.forward() && idx+1 < len(parent.Children) {
				return descendInto(parent.Children[idx+1], d)
			}
			if !d.forward() && idx-1 >= 0 {
				return descendInto(parent.Children[idx-1], d)
			}
		}
		curr = parent
	}
	return nil
}

// descendInto walks into a subtree choosing, at each internal node, the
// last child on the matching axis if d is a "negative" direction (left/up)
// or the first child otherwise, stopping at the first leaf.
func descendInto(n *Container, d Direction) *Container {
	for len(n.Children) > 0 {
		if d.forward() {
			n = n.Children[0]
		} else {
			n = n.Children[len(n.Children)-1]
		}
	}
	return n
}

// move relocates s one step in direction d, swapping with an adjacent
// sibling or transplanting across a subtree boundary. It returns the
// (possibly new) root of the tree the container now lives in, since
// wrapping the root produces a new root container.
func move(s *Container, d Direction) (newRoot *Container, moved bool) {
	target := selectNext(s, d)
	if target != nil {
		if target.Parent == s.Parent {
			swapSiblings(s, target)
			return rootOf(s), true
		}
		transplantAfter(s, target)
		return rootOf(target), true
	}

	if s.Parent != nil {
		// Not at the root; selectNext already exhausted the ascent, so there
		// is nowhere left to go.
		return rootOf(s), false
	}

	scheme := SchemeHorizontal
	if d == DirUp || d == DirDown {
		scheme = SchemeVertical
	}
	wrapper := wrapInNewParent(s, scheme)
	return wrapper, true
}

func rootOf(c *Container) *Container {
	for c.Parent != nil {
		c = c.Parent
	}
	return c
}

func swapSiblings(a, b *Container) {
	parent := a.Parent
	ia, ib := indexOf(parent.Children, a), indexOf(parent.Children, b)
	if ia == -1 || ib == -1 {
		return
	}
	parent.Children[ia], parent.Children[ib] = parent.Children[ib], parent.Children[ia]
	parent.SplitRatios[ia], parent.SplitRatios[ib] = parent.SplitRatios[ib], parent.SplitRatios[ia]
}

// transplantAfter removes s from its current parent and inserts it
// immediately after target in target's parent's child list.
func transplantAfter(s, target *Container) {
	oldParent := s.Parent
	if oldParent != nil {
		idx := indexOf(oldParent.Children, s)
		if idx != -1 {
			oldParent.Children = append(oldParent.Children[:idx], oldParent.Children[idx+1:]...)
			normalizeRatios(oldParent)
			destroyIfEmpty(oldParent)
		}
	}

	newParent := target.Parent
	idx := indexOf(newParent.Children, target)
	s.Parent = newParent
	s.Workspace = newParent.Workspace
	rest := append([]*Container{}, newParent.Children[idx+1:]...)
	newParent.Children = append(newParent.Children[:idx+1], s)
	newParent.Children = append(newParent.Children, rest...)
	equal := 1.0 / float64(len(newParent.Children))
	newParent.SplitRatios = make([]float64, len(newParent.Children))
	for i := range newParent.SplitRatios {
		newParent.SplitRatios[i] = equal
	}
}

// resize adjusts container's share of its parent's axis. pixels is the
// signed delta along the matching axis applied to container; positive
// grows it toward
// direction. Returns false (no-op) if the matching ancestor has a single
// child or any sibling would fall below the configured minimum tile size.
func resize(container *Container, d Direction, pixels int, cfg config.Config) bool {
	parent := container.Parent
	for parent != nil && parent.Scheme != d.axisScheme() {
		parent = parent.Parent
	}
	if parent == nil || len(parent.Children) < 2 {
		return false
	}

	// container may not be a direct child of `parent` (we ascended past
	// intermediate parents); resize always acts on the ancestor that is a
	// direct child of the matching parent.
	child := container
	for child.Parent != parent {
		child = child.Parent
		if child == nil {
			return false
		}
	}

	n := len(parent.Children)
	idx := indexOf(parent.Children, child)
	if idx == -1 {
		return false
	}

	axis := parent.Logical.W
	minSize := cfg.MinTileWidth
	if parent.Scheme == SchemeVertical {
		axis = parent.Logical.H
		minSize = cfg.MinTileHeight
	}

	currentPixels := make([]int, n)
	for i := range parent.Children {
		currentPixels[i] = int(math.Round(parent.SplitRatios[i] * float64(axis)))
	}

	perSibling := -pixels / (n - 1)
	newPixels := make([]int, n)
	for i := range newPixels {
		if i == idx {
			newPixels[i] = currentPixels[i] + pixels
		} else {
			newPixels[i] = currentPixels[i] + perSibling
		}
		if newPixels[i] < minSize {
			return false
		}
	}

	for i := range parent.SplitRatios {
		parent.SplitRatios[i] = float64(newPixels[i]) / float64(axis)
	}
	normalizeRatios(parent)
	return true
}
