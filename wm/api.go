package wm

import (
	"github.com/shardwm/shardwm/config"
	"github.com/shardwm/shardwm/displayserver"
)

// ToDisplayServer converts a logical Rect to the displayserver's own Rect
// type, for callers outside this package that need to hand a container's
// geometry to a WindowController.
func (r Rect) ToDisplayServer() displayserver.Rect { return r.toDisplayServer() }

// This file is the package's public tree-mutation surface: thin exported
// wrappers around the unexported algorithms in tree.go/scheme.go, so the
// command controller (a separate package, to keep the single serializing
// lock out of the tree/workspace model itself) can drive them without
// reaching into wm's internals directly.

// Move relocates s one step in direction d. Returns the (possibly new) root
// of s's tree.
func Move(s *Container, d Direction) (newRoot *Container, moved bool) {
	return move(s, d)
}

// Resize grows or shrinks container along d by pixels, subject to the
// minimum-tile-size guard.
func Resize(container *Container, d Direction, pixels int, cfg config.Config) bool {
	return resize(container, d, pixels, cfg)
}

// SelectNext walks the tree from `from` toward d, returning the next leaf in
// that direction or nil.
func SelectNext(from *Container, d Direction) *Container {
	return selectNext(from, d)
}

// Split adds newLeaf as a sibling of active under scheme, wrapping active in
// a new parent first if active's current parent doesn't already match.
func Split(active *Container, scheme Scheme, newLeaf *Container) *Container {
	return split(active, scheme, newLeaf)
}

// CloseLeaf removes leaf from the tree, cascading parent promotion/
// destruction, and returns a reasonable next-focus container.
func CloseLeaf(leaf *Container) *Container {
	return closeLeaf(leaf)
}

// ToggleLayoutScheme cycles target's effective scheme. cycleAll selects
// whether a single-child parent's scheme cycles too, or only multi-child
// wrapping applies.
func ToggleLayoutScheme(target *Container, cycleAll bool) *Container {
	return toggleLayout(target, cycleAll)
}

// SetLayoutScheme forces target's effective scheme to scheme.
func SetLayoutScheme(target *Container, scheme Scheme) *Container {
	return setLayout(target, scheme)
}

// ComputeLayout recomputes Logical/Visible rects for root's whole subtree.
func ComputeLayout(root *Container, gapPixels, borderWidth int) {
	computeLayout(root, gapPixels, borderWidth)
}

// FindFirstLeaf/FindLastLeaf descend to the extremes of n's subtree.
func FindFirstLeaf(n *Container) *Container { return findFirstLeaf(n) }
func FindLastLeaf(n *Container) *Container  { return findLastLeaf(n) }

// RootOf walks up to the root of c's tree.
func RootOf(c *Container) *Container { return rootOf(c) }

// DetachFromTiledTree/DetachFromFloatingRoots remove c from whichever
// structure currently holds it, cascading now-empty-parent cleanup for the
// tiled case. Exported for the command controller's floating/scratchpad
// toggles.
func DetachFromTiledTree(c *Container)     { detachFromTiledTree(c) }
func DetachFromFloatingRoots(c *Container) { detachFromFloatingRoots(c) }

// PlaceLeaf inserts leaf as a new equally-weighted child of parent.
func PlaceLeaf(parent, leaf *Container) { placeLeaf(parent, leaf) }

// WrapInNewParent wraps target in a fresh parent of the given scheme.
func WrapInNewParent(target *Container, scheme Scheme) *Container {
	return wrapInNewParent(target, scheme)
}
