package wm

// toggleLayout cycles target's effective scheme. A single-
// child parent (or a leaf being treated as if it were one, per the
// "behaves transparently for scheme queries" rule) mutates its scheme in
// place. A multi-child parent instead wraps the target child in a new
// parent of the next scheme in the cycle before setting that parent's
// scheme — this is the same operation toggle_tabbing/toggle_stacking use
// with a fixed target scheme instead of cycling.
func toggleLayout(target *Container, cycleAll bool) *Container {
	parent := target.Parent
	if parent != nil && len(parent.Children) == 1 {
		if cycleAll {
			parent.Scheme = nextScheme(parent.Scheme)
		}
		return parent
	}
	if parent == nil && target.Kind == KindParent {
		target.Scheme = nextScheme(target.Scheme)
		return target
	}
	return setLayout(target, nextScheme(schemeOf(target)))
}

func schemeOf(c *Container) Scheme {
	if c.Parent != nil {
		return c.Parent.Scheme
	}
	if c.Kind == KindParent {
		return c.Scheme
	}
	return SchemeHorizontal
}

// setLayout sets target's effective scheme to scheme: if target's parent
// has only target as a child (or target is itself a parent), it mutates in
// place; otherwise target is wrapped in a new single-scheme parent first.
func setLayout(target *Container, scheme Scheme) *Container {
	if target.Parent != nil && len(target.Parent.Children) == 1 {
		target.Parent.Scheme = scheme
		return target.Parent
	}
	if target.Kind == KindParent && target.Parent == nil {
		target.Scheme = scheme
		return target
	}
	return wrapInNewParent(target, scheme)
}

// ToggleFullscreen flips c's
// Fullscreen flag, recording/restoring its pre-fullscreen visible rect
// across the transition, and reports whether clipping should now be
// disabled. The caller (command controller) is responsible for telling the
// display server to apply the resulting depth layer and clip state — this
// function only updates the container's own bookkeeping, consistent with
// the tree staying on this side of the displayserver boundary.
func ToggleFullscreen(c *Container) (disableClip bool) {
	if !c.Fullscreen {
		c.preFullscreenVisible = c.Visible
		c.Fullscreen = true
		c.clipDisabled = true
		return true
	}
	c.Fullscreen = false
	c.clipDisabled = false
	c.Visible = c.preFullscreenVisible
	return false
}
