// Package command implements the single serializing entry point through
// which every user-facing action reaches the container tree, the
// workspace manager, and the scratchpad. Go has no recursive mutex, so the
// Controller locks once per public call and routes internally through
// unexported, already-locked implementations that call each other directly
// rather than re-entering Lock.
package command

import (
	"log"
	"sync"

	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/config"
	"github.com/shardwm/shardwm/displayserver"
	"github.com/shardwm/shardwm/wm"
)

// animEntry is what the controller keeps per animation handle so the
// containerApply callback (run from the animator's ticker goroutine) can
// turn a StepResult back into a window id and container, even after the
// container itself has been torn out of the tree by a close in flight.
type animEntry struct {
	container *wm.Container
	window    displayserver.WindowID
	closing   bool
}

// Controller serializes all tree/workspace/output mutations behind one
// lock, matching the single main-loop-thread model: everything that
// touches the tree goes through here, in order, one caller at a time.
type Controller struct {
	mu sync.Mutex

	cs      *wm.CompositorState
	wsm     *wm.WorkspaceManager
	scratch *wm.Scratchpad
	ctrl    displayserver.WindowController
	cfg     config.Config

	// windows maps a live window id to the container representing it, so a
	// display-server backend's WindowClosed event (which only carries the
	// id) can find what to tear down.
	windows map[displayserver.WindowID]*wm.Container
	// handles maps an animation handle to the window/container it drives;
	// this is the map CompositorState.applyContainerStep's doc comment
	// refers to, since handles are minted here alongside containers.
	handles map[animation.Handle]*animEntry

	quitRequested bool
	onQuit        func()
	onReload      func()
}

// New wires a Controller to the compositor state it will mutate, and
// registers it as the compositor's containerApply callback so every
// per-container StepResult the animator produces is applied here.
func New(cs *wm.CompositorState, wsm *wm.WorkspaceManager, scratch *wm.Scratchpad, ctrl displayserver.WindowController, cfg config.Config) *Controller {
	c := &Controller{
		cs:      cs,
		wsm:     wsm,
		scratch: scratch,
		ctrl:    ctrl,
		cfg:     cfg,
		windows: make(map[displayserver.WindowID]*wm.Container),
		handles: make(map[animation.Handle]*animEntry),
	}
	cs.SetContainerApply(c.applyAnimationStep)
	return c
}

// OnQuit/OnReload register the callbacks invoked by Quit/ReloadConfig. The
// main loop supplies these so the command package doesn't need to know how
// to shut down the process or re-read configuration.
func (c *Controller) OnQuit(fn func())     { c.mu.Lock(); defer c.mu.Unlock(); c.onQuit = fn }
func (c *Controller) OnReload(fn func())   { c.mu.Lock(); defer c.mu.Unlock(); c.onReload = fn }

// normalOnly reports whether the controller is in a state that accepts
// ordinary commands. Must be called with c.mu held.
func (c *Controller) normalOnly() bool {
	return c.cs.Mode().Kind() == wm.ModeNormal
}

// focusedLocked returns the currently focused container, or nil. Must be
// called with c.mu held.
func (c *Controller) focusedLocked() *wm.Container {
	return c.cs.Focused()
}

// fullscreenBlocksLocked reports whether f is fullscreen and therefore
// rejects layout/movement commands (close and workspace-switch are exempt
// and must not call this guard).
func (c *Controller) fullscreenBlocksLocked(f *wm.Container) bool {
	return f != nil && f.Fullscreen
}

// --- Layout ---

func (c *Controller) RequestHorizontal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLayoutLocked(wm.SchemeHorizontal)
}

func (c *Controller) RequestVertical() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLayoutLocked(wm.SchemeVertical)
}

func (c *Controller) ToggleTabbing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLayoutLocked(wm.SchemeTabbing)
}

func (c *Controller) ToggleStacking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLayoutLocked(wm.SchemeStacking)
}

func (c *Controller) setLayoutLocked(scheme wm.Scheme) bool {
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	wm.SetLayoutScheme(f, scheme)
	c.recomputeLocked(f)
	return true
}

// ToggleLayout cycles the focused container's effective scheme. cycleAll
// mirrors the single-child-parent behavior documented on
// wm.ToggleLayoutScheme.
func (c *Controller) ToggleLayout(cycleAll bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	wm.ToggleLayoutScheme(f, cycleAll)
	c.recomputeLocked(f)
	return true
}

// --- Geometry ---

func (c *Controller) Resize(d wm.Direction, pixels int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	if !wm.Resize(f, d, pixels, c.cfg) {
		return false
	}
	c.recomputeLocked(f)
	return true
}

// SetSize resizes the focused container to an absolute width/height in
// pixels, expressed as signed deltas against its current Logical rect
// along the two axes it borders.
func (c *Controller) SetSize(width, height int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	ok := true
	if width > 0 {
		dx := width - f.Logical.W
		if dx != 0 {
			ok = wm.Resize(f, wm.DirRight, dx, c.cfg) && ok
		}
	}
	if height > 0 {
		dy := height - f.Logical.H
		if dy != 0 {
			ok = wm.Resize(f, wm.DirDown, dy, c.cfg) && ok
		}
	}
	c.recomputeLocked(f)
	return ok
}

func (c *Controller) ToggleFullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil {
		return false
	}
	clipDisabled := wm.ToggleFullscreen(f)
	if c.ctrl != nil {
		id, ok := windowOf(f)
		if ok {
			if err := c.ctrl.SetClip(id, f.Visible.ToDisplayServer(), !clipDisabled); err != nil {
				log.Printf("command: set clip for fullscreen toggle failed: %v", err)
			}
			layer := displayserver.DepthLayerApplication
			if clipDisabled {
				layer = displayserver.DepthLayerAlwaysOnTop
			}
			if err := c.ctrl.SetDepthLayer(id, layer); err != nil {
				log.Printf("command: set depth layer for fullscreen toggle failed: %v", err)
			}
		}
	}
	return true
}

func (c *Controller) ToggleFloating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	switch f.Kind {
	case wm.KindLeaf:
		wm.DetachFromTiledTree(f)
		f.Kind = wm.KindFloatingWindow
		if f.Workspace != nil {
			f.Workspace.FloatingRoots = append(f.Workspace.FloatingRoots, f)
		}
		return true
	case wm.KindFloatingWindow:
		wm.DetachFromFloatingRoots(f)
		f.Kind = wm.KindLeaf
		if f.Workspace != nil && f.Workspace.TiledRoot != nil {
			wm.PlaceLeaf(f.Workspace.TiledRoot, f)
			c.recomputeLocked(f.Workspace.TiledRoot)
		}
		return true
	default:
		return false
	}
}

func (c *Controller) TogglePinned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil {
		return false
	}
	f.Pinned = !f.Pinned
	return true
}

// --- Movement ---

func (c *Controller) Move(d wm.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	newRoot, moved := wm.Move(f, d)
	if !moved {
		return false
	}
	c.recomputeLocked(newRoot)
	return true
}

// MoveBy nudges a floating/fullscreen-exempt container's logical position
// by (dx,dy) pixels; it is a no-op for tiled containers, whose position is
// derived from the tree rather than stored directly.
func (c *Controller) MoveBy(dx, dy int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || f.Kind != wm.KindFloatingWindow {
		return false
	}
	from := f.Visible
	f.Logical.X += dx
	f.Logical.Y += dy
	wm.ComputeLayout(f, c.cfg.InnerGapPixels, c.cfg.BorderWidth)
	c.applyGeometryLocked(f, from)
	return true
}

// MoveTo sets a floating container's absolute logical position.
func (c *Controller) MoveTo(x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.normalOnly() {
		return false
	}
	f := c.focusedLocked()
	if f == nil || f.Kind != wm.KindFloatingWindow {
		return false
	}
	from := f.Visible
	f.Logical.X = x
	f.Logical.Y = y
	wm.ComputeLayout(f, c.cfg.InnerGapPixels, c.cfg.BorderWidth)
	c.applyGeometryLocked(f, from)
	return true
}

// DragMoveTo sets a floating container's absolute logical position from
// within an in-progress drag or move, where the compositor mode is
// ModeDragging/ModeMoving rather than normal. Unlike MoveTo it does not
// gate on normalOnly, since the drag/move packages are themselves what put
// the compositor into that mode.
func (c *Controller) DragMoveTo(target *wm.Container, x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target == nil || target.Kind != wm.KindFloatingWindow {
		return false
	}
	from := target.Visible
	target.Logical.X = x
	target.Logical.Y = y
	wm.ComputeLayout(target, c.cfg.InnerGapPixels, c.cfg.BorderWidth)
	c.applyGeometryLocked(target, from)
	return true
}

// --- Selection ---

func (c *Controller) Select(d wm.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil {
		return false
	}
	next := wm.SelectNext(f, d)
	if next == nil {
		return false
	}
	c.cs.PushFocus(next)
	return true
}

func (c *Controller) SelectParent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || f.Parent == nil {
		return false
	}
	c.cs.PushFocus(f.Parent)
	return true
}

func (c *Controller) SelectChild() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || len(f.Children) == 0 {
		return false
	}
	c.cs.PushFocus(f.Children[0])
	return true
}

func (c *Controller) SelectFloating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || f.Workspace == nil || len(f.Workspace.FloatingRoots) == 0 {
		return false
	}
	c.cs.PushFocus(f.Workspace.FloatingRoots[0])
	return true
}

func (c *Controller) SelectTiling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || f.Workspace == nil || f.Workspace.TiledRoot == nil {
		return false
	}
	c.cs.PushFocus(wm.FindFirstLeaf(f.Workspace.TiledRoot))
	return true
}

func (c *Controller) SelectToggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || f.Workspace == nil {
		return false
	}
	if f.Kind == wm.KindFloatingWindow {
		if f.Workspace.TiledRoot == nil {
			return false
		}
		c.cs.PushFocus(wm.FindFirstLeaf(f.Workspace.TiledRoot))
		return true
	}
	if len(f.Workspace.FloatingRoots) == 0 {
		return false
	}
	c.cs.PushFocus(f.Workspace.FloatingRoots[0])
	return true
}

// --- Workspaces ---

func (c *Controller) SelectWorkspace(key wm.WorkspaceKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cs.FocusedOutput()
	return c.wsm.RequestWorkspace(out, key, false) != nil
}

func (c *Controller) NextWorkspace() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cs.FocusedOutput()
	if out == nil || out.Active == nil {
		return false
	}
	return c.wsm.RequestNext(out.Active) != nil
}

func (c *Controller) PrevWorkspace() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cs.FocusedOutput()
	if out == nil || out.Active == nil {
		return false
	}
	return c.wsm.RequestPrev(out.Active) != nil
}

func (c *Controller) BackAndForth() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cs.FocusedOutput()
	if out == nil {
		return false
	}
	return c.wsm.RequestBackAndForth(out) != nil
}

// MoveActiveToWorkspace grafts the focused container onto the target
// workspace: detach from the source tree, unfocus, request the
// destination (creating it if necessary), then graft onto its tiled root.
func (c *Controller) MoveActiveToWorkspace(key wm.WorkspaceKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveActiveToWorkspaceLocked(func() *wm.Workspace {
		out := c.cs.FocusedOutput()
		return c.wsm.RequestWorkspace(out, key, false)
	})
}

func (c *Controller) MoveActiveToWorkspaceNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveActiveToWorkspaceLocked(func() *wm.Workspace {
		out := c.cs.FocusedOutput()
		if out == nil || out.Active == nil {
			return nil
		}
		return c.wsm.RequestNext(out.Active)
	})
}

func (c *Controller) MoveActiveToWorkspacePrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveActiveToWorkspaceLocked(func() *wm.Workspace {
		out := c.cs.FocusedOutput()
		if out == nil || out.Active == nil {
			return nil
		}
		return c.wsm.RequestPrev(out.Active)
	})
}

func (c *Controller) MoveActiveToWorkspaceBackAndForth() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveActiveToWorkspaceLocked(func() *wm.Workspace {
		out := c.cs.FocusedOutput()
		if out == nil {
			return nil
		}
		return c.wsm.RequestBackAndForth(out)
	})
}

func (c *Controller) moveActiveToWorkspaceLocked(resolveDest func() *wm.Workspace) bool {
	f := c.focusedLocked()
	if f == nil || c.fullscreenBlocksLocked(f) {
		return false
	}
	srcWorkspace := f.Workspace
	if f.Kind == wm.KindLeaf {
		wm.DetachFromTiledTree(f)
	} else if f.Kind == wm.KindFloatingWindow {
		wm.DetachFromFloatingRoots(f)
	} else {
		return false
	}

	dest := resolveDest()
	if dest == nil || dest == srcWorkspace {
		return false
	}
	f.Workspace = dest
	if f.Kind == wm.KindLeaf {
		if dest.TiledRoot == nil {
			return false
		}
		wm.PlaceLeaf(dest.TiledRoot, f)
		c.recomputeLocked(dest.TiledRoot)
	} else {
		dest.FloatingRoots = append(dest.FloatingRoots, f)
	}
	return true
}

// --- Scratchpad ---

func (c *Controller) MoveToScratchpad() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil {
		return false
	}
	return c.scratch.MoveTo(f)
}

func (c *Controller) ShowScratchpad() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	out := c.cs.FocusedOutput()
	if out == nil {
		return false
	}
	if f != nil && c.scratch.ToggleShow(f, out, c.ctrl) {
		return true
	}
	c.scratch.ToggleShowAll(out, c.ctrl)
	return true
}

// --- Outputs ---

func (c *Controller) TrySelectOutputDirection(d wm.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.cs.FocusedOutput()
	if cur == nil || len(c.cs.Outputs) < 2 {
		return false
	}
	idx := -1
	for i, o := range c.cs.Outputs {
		if o == cur {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	var next *wm.Output
	switch d {
	case wm.DirRight, wm.DirDown:
		next = c.cs.Outputs[(idx+1)%len(c.cs.Outputs)]
	default:
		next = c.cs.Outputs[(idx-1+len(c.cs.Outputs))%len(c.cs.Outputs)]
	}
	if next == nil || next.Active == nil {
		return false
	}
	c.cs.SetPointer(wm.Point{X: float64(next.Area.X + next.Area.W/2), Y: float64(next.Area.Y + next.Area.H/2)})
	return true
}

// TryMoveActiveToOutput grafts the focused workspace's container onto an
// output chosen by name, failing quietly (logged) if no output matches.
func (c *Controller) TryMoveActiveToOutput(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.focusedLocked()
	if f == nil || f.Workspace == nil {
		return false
	}
	var dest *wm.Output
	for _, o := range c.cs.Outputs {
		if o.Name == name {
			dest = o
			break
		}
	}
	if dest == nil {
		logf("try_move_active_to_output: no output named %q", name)
		return false
	}
	wm.MoveWorkspaceToOutput(f.Workspace, dest, c.wsm)
	return true
}

// FocusedOutputAxis returns the focused output's extent along the axis d
// runs through, for translating a "ppt" percentage argument into pixels. 0
// if there is no focused output.
func (c *Controller) FocusedOutputAxis(d wm.Direction) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cs.FocusedOutput()
	if out == nil {
		return 0
	}
	switch d {
	case wm.DirLeft, wm.DirRight:
		return out.Area.W
	default:
		return out.Area.H
	}
}

// --- Display-server events ---
//
// These are the entry points a display-server backend calls as windows and
// outputs come and go; they are this window manager's counterpart to the
// policy layer that used to sit between the runtime and the tiling tree.
// Nothing else in this package discovers windows or outputs on its own.

// HandleWindowCreated allocates evt into the workspace active on whichever
// output the pointer currently sits over (the shell/floating/tiled
// placement decision itself lives in wm.Workspace.AllocateWindow; this just
// resolves the workspace/focus context AllocateWindow needs and drives
// layout + the open animation afterward).
func (c *Controller) HandleWindowCreated(evt displayserver.WindowCreated, floatingHint bool) *wm.Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.cs.FocusedOutput()
	if out == nil || out.Active == nil {
		logf("window created for %q but no active output/workspace", evt.AppID)
		return nil
	}
	ws := out.Active
	focused := c.focusedLocked()

	n := ws.AllocateWindow(evt, focused, floatingHint, c.cs.NextHandle)
	c.windows[evt.ID] = n

	switch n.Kind {
	case wm.KindLeaf:
		c.recomputeLocked(wm.RootOf(n))
	default: // KindShell, KindFloatingWindow
		wm.ComputeLayout(n, c.cfg.InnerGapPixels, c.cfg.BorderWidth)
		c.applyGeometryLocked(n, wm.Rect{})
	}

	c.cs.PushFocus(n)
	return n
}

// HandleWindowClosed tears evt's container out of whichever structure holds
// it, restores a reasonable focus target, and queues the close (shrink-out)
// animation on its handle.
func (c *Controller) HandleWindowClosed(evt displayserver.WindowClosed) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.windows[evt.ID]
	if !ok {
		return
	}
	delete(c.windows, evt.ID)

	switch n.Kind {
	case wm.KindLeaf:
		parent := n.Parent
		if next := wm.CloseLeaf(n); next != nil {
			c.cs.PushFocus(next)
		}
		if parent != nil {
			c.recomputeLocked(wm.RootOf(parent))
		}
	case wm.KindFloatingWindow:
		ws := n.Workspace
		wm.DetachFromFloatingRoots(n)
		if ws != nil && ws.TiledRoot != nil {
			c.cs.PushFocus(wm.FindFirstLeaf(ws.TiledRoot))
		}
	case wm.KindShell:
		n.Workspace = nil
	}

	c.queueCloseLocked(n, evt.ID)
}

// HandleOutputInfo registers a newly appeared output (or updates an
// existing one's geometry), adopts any orphaned workspaces left over from a
// prior disconnect, and ensures it has at least one workspace to receive
// windows.
func (c *Controller) HandleOutputInfo(info displayserver.OutputInfo) *wm.Output {
	c.mu.Lock()
	defer c.mu.Unlock()

	area := wm.Rect{X: info.Area.X, Y: info.Area.Y, W: info.Area.Width, H: info.Area.Height}
	for _, o := range c.cs.Outputs {
		if o.Name == info.Name {
			o.Area = area
			o.Defunct = false
			return o
		}
	}

	out := &wm.Output{Name: info.Name, ID: info.ID, Area: area}
	c.cs.Outputs = append(c.cs.Outputs, out)
	wm.AdoptOrphans(c.cs, out)
	if out.Active == nil {
		num := c.wsm.RequestFirstAvailable(out)
		c.wsm.RequestWorkspace(out, wm.WorkspaceKey{Num: &num}, false)
	}
	return out
}

// HandleOutputRemoved disconnects the output named name: its workspaces
// migrate to another live output, or become orphans if it was the last one.
func (c *Controller) HandleOutputRemoved(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.cs.Outputs {
		if o.Name == name {
			wm.RemoveOutput(c.cs, o)
			return
		}
	}
}

// --- Mode ---

func (c *Controller) TryToggleResizeMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.cs.Mode().Kind() {
	case wm.ModeNormal:
		f := c.focusedLocked()
		if f == nil {
			return false
		}
		return c.cs.SetMode(wm.ResizingMode(f.Handle))
	case wm.ModeResizing:
		return c.cs.SetMode(wm.NormalMode())
	default:
		return false
	}
}

// --- Lifecycle ---

// Quit invokes the registered shutdown callback exactly once.
func (c *Controller) Quit() {
	c.mu.Lock()
	already := c.quitRequested
	c.quitRequested = true
	cb := c.onQuit
	c.mu.Unlock()
	if already || cb == nil {
		return
	}
	cb()
}

// ReloadConfig invokes the registered reload callback, if any.
func (c *Controller) ReloadConfig() {
	c.mu.Lock()
	cb := c.onReload
	c.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// --- shared helpers ---

// recomputeLocked recomputes layout for root's whole tree and routes every
// descendant's resulting geometry change through the animator rather than
// assigning it to the window directly: AssignGeometry/SetClip and the
// render-data publish happen in applyAnimationStep, driven by the
// animator's StepResults, not here.
func (c *Controller) recomputeLocked(root *wm.Container) {
	r := wm.RootOf(root)
	prior := snapshotVisible(r)
	wm.ComputeLayout(r, c.cfg.InnerGapPixels, c.cfg.BorderWidth)
	c.applySubtreeLocked(r, prior)
}

// snapshotVisible records every descendant's Visible rect before a layout
// pass overwrites it, so applyGeometryLocked knows each container's
// animation starting point.
func snapshotVisible(n *wm.Container) map[*wm.Container]wm.Rect {
	out := make(map[*wm.Container]wm.Rect)
	var walk func(*wm.Container)
	walk = func(n *wm.Container) {
		if n == nil {
			return
		}
		out[n] = n.Visible
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

func (c *Controller) applySubtreeLocked(n *wm.Container, prior map[*wm.Container]wm.Rect) {
	if n == nil {
		return
	}
	c.applyGeometryLocked(n, prior[n])
	for _, child := range n.Children {
		c.applySubtreeLocked(child, prior)
	}
}

// applyGeometryLocked queues n's geometry change with the animator rather
// than assigning it synchronously. A from-rect of the zero value means n has
// never been laid out before (just allocated), so it is queued as an open
// (grow) animation instead of a move (slide); otherwise a no-op move is
// skipped outright so resting containers don't churn the animator queue.
func (c *Controller) applyGeometryLocked(n *wm.Container, from wm.Rect) {
	id, ok := windowOf(n)
	if !ok {
		return
	}
	c.registerHandleLocked(n, id)
	to := n.Visible

	if from == (wm.Rect{}) {
		c.queueOpenLocked(n, id)
		return
	}
	if from == to {
		return
	}

	def := c.cfg.Animations.WindowMove
	tween := animation.TweenFunc(def.Easing, def.Params)
	var res animation.StepResult
	if !def.Enabled {
		res = c.cs.Animator.AppendDisabled(n.Handle, to.ToAnimation())
	} else {
		res = c.cs.Animator.AppendSlide(n.Handle, from.ToAnimation(), to.ToAnimation(), n.CommittedSize.ToAnimation(), def.Duration, tween)
	}
	n.CommittedSize = to
	c.applyStepResultLocked(n.Handle, res)
}

// queueOpenLocked places n's window at its final geometry immediately
// (grow/shrink animations carry no position/size channel, only a clip area
// and transform) and queues a grow animation for the clip/transform the
// render publisher shows while it animates in.
func (c *Controller) queueOpenLocked(n *wm.Container, id displayserver.WindowID) {
	n.CommittedSize = n.Visible
	if c.ctrl != nil {
		if err := c.ctrl.AssignGeometry(id, n.Visible.ToDisplayServer()); err != nil {
			log.Printf("command: assign geometry failed: %v", err)
		}
	}

	def := c.cfg.Animations.WindowOpen
	tween := animation.TweenFunc(def.Easing, def.Params)
	var res animation.StepResult
	if !def.Enabled {
		res = c.cs.Animator.AppendDisabled(n.Handle, n.Visible.ToAnimation())
	} else {
		res = c.cs.Animator.AppendScale(n.Handle, animation.KindGrow, n.Visible.ToAnimation(), 0, 1, def.Duration, tween)
	}
	c.applyStepResultLocked(n.Handle, res)
}

// queueCloseLocked marks handle as closing (so its final StepResult tears
// down the render publisher entry and handle map instead of lingering) and
// queues the shrink-out animation. n's window has already been spliced out
// of the tree by the caller; only the visual teardown remains.
func (c *Controller) queueCloseLocked(n *wm.Container, id displayserver.WindowID) {
	entry, ok := c.handles[n.Handle]
	if !ok {
		entry = &animEntry{container: n, window: id}
		c.handles[n.Handle] = entry
	}
	entry.closing = true

	def := c.cfg.Animations.WindowClose
	tween := animation.TweenFunc(def.Easing, def.Params)
	var res animation.StepResult
	if !def.Enabled {
		res = c.cs.Animator.AppendDisabled(n.Handle, n.Visible.ToAnimation())
	} else {
		res = c.cs.Animator.AppendScale(n.Handle, animation.KindShrink, n.Visible.ToAnimation(), 1, 0, def.Duration, tween)
	}
	c.applyStepResultLocked(n.Handle, res)
}

func (c *Controller) registerHandleLocked(n *wm.Container, id displayserver.WindowID) {
	if n.Handle == animation.NoHandle {
		n.Handle = c.cs.NextHandle()
	}
	c.handles[n.Handle] = &animEntry{container: n, window: id}
}

// applyAnimationStep is CompositorState's registered containerApply
// callback (wm/compositor.go's applyContainerStep). It runs on the
// animator's ticker goroutine, outside any Controller lock, so it takes
// c.mu itself before touching the handle map or a container.
func (c *Controller) applyAnimationStep(r animation.StepResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyStepResultLocked(r.Handle, r)
}

// applyStepResultLocked is the one place that turns a StepResult into
// AssignGeometry/SetClip calls and a render-publisher update: position/size
// (when the step carries them) go to the window, the clip area and
// transform go to the container and the publisher, and clipping is
// disabled while the container is fullscreen or mid-drag.
func (c *Controller) applyStepResultLocked(h animation.Handle, r animation.StepResult) {
	entry, ok := c.handles[h]
	if !ok {
		return
	}

	clip := wm.RectFromAnimation(r.ClipArea)
	clipEnabled := entry.container == nil || (!entry.container.Fullscreen && !entry.container.Dragging)

	if entry.container != nil {
		if r.Position != nil && r.Size != nil {
			entry.container.Visible = wm.Rect{X: int(r.Position.X), Y: int(r.Position.Y), W: int(r.Size.W), H: int(r.Size.H)}
			if c.ctrl != nil {
				if err := c.ctrl.AssignGeometry(entry.window, entry.container.Visible.ToDisplayServer()); err != nil {
					log.Printf("command: assign geometry failed: %v", err)
				}
			}
		}
		if r.Transform != nil {
			entry.container.Transform = *r.Transform
		}
	}

	if c.ctrl != nil {
		if err := c.ctrl.SetClip(entry.window, clip.ToDisplayServer(), clipEnabled); err != nil {
			log.Printf("command: set clip failed: %v", err)
		}
	}

	transform := animation.Identity()
	if r.Transform != nil {
		transform = *r.Transform
	}
	focused := entry.container != nil && entry.container.Focused
	c.cs.Publisher.Publish(wm.RenderDatum{
		Window:      uint64(entry.window),
		Transform:   transform,
		Clip:        clip,
		ClipEnabled: clipEnabled,
		Focused:     focused,
	})

	if r.IsComplete && entry.closing {
		c.cs.Publisher.Remove(uint64(entry.window))
		delete(c.handles, h)
	}
}

func windowOf(n *wm.Container) (displayserver.WindowID, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case wm.KindLeaf, wm.KindFloatingWindow:
		return n.Window, n.Window != 0
	case wm.KindShell:
		return n.ShellWindow, n.ShellWindow != 0
	default:
		return 0, false
	}
}

func logf(format string, args ...interface{}) {
	log.Printf("command: "+format, args...)
}
