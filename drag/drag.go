// Package drag turns a sequence of pointer events into an interactive
// move of the focused container (there is no resize path): a modifier-gated button-down
// starts tracking, motion events update the container's geometry live,
// and button-up commits the result and returns the compositor to normal
// mode.
package drag

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/shardwm/shardwm/command"
	"github.com/shardwm/shardwm/displayserver"
	"github.com/shardwm/shardwm/wm"
)

// Modifier is the key combination that must be held for a pointer button
// to start a drag instead of passing through to the focused client.
type Modifier = tcell.ModMask

// Service tracks one in-flight drag across button-down/motion/button-up.
// A drag only ever targets the currently focused container and is
// rejected if the compositor is not in normal mode when it starts,
// matching the mode-transition guard in wm.CompositorState.SetMode.
type Service struct {
	cs       *wm.CompositorState
	ctrl     *command.Controller
	window   displayserver.WindowController
	modifier Modifier

	target *wm.Container
}

// New wires a drag Service to the compositor state it reads mode/pointer
// from and the controller it mutates geometry through.
func New(cs *wm.CompositorState, ctrl *command.Controller, window displayserver.WindowController, modifier Modifier) *Service {
	return &Service{cs: cs, ctrl: ctrl, window: window, modifier: modifier}
}

// ButtonDown begins tracking a drag if ev carries the required modifier
// and a container is focused. Returns false (and starts nothing) if the
// modifier isn't held, nothing is focused, or the compositor rejects the
// mode transition (e.g. already dragging).
func (s *Service) ButtonDown(ev displayserver.PointerEvent, focused *wm.Container) bool {
	s.cs.SetModifiers(uint32(ev.Modifiers))
	if ev.Modifiers&s.modifier == 0 || focused == nil {
		return false
	}
	cursor := wm.Point{X: float64(ev.X), Y: float64(ev.Y)}
	if !s.cs.SetMode(wm.DraggingMode(focused.Handle, cursor, focused.Logical)) {
		return false
	}
	s.target = focused
	return true
}

// Motion applies the pointer delta to the dragged container, as an
// absolute move for a floating window or, for a tiled one, a single-step
// tree move toward the larger pointer delta (no overlap test is made). A
// no-op if no drag is in progress.
func (s *Service) Motion(ev displayserver.PointerEvent) {
	if s.target == nil || s.cs.Mode().Kind() != wm.ModeDragging {
		return
	}
	mode := s.cs.Mode()
	start := mode.StartCursor()
	origin := mode.StartOrigin()
	dx := int(float64(ev.X) - start.X)
	dy := int(float64(ev.Y) - start.Y)

	switch s.target.Kind {
	case wm.KindFloatingWindow:
		s.ctrl.DragMoveTo(s.target, origin.X+dx, origin.Y+dy)
	case wm.KindLeaf:
		s.dragTiled(ev)
	default:
	}
}

// dragTiled walks the direction the pointer has moved the furthest and
// swaps the dragged leaf one step that way; tiled containers don't carry
// a free-floating position, so a drag manifests as repeated single-step
// moves rather than continuous translation.
func (s *Service) dragTiled(ev displayserver.PointerEvent) {
	mode := s.cs.Mode()
	start := mode.StartCursor()
	dx := float64(ev.X) - start.X
	dy := float64(ev.Y) - start.Y

	var d wm.Direction
	switch {
	case dx*dx > dy*dy && dx > 0:
		d = wm.DirRight
	case dx*dx > dy*dy && dx < 0:
		d = wm.DirLeft
	case dy > 0:
		d = wm.DirDown
	default:
		d = wm.DirUp
	}
	if s.ctrl.Move(d) {
		s.cs.SetMode(wm.DraggingMode(s.target.Handle, wm.Point{X: float64(ev.X), Y: float64(ev.Y)}, s.target.Logical))
	}
}

// ButtonUp commits the drag and returns the compositor to normal mode. If
// the dragged container vanished mid-drag (closed by its client while
// being moved), the drag is simply abandoned and logged rather than
// retried against stale state.
func (s *Service) ButtonUp(ev displayserver.PointerEvent) {
	if s.target == nil {
		return
	}
	if s.target.Workspace == nil {
		log.Printf("drag: target container vanished mid-drag, abandoning")
	}
	s.target = nil
	s.cs.SetMode(wm.NormalMode())
}

// Active reports whether a drag is currently in progress.
func (s *Service) Active() bool {
	return s.target != nil
}
