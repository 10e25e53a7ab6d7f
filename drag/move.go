package drag

import (
	"github.com/shardwm/shardwm/command"
	"github.com/shardwm/shardwm/displayserver"
	"github.com/shardwm/shardwm/wm"
)

// MoveService is the lightweight sibling of Service: it repositions the
// focused floating container under a held modifier, without the
// tiled-tree swap behavior a full drag performs. Used for
// modifier+left-click window repositioning, as distinct from a
// border-edge resize drag.
type MoveService struct {
	cs       *wm.CompositorState
	ctrl     *command.Controller
	modifier Modifier

	target *wm.Container
}

func NewMoveService(cs *wm.CompositorState, ctrl *command.Controller, modifier Modifier) *MoveService {
	return &MoveService{cs: cs, ctrl: ctrl, modifier: modifier}
}

// ButtonDown starts tracking, same gating as Service.ButtonDown but always
// entering ModeMoving rather than ModeDragging.
func (m *MoveService) ButtonDown(ev displayserver.PointerEvent, focused *wm.Container) bool {
	m.cs.SetModifiers(uint32(ev.Modifiers))
	if ev.Modifiers&m.modifier == 0 || focused == nil || focused.Kind != wm.KindFloatingWindow {
		return false
	}
	cursor := wm.Point{X: float64(ev.X), Y: float64(ev.Y)}
	if !m.cs.SetMode(wm.MovingMode(focused.Handle, cursor, focused.Logical)) {
		return false
	}
	m.target = focused
	return true
}

// Motion translates the floating target by the pointer's delta from the
// drag's starting cursor.
func (m *MoveService) Motion(ev displayserver.PointerEvent) {
	if m.target == nil || m.cs.Mode().Kind() != wm.ModeMoving {
		return
	}
	mode := m.cs.Mode()
	start := mode.StartCursor()
	origin := mode.StartOrigin()
	dx := int(float64(ev.X) - start.X)
	dy := int(float64(ev.Y) - start.Y)
	m.ctrl.DragMoveTo(m.target, origin.X+dx, origin.Y+dy)
}

// ButtonUp ends the move and returns the compositor to normal mode.
func (m *MoveService) ButtonUp() {
	if m.target == nil {
		return
	}
	m.target = nil
	m.cs.SetMode(wm.NormalMode())
}

// Active reports whether a move is currently in progress.
func (m *MoveService) Active() bool {
	return m.target != nil
}
