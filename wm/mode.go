package wm

import "github.com/shardwm/shardwm/animation"

// Mode is a tagged variant of the compositor's interaction state, replacing
// a bare mode-int-plus-guards with a type that carries the data each mode
// actually needs.
type Mode struct {
	kind modeKind

	// Resizing
	lockedHandle animation.Handle

	// Dragging / Moving
	startCursor   Point
	startOrigin   Rect
	draggedHandle animation.Handle
}

type modeKind int

const (
	ModeNormal modeKind = iota
	ModeResizing
	ModeSelecting
	ModeDragging
	ModeMoving
)

func (m Mode) Kind() modeKind { return m.kind }

// Handle returns the animation handle locked (resizing) or dragged
// (dragging/moving) by this mode, the zero Handle otherwise.
func (m Mode) Handle() animation.Handle {
	if m.kind == ModeResizing {
		return m.lockedHandle
	}
	return m.draggedHandle
}

// StartCursor/StartOrigin return the pointer position and container rect
// recorded when a dragging/moving mode began.
func (m Mode) StartCursor() Point { return m.startCursor }
func (m Mode) StartOrigin() Rect  { return m.startOrigin }

func (m Mode) String() string {
	switch m.kind {
	case ModeResizing:
		return "resize"
	case ModeSelecting:
		return "selecting"
	case ModeDragging:
		return "dragging"
	case ModeMoving:
		return "moving"
	default:
		return "default"
	}
}

// NormalMode is the resting interaction state.
func NormalMode() Mode { return Mode{kind: ModeNormal} }

// ResizingMode locks the given handle against focus changes by pointer
// while resize-by-keyboard/mouse is in progress.
func ResizingMode(h animation.Handle) Mode {
	return Mode{kind: ModeResizing, lockedHandle: h}
}

// DraggingMode records the drag's starting cursor and container origin.
func DraggingMode(h animation.Handle, startCursor Point, startOrigin Rect) Mode {
	return Mode{kind: ModeDragging, draggedHandle: h, startCursor: startCursor, startOrigin: startOrigin}
}

// MovingMode is the lightweight modifier-only variant of dragging.
func MovingMode(h animation.Handle, startCursor Point, startOrigin Rect) Mode {
	return Mode{kind: ModeMoving, draggedHandle: h, startCursor: startCursor, startOrigin: startOrigin}
}

func SelectingMode() Mode { return Mode{kind: ModeSelecting} }
