// Package displayserver defines the boundary between the window-manager core
// and the underlying display-server runtime. Nothing in this package renders
// pixels, owns a surface, or talks to a protocol: it only names the events the
// core expects to receive and the calls the core makes back, so the rest of
// the module can depend on an interface instead of a concrete compositor.
package displayserver

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_window_controller.go -package=mocks

import (
	"github.com/gdamore/tcell/v2"
)

// WindowID identifies a single client window/surface as seen by the runtime.
type WindowID uint64

// WindowState mirrors the client window states the runtime can request or be
// asked to apply (maximized, minimized, fullscreen, restored, ...).
type WindowState int

const (
	WindowStateRestored WindowState = iota
	WindowStateMinimized
	WindowStateMaximized
	WindowStateFullscreen
	WindowStateHidden
)

// DepthLayer orders a window relative to its siblings on screen.
type DepthLayer int

const (
	DepthLayerBackground DepthLayer = iota
	DepthLayerApplication
	DepthLayerAlwaysOnTop
)

// Rect is an integer rectangle in global display coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// WindowCreated is delivered when the runtime has a new window ready to be
// placed; Area is the logical area the runtime pre-allocated for it.
type WindowCreated struct {
	ID      WindowID
	AppID   string
	Title   string
	PID     int
	Area    Rect
	IsShell bool // panels, menus, tooltips: forwarded rather than tiled
}

// WindowModified is delivered when a client requests a new top-left/size/state.
type WindowModified struct {
	ID             WindowID
	RequestedArea  *Rect
	RequestedState *WindowState
}

// WindowClosed is delivered when a client window has gone away.
type WindowClosed struct {
	ID WindowID
}

// OutputInfo describes a physical display in global coordinates.
type OutputInfo struct {
	Name string
	ID   uint32
	Area Rect
}

// ExclusiveZone is an application-reserved region (e.g. a panel) that tiled
// windows must not overlap.
type ExclusiveZone struct {
	Output uint32
	Area   Rect
}

// KeyEvent carries a keyboard event with its modifier mask. The Key/Mod types
// are tcell's: the runtime is a different process boundary than a terminal,
// but tcell's key/modifier vocabulary is a ready-made, complete encoding of
// "a key plus modifiers" that the core would otherwise have to reinvent.
type KeyEvent struct {
	Key       tcell.Key
	Rune      rune
	Modifiers tcell.ModMask
}

// PointerEvent carries absolute pointer position and button state.
type PointerEvent struct {
	X, Y      int
	Buttons   tcell.ButtonMask
	Modifiers tcell.ModMask
}

// TouchEvent carries a single touch point.
type TouchEvent struct {
	ID   int
	X, Y int
}

// WindowController is the set of calls the core makes back into the display
// server runtime. It is the seam mocked in command-controller tests.
type WindowController interface {
	AssignGeometry(id WindowID, area Rect) error
	SetWindowState(id WindowID, state WindowState) error
	SetDepthLayer(id WindowID, layer DepthLayer) error
	SetClip(id WindowID, clip Rect, enabled bool) error
	Raise(id WindowID) error
	SendToBack(id WindowID) error
	SelectActive(id WindowID) error
	RequestClose(id WindowID) error
	MoveCursor(x, y int) error
}
