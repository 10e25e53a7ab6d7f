// Package ipc implements the i3-compatible socket protocol a client uses
// to send command strings and subscribe to events: frame format, command
// string parser, and execution against a command.Controller.
package ipc

import (
	"encoding/binary"
	"errors"
	"io"
)

const magic = "i3-ipc"

// Type identifies a message's payload kind. Event types have the high bit
// set; a reply to a request carries the same type code as the request.
type Type uint32

const (
	TypeRunCommand     Type = 0
	TypeGetWorkspaces  Type = 1
	TypeSubscribe      Type = 2
	TypeGetOutputs     Type = 3
	TypeGetTree        Type = 4
	TypeGetBindingState Type = 12
)

// EventBit is OR'd onto a subscribed event's reply type.
const EventBit Type = 1 << 31

var (
	ErrInvalidMagic = errors.New("ipc: invalid magic")
	ErrShortRead    = errors.New("ipc: short read")
)

// WriteMessage writes one frame: magic, 4-byte LE length, 4-byte LE type,
// then the UTF-8 payload.
func WriteMessage(w io.Writer, t Type, payload []byte) error {
	header := make([]byte, len(magic)+8)
	copy(header, magic)
	binary.LittleEndian.PutUint32(header[len(magic):], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[len(magic)+4:], uint32(t))
	if _, err := w.Write(header); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadMessage reads one frame from r, validating the magic prefix.
func ReadMessage(r io.Reader) (Type, []byte, error) {
	header := make([]byte, len(magic)+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}
	if string(header[:len(magic)]) != magic {
		return 0, nil, ErrInvalidMagic
	}
	length := binary.LittleEndian.Uint32(header[len(magic):])
	t := Type(binary.LittleEndian.Uint32(header[len(magic)+4:]))

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return t, nil, ErrShortRead
			}
			return t, nil, err
		}
	}
	return t, payload, nil
}
