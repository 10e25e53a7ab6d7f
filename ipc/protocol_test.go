package ipc

import (
	"bytes"
	"testing"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"success":true}`)
	if err := WriteMessage(&buf, TypeRunCommand, payload); err != nil {
		t.Fatalf("WriteMessage returned error: %v", err)
	}

	gotType, gotPayload, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage returned error: %v", err)
	}
	if gotType != TypeRunCommand {
		t.Errorf("Type = %v, want %v", gotType, TypeRunCommand)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Errorf("payload = %q, want %q", gotPayload, payload)
	}
}

func TestWriteMessageEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, TypeGetTree, nil); err != nil {
		t.Fatalf("WriteMessage returned error: %v", err)
	}
	gotType, gotPayload, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage returned error: %v", err)
	}
	if gotType != TypeGetTree {
		t.Errorf("Type = %v, want %v", gotType, TypeGetTree)
	}
	if len(gotPayload) != 0 {
		t.Errorf("payload = %q, want empty", gotPayload)
	}
}

func TestReadMessageRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("bogus!")
	buf.Write(make([]byte, 8))
	if _, _, err := ReadMessage(&buf); err != ErrInvalidMagic {
		t.Errorf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestEventBitDistinguishesEventsFromReplies(t *testing.T) {
	if TypeSubscribe|EventBit == TypeSubscribe {
		t.Error("EventBit should change the type's value when OR'd in")
	}
}
