package wire

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"PlaceBlock":"..."}`)
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q want %q", got, payload)
	}
}

func TestReadFrameMultipleInSequence(t *testing.T) {
	var buf bytes.Buffer
	WriteFrame(&buf, []byte("one"))
	WriteFrame(&buf, []byte("two"))

	first, err := ReadFrame(&buf)
	if err != nil || string(first) != "one" {
		t.Fatalf("first frame: got %q, %v", first, err)
	}
	second, err := ReadFrame(&buf)
	if err != nil || string(second) != "two" {
		t.Fatalf("second frame: got %q, %v", second, err)
	}
}

func TestReadFrameOnEmptyReturnsEOF(t *testing.T) {
	var buf bytes.Buffer
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Fatalf("expected io.EOF on empty reader, got %v", err)
	}
}

func TestReadFrameTruncatedPayloadIsUnexpectedEOF(t *testing.T) {
	var buf bytes.Buffer
	WriteFrame(&buf, []byte("hello"))
	truncated := buf.Bytes()[:6] // length prefix + 2 of 5 payload bytes
	if _, err := ReadFrame(bytes.NewReader(truncated)); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})
	if _, err := ReadFrame(&buf); err == nil {
		t.Fatal("expected an error for an oversized declared frame length")
	}
}
