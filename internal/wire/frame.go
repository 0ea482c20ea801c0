// Package wire implements the length-delimited framing every client
// connection is read and written through: a 4-byte little-endian
// unsigned length prefix followed by that many bytes of UTF-8 JSON.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameLen caps an incoming frame's declared length, guarding against
// a corrupt or hostile length prefix forcing an unbounded allocation.
const MaxFrameLen = 16 << 20 // 16 MiB

// ReadFrame blocks until a full frame has arrived on r and returns its
// payload. It returns io.EOF only if the connection closed cleanly
// before any bytes of a new frame arrived.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n > MaxFrameLen {
		return nil, fmt.Errorf("wire: frame length %d exceeds maximum %d", n, MaxFrameLen)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes payload to w prefixed with its little-endian u32
// length.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameLen {
		return fmt.Errorf("wire: payload length %d exceeds maximum %d", len(payload), MaxFrameLen)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
