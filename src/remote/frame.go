package remote

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const maxFrameSize = 64 << 10

var (
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrRemote wraps the error text a server replied with.
	ErrRemote = errors.New("remote")
)

const (
	replyOK byte = iota
	replyErr
)

// writeFrame writes payload behind a big-endian uint32 length.
func writeFrame(w io.Writer, payload []byte) error {
	if len(payload) > maxFrameSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrFrameTooLarge, len(payload), maxFrameSize)
	}
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readFrame returns io.EOF only when the stream ends between frames.
func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrFrameTooLarge, n, maxFrameSize)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	return payload, nil
}

// A reply payload is one status byte followed by the reply or error text.
func encodeReply(reply string, err error) []byte {
	if err != nil {
		return append([]byte{replyErr}, err.Error()...)
	}
	return append([]byte{replyOK}, reply...)
}

func decodeReply(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty reply", ErrRemote)
	}
	text := string(payload[1:])
	switch payload[0] {
	case replyOK:
		return text, nil
	case replyErr:
		return "", fmt.Errorf("%w: %s", ErrRemote, text)
	}
	return "", fmt.Errorf("%w: unknown reply status %d", ErrRemote, payload[0])
}
