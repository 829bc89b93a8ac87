package packet

import (
	"errors"
	"fmt"
)

var ErrPayloadTooLarge = errors.New("gpalace: declared payload length over limit")

// Framer accumulates a TCP byte stream and splits it into frames. The
// protocol has no resynchronization marker, so once a header is
// misread the stream is unrecoverable; an oversize declared length
// therefore poisons the framer permanently.
type Framer struct {
	buf        []byte
	maxPayload uint32
	err        error
}

// NewFramer creates a framer accepting payloads up to maxPayload
// bytes; 0 selects DefaultMaxPayloadLen.
func NewFramer(maxPayload uint32) *Framer {
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayloadLen
	}
	return &Framer{maxPayload: maxPayload}
}

// Push appends a received chunk. Any chunking is fine, including
// single bytes and many frames at once.
func (f *Framer) Push(p []byte) {
	if f.err != nil {
		return
	}
	f.buf = append(f.buf, p...)
}

// Next returns the next complete frame. It reports false when more
// bytes are needed. A non-nil error means the stream is poisoned and
// every later call returns the same error.
func (f *Framer) Next() (Frame, bool, error) {
	if f.err != nil {
		return Frame{}, false, f.err
	}
	tag, plen, refNum, ok := DecodeHeader(f.buf)
	if !ok {
		return Frame{}, false, nil
	}
	if plen > f.maxPayload {
		f.err = fmt.Errorf("%w: tag %v declares %d bytes, limit %d",
			ErrPayloadTooLarge, tag, plen, f.maxPayload)
		f.buf = nil
		return Frame{}, false, f.err
	}
	total := HeaderLen + int(plen)
	if len(f.buf) < total {
		return Frame{}, false, nil
	}

	payload := make([]byte, plen)
	copy(payload, f.buf[HeaderLen:total])

	n := copy(f.buf, f.buf[total:])
	f.buf = f.buf[:n]

	return Frame{Tag: tag, RefNum: refNum, Payload: payload}, true, nil
}

// Buffered reports how many bytes are waiting, including any partial
// frame.
func (f *Framer) Buffered() int {
	return len(f.buf)
}

// Reset drops all buffered bytes and clears a poisoned state. Used
// when a connection is torn down and the framer reused.
func (f *Framer) Reset() {
	f.buf = nil
	f.err = nil
}
