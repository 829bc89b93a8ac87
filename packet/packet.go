package packet

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderLen is the fixed size of the frame header: tag, payload
	// length and refNum, all big-endian uint32.
	HeaderLen = 12

	// DefaultMaxPayloadLen caps the declared payload length accepted
	// from the wire. A peer announcing more is treated as corrupt.
	DefaultMaxPayloadLen = 1 << 20
)

// Tag is a four ASCII character message identifier packed big-endian,
// 'talk' = 0x74616c6b.
type Tag uint32

func MakeTag(s string) Tag {
	var t Tag
	for i := 0; i < 4 && i < len(s); i++ {
		t |= Tag(s[i]) << (8 * (3 - i))
	}
	return t
}

func (t Tag) String() string {
	b := [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(t))
		}
	}
	return string(b[:])
}

// Frame is one decoded wire frame. Payload is owned by the receiver and
// never aliases the framer's internal buffer.
type Frame struct {
	Tag     Tag
	RefNum  uint32
	Payload []byte
}

// Encode builds a complete frame with refNum 0, the only value a client
// ever sends.
func Encode(tag Tag, payload []byte) []byte {
	return EncodeRef(tag, 0, payload)
}

func EncodeRef(tag Tag, refNum uint32, payload []byte) []byte {
	b := make([]byte, HeaderLen+len(payload))
	binary.BigEndian.PutUint32(b[0:4], uint32(tag))
	binary.BigEndian.PutUint32(b[4:8], uint32(len(payload)))
	binary.BigEndian.PutUint32(b[8:12], refNum)
	copy(b[HeaderLen:], payload)
	return b
}

// DecodeHeader reads a frame header from the start of b. It reports
// false when b holds fewer than HeaderLen bytes.
func DecodeHeader(b []byte) (tag Tag, payloadLen uint32, refNum uint32, ok bool) {
	if len(b) < HeaderLen {
		return 0, 0, 0, false
	}
	tag = Tag(binary.BigEndian.Uint32(b[0:4]))
	payloadLen = binary.BigEndian.Uint32(b[4:8])
	refNum = binary.BigEndian.Uint32(b[8:12])
	return tag, payloadLen, refNum, true
}
