package packet

import (
	"encoding/binary"
)

// Reader walks a payload with an explicit cursor. Every read is
// big-endian and bounds-checked: reading past the end yields the zero
// value, sets the overrun flag and exhausts the reader. Decoders check
// Overrun once at the end instead of checking every field.
type Reader struct {
	b       []byte
	off     int
	overrun bool
}

func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

func (r *Reader) take(n int) []byte {
	if r.overrun || n < 0 || r.off+n > len(r.b) {
		r.overrun = true
		r.off = len(r.b)
		return nil
	}
	p := r.b[r.off : r.off+n]
	r.off += n
	return p
}

func (r *Reader) U8() uint8 {
	p := r.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

func (r *Reader) U16() uint16 {
	p := r.take(2)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint16(p)
}

func (r *Reader) U32() uint32 {
	p := r.take(4)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint32(p)
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// Bytes returns the next n bytes without copying. The slice aliases the
// reader's buffer; callers that retain it must copy.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

func (r *Reader) Skip(n int) {
	r.take(n)
}

// PString reads a length byte then that many bytes of Latin-1 text.
// A length running past the end fails soft with an empty string.
func (r *Reader) PString() string {
	n := int(r.U8())
	return Latin1String(r.take(n))
}

// Str63 reads a fixed 64-byte field: length byte then 63 bytes of
// storage, text in the first length bytes.
func (r *Reader) Str63() string {
	n := int(r.U8())
	p := r.take(63)
	if p == nil {
		return ""
	}
	if n > 63 {
		n = 63
	}
	return Latin1String(p[:n])
}

func (r *Reader) Remaining() int {
	return len(r.b) - r.off
}

func (r *Reader) Overrun() bool {
	return r.overrun
}

// Writer appends big-endian fields to a growable buffer.
type Writer struct {
	b []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) U8(v uint8) {
	w.b = append(w.b, v)
}

func (w *Writer) U16(v uint16) {
	w.b = append(w.b, byte(v>>8), byte(v))
}

func (w *Writer) U32(v uint32) {
	w.b = append(w.b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) Bytes(p []byte) {
	w.b = append(w.b, p...)
}

// PString writes a length byte then the Latin-1 bytes of s, truncated
// at 255 bytes.
func (w *Writer) PString(s string) {
	p := Latin1Bytes(s)
	if len(p) > 255 {
		p = p[:255]
	}
	w.U8(uint8(len(p)))
	w.Bytes(p)
}

// Str63 writes the fixed 64-byte string field, truncating at 63 bytes
// and zero-padding the rest.
func (w *Writer) Str63(s string) {
	p := Latin1Bytes(s)
	if len(p) > 63 {
		p = p[:63]
	}
	w.U8(uint8(len(p)))
	w.Bytes(p)
	for i := len(p); i < 63; i++ {
		w.U8(0)
	}
}

func (w *Writer) Len() int {
	return len(w.b)
}

func (w *Writer) Data() []byte {
	return w.b
}

// Latin1String converts raw wire bytes to a string, one rune per byte.
func Latin1String(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	rs := make([]rune, len(p))
	for i, c := range p {
		rs[i] = rune(c)
	}
	return string(rs)
}

// Latin1Bytes converts a string to wire bytes. Runes outside Latin-1
// degrade to '?'.
func Latin1Bytes(s string) []byte {
	p := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		p = append(p, byte(r))
	}
	return p
}
