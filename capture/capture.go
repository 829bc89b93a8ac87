// Package capture journals protocol frames to a snappy-compressed
// msgpack stream. A journal replays a session for offline debugging
// without the server.
package capture

import (
	"io"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/palacenet/gpalace/packet"
)

type Dir int8

const (
	DirIn Dir = iota
	DirOut
)

func (d Dir) String() string {
	if d == DirOut {
		return "out"
	}
	return "in"
}

// Envelope is one captured frame with its journal bookkeeping.
type Envelope struct {
	SessionID string
	Seq       uint64
	When      int64
	Dir       Dir
	Tag       uint32
	RefNum    uint32
	Payload   []byte
}

// Time returns the capture instant.
func (e *Envelope) Time() time.Time {
	return time.Unix(0, e.When)
}

// Writer appends envelopes to a journal. Safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	sw  *snappy.Writer
	enc *msgpack.Encoder
	id  string
	seq uint64
}

func NewWriter(w io.Writer) *Writer {
	sw := snappy.NewBufferedWriter(w)
	return &Writer{
		sw:  sw,
		enc: msgpack.NewEncoder(sw),
		id:  uuid.New().String(),
	}
}

// SessionID identifies this journal; every envelope carries it.
func (w *Writer) SessionID() string {
	return w.id
}

func (w *Writer) Record(dir Dir, f packet.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	return w.enc.Encode(&Envelope{
		SessionID: w.id,
		Seq:       w.seq,
		When:      time.Now().UnixNano(),
		Dir:       dir,
		Tag:       uint32(f.Tag),
		RefNum:    f.RefNum,
		Payload:   f.Payload,
	})
}

// Flush pushes buffered compressed data to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sw.Flush()
}

// Close flushes and closes the compressed stream, not the underlying
// writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sw.Close()
}

// Reader walks a journal in capture order.
type Reader struct {
	dec *msgpack.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(snappy.NewReader(r))}
}

// Next returns the next envelope, or io.EOF after the last one.
func (r *Reader) Next() (*Envelope, error) {
	var e Envelope
	if err := r.dec.Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Frame rebuilds the wire frame held by an envelope.
func (e *Envelope) Frame() packet.Frame {
	return packet.Frame{Tag: packet.Tag(e.Tag), RefNum: e.RefNum, Payload: e.Payload}
}
