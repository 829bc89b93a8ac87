package gpalace

import (
	"bufio"
	"net"
	"sync/atomic"
	"time"

	"github.com/palacenet/gpalace/control"
)

const (
	DefaultConnRecvChanLen = 100
	DefaultConnSendChanLen = 100

	readChunkLen = 4096
)

// Conn pumps bytes between a socket and a pair of channels. It does no
// framing: inbound chunks are handed over as read, outbound buffers
// are written as given. One reader and one writer goroutine.
type Conn struct {
	conn    net.Conn
	options ConnOptions
	writer  *bufio.Writer
	reader  *bufio.Reader
	recvCh  chan []byte
	sendCh  chan []byte
	closeCh chan struct{}
	closed  int32
	errCh   chan error
}

type ConnOptions struct {
	ReadBuffSize  int
	WriteBuffSize int
	RecvChanLen   int
	SendChanLen   int
	DialTimeout   time.Duration
	Ctrl          control.CtrlOptions
}

func NewConn(conn net.Conn, options *ConnOptions) *Conn {
	c := &Conn{
		conn:    conn,
		options: *options,
		closeCh: make(chan struct{}),
		errCh:   make(chan error, 1),
	}

	if c.options.WriteBuffSize <= 0 {
		c.writer = bufio.NewWriter(conn)
	} else {
		c.writer = bufio.NewWriterSize(conn, c.options.WriteBuffSize)
	}

	if c.options.ReadBuffSize <= 0 {
		c.reader = bufio.NewReader(conn)
	} else {
		c.reader = bufio.NewReaderSize(conn, c.options.ReadBuffSize)
	}

	if c.options.RecvChanLen <= 0 {
		c.options.RecvChanLen = DefaultConnRecvChanLen
	}
	c.recvCh = make(chan []byte, c.options.RecvChanLen)

	if c.options.SendChanLen <= 0 {
		c.options.SendChanLen = DefaultConnSendChanLen
	}
	c.sendCh = make(chan []byte, c.options.SendChanLen)

	return c
}

func (c *Conn) Run() {
	go c.readLoop()
	go c.writeLoop()
}

func (c *Conn) readLoop() {
	var err error
	var closed bool
	buf := make([]byte, readChunkLen)
	for err == nil && !closed {
		var n int
		n, err = c.reader.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case <-c.closeCh:
				closed = true
			case c.recvCh <- chunk:
			}
		}
	}
	close(c.recvCh)
	if err != nil {
		c.errCh <- err
	}
	close(c.errCh)
}

func (c *Conn) writeLoop() {
	var err error
	for d := range c.sendCh {
		var closed bool
		closed, err = c._write(d)
		if err != nil || closed {
			break
		}
		err = c.writer.Flush()
		if err != nil {
			break
		}
	}
}

func (c *Conn) _write(data []byte) (closed bool, err error) {
	var n int
	for n < len(data) {
		select {
		case <-c.closeCh:
			closed = true
			return
		default:
		}

		var nn int
		nn, err = c.writer.Write(data[n:])
		if err != nil {
			return
		}
		n += nn
	}
	return
}

func (c *Conn) Close() {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return
	}
	c.conn.Close()
	close(c.sendCh)
	close(c.closeCh)
}

func (c *Conn) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) > 0
}

func (c *Conn) Send(data []byte) error {
	if atomic.LoadInt32(&c.closed) > 0 {
		return ErrConnClosed
	}
	select {
	case err, o := <-c.errCh:
		if !o {
			return ErrConnClosed
		}
		return err
	default:
		c.sendCh <- data
	}
	return nil
}

func (c *Conn) SendNonblock(data []byte) error {
	if atomic.LoadInt32(&c.closed) > 0 {
		return ErrConnClosed
	}
	err := c._recvErr()
	if err != nil {
		return err
	}
	select {
	case c.sendCh <- data:
	default:
		return ErrSendChanFull
	}
	return nil
}

// Recv blocks for the next inbound chunk. Buffered chunks are drained
// before a read error is reported, so a server goodbye that landed just
// ahead of the close still reaches the caller.
func (c *Conn) Recv() ([]byte, error) {
	if atomic.LoadInt32(&c.closed) > 0 {
		return nil, ErrConnClosed
	}
	select {
	case data, o := <-c.recvCh:
		if o {
			return data, nil
		}
	default:
	}
	err := c._recvErr()
	if err != nil {
		return nil, err
	}

	data, o := <-c.recvCh
	if !o {
		return nil, ErrConnClosed
	}
	return data, nil
}

func (c *Conn) RecvNonblock() ([]byte, error) {
	if atomic.LoadInt32(&c.closed) > 0 {
		return nil, ErrConnClosed
	}
	select {
	case data, o := <-c.recvCh:
		if o {
			return data, nil
		}
	default:
	}
	err := c._recvErr()
	if err != nil {
		return nil, err
	}

	select {
	case data, o := <-c.recvCh:
		if !o {
			return nil, ErrConnClosed
		}
		return data, nil
	default:
	}
	return nil, ErrRecvChanEmpty
}

func (c *Conn) _recvErr() error {
	select {
	case err, o := <-c.errCh:
		if !o {
			return ErrConnClosed
		}
		return err
	default:
	}
	return nil
}

func (c *Conn) SetRecvDeadline(deadline time.Time) {
	c.conn.SetReadDeadline(deadline)
}

func (c *Conn) SetSendDeadline(deadline time.Time) {
	c.conn.SetWriteDeadline(deadline)
}
