package gpalace

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestConnPipe(t *testing.T) {
	a, b := net.Pipe()
	ca := NewConn(a, &ConnOptions{})
	cb := NewConn(b, &ConnOptions{})
	ca.Run()
	cb.Run()

	want := []byte("twelve bytes")
	if err := ca.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}
	got, err := cb.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("recv %q, want %q", got, want)
	}

	ca.Close()
	if !ca.IsClosed() {
		t.Errorf("closed conn reports open")
	}
	if err := ca.Send([]byte("x")); err != ErrConnClosed {
		t.Errorf("send after close: %v", err)
	}
	if _, err := cb.Recv(); err == nil {
		t.Errorf("recv after peer close succeeded")
	}
	cb.Close()
}

func TestConnRecvNonblock(t *testing.T) {
	a, b := net.Pipe()
	ca := NewConn(a, &ConnOptions{})
	cb := NewConn(b, &ConnOptions{})
	ca.Run()
	cb.Run()
	defer ca.Close()
	defer cb.Close()

	if _, err := cb.RecvNonblock(); err != ErrRecvChanEmpty {
		t.Errorf("empty recv: %v", err)
	}
	if err := ca.Send([]byte("ping")); err != nil {
		t.Fatalf("send: %v", err)
	}
	// the pump needs a moment to move the bytes across
	var got []byte
	var err error
	for i := 0; i < 100; i++ {
		got, err = cb.RecvNonblock()
		if err != ErrRecvChanEmpty {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if !bytes.Equal(got, []byte("ping")) {
		t.Errorf("recv %q", got)
	}
}
