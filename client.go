package gpalace

import (
	"sync/atomic"
	"time"

	"github.com/palacenet/gpalace/capture"
	"github.com/palacenet/gpalace/msg"
	"github.com/palacenet/gpalace/packet"
)

const gracefulCloseWait = 100 * time.Millisecond

// Client ties a connector, a session and an event dispatcher into a
// runnable Palace client. Register handlers, Connect, then drive the
// connection with Run; actions are safe from other goroutines.
type Client struct {
	conn       *Connector
	sess       *Session
	dispatcher *EventDispatcher
	options    ClientOptions
	closing    int32
}

func NewClient(options ...Option) *Client {
	c := &Client{
		dispatcher: NewEventDispatcher(),
	}
	for _, option := range options {
		option(&c.options.Options)
	}
	sessOpts := []Option{
		SetMaxPayloadLen(c.options.MaxPayloadLen),
		SetObfuscator(c.options.Obfuscator),
	}
	if hook := c.frameHook(); hook != nil {
		sessOpts = append(sessOpts, SetFrameHook(hook))
	}
	c.sess = NewSession(c.sendToConn, sessOpts...)
	return c
}

// frameHook folds the capture writer and any user hook into one.
func (c *Client) frameHook() FrameHook {
	user := c.options.frameHook
	cw := c.options.Capture
	if cw == nil {
		return user
	}
	return func(inbound bool, f packet.Frame) {
		dir := capture.DirOut
		if inbound {
			dir = capture.DirIn
		}
		if err := cw.Record(dir, f); err != nil {
			getLogger().Infof("capture: %v", err)
		}
		if user != nil {
			user(inbound, f)
		}
	}
}

func (c *Client) sendToConn(frame []byte) error {
	conn := c.conn
	if conn == nil || conn.Conn == nil {
		return ErrNotConnected
	}
	return conn.Send(frame)
}

// On registers an event handler. Register before Run; registration is
// not synchronized with dispatch.
func (c *Client) On(kind EventKind, handle func(Event)) {
	c.dispatcher.RegisterHandle(kind, handle)
}

func (c *Client) Connect(address string) error {
	atomic.StoreInt32(&c.closing, 0)
	c.dispatch(c.sess.BeginConnect())
	c.conn = NewConnector(&ConnOptions{
		ReadBuffSize:  c.options.ReadBuffSize,
		WriteBuffSize: c.options.WriteBuffSize,
		RecvChanLen:   c.options.RecvChanLen,
		SendChanLen:   c.options.SendChanLen,
		DialTimeout:   c.options.DialTimeout,
		Ctrl:          c.options.Ctrl,
	})
	err := c.conn.Connect(address)
	if err != nil {
		c.dispatch(c.sess.HandleDisconnected(err))
		return err
	}
	c.dispatch(c.sess.HandleConnected())
	return nil
}

// Run pumps the connection until it drops. Events are dispatched from
// this goroutine.
func (c *Client) Run() {
	if span := c.options.keepAliveSpan; span > 0 {
		stop := make(chan struct{})
		defer close(stop)
		go c.keepAlive(span, stop)
	}

	for {
		d, err := c.conn.Recv()
		if err != nil {
			if atomic.LoadInt32(&c.closing) > 0 || err == ErrConnClosed {
				err = nil
			}
			c.conn.Close()
			c.dispatch(c.sess.HandleDisconnected(err))
			return
		}
		c.dispatch(c.sess.ProcessIncoming(d))
		if c.sess.State() == StateDisconnected {
			c.conn.Close()
			return
		}
	}
}

func (c *Client) keepAlive(span time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(span)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.sess.Ping(); err != nil && !IsNoDisconnectError(err) {
				getLogger().Infof("keepalive: %v", err)
			}
		}
	}
}

func (c *Client) dispatch(events []Event) {
	for _, ev := range events {
		c.dispatcher.Dispatch(ev)
	}
}

// Close drops the transport. Run returns shortly after with a clean
// Disconnected event.
func (c *Client) Close() {
	atomic.StoreInt32(&c.closing, 1)
	if c.conn != nil {
		c.conn.Close()
	}
}

// Logoff says goodbye and closes the transport. The pause gives the
// write loop a beat to flush the goodbye frame.
func (c *Client) Logoff() error {
	err := c.sess.Logoff()
	if err == nil {
		time.Sleep(gracefulCloseWait)
	}
	c.Close()
	return err
}

// Session exposes the underlying state machine.
func (c *Client) Session() *Session {
	return c.sess
}

func (c *Client) Logon(userName, wizPassword string) error {
	return c.sess.Logon(userName, wizPassword)
}

func (c *Client) Talk(text string) error {
	return c.sess.Talk(text)
}

func (c *Client) XTalk(text string) error {
	return c.sess.XTalk(text)
}

func (c *Client) Whisper(target msg.UserID, text string) error {
	return c.sess.Whisper(target, text)
}

func (c *Client) XWhisper(target msg.UserID, text string) error {
	return c.sess.XWhisper(target, text)
}

func (c *Client) GlobalMsg(text string) error {
	return c.sess.GlobalMsg(text)
}

func (c *Client) Move(h, v int16) error {
	return c.sess.Move(h, v)
}

func (c *Client) SetName(name string) error {
	return c.sess.SetName(name)
}

func (c *Client) SetColor(color int16) error {
	return c.sess.SetColor(color)
}

func (c *Client) SetFace(face int16) error {
	return c.sess.SetFace(face)
}

func (c *Client) SetProps(props []msg.PropSpec) error {
	return c.sess.SetProps(props)
}

func (c *Client) GotoRoom(roomID int16) error {
	return c.sess.GotoRoom(roomID)
}

func (c *Client) RequestRoomList() error {
	return c.sess.RequestRoomList()
}

func (c *Client) SetSpotState(spotID uint16, state int16) error {
	return c.sess.SetSpotState(spotID, state)
}

func (c *Client) LockDoor(spotID uint16) error {
	return c.sess.LockDoor(spotID)
}

func (c *Client) UnlockDoor(spotID uint16) error {
	return c.sess.UnlockDoor(spotID)
}

func (c *Client) State() State {
	return c.sess.State()
}

func (c *Client) UserID() msg.UserID {
	return c.sess.UserID()
}

func (c *Client) ServerName() string {
	return c.sess.ServerName()
}

func (c *Client) Users() []msg.User {
	return c.sess.Users()
}

func (c *Client) Room() (msg.Room, bool) {
	return c.sess.Room()
}

func (c *Client) Rooms() []msg.RoomEntry {
	return c.sess.Rooms()
}
