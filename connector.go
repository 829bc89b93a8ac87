package gpalace

import (
	"net"

	"github.com/palacenet/gpalace/control"
)

type Connector struct {
	*Conn
	options ConnOptions
}

func NewConnector(options *ConnOptions) *Connector {
	c := &Connector{
		options: *options,
	}
	return c
}

func (c *Connector) Connect(address string) error {
	d := net.Dialer{Timeout: c.options.DialTimeout}
	if c.options.Ctrl != (control.CtrlOptions{}) {
		d.Control = control.GetControl(c.options.Ctrl)
	}
	conn, err := d.Dial("tcp", address)
	if err != nil {
		return err
	}
	c.Conn = NewConn(conn, &c.options)
	c.Run()
	return nil
}

func (c *Connector) Close() {
	if c.Conn != nil {
		c.Conn.Close()
	}
}
