package control

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func GetControl(options CtrlOptions) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) (err error) {
		e := c.Control(func(fd uintptr) {
			if options.KeepAlive > 0 {
				if err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, options.KeepAlive); err != nil {
					return
				}
			}
			if options.NoDelay > 0 {
				if err = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, options.NoDelay); err != nil {
					return
				}
			}
			if options.RecvBufSize > 0 {
				if err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, options.RecvBufSize); err != nil {
					return
				}
			}
			if options.SendBufSize > 0 {
				if err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, options.SendBufSize); err != nil {
					return
				}
			}
		})
		if e != nil {
			return e
		}
		return
	}
}
