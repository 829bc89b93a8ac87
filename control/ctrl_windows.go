package control

import (
	"syscall"

	"golang.org/x/sys/windows"
)

func GetControl(options CtrlOptions) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) (err error) {
		e := c.Control(func(fd uintptr) {
			if options.KeepAlive > 0 {
				if err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_KEEPALIVE, options.KeepAlive); err != nil {
					return
				}
			}
			if options.NoDelay > 0 {
				if err = windows.SetsockoptInt(windows.Handle(fd), windows.IPPROTO_TCP, windows.TCP_NODELAY, options.NoDelay); err != nil {
					return
				}
			}
			if options.RecvBufSize > 0 {
				if err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF, options.RecvBufSize); err != nil {
					return
				}
			}
			if options.SendBufSize > 0 {
				if err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_SNDBUF, options.SendBufSize); err != nil {
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
