//go:build !linux && !windows

package control

import (
	"syscall"
)

func GetControl(options CtrlOptions) func(network, address string, c syscall.RawConn) error {
	return nil
}
