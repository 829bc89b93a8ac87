package gpalace

import (
	"errors"

	"github.com/palacenet/gpalace/msg"
)

var ErrNotConnected = errors.New("gpalace: not connected")
var ErrNotLoggedIn = errors.New("gpalace: not logged in")
var ErrAlreadyLoggedIn = errors.New("gpalace: already logged in")
var ErrConnClosed = errors.New("gpalace: conn is closed")
var ErrSendChanFull = errors.New("gpalace: send chan full")
var ErrRecvChanEmpty = errors.New("gpalace: recv chan empty")
var ErrServerDown = errors.New("gpalace: server shutting down")

// Errors that do not warrant tearing the connection down or logging at
// disconnect level. State violations and per-frame decode failures
// belong here; framing and transport errors do not.
var noDisconnectErrMap = make(map[error]struct{})

func init() {
	noDisconnectErrMap[ErrNotConnected] = struct{}{}
	noDisconnectErrMap[ErrNotLoggedIn] = struct{}{}
	noDisconnectErrMap[ErrAlreadyLoggedIn] = struct{}{}
	noDisconnectErrMap[ErrSendChanFull] = struct{}{}
	noDisconnectErrMap[ErrRecvChanEmpty] = struct{}{}
	noDisconnectErrMap[msg.ErrShortPayload] = struct{}{}
}

func IsNoDisconnectError(err error) bool {
	if _, o := noDisconnectErrMap[err]; o {
		return true
	}
	for e := range noDisconnectErrMap {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func RegisterNoDisconnectError(err error) {
	noDisconnectErrMap[err] = struct{}{}
}
