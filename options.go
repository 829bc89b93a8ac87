package gpalace

import (
	"time"

	"github.com/palacenet/gpalace/capture"
	"github.com/palacenet/gpalace/control"
	"github.com/palacenet/gpalace/crypt"
)

type Options struct {
	keepAliveSpan time.Duration
	frameHook     FrameHook
	MaxPayloadLen uint32
	Obfuscator    crypt.Obfuscator
	Capture       *capture.Writer
	DialTimeout   time.Duration
	SendChanLen   int
	RecvChanLen   int
	WriteBuffSize int
	ReadBuffSize  int
	Ctrl          control.CtrlOptions
}

type Option func(*Options)

func (options *Options) SetKeepAliveSpan(span time.Duration) {
	options.keepAliveSpan = span
}

func (options *Options) SetFrameHook(hook FrameHook) {
	options.frameHook = hook
}

func (options *Options) SetMaxPayloadLen(limit uint32) {
	options.MaxPayloadLen = limit
}

func (options *Options) SetObfuscator(o crypt.Obfuscator) {
	options.Obfuscator = o
}

func (options *Options) SetCapture(w *capture.Writer) {
	options.Capture = w
}

func (options *Options) SetDialTimeout(timeout time.Duration) {
	options.DialTimeout = timeout
}

func (options *Options) SetSendChanLen(chanLen int) {
	options.SendChanLen = chanLen
}

func (options *Options) SetRecvChanLen(chanLen int) {
	options.RecvChanLen = chanLen
}

func (options *Options) SetWriteBuffSize(size int) {
	options.WriteBuffSize = size
}

func (options *Options) SetReadBuffSize(size int) {
	options.ReadBuffSize = size
}

func (options *Options) SetCtrl(ctrl control.CtrlOptions) {
	options.Ctrl = ctrl
}

func SetKeepAliveSpan(span time.Duration) Option {
	return func(options *Options) {
		options.SetKeepAliveSpan(span)
	}
}

func SetFrameHook(hook FrameHook) Option {
	return func(options *Options) {
		options.SetFrameHook(hook)
	}
}

func SetMaxPayloadLen(limit uint32) Option {
	return func(options *Options) {
		options.SetMaxPayloadLen(limit)
	}
}

func SetObfuscator(o crypt.Obfuscator) Option {
	return func(options *Options) {
		options.SetObfuscator(o)
	}
}

func SetCapture(w *capture.Writer) Option {
	return func(options *Options) {
		options.SetCapture(w)
	}
}

func SetDialTimeout(timeout time.Duration) Option {
	return func(options *Options) {
		options.SetDialTimeout(timeout)
	}
}

func SetSendChanLen(chanLen int) Option {
	return func(options *Options) {
		options.SetSendChanLen(chanLen)
	}
}

func SetRecvChanLen(chanLen int) Option {
	return func(options *Options) {
		options.SetRecvChanLen(chanLen)
	}
}

func SetWriteBuffSize(size int) Option {
	return func(options *Options) {
		options.SetWriteBuffSize(size)
	}
}

func SetReadBuffSize(size int) Option {
	return func(options *Options) {
		options.SetReadBuffSize(size)
	}
}

func SetCtrl(ctrl control.CtrlOptions) Option {
	return func(options *Options) {
		options.SetCtrl(ctrl)
	}
}

type ClientOptions struct {
	Options
}
