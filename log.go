package gpalace

import (
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

type Logger interface {
	SetOutput(output io.Writer)
	WithStack(err interface{})
	Fatalf(format string, args ...interface{})
	Fatal(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
}

var gplog Logger

func getLogger() Logger {
	if gplog == nil {
		SetLogger(newDefaultLogger())
	}
	return gplog
}

func SetLogger(logger Logger) {
	gplog = logger
}

func SetLoggerOutput(output io.Writer) {
	gplog.SetOutput(output)
}

// Per-frame diagnostics (dropped frames, ignored tags) are off by
// default; a busy server makes them very chatty.
var logFrames int32

func SetFrameLogging(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&logFrames, v)
}

func frameLogf(format string, args ...interface{}) {
	if atomic.LoadInt32(&logFrames) > 0 {
		getLogger().Infof(format, args...)
	}
}

type defaultLog struct {
	log *log.Logger
}

func newDefaultLogger() *defaultLog {
	return &defaultLog{log: log.New(os.Stderr, "gpalace: ", log.LstdFlags|log.Lshortfile)}
}

func (l *defaultLog) SetOutput(output io.Writer) {
	l.log.SetOutput(output)
}

func (l *defaultLog) WithStack(err interface{}) {
	er := errors.Errorf("%v", err)
	l.log.Fatalf("\n%+v", er)
}

func (l *defaultLog) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(format, args...)
}

func (l *defaultLog) Fatal(args ...interface{}) {
	l.log.Fatal(args...)
}

func (l *defaultLog) Infof(format string, args ...interface{}) {
	l.log.Printf(format, args...)
}

func (l *defaultLog) Info(args ...interface{}) {
	l.log.Print(args...)
}
