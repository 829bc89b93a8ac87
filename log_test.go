package gpalace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/palacenet/gpalace/packet"
)

func TestFrameLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(newDefaultLogger())
	SetLoggerOutput(&buf)
	defer SetLogger(newDefaultLogger())

	s, _ := newTestSession()
	loginTestSession(s)
	buf.Reset()

	// quiet by default; unknown tags arrive constantly from newer servers
	s.ProcessIncoming(packet.Encode(packet.MakeTag("zzzz"), nil))
	if buf.Len() != 0 {
		t.Errorf("frame diagnostics on by default: %q", buf.String())
	}

	SetFrameLogging(true)
	defer SetFrameLogging(false)
	s.ProcessIncoming(packet.Encode(packet.MakeTag("zzzz"), nil))
	if !strings.Contains(buf.String(), "zzzz") {
		t.Errorf("frame log missing tag: %q", buf.String())
	}
}
