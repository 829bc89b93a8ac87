package msg

import (
	"errors"
	"testing"

	"github.com/palacenet/gpalace/packet"
)

func frame(tag packet.Tag, payload []byte) packet.Frame {
	return packet.Frame{Tag: tag, Payload: payload}
}

func TestDecodeTalk(t *testing.T) {
	payload := []byte{0x03, 'B', 'o', 'b', 0x05, 'h', 'e', 'l', 'l', 'o'}
	m, err := Decode(frame(TagTalk, payload))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	talk, ok := m.(*Talk)
	if !ok {
		t.Fatalf("wrong type %T", m)
	}
	if talk.Speaker != "Bob" || talk.Text != "hello" {
		t.Errorf("talk %q %q", talk.Speaker, talk.Text)
	}
}

func TestDecodeShortPayload(t *testing.T) {
	// whisper needs sender id plus a length byte
	_, err := Decode(frame(TagWhisper, []byte{0x00, 0x00}))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("want DecodeError, got %v", err)
	}
	if !errors.Is(err, ErrShortPayload) {
		t.Errorf("DecodeError should unwrap to ErrShortPayload")
	}
	if de.Tag != TagWhisper {
		t.Errorf("error tag %v", de.Tag)
	}
}

func TestDecodeTruncatedString(t *testing.T) {
	// length byte claims five bytes, two present
	_, err := Decode(frame(TagGMsg, []byte{0x05, 'h', 'i'}))
	if err == nil {
		t.Fatalf("truncated string decoded without error")
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	m, err := Decode(frame(packet.MakeTag("what"), []byte{1, 2, 3}))
	if err != nil {
		t.Fatalf("unknown tag must not error: %v", err)
	}
	u, ok := m.(*Unknown)
	if !ok {
		t.Fatalf("wrong type %T", m)
	}
	if u.Tag != packet.MakeTag("what") || len(u.Payload) != 3 {
		t.Errorf("unknown %v %d", u.Tag, len(u.Payload))
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	w := packet.NewWriter()
	w.U32(42)
	w.Bytes([]byte{0xde, 0xad}) // newer servers may append fields
	m, err := Decode(frame(TagUserExit, w.Data()))
	if err != nil {
		t.Fatalf("trailing bytes errored: %v", err)
	}
	if m.(*UserExit).UserID != 42 {
		t.Errorf("user id %d", m.(*UserExit).UserID)
	}
}

func TestDecodeUserNew(t *testing.T) {
	w := packet.NewWriter()
	w.U32(7)
	w.I16(100) // h
	w.I16(-20) // v
	w.I16(3)   // room
	w.I16(12)  // face
	w.I16(5)   // color
	w.PString("Mara")
	m, err := Decode(frame(TagUserNew, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	u := m.(*UserNew).User
	if u.ID != 7 || u.H != 100 || u.V != -20 || u.RoomID != 3 || u.Face != 12 || u.Color != 5 || u.Name != "Mara" {
		t.Errorf("user %+v", u)
	}
}

func TestDecodeUserListCountOverflow(t *testing.T) {
	w := packet.NewWriter()
	w.U32(5) // claims five, carries two
	for i := 0; i < 2; i++ {
		w.U32(uint32(i + 1))
		w.I16(0)
		w.I16(0)
		w.I16(0)
		w.I16(0)
		w.I16(0)
		w.PString("u")
	}
	m, err := Decode(frame(TagUserList, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	ul := m.(*UserList)
	if len(ul.Users) != 2 {
		t.Fatalf("got %d users want 2", len(ul.Users))
	}
	if ul.Users[0].ID != 1 || ul.Users[1].ID != 2 {
		t.Errorf("ids %d %d", ul.Users[0].ID, ul.Users[1].ID)
	}
}

func TestDecodeRoomList(t *testing.T) {
	w := packet.NewWriter()
	w.U32(2)
	w.I16(86)
	w.PString("Gate")
	w.I16(3)
	w.I16(90)
	w.PString("Pool")
	w.I16(0)
	m, err := Decode(frame(TagRoomList, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	rl := m.(*RoomList)
	if len(rl.Rooms) != 2 {
		t.Fatalf("got %d rooms", len(rl.Rooms))
	}
	if rl.Rooms[0] != (RoomEntry{ID: 86, Name: "Gate", People: 3}) {
		t.Errorf("room[0] %+v", rl.Rooms[0])
	}
	if rl.Rooms[1] != (RoomEntry{ID: 90, Name: "Pool", People: 0}) {
		t.Errorf("room[1] %+v", rl.Rooms[1])
	}
}

func TestDecodeServerInfo(t *testing.T) {
	w := packet.NewWriter()
	w.U32(0x1f)
	w.Str63("Welcome Palace")
	w.U32(0x80)
	m, err := Decode(frame(TagServerInfo, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	si := m.(*ServerInfo)
	if si.Permissions != 0x1f || si.Name != "Welcome Palace" || si.Options != 0x80 {
		t.Errorf("server info %+v", si)
	}
	if si.UploadCaps != 0 || si.DownloadCaps != 0 {
		t.Errorf("absent caps should read zero: %+v", si)
	}

	// newer layout appends the caps
	w.U32(11)
	w.U32(22)
	m, err = Decode(frame(TagServerInfo, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	si = m.(*ServerInfo)
	if si.UploadCaps != 11 || si.DownloadCaps != 22 {
		t.Errorf("caps %d %d", si.UploadCaps, si.DownloadCaps)
	}
}

func TestDecodeServerDownOptionalReason(t *testing.T) {
	m, err := Decode(frame(TagServerDown, nil))
	if err != nil {
		t.Fatalf("bare down err: %v", err)
	}
	if m.(*ServerDown).Reason != "" {
		t.Errorf("reason %q", m.(*ServerDown).Reason)
	}

	w := packet.NewWriter()
	w.PString("maintenance")
	m, err = Decode(frame(TagServerDown, w.Data()))
	if err != nil {
		t.Fatalf("down with reason err: %v", err)
	}
	if m.(*ServerDown).Reason != "maintenance" {
		t.Errorf("reason %q", m.(*ServerDown).Reason)
	}
}

func TestDecodeUserProp(t *testing.T) {
	w := packet.NewWriter()
	w.U32(9)
	w.I16(3) // claims three, carries one
	w.I32(555)
	w.U32(0xcafe)
	m, err := Decode(frame(TagUserProp, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	up := m.(*UserProp)
	if up.UserID != 9 || len(up.Props) != 1 {
		t.Fatalf("prop msg %+v", up)
	}
	if up.Props[0] != (PropSpec{ID: 555, CRC: 0xcafe}) {
		t.Errorf("prop %+v", up.Props[0])
	}
}

func TestDecodeFixedSmall(t *testing.T) {
	cases := []struct {
		tag     packet.Tag
		payload []byte
		check   func(Message) bool
	}{
		{TagAssignID, []byte{0, 0, 1, 0}, func(m Message) bool { return m.(*AssignID).UserID == 256 }},
		{TagVersion, []byte{0, 0, 0, 9}, func(m Message) bool { return m.(*Version).Version == 9 }},
		{TagPing, nil, func(m Message) bool { _, ok := m.(*Ping); return ok }},
		{TagRoomDescEnd, nil, func(m Message) bool { _, ok := m.(*RoomDescEnd); return ok }},
		{TagFileNotFnd, nil, func(m Message) bool { _, ok := m.(*FileNotFound); return ok }},
		{TagUserMove, []byte{0, 0, 0, 4, 0, 50, 0xff, 0xce}, func(m Message) bool {
			um := m.(*UserMove)
			return um.UserID == 4 && um.H == 50 && um.V == -50
		}},
		{TagUserStatus, []byte{0, 0, 0, 4, 0, 3}, func(m Message) bool {
			us := m.(*UserStatus)
			return us.UserID == 4 && us.Flags == 3
		}},
		{TagSpotState, []byte{0, 2, 0, 1}, func(m Message) bool {
			ss := m.(*SpotState)
			return ss.SpotID == 2 && ss.State == 1
		}},
		{TagDoorLock, []byte{0, 7}, func(m Message) bool { return m.(*DoorLock).SpotID == 7 }},
		{TagDoorUnlock, []byte{0, 7}, func(m Message) bool { return m.(*DoorUnlock).SpotID == 7 }},
	}
	for _, c := range cases {
		m, err := Decode(frame(c.tag, c.payload))
		if err != nil {
			t.Errorf("%v: decode err %v", c.tag, err)
			continue
		}
		if !c.check(m) {
			t.Errorf("%v: bad decode %+v", c.tag, m)
		}
	}
}
