package msg

import (
	"errors"
	"fmt"

	"github.com/palacenet/gpalace/packet"
)

var ErrShortPayload = errors.New("gpalace: payload too short for message")

// DecodeError reports a frame whose payload does not parse. It is a
// per-frame condition: the caller drops the frame and the stream keeps
// going, framing is unaffected.
type DecodeError struct {
	Tag packet.Tag
	Len int
	Min int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gpalace: decode %v: payload %d bytes, need at least %d", e.Tag, e.Len, e.Min)
}

func (e *DecodeError) Unwrap() error {
	return ErrShortPayload
}

type entry struct {
	min   int
	parse func(r *packet.Reader) Message
}

// Fixed-layout payloads parse through one-line table entries; only
// variable or nested payloads get named functions.
var table = make(map[packet.Tag]entry, 32)

func init() {
	table[TagAssignID] = entry{4, func(r *packet.Reader) Message { return &AssignID{UserID: UserID(r.U32())} }}
	table[TagServerInfo] = entry{72, parseServerInfo}
	table[TagServerDown] = entry{0, func(r *packet.Reader) Message { return &ServerDown{Reason: optPString(r)} }}
	table[TagNavError] = entry{0, func(r *packet.Reader) Message { return &NavError{Reason: optPString(r)} }}
	table[TagVersion] = entry{4, func(r *packet.Reader) Message { return &Version{Version: r.U32()} }}
	table[TagPing] = entry{0, func(r *packet.Reader) Message { return &Ping{} }}
	table[TagPong] = entry{0, func(r *packet.Reader) Message { return &Pong{} }}
	table[TagTalk] = entry{2, func(r *packet.Reader) Message { return &Talk{Speaker: r.PString(), Text: r.PString()} }}
	table[TagXTalk] = entry{2, func(r *packet.Reader) Message { return &XTalk{Speaker: r.PString(), Raw: pBytes(r)} }}
	table[TagWhisper] = entry{5, func(r *packet.Reader) Message { return &Whisper{SenderID: UserID(r.U32()), Text: r.PString()} }}
	table[TagXWhisper] = entry{5, func(r *packet.Reader) Message { return &XWhisper{SenderID: UserID(r.U32()), Raw: pBytes(r)} }}
	table[TagGMsg] = entry{1, func(r *packet.Reader) Message { return &GMsg{Text: r.PString()} }}
	table[TagRMsg] = entry{1, func(r *packet.Reader) Message { return &RMsg{Text: r.PString()} }}
	table[TagSMsg] = entry{1, func(r *packet.Reader) Message { return &SMsg{Text: r.PString()} }}
	table[TagUserNew] = entry{userRecordMin, func(r *packet.Reader) Message { return &UserNew{User: parseUser(r)} }}
	table[TagUserExit] = entry{4, func(r *packet.Reader) Message { return &UserExit{UserID: UserID(r.U32())} }}
	table[TagUserList] = entry{4, parseUserList}
	table[TagUserMove] = entry{8, func(r *packet.Reader) Message { return &UserMove{UserID: UserID(r.U32()), H: r.I16(), V: r.I16()} }}
	table[TagUserName] = entry{5, func(r *packet.Reader) Message { return &UserName{UserID: UserID(r.U32()), Name: r.PString()} }}
	table[TagUserFace] = entry{6, func(r *packet.Reader) Message { return &UserFace{UserID: UserID(r.U32()), Face: r.I16()} }}
	table[TagUserColor] = entry{6, func(r *packet.Reader) Message { return &UserColor{UserID: UserID(r.U32()), Color: r.I16()} }}
	table[TagUserStatus] = entry{6, func(r *packet.Reader) Message { return &UserStatus{UserID: UserID(r.U32()), Flags: r.U16()} }}
	table[TagUserProp] = entry{6, parseUserProp}
	table[TagRoomDesc] = entry{roomFixedLen, parseRoomDesc}
	table[TagRoomDescEnd] = entry{0, func(r *packet.Reader) Message { return &RoomDescEnd{} }}
	table[TagRoomList] = entry{4, parseRoomList}
	table[TagSpotState] = entry{4, func(r *packet.Reader) Message { return &SpotState{SpotID: r.U16(), State: r.I16()} }}
	table[TagDoorLock] = entry{2, func(r *packet.Reader) Message { return &DoorLock{SpotID: r.U16()} }}
	table[TagDoorUnlock] = entry{2, func(r *packet.Reader) Message { return &DoorUnlock{SpotID: r.U16()} }}
	table[TagDisplayURL] = entry{1, func(r *packet.Reader) Message { return &DisplayURL{URL: r.PString()} }}
	table[TagFileNotFnd] = entry{0, func(r *packet.Reader) Message { return &FileNotFound{} }}
}

// Decode turns a frame into a typed message. Unknown tags are not an
// error; they come back as *Unknown so the caller can log and move on.
func Decode(f packet.Frame) (Message, error) {
	e, ok := table[f.Tag]
	if !ok {
		return &Unknown{Tag: f.Tag, Payload: f.Payload}, nil
	}
	if len(f.Payload) < e.min {
		return nil, &DecodeError{Tag: f.Tag, Len: len(f.Payload), Min: e.min}
	}
	r := packet.NewReader(f.Payload)
	m := e.parse(r)
	if r.Overrun() {
		return nil, &DecodeError{Tag: f.Tag, Len: len(f.Payload), Min: e.min}
	}
	return m, nil
}

// optPString reads a Pascal string that old servers omit entirely.
func optPString(r *packet.Reader) string {
	if r.Remaining() == 0 {
		return ""
	}
	return r.PString()
}

// pBytes reads a length-prefixed field as raw bytes, for scrambled
// text that is not valid Latin-1 until untransformed.
func pBytes(r *packet.Reader) []byte {
	n := int(r.U8())
	p := r.Bytes(n)
	if p == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, p)
	return out
}

func parseServerInfo(r *packet.Reader) Message {
	m := &ServerInfo{
		Permissions: r.U32(),
		Name:        r.Str63(),
		Options:     r.U32(),
	}
	// caps fields are missing on older servers
	if r.Remaining() >= 4 {
		m.UploadCaps = r.U32()
	}
	if r.Remaining() >= 4 {
		m.DownloadCaps = r.U32()
	}
	return m
}

// compact record: 14 fixed bytes, then at least the name length byte
const userRecordMin = 15

func parseUser(r *packet.Reader) User {
	return User{
		ID:     UserID(r.U32()),
		H:      r.I16(),
		V:      r.I16(),
		RoomID: r.I16(),
		Face:   r.I16(),
		Color:  r.I16(),
		Name:   r.PString(),
	}
}

func parseUserList(r *packet.Reader) Message {
	count := int(r.U32())
	m := &UserList{}
	// a count beyond what the payload holds truncates to the records
	// actually present
	for i := 0; i < count && r.Remaining() >= userRecordMin; i++ {
		m.Users = append(m.Users, parseUser(r))
	}
	return m
}

func parseUserProp(r *packet.Reader) Message {
	m := &UserProp{UserID: UserID(r.U32())}
	count := int(r.I16())
	for i := 0; i < count && r.Remaining() >= 8; i++ {
		m.Props = append(m.Props, PropSpec{ID: r.I32(), CRC: r.U32()})
	}
	return m
}

func parseRoomList(r *packet.Reader) Message {
	count := int(r.U32())
	m := &RoomList{}
	for i := 0; i < count && r.Remaining() >= 5; i++ {
		m.Rooms = append(m.Rooms, RoomEntry{
			ID:     r.I16(),
			Name:   r.PString(),
			People: r.I16(),
		})
	}
	return m
}
