package msg

import (
	"github.com/palacenet/gpalace/packet"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAssignID
	KindServerInfo
	KindServerDown
	KindNavError
	KindVersion
	KindPing
	KindPong
	KindTalk
	KindXTalk
	KindWhisper
	KindXWhisper
	KindGMsg
	KindRMsg
	KindSMsg
	KindUserNew
	KindUserExit
	KindUserList
	KindUserMove
	KindUserName
	KindUserFace
	KindUserColor
	KindUserStatus
	KindUserProp
	KindRoomDesc
	KindRoomDescEnd
	KindRoomList
	KindSpotState
	KindDoorLock
	KindDoorUnlock
	KindDisplayURL
	KindFileNotFound
)

// Message is a decoded inbound frame.
type Message interface {
	Kind() Kind
}

// AssignID carries the user ID the server picked for this session.
type AssignID struct {
	UserID UserID
}

// ServerInfo is the server's identity block. Its receipt doubles as
// the logon acknowledgement. The caps fields are absent on older
// servers and read as zero.
type ServerInfo struct {
	Permissions  uint32
	Name         string
	Options      uint32
	UploadCaps   uint32
	DownloadCaps uint32
}

type ServerDown struct {
	Reason string
}

type NavError struct {
	Reason string
}

type Version struct {
	Version uint32
}

type Ping struct{}

type Pong struct{}

// Talk is room-scope chat. Inbound frames carry the speaker name
// resolved by the server.
type Talk struct {
	Speaker string
	Text    string
}

// XTalk is Talk with the text scrambled on the wire. Raw holds the
// untransformed bytes; the session applies its obfuscator.
type XTalk struct {
	Speaker string
	Raw     []byte
}

type Whisper struct {
	SenderID UserID
	Text     string
}

type XWhisper struct {
	SenderID UserID
	Raw      []byte
}

// GMsg is a server-wide announcement.
type GMsg struct {
	Text string
}

// RMsg is a room announcement.
type RMsg struct {
	Text string
}

// SMsg is a staff announcement.
type SMsg struct {
	Text string
}

type UserNew struct {
	User User
}

type UserExit struct {
	UserID UserID
}

type UserList struct {
	Users []User
}

type UserMove struct {
	UserID UserID
	H      int16
	V      int16
}

type UserName struct {
	UserID UserID
	Name   string
}

type UserFace struct {
	UserID UserID
	Face   int16
}

type UserColor struct {
	UserID UserID
	Color  int16
}

type UserStatus struct {
	UserID UserID
	Flags  uint16
}

type UserProp struct {
	UserID UserID
	Props  []PropSpec
}

type RoomDesc struct {
	Room Room
}

type RoomDescEnd struct{}

type RoomList struct {
	Rooms []RoomEntry
}

type SpotState struct {
	SpotID uint16
	State  int16
}

type DoorLock struct {
	SpotID uint16
}

type DoorUnlock struct {
	SpotID uint16
}

type DisplayURL struct {
	URL string
}

type FileNotFound struct{}

// Unknown preserves a frame whose tag has no table entry. The framer
// already skipped it by declared length, so the stream stays aligned.
type Unknown struct {
	Tag     packet.Tag
	Payload []byte
}

func (*AssignID) Kind() Kind     { return KindAssignID }
func (*ServerInfo) Kind() Kind   { return KindServerInfo }
func (*ServerDown) Kind() Kind   { return KindServerDown }
func (*NavError) Kind() Kind     { return KindNavError }
func (*Version) Kind() Kind      { return KindVersion }
func (*Ping) Kind() Kind         { return KindPing }
func (*Pong) Kind() Kind         { return KindPong }
func (*Talk) Kind() Kind         { return KindTalk }
func (*XTalk) Kind() Kind        { return KindXTalk }
func (*Whisper) Kind() Kind      { return KindWhisper }
func (*XWhisper) Kind() Kind     { return KindXWhisper }
func (*GMsg) Kind() Kind         { return KindGMsg }
func (*RMsg) Kind() Kind         { return KindRMsg }
func (*SMsg) Kind() Kind         { return KindSMsg }
func (*UserNew) Kind() Kind      { return KindUserNew }
func (*UserExit) Kind() Kind     { return KindUserExit }
func (*UserList) Kind() Kind     { return KindUserList }
func (*UserMove) Kind() Kind     { return KindUserMove }
func (*UserName) Kind() Kind     { return KindUserName }
func (*UserFace) Kind() Kind     { return KindUserFace }
func (*UserColor) Kind() Kind    { return KindUserColor }
func (*UserStatus) Kind() Kind   { return KindUserStatus }
func (*UserProp) Kind() Kind     { return KindUserProp }
func (*RoomDesc) Kind() Kind     { return KindRoomDesc }
func (*RoomDescEnd) Kind() Kind  { return KindRoomDescEnd }
func (*RoomList) Kind() Kind     { return KindRoomList }
func (*SpotState) Kind() Kind    { return KindSpotState }
func (*DoorLock) Kind() Kind     { return KindDoorLock }
func (*DoorUnlock) Kind() Kind   { return KindDoorUnlock }
func (*DisplayURL) Kind() Kind   { return KindDisplayURL }
func (*FileNotFound) Kind() Kind { return KindFileNotFound }
func (*Unknown) Kind() Kind      { return KindUnknown }
