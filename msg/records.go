package msg

import (
	"github.com/palacenet/gpalace/crypt"
)

// UserID is the server-assigned numeric user identity.
type UserID uint32

// Point is a screen coordinate, vertical first on the wire.
type Point struct {
	V int16
	H int16
}

// MaxProps is how many prop slots a user record holds on the wire.
const MaxProps = 9

// PropSpec identifies a prop asset by ID and checksum. A zero CRC
// means "don't care".
type PropSpec struct {
	ID  int32
	CRC uint32
}

// Verify checks asset data against the recorded checksum.
func (p PropSpec) Verify(data []byte) bool {
	return p.CRC == 0 || crypt.Checksum(data) == p.CRC
}

// User is one roster entry. The compact wire record carries everything
// through Name; Flags and Props arrive through separate status and
// prop messages.
type User struct {
	ID     UserID
	H      int16
	V      int16
	RoomID int16
	Face   int16
	Color  int16
	Name   string
	Flags  uint16
	Props  []PropSpec
}

// RoomEntry is one line of the room directory.
type RoomEntry struct {
	ID     int16
	Name   string
	People int16
}

// Room is a parsed room description. Offsets into the record's
// variable buffer are resolved at decode time; anything unresolvable
// is skipped and the rest of the record survives.
type Room struct {
	Flags        int32
	FacesID      int32
	ID           int16
	Name         string
	PictureName  string
	ArtistName   string
	Password     string
	PeopleCount  int16
	DrawCmdCount int16
	Hotspots     []Hotspot
	Pictures     []Picture
	LooseProps   []LooseProp
}

// Hotspot is an interactive region. Doors carry a destination room,
// bolts a lock state. Script text is kept verbatim and not
// interpreted.
type Hotspot struct {
	EventMask  int32
	Flags      int32
	SecureInfo int32
	RefCon     int32
	Loc        Point
	ID         int16
	Dest       int16
	Type       int16
	GroupID    int16
	State      int16
	Name       string
	ScriptText string
	Points     []Point
	States     []PicState
}

// PicState maps a hotspot state to the picture shown for it.
type PicState struct {
	PictID int16
	PicLoc Point
}

// Picture is one background picture layer.
type Picture struct {
	RefCon     int32
	ID         int16
	Name       string
	TransColor int16
}

// LooseProp is a prop dropped into the room.
type LooseProp struct {
	Spec   PropSpec
	Flags  int32
	RefCon int32
	Loc    Point
}
