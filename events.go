package gpalace

import (
	"github.com/palacenet/gpalace/msg"
)

type EventKind int

const (
	EventStateChanged EventKind = iota
	EventIDAssigned
	EventLoggedOn
	EventRoomEntered
	EventRoomUpdated
	EventUserJoined
	EventUserLeft
	EventUserChanged
	EventRosterReset
	EventRoomListReceived
	EventChatReceived
	EventURLReceived
	EventSpotChanged
	EventServerDown
	EventNavError
	EventProtocolError
	EventDisconnected
)

var eventKindStrings = map[EventKind]string{
	EventStateChanged:     "StateChanged",
	EventIDAssigned:       "IDAssigned",
	EventLoggedOn:         "LoggedOn",
	EventRoomEntered:      "RoomEntered",
	EventRoomUpdated:      "RoomUpdated",
	EventUserJoined:       "UserJoined",
	EventUserLeft:         "UserLeft",
	EventUserChanged:      "UserChanged",
	EventRosterReset:      "RosterReset",
	EventRoomListReceived: "RoomListReceived",
	EventChatReceived:     "ChatReceived",
	EventURLReceived:      "URLReceived",
	EventSpotChanged:      "SpotChanged",
	EventServerDown:       "ServerDown",
	EventNavError:         "NavError",
	EventProtocolError:    "ProtocolError",
	EventDisconnected:     "Disconnected",
}

func (k EventKind) String() string {
	if s, o := eventKindStrings[k]; o {
		return s
	}
	return "EventKind(?)"
}

// Event is one observable consequence of feeding the session. Concrete
// types below form a closed set; switch on the type or on EventKind.
type Event interface {
	EventKind() EventKind
}

type ChatKind int

const (
	ChatTalk ChatKind = iota
	ChatWhisper
	ChatGlobal
	ChatRoom
	ChatStaff
)

// StateChanged reports a lifecycle transition.
type StateChanged struct {
	From State
	To   State
}

// IDAssigned is the server's opening handshake: the user ID it picked
// for this session. Login is not complete until the info block arrives.
type IDAssigned struct {
	UserID msg.UserID
}

// LoggedOn fires once per connection when the server acknowledges the
// logon. UserID is the server-assigned identity for this session.
type LoggedOn struct {
	UserID      msg.UserID
	ServerName  string
	Permissions uint32
}

// RoomEntered fires when a room description for a new room arrives.
// The roster has been cleared; a user list normally follows.
type RoomEntered struct {
	Room msg.Room
}

// RoomUpdated fires when the current room is re-described in place.
type RoomUpdated struct {
	Room msg.Room
}

type UserJoined struct {
	User msg.User
}

// UserLeft carries the last known name of the departed user, or an
// empty string if the user was never in the roster.
type UserLeft struct {
	UserID msg.UserID
	Name   string
}

type UserChanged struct {
	User msg.User
}

// RosterReset replaces the whole roster with the given occupants.
type RosterReset struct {
	Users []msg.User
}

type RoomListReceived struct {
	Rooms []msg.RoomEntry
}

// ChatReceived is any chat line. SpeakerID is zero for chat kinds that
// identify the speaker by name only.
type ChatReceived struct {
	Chat      ChatKind
	SpeakerID msg.UserID
	Speaker   string
	Text      string
}

type URLReceived struct {
	URL string
}

// SpotChanged reports a hotspot state or lock change in the current room.
type SpotChanged struct {
	SpotID uint16
	State  int16
	Locked bool
}

// ServerDown means the server announced shutdown. A Disconnected event
// follows in the same batch.
type ServerDown struct {
	Reason string
}

type NavError struct {
	Reason string
}

// ProtocolError reports a dropped frame or a fatal framing violation.
// The session disconnects right after only if the error was fatal.
type ProtocolError struct {
	Err error
}

// Disconnected closes out a connection. Err is nil on a clean local
// close.
type Disconnected struct {
	Err error
}

func (StateChanged) EventKind() EventKind     { return EventStateChanged }
func (IDAssigned) EventKind() EventKind       { return EventIDAssigned }
func (LoggedOn) EventKind() EventKind         { return EventLoggedOn }
func (RoomEntered) EventKind() EventKind      { return EventRoomEntered }
func (RoomUpdated) EventKind() EventKind      { return EventRoomUpdated }
func (UserJoined) EventKind() EventKind       { return EventUserJoined }
func (UserLeft) EventKind() EventKind         { return EventUserLeft }
func (UserChanged) EventKind() EventKind      { return EventUserChanged }
func (RosterReset) EventKind() EventKind      { return EventRosterReset }
func (RoomListReceived) EventKind() EventKind { return EventRoomListReceived }
func (ChatReceived) EventKind() EventKind     { return EventChatReceived }
func (URLReceived) EventKind() EventKind      { return EventURLReceived }
func (SpotChanged) EventKind() EventKind      { return EventSpotChanged }
func (ServerDown) EventKind() EventKind       { return EventServerDown }
func (NavError) EventKind() EventKind         { return EventNavError }
func (ProtocolError) EventKind() EventKind    { return EventProtocolError }
func (Disconnected) EventKind() EventKind     { return EventDisconnected }
