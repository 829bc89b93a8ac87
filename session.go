package gpalace

import (
	"sync"
	"sync/atomic"

	"github.com/palacenet/gpalace/crypt"
	"github.com/palacenet/gpalace/msg"
	"github.com/palacenet/gpalace/packet"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateLoggedIn:
		return "LoggedIn"
	}
	return "State(?)"
}

// Door states carried by hotspot records and lock messages.
const (
	spotStateUnlocked int16 = 0
	spotStateLocked   int16 = 1
)

// SendFunc delivers one encoded frame to the transport.
type SendFunc func([]byte) error

// FrameHook observes every frame the session consumes or emits.
type FrameHook func(inbound bool, f packet.Frame)

// Session is the protocol state machine. It owns no socket: the
// transport feeds raw chunks into ProcessIncoming and the send func
// carries frames back out. Feeding happens from one goroutine;
// actions and snapshot accessors may be called from any.
type Session struct {
	state  int32
	send   SendFunc
	framer *packet.Framer
	ob     crypt.Obfuscator
	hook   FrameHook
	roster *roster

	mu            sync.Mutex
	userID        msg.UserID
	serverName    string
	serverVersion uint32
	permissions   uint32
	room          msg.Room
	hasRoom       bool
	rooms         []msg.RoomEntry
}

func NewSession(send SendFunc, options ...Option) *Session {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	s := &Session{
		send:   send,
		framer: packet.NewFramer(opts.MaxPayloadLen),
		ob:     opts.Obfuscator,
		hook:   opts.frameHook,
		roster: newRoster(),
	}
	// The scrambled chat variants pass through whatever obfuscator was
	// configured; without one they are carried verbatim.
	if s.ob == nil {
		s.ob = crypt.Plain{}
	}
	return s
}

func (s *Session) State() State {
	return State(atomic.LoadInt32(&s.state))
}

func (s *Session) setState(to State) Event {
	from := State(atomic.SwapInt32(&s.state, int32(to)))
	return StateChanged{From: from, To: to}
}

// BeginConnect moves Disconnected to Connecting. Transition calls
// arriving in the wrong state are no-ops so the transport driver can
// stay simple.
func (s *Session) BeginConnect() []Event {
	if s.State() != StateDisconnected {
		return nil
	}
	return []Event{s.setState(StateConnecting)}
}

func (s *Session) HandleConnected() []Event {
	if s.State() != StateConnecting {
		return nil
	}
	s.framer.Reset()
	return []Event{s.setState(StateConnected)}
}

// HandleDisconnected tears the session down. All server-derived state
// is dropped in the same step, so a later reconnect starts clean.
func (s *Session) HandleDisconnected(reason error) []Event {
	if s.State() == StateDisconnected {
		return nil
	}
	ev := s.setState(StateDisconnected)
	s.reset()
	return []Event{ev, Disconnected{Err: reason}}
}

func (s *Session) reset() {
	s.roster.clear()
	s.framer.Reset()
	s.mu.Lock()
	s.userID = 0
	s.serverName = ""
	s.serverVersion = 0
	s.permissions = 0
	s.room = msg.Room{}
	s.hasRoom = false
	s.rooms = nil
	s.mu.Unlock()
}

// ProcessIncoming feeds raw bytes from the transport and returns the
// events they produced, in order. Chunk boundaries are arbitrary; the
// session reassembles frames itself. A fatal framing violation
// disconnects the session within the same call.
func (s *Session) ProcessIncoming(data []byte) []Event {
	st := s.State()
	if st != StateConnected && st != StateLoggedIn {
		return nil
	}
	s.framer.Push(data)
	var events []Event
	for {
		f, ok, err := s.framer.Next()
		if err != nil {
			events = append(events, ProtocolError{Err: err})
			return append(events, s.HandleDisconnected(err)...)
		}
		if !ok {
			return events
		}
		events = append(events, s.handleFrame(f)...)
		if s.State() == StateDisconnected {
			return events
		}
	}
}

func (s *Session) handleFrame(f packet.Frame) []Event {
	if s.hook != nil {
		s.hook(true, f)
	}
	m, err := msg.Decode(f)
	if err != nil {
		frameLogf("dropping frame %v: %v", f.Tag, err)
		return []Event{ProtocolError{Err: err}}
	}

	switch m := m.(type) {
	case *msg.Ping:
		if err := s.write(msg.Pong()); err != nil {
			getLogger().Infof("pong failed: %v", err)
		}
		return nil

	case *msg.Pong:
		return nil

	case *msg.AssignID:
		s.mu.Lock()
		s.userID = m.UserID
		s.mu.Unlock()
		// Handshake only; the info block completes the login.
		return []Event{IDAssigned{UserID: m.UserID}}

	case *msg.Version:
		s.mu.Lock()
		s.serverVersion = m.Version
		s.mu.Unlock()
		return nil

	case *msg.ServerInfo:
		s.mu.Lock()
		s.serverName = m.Name
		s.permissions = m.Permissions
		id := s.userID
		s.mu.Unlock()
		// The info block doubles as the logon acknowledgement.
		if s.State() != StateConnected {
			return nil
		}
		return []Event{
			s.setState(StateLoggedIn),
			LoggedOn{UserID: id, ServerName: m.Name, Permissions: m.Permissions},
		}

	case *msg.ServerDown:
		events := []Event{ServerDown{Reason: m.Reason}}
		return append(events, s.HandleDisconnected(ErrServerDown)...)

	case *msg.NavError:
		return []Event{NavError{Reason: m.Reason}}

	case *msg.Talk:
		return []Event{ChatReceived{Chat: ChatTalk, Speaker: m.Speaker, Text: m.Text}}

	case *msg.XTalk:
		text := packet.Latin1String(s.ob.Unscramble(m.Raw))
		return []Event{ChatReceived{Chat: ChatTalk, Speaker: m.Speaker, Text: text}}

	case *msg.Whisper:
		return []Event{ChatReceived{Chat: ChatWhisper, SpeakerID: m.SenderID, Speaker: s.userName(m.SenderID), Text: m.Text}}

	case *msg.XWhisper:
		text := packet.Latin1String(s.ob.Unscramble(m.Raw))
		return []Event{ChatReceived{Chat: ChatWhisper, SpeakerID: m.SenderID, Speaker: s.userName(m.SenderID), Text: text}}

	case *msg.GMsg:
		return []Event{ChatReceived{Chat: ChatGlobal, Text: m.Text}}

	case *msg.RMsg:
		return []Event{ChatReceived{Chat: ChatRoom, Text: m.Text}}

	case *msg.SMsg:
		return []Event{ChatReceived{Chat: ChatStaff, Text: m.Text}}

	case *msg.UserNew:
		s.roster.put(m.User)
		return []Event{UserJoined{User: m.User}}

	case *msg.UserExit:
		name := s.userName(m.UserID)
		s.roster.remove(m.UserID)
		return []Event{UserLeft{UserID: m.UserID, Name: name}}

	case *msg.UserList:
		s.roster.clear()
		for _, u := range m.Users {
			s.roster.put(u)
		}
		users := make([]msg.User, len(m.Users))
		copy(users, m.Users)
		return []Event{RosterReset{Users: users}}

	case *msg.UserMove:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.H, u.V = m.H, m.V
		})

	case *msg.UserName:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.Name = m.Name
		})

	case *msg.UserFace:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.Face = m.Face
		})

	case *msg.UserColor:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.Color = m.Color
		})

	case *msg.UserStatus:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.Flags = m.Flags
		})

	case *msg.UserProp:
		return s.updateUser(m.UserID, func(u *msg.User) {
			u.Props = m.Props
		})

	case *msg.RoomDesc:
		s.mu.Lock()
		entering := !s.hasRoom || s.room.ID != m.Room.ID
		s.room = m.Room
		s.hasRoom = true
		s.mu.Unlock()
		// The user list that follows repopulates the roster.
		s.roster.clear()
		if entering {
			return []Event{RoomEntered{Room: m.Room}}
		}
		return []Event{RoomUpdated{Room: m.Room}}

	case *msg.RoomDescEnd:
		return nil

	case *msg.RoomList:
		s.mu.Lock()
		s.rooms = m.Rooms
		s.mu.Unlock()
		return []Event{RoomListReceived{Rooms: m.Rooms}}

	case *msg.SpotState:
		s.setSpotState(m.SpotID, m.State)
		return []Event{SpotChanged{SpotID: m.SpotID, State: m.State, Locked: m.State == spotStateLocked}}

	case *msg.DoorLock:
		s.setSpotState(m.SpotID, spotStateLocked)
		return []Event{SpotChanged{SpotID: m.SpotID, State: spotStateLocked, Locked: true}}

	case *msg.DoorUnlock:
		s.setSpotState(m.SpotID, spotStateUnlocked)
		return []Event{SpotChanged{SpotID: m.SpotID, State: spotStateUnlocked, Locked: false}}

	case *msg.DisplayURL:
		return []Event{URLReceived{URL: m.URL}}

	case *msg.FileNotFound:
		return nil

	case *msg.Unknown:
		frameLogf("ignoring frame %v (%d bytes)", m.Tag, len(m.Payload))
		return nil
	}
	return nil
}

func (s *Session) userName(id msg.UserID) string {
	if u, o := s.roster.get(id); o {
		return u.Name
	}
	return ""
}

func (s *Session) updateUser(id msg.UserID, change func(*msg.User)) []Event {
	u, o := s.roster.get(id)
	if !o {
		return nil
	}
	change(&u)
	s.roster.put(u)
	return []Event{UserChanged{User: u}}
}

func (s *Session) setSpotState(spotID uint16, state int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRoom {
		return
	}
	for i := range s.room.Hotspots {
		if s.room.Hotspots[i].ID == int16(spotID) {
			s.room.Hotspots[i].State = state
			return
		}
	}
}

// write routes every outbound frame through the hook before handing it
// to the transport.
func (s *Session) write(frame []byte) error {
	if s.hook != nil {
		if tag, _, refNum, ok := packet.DecodeHeader(frame); ok {
			s.hook(false, packet.Frame{Tag: tag, RefNum: refNum, Payload: frame[packet.HeaderLen:]})
		}
	}
	return s.send(frame)
}

func (s *Session) requireLoggedIn() error {
	switch s.State() {
	case StateLoggedIn:
		return nil
	case StateConnected:
		return ErrNotLoggedIn
	}
	return ErrNotConnected
}

// Logon introduces this session to the server. The server answers with
// an ID assignment and its info block; the info block completes the
// login.
func (s *Session) Logon(userName, wizPassword string) error {
	switch s.State() {
	case StateConnected:
	case StateLoggedIn:
		return ErrAlreadyLoggedIn
	default:
		return ErrNotConnected
	}
	return s.write(msg.Logon(userName, wizPassword))
}

// Logoff sends the goodbye frame. Closing the transport is the
// caller's job; the server drops its side shortly after.
func (s *Session) Logoff() error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.Logoff())
}

func (s *Session) Talk(text string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.Talk(text))
}

func (s *Session) XTalk(text string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.XTalk(text, s.ob))
}

func (s *Session) Whisper(target msg.UserID, text string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.Whisper(target, text))
}

func (s *Session) XWhisper(target msg.UserID, text string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.XWhisper(target, text, s.ob))
}

// GlobalMsg sends a server-wide announcement; the server enforces who
// may actually broadcast.
func (s *Session) GlobalMsg(text string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.GlobalMsg(text))
}

func (s *Session) Move(h, v int16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.Move(h, v))
}

func (s *Session) SetName(name string) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.SetName(name))
}

func (s *Session) SetColor(color int16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.SetColor(color))
}

func (s *Session) SetFace(face int16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.SetFace(face))
}

func (s *Session) SetProps(props []msg.PropSpec) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.SetProps(props))
}

func (s *Session) GotoRoom(roomID int16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.GotoRoom(roomID))
}

func (s *Session) RequestRoomList() error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.RequestRoomList())
}

func (s *Session) SetSpotState(spotID uint16, state int16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.SetSpotState(spotID, state))
}

func (s *Session) LockDoor(spotID uint16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.LockDoor(spotID))
}

func (s *Session) UnlockDoor(spotID uint16) error {
	if err := s.requireLoggedIn(); err != nil {
		return err
	}
	return s.write(msg.UnlockDoor(spotID))
}

// Ping is allowed as soon as the transport is up so keepalive can run
// before login completes.
func (s *Session) Ping() error {
	st := s.State()
	if st != StateConnected && st != StateLoggedIn {
		return ErrNotConnected
	}
	return s.write(msg.Ping())
}

func (s *Session) UserID() msg.UserID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) ServerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverName
}

func (s *Session) ServerVersion() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverVersion
}

func (s *Session) Permissions() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permissions
}

// Users returns the room occupants sorted by ID.
func (s *Session) Users() []msg.User {
	return s.roster.snapshot()
}

func (s *Session) User(id msg.UserID) (msg.User, bool) {
	return s.roster.get(id)
}

func (s *Session) UserCount() int {
	return s.roster.count()
}

// Room returns a copy of the current room description, if any.
func (s *Session) Room() (msg.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRoom {
		return msg.Room{}, false
	}
	room := s.room
	room.Hotspots = append([]msg.Hotspot(nil), s.room.Hotspots...)
	room.Pictures = append([]msg.Picture(nil), s.room.Pictures...)
	room.LooseProps = append([]msg.LooseProp(nil), s.room.LooseProps...)
	return room, true
}

// Rooms returns the last received room directory.
func (s *Session) Rooms() []msg.RoomEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]msg.RoomEntry(nil), s.rooms...)
}
