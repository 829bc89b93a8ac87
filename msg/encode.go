package msg

import (
	"github.com/palacenet/gpalace/crypt"
	"github.com/palacenet/gpalace/packet"
)

// Builders return complete frames, header included, ready for the
// wire. Client frames always carry refNum 0.

// Logon requests entry under the given name. The registration crc and
// counter are sent as zero; servers of interest accept that. The caps
// fields advertise no transfer capabilities.
func Logon(userName, wizPassword string) []byte {
	w := packet.NewWriter()
	w.U32(0) // registration crc
	w.U32(0) // registration counter
	w.PString(userName)
	w.PString(wizPassword)
	w.U32(0) // upload caps
	w.U32(0) // download caps
	return packet.Encode(TagLogon, w.Data())
}

func Logoff() []byte {
	return packet.Encode(TagLogoff, nil)
}

func Talk(text string) []byte {
	w := packet.NewWriter()
	w.PString(text)
	return packet.Encode(TagTalk, w.Data())
}

// XTalk scrambles the text through the given obfuscator before
// framing. The scrambled field is still length-prefixed like a Pascal
// string but holds raw bytes.
func XTalk(text string, o crypt.Obfuscator) []byte {
	w := packet.NewWriter()
	putScrambled(w, text, o)
	return packet.Encode(TagXTalk, w.Data())
}

func Whisper(target UserID, text string) []byte {
	w := packet.NewWriter()
	w.U32(uint32(target))
	w.PString(text)
	return packet.Encode(TagWhisper, w.Data())
}

func XWhisper(target UserID, text string, o crypt.Obfuscator) []byte {
	w := packet.NewWriter()
	w.U32(uint32(target))
	putScrambled(w, text, o)
	return packet.Encode(TagXWhisper, w.Data())
}

// GlobalMsg sends a server-wide announcement. The server only honors
// it from sufficiently privileged users.
func GlobalMsg(text string) []byte {
	w := packet.NewWriter()
	w.PString(text)
	return packet.Encode(TagGMsg, w.Data())
}

// Outbound per-user messages carry no user ID; the server attributes
// them to the sending connection and relays them with the ID prepended.

func Move(h, v int16) []byte {
	w := packet.NewWriter()
	w.I16(h)
	w.I16(v)
	return packet.Encode(TagUserMove, w.Data())
}

func SetName(name string) []byte {
	w := packet.NewWriter()
	w.PString(name)
	return packet.Encode(TagUserName, w.Data())
}

func SetColor(color int16) []byte {
	w := packet.NewWriter()
	w.I16(color)
	return packet.Encode(TagUserColor, w.Data())
}

func SetFace(face int16) []byte {
	w := packet.NewWriter()
	w.I16(face)
	return packet.Encode(TagUserFace, w.Data())
}

// SetProps replaces the props worn by this user. The record holds
// MaxProps slots; extra entries are dropped.
func SetProps(props []PropSpec) []byte {
	if len(props) > MaxProps {
		props = props[:MaxProps]
	}
	w := packet.NewWriter()
	w.I16(int16(len(props)))
	for _, p := range props {
		w.I32(p.ID)
		w.U32(p.CRC)
	}
	return packet.Encode(TagUserProp, w.Data())
}

func GotoRoom(roomID int16) []byte {
	w := packet.NewWriter()
	w.I16(roomID)
	return packet.Encode(TagRoomGoto, w.Data())
}

func RequestRoomList() []byte {
	return packet.Encode(TagRoomList, nil)
}

func SetSpotState(spotID uint16, state int16) []byte {
	w := packet.NewWriter()
	w.U16(spotID)
	w.I16(state)
	return packet.Encode(TagSpotState, w.Data())
}

func LockDoor(spotID uint16) []byte {
	w := packet.NewWriter()
	w.U16(spotID)
	return packet.Encode(TagDoorLock, w.Data())
}

func UnlockDoor(spotID uint16) []byte {
	w := packet.NewWriter()
	w.U16(spotID)
	return packet.Encode(TagDoorUnlock, w.Data())
}

func Ping() []byte {
	return packet.Encode(TagPing, nil)
}

func Pong() []byte {
	return packet.Encode(TagPong, nil)
}

func putScrambled(w *packet.Writer, text string, o crypt.Obfuscator) {
	p := packet.Latin1Bytes(text)
	if len(p) > crypt.MaxScrambleLen {
		p = p[:crypt.MaxScrambleLen]
	}
	p = o.Scramble(p)
	w.U8(uint8(len(p)))
	w.Bytes(p)
}
