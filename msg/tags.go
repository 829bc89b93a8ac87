package msg

import (
	"github.com/palacenet/gpalace/packet"
)

// Wire tags, four ASCII chars packed big-endian. Inbound unless noted.
const (
	TagAssignID    packet.Tag = 0x74697972 // 'tiyr'
	TagServerInfo  packet.Tag = 0x73696e66 // 'sinf'
	TagServerDown  packet.Tag = 0x646f776e // 'down'
	TagNavError    packet.Tag = 0x73457272 // 'sErr'
	TagVersion     packet.Tag = 0x76657273 // 'vers'
	TagPing        packet.Tag = 0x70696e67 // 'ping'
	TagPong        packet.Tag = 0x706f6e67 // 'pong'
	TagLogon       packet.Tag = 0x72656769 // 'regi', outbound
	TagLogoff      packet.Tag = 0x62796520 // 'bye ', outbound
	TagTalk        packet.Tag = 0x74616c6b // 'talk', both directions
	TagXTalk       packet.Tag = 0x78746c6b // 'xtlk', both directions
	TagWhisper     packet.Tag = 0x77686973 // 'whis', both directions
	TagXWhisper    packet.Tag = 0x78776973 // 'xwis', both directions
	TagGMsg        packet.Tag = 0x676d7367 // 'gmsg'
	TagRMsg        packet.Tag = 0x726d7367 // 'rmsg'
	TagSMsg        packet.Tag = 0x736d7367 // 'smsg'
	TagUserNew     packet.Tag = 0x6e707273 // 'nprs'
	TagUserExit    packet.Tag = 0x65707273 // 'eprs'
	TagUserList    packet.Tag = 0x72707273 // 'rprs'
	TagUserMove    packet.Tag = 0x754c6f63 // 'uLoc', both directions
	TagUserName    packet.Tag = 0x7573724e // 'usrN'
	TagUserFace    packet.Tag = 0x75737246 // 'usrF'
	TagUserColor   packet.Tag = 0x75737243 // 'usrC'
	TagUserStatus  packet.Tag = 0x75537461 // 'uSta'
	TagUserProp    packet.Tag = 0x75737250 // 'usrP'
	TagRoomDesc    packet.Tag = 0x726f6f6d // 'room'
	TagRoomDescEnd packet.Tag = 0x656e6472 // 'endr'
	TagRoomGoto    packet.Tag = 0x6e617652 // 'navR', outbound
	TagRoomList    packet.Tag = 0x724c7374 // 'rLst', both directions
	TagSpotState   packet.Tag = 0x73537461 // 'sSta'
	TagDoorLock    packet.Tag = 0x6c6f636b // 'lock'
	TagDoorUnlock  packet.Tag = 0x756e6c6f // 'unlo'
	TagDisplayURL  packet.Tag = 0x6475726c // 'durl'
	TagFileNotFnd  packet.Tag = 0x666e6665 // 'fnfe'
)
