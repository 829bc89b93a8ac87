package msg

import (
	"testing"

	"github.com/palacenet/gpalace/packet"
)

// buildRoomPayload lays out a classic room record with one hotspot
// (two polygon points, one state), one picture and one loose prop.
// The hotspot count claims two but only one fits in the buffer.
func buildRoomPayload(t *testing.T) []byte {
	vb := packet.NewWriter()
	nameOfst := vb.Len()
	vb.PString("Gate")
	pictOfst := vb.Len()
	vb.PString("gate.png")
	hsNameOfst := vb.Len()
	vb.PString("door")
	scriptOfst := vb.Len()
	vb.PString("ON SELECT { GOTOROOM 90 }")
	ptsOfst := vb.Len()
	vb.I16(1) // point v
	vb.I16(2) // point h
	vb.I16(3)
	vb.I16(4)
	stOfst := vb.Len()
	vb.I16(7)  // state pict id
	vb.I16(10) // state loc v
	vb.I16(20) // state loc h

	hsOfst := vb.Len()
	vb.I32(0x09)  // event mask
	vb.I32(0x01)  // flags
	vb.I32(0)     // secure info
	vb.I32(42)    // ref con
	vb.I16(5)     // loc v
	vb.I16(6)     // loc h
	vb.I16(1)     // id
	vb.I16(90)    // dest
	vb.I16(2)     // nbr points
	vb.I16(int16(ptsOfst))
	vb.I16(2) // type: door
	vb.I16(0) // group
	vb.I16(0) // nbr scripts
	vb.I16(0) // script rec ofst
	vb.I16(1) // state: locked
	vb.I16(1) // nbr states
	vb.I16(int16(stOfst))
	vb.I16(int16(hsNameOfst))
	vb.I16(int16(scriptOfst))
	vb.I16(0) // reserved

	picNameOfst := vb.Len()
	vb.PString("pic.gif")
	picRecOfst := vb.Len()
	vb.I32(9)   // ref con
	vb.I16(77)  // pic id
	vb.I16(int16(picNameOfst))
	vb.I16(5) // trans color
	vb.I16(0) // reserved

	lpOfst := vb.Len()
	vb.I32(0) // link pointer
	vb.I32(555)
	vb.U32(0xabc)
	vb.I32(1)  // flags
	vb.I32(2)  // ref con
	vb.I16(30) // loc v
	vb.I16(40) // loc h

	varBuf := vb.Data()

	w := packet.NewWriter()
	w.I32(3)   // room flags
	w.I32(128) // faces id
	w.I16(86)  // room id
	w.I16(int16(nameOfst))
	w.I16(int16(pictOfst))
	w.I16(-1)                    // artist: none
	w.I16(int16(len(varBuf)+10)) // password offset out of range
	w.I16(2)                     // hotspot count, only one fits
	w.I16(int16(hsOfst))
	w.I16(1) // picture count
	w.I16(int16(picRecOfst))
	w.I16(4) // draw command count, bodies not parsed
	w.I16(0) // first draw command
	w.I16(12) // people
	w.I16(1)  // loose prop count
	w.I16(int16(lpOfst))
	w.I16(0) // reserved
	w.I16(int16(len(varBuf)))
	w.Bytes(varBuf)
	return w.Data()
}

func TestDecodeRoomDesc(t *testing.T) {
	m, err := Decode(frame(TagRoomDesc, buildRoomPayload(t)))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	rm := m.(*RoomDesc).Room

	if rm.ID != 86 || rm.Flags != 3 || rm.FacesID != 128 {
		t.Errorf("room header %+v", rm)
	}
	if rm.Name != "Gate" || rm.PictureName != "gate.png" {
		t.Errorf("room names %q %q", rm.Name, rm.PictureName)
	}
	if rm.ArtistName != "" || rm.Password != "" {
		t.Errorf("unresolvable offsets should read empty: %q %q", rm.ArtistName, rm.Password)
	}
	if rm.PeopleCount != 12 || rm.DrawCmdCount != 4 {
		t.Errorf("counts %d %d", rm.PeopleCount, rm.DrawCmdCount)
	}

	if len(rm.Hotspots) != 1 {
		t.Fatalf("got %d hotspots want 1 (second must not fit)", len(rm.Hotspots))
	}
	hs := rm.Hotspots[0]
	if hs.ID != 1 || hs.Dest != 90 || hs.Type != 2 || hs.State != 1 || hs.RefCon != 42 {
		t.Errorf("hotspot %+v", hs)
	}
	if hs.Loc != (Point{V: 5, H: 6}) {
		t.Errorf("hotspot loc %+v", hs.Loc)
	}
	if hs.Name != "door" || hs.ScriptText != "ON SELECT { GOTOROOM 90 }" {
		t.Errorf("hotspot strings %q %q", hs.Name, hs.ScriptText)
	}
	if len(hs.Points) != 2 || hs.Points[0] != (Point{V: 1, H: 2}) || hs.Points[1] != (Point{V: 3, H: 4}) {
		t.Errorf("hotspot points %+v", hs.Points)
	}
	if len(hs.States) != 1 || hs.States[0] != (PicState{PictID: 7, PicLoc: Point{V: 10, H: 20}}) {
		t.Errorf("hotspot states %+v", hs.States)
	}

	if len(rm.Pictures) != 1 {
		t.Fatalf("got %d pictures", len(rm.Pictures))
	}
	pic := rm.Pictures[0]
	if pic.ID != 77 || pic.RefCon != 9 || pic.TransColor != 5 || pic.Name != "pic.gif" {
		t.Errorf("picture %+v", pic)
	}

	if len(rm.LooseProps) != 1 {
		t.Fatalf("got %d loose props", len(rm.LooseProps))
	}
	lp := rm.LooseProps[0]
	if lp.Spec != (PropSpec{ID: 555, CRC: 0xabc}) || lp.Flags != 1 || lp.RefCon != 2 {
		t.Errorf("loose prop %+v", lp)
	}
	if lp.Loc != (Point{V: 30, H: 40}) {
		t.Errorf("loose prop loc %+v", lp.Loc)
	}
}

func TestDecodeRoomDescEmptyVarBuf(t *testing.T) {
	w := packet.NewWriter()
	w.I32(0)
	w.I32(0)
	w.I16(9)
	for i := 0; i < 13; i++ {
		w.I16(0)
	}
	w.I16(0) // reserved
	w.I16(0) // no variable data
	m, err := Decode(frame(TagRoomDesc, w.Data()))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	rm := m.(*RoomDesc).Room
	if rm.ID != 9 || rm.Name != "" || len(rm.Hotspots) != 0 {
		t.Errorf("empty room %+v", rm)
	}
}

func TestDecodeRoomDescTruncatedVarBuf(t *testing.T) {
	p := buildRoomPayload(t)
	// chop the variable buffer short of its declared length
	_, err := Decode(frame(TagRoomDesc, p[:len(p)-10]))
	if err == nil {
		t.Fatalf("truncated varBuf decoded without error")
	}
}

func TestDecodeRoomDescHostileOffsets(t *testing.T) {
	w := packet.NewWriter()
	w.I32(0)
	w.I32(0)
	w.I16(1)
	w.I16(100)   // name offset beyond varBuf
	w.I16(-5)    // negative picture name offset
	w.I16(0)
	w.I16(0)
	w.I16(1000)  // hotspot count with nowhere to live
	w.I16(2)
	w.I16(1)     // picture count
	w.I16(-2)    // negative picture offset
	w.I16(0)
	w.I16(0)
	w.I16(0)
	w.I16(1)     // loose prop count
	w.I16(3)     // offset leaving no room for a record
	w.I16(0)     // reserved
	w.I16(4)     // tiny varBuf
	w.Bytes([]byte{0, 0, 0, 0})
	m, err := Decode(frame(TagRoomDesc, w.Data()))
	if err != nil {
		t.Fatalf("hostile offsets must fail soft: %v", err)
	}
	rm := m.(*RoomDesc).Room
	if rm.Name != "" || len(rm.Hotspots) != 0 || len(rm.Pictures) != 0 || len(rm.LooseProps) != 0 {
		t.Errorf("hostile offsets leaked data: %+v", rm)
	}
}
