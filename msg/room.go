package msg

import (
	"github.com/palacenet/gpalace/packet"
)

// Classic room record: a 40-byte fixed header whose offset fields
// index into a trailing variable buffer. Offsets come from the wire
// and are never trusted; anything out of range skips that sub-record
// and keeps the rest of the room.
const (
	roomFixedLen  = 40
	hotspotRecLen = 48
	pictureRecLen = 12
	lPropRecLen   = 24
	picStateLen   = 6
	pointLen      = 4
)

func parseRoomDesc(r *packet.Reader) Message {
	var rm Room
	rm.Flags = r.I32()
	rm.FacesID = r.I32()
	rm.ID = r.I16()
	roomNameOfst := r.I16()
	pictNameOfst := r.I16()
	artistNameOfst := r.I16()
	passwordOfst := r.I16()
	nbrHotspots := r.I16()
	hotspotOfst := r.I16()
	nbrPictures := r.I16()
	pictureOfst := r.I16()
	rm.DrawCmdCount = r.I16()
	r.Skip(2) // first draw command offset, bodies not interpreted
	rm.PeopleCount = r.I16()
	nbrLProps := r.I16()
	firstLProp := r.I16()
	r.Skip(2) // reserved
	lenVars := r.I16()
	varBuf := r.Bytes(int(lenVars))
	if r.Overrun() {
		return &RoomDesc{}
	}

	rm.Name = pstringAt(varBuf, roomNameOfst)
	rm.PictureName = pstringAt(varBuf, pictNameOfst)
	rm.ArtistName = pstringAt(varBuf, artistNameOfst)
	rm.Password = pstringAt(varBuf, passwordOfst)
	rm.Hotspots = parseHotspots(varBuf, nbrHotspots, hotspotOfst)
	rm.Pictures = parsePictures(varBuf, nbrPictures, pictureOfst)
	rm.LooseProps = parseLooseProps(varBuf, nbrLProps, firstLProp)
	return &RoomDesc{Room: rm}
}

func pstringAt(varBuf []byte, ofst int16) string {
	if ofst < 0 || int(ofst) >= len(varBuf) {
		return ""
	}
	return packet.NewReader(varBuf[ofst:]).PString()
}

func subReader(varBuf []byte, count, ofst int16, recLen int) (*packet.Reader, int) {
	if count <= 0 || ofst < 0 || int(ofst)+recLen > len(varBuf) {
		return nil, 0
	}
	// truncate the count to the records that actually fit
	n := (len(varBuf) - int(ofst)) / recLen
	if n > int(count) {
		n = int(count)
	}
	return packet.NewReader(varBuf[ofst:]), n
}

func parsePoint(r *packet.Reader) Point {
	return Point{V: r.I16(), H: r.I16()}
}

func parseHotspots(varBuf []byte, count, ofst int16) []Hotspot {
	r, n := subReader(varBuf, count, ofst, hotspotRecLen)
	if r == nil {
		return nil
	}
	out := make([]Hotspot, 0, n)
	for i := 0; i < n; i++ {
		var h Hotspot
		h.EventMask = r.I32()
		h.Flags = r.I32()
		h.SecureInfo = r.I32()
		h.RefCon = r.I32()
		h.Loc = parsePoint(r)
		h.ID = r.I16()
		h.Dest = r.I16()
		nbrPts := r.I16()
		ptsOfst := r.I16()
		h.Type = r.I16()
		h.GroupID = r.I16()
		r.Skip(4) // script records, not interpreted
		h.State = r.I16()
		nbrStates := r.I16()
		stateRecOfst := r.I16()
		nameOfst := r.I16()
		scriptTextOfst := r.I16()
		r.Skip(2) // reserved

		h.Name = pstringAt(varBuf, nameOfst)
		h.ScriptText = pstringAt(varBuf, scriptTextOfst)
		h.Points = parsePoints(varBuf, nbrPts, ptsOfst)
		h.States = parseStates(varBuf, nbrStates, stateRecOfst)
		out = append(out, h)
	}
	return out
}

func parsePoints(varBuf []byte, count, ofst int16) []Point {
	r, n := subReader(varBuf, count, ofst, pointLen)
	if r == nil {
		return nil
	}
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, parsePoint(r))
	}
	return out
}

func parseStates(varBuf []byte, count, ofst int16) []PicState {
	r, n := subReader(varBuf, count, ofst, picStateLen)
	if r == nil {
		return nil
	}
	out := make([]PicState, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, PicState{PictID: r.I16(), PicLoc: parsePoint(r)})
	}
	return out
}

func parsePictures(varBuf []byte, count, ofst int16) []Picture {
	r, n := subReader(varBuf, count, ofst, pictureRecLen)
	if r == nil {
		return nil
	}
	out := make([]Picture, 0, n)
	for i := 0; i < n; i++ {
		p := Picture{RefCon: r.I32(), ID: r.I16()}
		nameOfst := r.I16()
		p.TransColor = r.I16()
		r.Skip(2) // reserved
		p.Name = pstringAt(varBuf, nameOfst)
		out = append(out, p)
	}
	return out
}

func parseLooseProps(varBuf []byte, count, ofst int16) []LooseProp {
	r, n := subReader(varBuf, count, ofst, lPropRecLen)
	if r == nil {
		return nil
	}
	out := make([]LooseProp, 0, n)
	for i := 0; i < n; i++ {
		r.Skip(4) // historical link pointer
		var p LooseProp
		p.Spec = PropSpec{ID: r.I32(), CRC: r.U32()}
		p.Flags = r.I32()
		p.RefCon = r.I32()
		p.Loc = parsePoint(r)
		out = append(out, p)
	}
	return out
}
