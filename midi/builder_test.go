package midi

import (
	"encoding/binary"

	"github.com/jsphweid/smfnotes/varlen"
)

func header(format, numTracks, division uint16) []byte {
	b := make([]byte, 14)
	copy(b, "MThd")
	binary.BigEndian.PutUint32(b[4:], 6)
	binary.BigEndian.PutUint16(b[8:], format)
	binary.BigEndian.PutUint16(b[10:], numTracks)
	binary.BigEndian.PutUint16(b[12:], division)
	return b
}

func chunk(id string, body []byte) []byte {
	b := make([]byte, 8, 8+len(body))
	copy(b, id)
	binary.BigEndian.PutUint32(b[4:], uint32(len(body)))
	return append(b, body...)
}

func file(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// ev prefixes an event body with its delta.
func ev(delta uint32, body ...byte) []byte {
	return append(varlen.Encode(delta), body...)
}

func trackOf(events ...[]byte) []byte {
	var body []byte
	for _, e := range events {
		body = append(body, e...)
	}
	body = append(body, ev(0, 0xFF, 0x2F, 0x00)...)
	return chunk("MTrk", body)
}

func metaText(delta uint32, typ byte, text string) []byte {
	body := append([]byte{0xFF, typ}, varlen.Encode(uint32(len(text)))...)
	return ev(delta, append(body, text...)...)
}
