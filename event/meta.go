package event

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

const (
	MetaSequence          = 0x00
	MetaText              = 0x01
	MetaCopyright         = 0x02
	MetaTrackName         = 0x03
	MetaInstrumentName    = 0x04
	MetaLyrics            = 0x05
	MetaMarker            = 0x06
	MetaCuePoint          = 0x07
	MetaChannelPrefix     = 0x20
	MetaPort              = 0x21
	MetaEndOfTrack        = 0x2F
	MetaSetTempo          = 0x51
	MetaSMPTEOffset       = 0x54
	MetaTimeSignature     = 0x58
	MetaKeySignature      = 0x59
	MetaSequencerSpecific = 0x7F
)

// anyLength marks meta types whose payload size is free.
const anyLength = -1

type metaHandler struct {
	name string
	size int
	// handle returns the value to record as a diagnostic, or "" to record none
	handle func(s Sink, data []byte) string
}

var metaHandlers = map[byte]metaHandler{
	MetaSequence:       {"Sequence", 2, func(_ Sink, data []byte) string { return fmt.Sprint(uint16(data[0])<<8 | uint16(data[1])) }},
	MetaText:           {"Text", anyLength, showText},
	MetaCopyright:      {"Copyright", anyLength, showText},
	MetaTrackName:      {"TrackName", anyLength, setName},
	MetaInstrumentName: {"InstrumentName", anyLength, setInstrument},
	MetaLyrics:         {"Lyrics", anyLength, showText},
	MetaMarker:         {"Marker", anyLength, showText},
	MetaCuePoint:       {"CuePoint", anyLength, showText},
	MetaChannelPrefix:  {"ChannelPrefix", 1, func(_ Sink, data []byte) string { return fmt.Sprint(data[0]) }},
	MetaPort:           {"Port", 1, func(_ Sink, data []byte) string { return fmt.Sprint(data[0]) }},
	MetaEndOfTrack:     {"EndOfTrack", 0, nil},
	MetaSetTempo:       {"SetTempo", 3, setTempo},
	MetaSMPTEOffset:    {"SMPTEOffset", 5, showSMPTE},
	MetaTimeSignature:  {"TimeSignature", 4, showTimeSignature},
	MetaKeySignature:   {"KeySignature", 2, showKeySignature},
	MetaSequencerSpecific: {"SequencerSpecific", anyLength, func(_ Sink, data []byte) string {
		return hex.EncodeToString(data)
	}},
}

// MetaName returns the display name of a meta type.
func MetaName(typ byte) string {
	if h, ok := metaHandlers[typ]; ok {
		return h.name
	}
	return fmt.Sprintf("Meta0x%02X", typ)
}

// meta consumes a meta event whose 0xFF status byte sat at start. It reports
// whether the event was EndOfTrack.
func (d *Decoder) meta(start int) (bool, error) {
	typ, err := d.c.ReadU8()
	if err != nil {
		return false, err
	}
	body, err := d.payload(start)
	if err != nil {
		return false, err
	}
	data, _ := body.ReadBytes(body.Len())

	h, ok := metaHandlers[typ]
	if !ok {
		err := errors.Wrapf(model.ErrUnrecognisedMeta, "type %#02x at offset %d", typ, start)
		log.Warn().Err(err).Int("length", len(data)).Msg("skipping meta event")
		d.sink.Annotate(model.Diagnostic{Offset: start, Meta: typ, Name: MetaName(typ), Value: hex.EncodeToString(data)})
		return false, nil
	}
	if h.size != anyLength && len(data) != h.size {
		return false, errors.Wrapf(model.ErrMalformedMeta, "%s at offset %d has length %d, expected %d", h.name, start, len(data), h.size)
	}
	if typ == MetaEndOfTrack {
		return true, nil
	}

	value := h.handle(d.sink, data)
	log.Debug().Int("offset", start).Str("meta", h.name).Str("value", value).Msg("meta event")
	if value != "" {
		d.sink.Annotate(model.Diagnostic{Offset: start, Meta: typ, Name: h.name, Value: value})
	}
	return false, nil
}

// Text decodes a meta text payload. Files in the wild are mostly ASCII or
// Latin-1; anything that is not valid UTF-8 is read as Latin-1.
func Text(data []byte) string {
	var s string
	if utf8.Valid(data) {
		s = string(data)
	} else if b, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		s = string(b)
	} else {
		s = string(data)
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

func showText(_ Sink, data []byte) string {
	return Text(data)
}

func setName(s Sink, data []byte) string {
	name := Text(data)
	s.SetName(name)
	return ""
}

func setInstrument(s Sink, data []byte) string {
	name := Text(data)
	s.SetInstrument(name)
	return ""
}

// Tempo reads the 3-byte big-endian microseconds per quarter note.
func Tempo(data []byte) uint32 {
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
}

func setTempo(s Sink, data []byte) string {
	tempo := Tempo(data)
	s.SetTempo(tempo)
	if tempo == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%gbpm)", tempo, float64(model.MicrosecondsPerMinute)/float64(tempo))
}

func showSMPTE(_ Sink, data []byte) string {
	return fmt.Sprintf("%02d:%02d:%02d %02d.%02d", data[0], data[1], data[2], data[3], data[4])
}

func showTimeSignature(_ Sink, data []byte) string {
	// denominator is stored as a power of two
	return fmt.Sprintf("%d/%d clocks=%d 32nds=%d", data[0], 1<<data[1], data[2], data[3])
}

// keyNames is indexed by sharps (positive) or flats (negative) plus 7.
var keyNames = [2][15]string{
	{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"},
	{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#"},
}

// KeySignature names the key of a KeySignature payload, e.g. "G major".
func KeySignature(sf int8, mi byte) string {
	idx := int(sf) + 7
	if idx < 0 || idx >= len(keyNames[0]) || mi > 1 {
		return fmt.Sprintf("sf=%d mi=%d", sf, mi)
	}
	mode := "major"
	if mi == 1 {
		mode = "minor"
	}
	return keyNames[mi][idx] + " " + mode
}

func showKeySignature(_ Sink, data []byte) string {
	return KeySignature(int8(data[0]), data[1])
}
