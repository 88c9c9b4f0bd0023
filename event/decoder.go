// Package event decodes the events of one track chunk, one per call, keeping
// the running status between calls.
package event

import (
	"github.com/jsphweid/smfnotes/cursor"
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/varlen"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrEndOfTrack is returned by Next once the EndOfTrack meta event is read.
var ErrEndOfTrack = errors.New("end of track")

const (
	VoiceNoteOff         = 0x80
	VoiceNoteOn          = 0x90
	VoiceAftertouch      = 0xA0
	VoiceControlChange   = 0xB0
	VoiceProgramChange   = 0xC0
	VoiceChannelPressure = 0xD0
	VoicePitchBend       = 0xE0

	SystemExclusive    = 0xF0
	SystemExclusiveEnd = 0xF7
	Meta               = 0xFF
)

// Sink receives what meta events change outside the event sequence.
type Sink interface {
	SetName(name string)
	SetInstrument(name string)
	SetTempo(microsPerQuarter uint32)
	Annotate(d model.Diagnostic)
}

type Decoder struct {
	c    *cursor.Cursor
	sink Sink

	// last voice status byte including channel bits, 0 when none applies
	previousStatus byte
	// ticks of consumed meta and sysex events not yet handed out
	carry uint32
}

func NewDecoder(c *cursor.Cursor, sink Sink) *Decoder {
	return &Decoder{c: c, sink: sink}
}

// Next returns the next channel event. Meta and sysex events are consumed
// along the way: they update the sink and their delta is folded into the
// delta of the event that is returned. After EndOfTrack it returns
// ErrEndOfTrack.
func (d *Decoder) Next() (model.Event, error) {
	for {
		delta, err := varlen.Read(d.c)
		if err != nil {
			return nil, err
		}
		d.carry += delta

		start := d.c.Offset()
		status, err := d.c.ReadU8()
		if err != nil {
			return nil, err
		}

		if status < 0x80 {
			if d.previousStatus == 0 {
				return nil, errors.Wrapf(model.ErrNoRunningStatus, "data byte %#02x at offset %d", status, start)
			}
			// the byte belongs to the event body
			if err := d.c.SeekRelative(-1); err != nil {
				return nil, err
			}
			status = d.previousStatus
		} else if status < 0xF0 {
			d.previousStatus = status
		} else {
			d.previousStatus = 0
		}

		switch {
		case status < 0xF0:
			return d.voice(status)
		case status == Meta:
			end, err := d.meta(start)
			if err != nil {
				return nil, err
			}
			if end {
				return nil, ErrEndOfTrack
			}
		case status == SystemExclusive, status == SystemExclusiveEnd:
			if err := d.sysex(start); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Wrapf(model.ErrUnrecognisedStatus, "status %#02x at offset %d", status, start)
		}
	}
}

func (d *Decoder) takeDelta() uint32 {
	delta := d.carry
	d.carry = 0
	return delta
}

func (d *Decoder) voice(status byte) (model.Event, error) {
	data, err := d.c.ReadBytes(dataLen(status))
	if err != nil {
		return nil, err
	}

	switch status & 0xF0 {
	case VoiceNoteOff:
		return model.NoteOff{Key: data[0], Velocity: data[1], Ticks: d.takeDelta()}, nil
	case VoiceNoteOn:
		if data[1] == 0 {
			return model.NoteOff{Key: data[0], Velocity: 0, Ticks: d.takeDelta()}, nil
		}
		return model.NoteOn{Key: data[0], Velocity: data[1], Ticks: d.takeDelta()}, nil
	default:
		return model.Other{Ticks: d.takeDelta()}, nil
	}
}

// dataLen is how many data bytes follow a voice status byte.
func dataLen(status byte) int {
	switch status & 0xF0 {
	case VoiceProgramChange, VoiceChannelPressure:
		return 1
	default:
		return 2
	}
}

// payload reads a VLQ length and carves out that many bytes. A length running
// past the chunk is reported as a malformed meta event.
func (d *Decoder) payload(start int) (*cursor.Cursor, error) {
	length, err := varlen.Read(d.c)
	if err != nil {
		return nil, err
	}
	if int64(length) > int64(d.c.Len()) {
		return nil, errors.Wrapf(model.ErrMalformedMeta, "length %d at offset %d exceeds the %d bytes left in the chunk", length, start, d.c.Len())
	}
	return d.c.Sub(int(length))
}

func (d *Decoder) sysex(start int) error {
	body, err := d.payload(start)
	if err != nil {
		return err
	}
	log.Trace().Int("offset", start).Int("length", body.Len()).Msg("skipping sysex")
	return nil
}
