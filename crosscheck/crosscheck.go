// Package crosscheck decodes a file a second time with gomidi's smf reader
// and compares the reconstructed notes with ours.
package crosscheck

import (
	"bytes"
	"fmt"

	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadReference parses data with gomidi. The reader panics on some inputs,
// those come back as errors.
func ReadReference(data []byte) (s *smf.SMF, e error) {
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			e = errors.Errorf("reference reader panicked: %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file with reference reader")
	}
	return res, nil
}

// ReferenceNotes pairs the note starts and ends of one gomidi track the same
// way note.Reconstruct does.
func ReferenceNotes(events smf.Track) []model.Note {
	var absTicks uint32
	var pending []model.Note
	notes := make([]model.Note, 0)
	for _, event := range events {
		absTicks += event.Delta
		msg := midi.Message(event.Message)
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			pending = append(pending, model.Note{Key: key, Velocity: velocity, StartTime: absTicks})
		case msg.GetNoteEnd(&channel, &key):
			for i, n := range pending {
				if n.Key != key {
					continue
				}
				n.Duration = absTicks - n.StartTime
				notes = append(notes, n)
				pending = append(pending[:i], pending[i+1:]...)
				break
			}
		}
	}
	return notes
}

type Mismatch struct {
	Track  int
	Reason string
}

func (m Mismatch) String() string {
	if m.Track < 0 {
		return m.Reason
	}
	return fmt.Sprintf("track %d: %s", m.Track, m.Reason)
}

// Compare checks f, decoded from data, against the reference reader. An
// empty result means both agree on track count and every note.
func Compare(f *model.File, data []byte) ([]Mismatch, error) {
	ref, err := ReadReference(data)
	if err != nil {
		return nil, err
	}

	var res []Mismatch
	if len(ref.Tracks) != len(f.Tracks) {
		res = append(res, Mismatch{
			Track:  -1,
			Reason: fmt.Sprintf("reference has %d tracks, decoded %d", len(ref.Tracks), len(f.Tracks)),
		})
	}

	for i := 0; i < len(ref.Tracks) && i < len(f.Tracks); i++ {
		want := ReferenceNotes(ref.Tracks[i])
		got := f.Tracks[i].Notes
		if len(want) != len(got) {
			res = append(res, Mismatch{Track: i, Reason: fmt.Sprintf("reference has %d notes, decoded %d", len(want), len(got))})
			continue
		}
		for j := range want {
			if want[j] != got[j] {
				res = append(res, Mismatch{Track: i, Reason: fmt.Sprintf("note %d: reference %+v, decoded %+v", j, want[j], got[j])})
				break
			}
		}
	}
	return res, nil
}
