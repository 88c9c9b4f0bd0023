// Package note pairs note-on and note-off events into notes.
package note

import (
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/util"
)

// Reconstruct fills t.Notes from t.Events and sets MinKey and MaxKey to the
// key range of the notes, or model.DefaultKeyBound when there are none.
//
// A note-off closes the earliest still open note with the same key. Note-offs
// with nothing to close and notes never closed before the end of the events
// are dropped.
func Reconstruct(t *model.Track) {
	var wallTime uint32
	var pending []model.Note
	notes := make([]model.Note, 0)
	t.MinKey, t.MaxKey = model.DefaultKeyBound, model.DefaultKeyBound

	for _, e := range t.Events {
		wallTime += e.Delta()
		switch e := e.(type) {
		case model.NoteOn:
			pending = append(pending, model.Note{
				Key:       e.Key,
				Velocity:  e.Velocity,
				StartTime: wallTime,
			})
		case model.NoteOff:
			i := findPending(pending, e.Key)
			if i < 0 {
				continue
			}
			n := pending[i]
			pending = append(pending[:i], pending[i+1:]...)
			n.Duration = wallTime - n.StartTime

			if len(notes) == 0 {
				t.MinKey, t.MaxKey = n.Key, n.Key
			} else {
				t.MinKey = util.Min(t.MinKey, n.Key)
				t.MaxKey = util.Max(t.MaxKey, n.Key)
			}
			notes = append(notes, n)
		case model.Other:
		}
	}

	t.Notes = notes
}

func findPending(pending []model.Note, key uint8) int {
	for i, n := range pending {
		if n.Key == key {
			return i
		}
	}
	return -1
}
