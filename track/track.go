// Package track decodes one track chunk into a model.Track.
package track

import (
	"github.com/jsphweid/smfnotes/cursor"
	"github.com/jsphweid/smfnotes/event"
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/note"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ChunkHeader is the 8 bytes in front of every chunk.
type ChunkHeader struct {
	ID     [4]byte
	Length uint32
}

func ReadChunkHeader(c *cursor.Cursor) (ChunkHeader, error) {
	var h ChunkHeader
	id, err := c.ReadBytes(4)
	if err != nil {
		return h, err
	}
	copy(h.ID[:], id)
	h.Length, err = c.ReadU32BE()
	return h, err
}

// sink routes meta updates to the track being built and tempo changes to
// the file that owns it.
type sink struct {
	track *model.Track
	file  *model.File
}

func (s sink) SetName(name string)       { s.track.Name = name }
func (s sink) SetInstrument(name string) { s.track.Instrument = name }
func (s sink) SetTempo(tempo uint32)     { s.file.Tempo = tempo }
func (s sink) Annotate(d model.Diagnostic) {
	s.track.Diagnostics = append(s.track.Diagnostics, d)
}

// Assemble decodes the body of a track chunk whose header has already been
// read. body must cover exactly the chunk's declared length.
//
// The returned track is never nil. If decoding stops early the track holds
// what was decoded so far, Err is set, and the same error is returned
// wrapped in a *model.DecodeError.
func Assemble(body *cursor.Cursor, index int, f *model.File) (*model.Track, error) {
	t := model.NewTrack()
	d := event.NewDecoder(body, sink{track: t, file: f})

	var err error
	for {
		var e model.Event
		e, err = d.Next()
		if err != nil {
			break
		}
		t.Events = append(t.Events, e)
	}

	if errors.Is(err, event.ErrEndOfTrack) {
		err = nil
		if !body.EOF() {
			log.Debug().Int("track", index).Int("bytes", body.Len()).Msg("ignoring bytes after end of track")
		}
	} else {
		err = &model.DecodeError{Track: index, Offset: body.Offset(), Err: err}
		t.Err = err
	}

	note.Reconstruct(t)
	log.Debug().
		Int("track", index).
		Str("name", t.Name).
		Int("events", len(t.Events)).
		Int("notes", len(t.Notes)).
		Msg("assembled track")
	return t, err
}

// Read reads one chunk from c. Chunks that are not track chunks are reported
// with model.ErrInvalidChunk after their body has been skipped, so the
// caller can move on to the next chunk.
func Read(c *cursor.Cursor, index int, f *model.File) (*model.Track, error) {
	start := c.Offset()
	h, err := ReadChunkHeader(c)
	if err != nil {
		return nil, &model.DecodeError{Track: index, Offset: start, Err: err}
	}
	body, err := c.Sub(int(h.Length))
	if err != nil {
		return nil, &model.DecodeError{Track: index, Offset: start, Err: err}
	}
	if h.ID != model.TrackMagic {
		return nil, &model.DecodeError{
			Track:  index,
			Offset: start,
			Err:    errors.Wrapf(model.ErrInvalidChunk, "chunk id %q", h.ID[:]),
		}
	}
	return Assemble(body, index, f)
}
