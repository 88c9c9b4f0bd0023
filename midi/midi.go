// Package midi decodes a whole Standard MIDI File.
package midi

import (
	"os"

	"github.com/jsphweid/smfnotes/cursor"
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/track"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// HeaderLength is the size of the header chunk body this decoder understands.
const HeaderLength = 6

func ReadMidiFile(filepath string) (*model.File, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return Decode(dat)
}

func readHeader(c *cursor.Cursor) (model.Header, error) {
	var h model.Header
	id, err := c.ReadBytes(4)
	if err != nil {
		return h, err
	}
	copy(h.ID[:], id)
	if h.ID != model.HeaderMagic {
		return h, errors.Wrapf(model.ErrInvalidMagic, "got %q", id)
	}

	if h.Length, err = c.ReadU32BE(); err != nil {
		return h, err
	}
	if h.Length < HeaderLength {
		return h, errors.Wrapf(model.ErrMalformedHeader, "header length %d", h.Length)
	}
	body, err := c.Sub(int(h.Length))
	if err != nil {
		return h, err
	}
	if h.Format, err = body.ReadU16BE(); err != nil {
		return h, err
	}
	if h.NumTracks, err = body.ReadU16BE(); err != nil {
		return h, err
	}
	if h.Division, err = body.ReadU16BE(); err != nil {
		return h, err
	}
	if !body.EOF() {
		log.Debug().Int("bytes", body.Len()).Msg("ignoring extra header bytes")
	}
	if h.Format > 2 {
		log.Warn().Uint16("format", h.Format).Msg("unknown file format")
	}
	return h, nil
}

// Decode decodes a complete file held in memory.
//
// A header that cannot be read yields a nil File. Running out of input
// while reading tracks returns the tracks decoded so far along with the
// error. Errors confined to one track do not stop the decode: the track is
// kept with its Err set and all of them are returned together as a
// model.TrackErrors.
func Decode(data []byte) (*model.File, error) {
	c := cursor.New(data)
	h, err := readHeader(c)
	if err != nil {
		return nil, &model.DecodeError{Track: -1, Offset: c.Offset(), Err: err}
	}

	f := &model.File{Header: h, Tracks: make([]*model.Track, 0, h.NumTracks)}
	var trackErrs model.TrackErrors
	for len(f.Tracks) < int(h.NumTracks) {
		index := len(f.Tracks)
		t, err := track.Read(c, index, f)
		if errors.Is(err, model.ErrInvalidChunk) {
			log.Warn().Err(err).Msg("skipping chunk")
			continue
		}
		if t != nil {
			f.Tracks = append(f.Tracks, t)
		}
		if err == nil {
			continue
		}
		if model.IsFatal(err) {
			return f, err
		}
		var de *model.DecodeError
		if errors.As(err, &de) {
			trackErrs = append(trackErrs, de)
		}
		log.Warn().Err(err).Msg("track aborted")
	}

	if !c.EOF() {
		log.Debug().Int("bytes", c.Len()).Msg("ignoring data after last track")
	}
	if len(trackErrs) > 0 {
		return f, trackErrs
	}
	return f, nil
}
