package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodesSingleTrack(t *testing.T) {
	data := file(
		header(0, 1, 480),
		trackOf(
			metaText(0, 0x03, "Melody"),
			metaText(0, 0x04, "Flute"),
			ev(0, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20),
			ev(0, 0x90, 60, 100),
			ev(480, 0x80, 60, 0),
			ev(0, 0x90, 67, 90),
			ev(240, 67, 0),
		),
	)

	f, err := Decode(data)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(model.Header{ID: model.HeaderMagic, Length: 6, Format: 0, NumTracks: 1, Division: 480}, f.Header)
	assert.Equal(uint16(480), f.Header.TicksPerQuarterNote())
	assert.Equal(uint32(500000), f.Tempo)
	assert.Equal(120.0, f.BPM())

	require.Len(t, f.Tracks, 1)
	track := f.Tracks[0]
	assert.Equal("Melody", track.Name)
	assert.Equal("Flute", track.Instrument)
	assert.Nil(track.Err)
	assert.Equal([]model.Event{
		model.NoteOn{Key: 60, Velocity: 100},
		model.NoteOff{Key: 60, Ticks: 480},
		model.NoteOn{Key: 67, Velocity: 90},
		model.NoteOff{Key: 67, Ticks: 240},
	}, track.Events)
	assert.Equal([]model.Note{
		{Key: 60, Velocity: 100, StartTime: 0, Duration: 480},
		{Key: 67, Velocity: 90, StartTime: 480, Duration: 240},
	}, track.Notes)
	assert.Equal(uint8(60), track.MinKey)
	assert.Equal(uint8(67), track.MaxKey)
	assert.Equal(2, f.NumNotes())
}

func TestRunningStatusAcrossFile(t *testing.T) {
	data := file(
		header(0, 1, 96),
		trackOf(
			ev(0, 0x90, 60, 64),
			ev(10, 64, 64),
		),
	)

	f, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []model.Event{
		model.NoteOn{Key: 60, Velocity: 64},
		model.NoteOn{Key: 64, Velocity: 64, Ticks: 10},
	}, f.Tracks[0].Events)
	// neither note is ever closed
	assert.Empty(t, f.Tracks[0].Notes)
}

func TestInvalidMagic(t *testing.T) {
	data := file(header(0, 1, 96), trackOf(ev(0, 0x90, 60, 64)))
	copy(data, "RIFF")

	f, err := Decode(data)

	assert := assert.New(t)
	assert.Nil(f)
	assert.True(errors.Is(err, model.ErrInvalidMagic))
	assert.True(model.IsFatal(err))
}

func TestEmptyInput(t *testing.T) {
	f, err := Decode(nil)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, model.ErrUnexpectedEOF))
}

func TestShortHeaderLength(t *testing.T) {
	data := header(0, 1, 96)
	data[7] = 4

	_, err := Decode(data)
	assert.True(t, errors.Is(err, model.ErrMalformedHeader))
}

func TestLongHeaderIsSkipped(t *testing.T) {
	h := []byte("MThd\x00\x00\x00\x08\x00\x01\x00\x01\x01\xe0\xAA\xBB")
	f, err := Decode(file(h, trackOf(ev(0, 0x90, 60, 1), ev(5, 0x80, 60, 0))))

	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(uint32(8), f.Header.Length)
	assert.Equal(uint16(1), f.Header.Format)
	assert.Equal(uint16(480), f.Header.Division)
	assert.Len(f.Tracks[0].Notes, 1)
}

func TestChunkLongerThanInput(t *testing.T) {
	data := file(header(0, 1, 96), trackOf(ev(0, 0x90, 60, 64)))
	// declare 100 more bytes than there are
	data[len(header(0, 1, 96))+7] += 100

	f, err := Decode(data)

	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrUnexpectedEOF))
	require.NotNil(t, f)
	assert.Empty(f.Tracks)
}

func TestMissingTrackChunk(t *testing.T) {
	f, err := Decode(file(header(1, 2, 96), trackOf()))

	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrUnexpectedEOF))
	assert.Len(f.Tracks, 1)
}

func TestTrackWithoutEndOfTrack(t *testing.T) {
	data := file(
		header(0, 1, 96),
		chunk("MTrk", file(ev(0, 0x90, 60, 64), ev(10, 0x80, 60, 0))),
	)

	f, err := Decode(data)

	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrUnexpectedEOF))
	require.Len(t, f.Tracks, 1)
	assert.True(errors.Is(f.Tracks[0].Err, model.ErrUnexpectedEOF))
	// what was read before the truncation is still there
	assert.Len(f.Tracks[0].Notes, 1)
}

func TestTrackErrorAbortsOnlyThatTrack(t *testing.T) {
	data := file(
		header(1, 3, 96),
		trackOf(metaText(0, 0x03, "ok")),
		trackOf(
			ev(0, 0x90, 60, 64),
			ev(10, 0x80, 60, 0),
			ev(0, 0xF4),
		),
		trackOf(metaText(0, 0x03, "after"), ev(0, 0x90, 72, 1), ev(1, 0x80, 72, 1)),
	)

	f, err := Decode(data)

	assert := assert.New(t)
	require.Error(t, err)
	assert.False(model.IsFatal(err))

	var trackErrs model.TrackErrors
	require.True(t, errors.As(err, &trackErrs))
	require.Len(t, trackErrs, 1)
	assert.Equal(1, trackErrs[0].Track)
	assert.True(errors.Is(trackErrs[0], model.ErrUnrecognisedStatus))

	require.Len(t, f.Tracks, 3)
	assert.Nil(f.Tracks[0].Err)
	assert.NotNil(f.Tracks[1].Err)
	assert.Len(f.Tracks[1].Notes, 1)
	assert.Equal("after", f.Tracks[2].Name)
	assert.Len(f.Tracks[2].Notes, 1)
}

func TestNoRunningStatusAbortsTrack(t *testing.T) {
	data := file(header(0, 1, 96), trackOf(ev(0, 60, 64)))

	f, err := Decode(data)

	var trackErrs model.TrackErrors
	require.True(t, errors.As(err, &trackErrs))
	assert.True(t, errors.Is(trackErrs[0], model.ErrNoRunningStatus))
	assert.Len(t, f.Tracks, 1)
}

func TestDecodeErrorOffset(t *testing.T) {
	h := header(0, 1, 96)
	data := file(h, trackOf(ev(0, 0xF4)))

	_, err := Decode(data)

	var trackErrs model.TrackErrors
	require.True(t, errors.As(err, &trackErrs))
	// header, chunk header, delta and the status byte
	assert.Equal(t, len(h)+8+2, trackErrs[0].Offset)
	assert.Contains(t, trackErrs[0].Error(), "track 0")
}

func TestAlienChunksAreSkipped(t *testing.T) {
	data := file(
		header(1, 1, 96),
		chunk("XFIH", []byte{1, 2, 3}),
		trackOf(ev(0, 0x90, 60, 64), ev(1, 0x80, 60, 0)),
	)

	f, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, f.Tracks, 1)
	assert.Len(t, f.Tracks[0].Notes, 1)
}

func TestTempoLastWriteWins(t *testing.T) {
	data := file(
		header(1, 2, 96),
		trackOf(ev(0, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20)),
		trackOf(ev(0, 0xFF, 0x51, 0x03, 0x0F, 0x42, 0x40)),
	)

	f, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000000), f.Tempo)
	assert.Equal(t, 60.0, f.BPM())
}

func TestNoTempo(t *testing.T) {
	f, err := Decode(file(header(0, 1, 96), trackOf()))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), f.Tempo)
	assert.Equal(t, 0.0, f.BPM())
}

func TestSMPTEDivision(t *testing.T) {
	f, err := Decode(file(header(0, 1, 0xE728), trackOf()))
	require.NoError(t, err)
	assert.True(t, f.Header.IsSMPTE())
	assert.Equal(t, uint16(0), f.Header.TicksPerQuarterNote())
}

func TestTracksDoNotShareState(t *testing.T) {
	data := file(
		header(1, 2, 96),
		trackOf(metaText(0, 0x03, "one"), ev(0, 0x90, 60, 64)),
		// running status must not leak in from the previous track
		trackOf(ev(0, 62, 64)),
	)

	f, err := Decode(data)

	var trackErrs model.TrackErrors
	require.True(t, errors.As(err, &trackErrs))
	assert.Equal(t, 1, trackErrs[0].Track)
	assert.Equal(t, "", f.Tracks[1].Name)
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	require.NoError(t, os.WriteFile(path, file(header(0, 1, 96), trackOf()), 0666))

	f, err := ReadMidiFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Tracks, 1)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	data := file(
		header(1, 2, 480),
		trackOf(metaText(0, 0x03, "low"), ev(0, 0x90, 40, 1), ev(1, 0x80, 40, 0), ev(0, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20)),
		trackOf(metaText(0, 0x03, "high"), ev(0, 0x90, 80, 1), ev(1, 0x80, 80, 0), ev(0, 0x90, 70, 1), ev(1, 0x80, 70, 0)),
	)
	f, err := Decode(data)
	require.NoError(t, err)

	s := Summarize(f, "song.mid")
	assert.Equal(t, model.Summary{
		Filename:   "song.mid",
		Format:     1,
		NumTracks:  2,
		Division:   480,
		Tempo:      500000,
		NumNotes:   3,
		MinKey:     40,
		MaxKey:     80,
		TrackNames: []string{"low", "high"},
	}, s)
}
