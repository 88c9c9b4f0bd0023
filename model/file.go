package model

// MicrosecondsPerMinute is the numerator for tempo to BPM conversion.
const MicrosecondsPerMinute = 60_000_000

var HeaderMagic = [4]byte{'M', 'T', 'h', 'd'}
var TrackMagic = [4]byte{'M', 'T', 'r', 'k'}

type Header struct {
	ID        [4]byte `json:"-"`
	Length    uint32  `json:"length"`
	Format    uint16  `json:"format"`
	NumTracks uint16  `json:"num_tracks"`
	Division  uint16  `json:"division"`
}

// IsSMPTE reports whether Division is an SMPTE frame rate rather than ticks
// per quarter note.
func (h Header) IsSMPTE() bool {
	return h.Division&0x8000 != 0
}

func (h Header) TicksPerQuarterNote() uint16 {
	if h.IsSMPTE() {
		return 0
	}
	return h.Division
}

type File struct {
	Header Header   `json:"header"`
	Tracks []*Track `json:"tracks"`

	// Tempo is in microseconds per quarter note, 0 when the file never sets
	// one. The last SetTempo event in the file wins.
	Tempo uint32 `json:"tempo"`
}

func (f *File) BPM() float64 {
	if f.Tempo == 0 {
		return 0
	}
	return MicrosecondsPerMinute / float64(f.Tempo)
}

func (f *File) NumNotes() int {
	var n int
	for _, t := range f.Tracks {
		n += len(t.Notes)
	}
	return n
}
