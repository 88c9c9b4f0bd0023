package model

// Summary is what gets stored per decoded file by the index command.
type Summary struct {
	Filename   string
	RunId      string
	Format     uint16
	NumTracks  uint16
	Division   uint16
	Tempo      uint32
	NumNotes   uint32
	MinKey     uint8
	MaxKey     uint8
	TrackNames []string
	NumErrors  uint16
}

type FileNumToMidiPath = map[uint32]string
