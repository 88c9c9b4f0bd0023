package model

// DefaultKeyBound is where MinKey and MaxKey start before any note closes.
const DefaultKeyBound = 64

type Track struct {
	Name        string       `json:"name,omitempty"`
	Instrument  string       `json:"instrument,omitempty"`
	Events      []Event      `json:"-"`
	Notes       []Note       `json:"notes"`
	MinKey      uint8        `json:"min_key"`
	MaxKey      uint8        `json:"max_key"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Err is set when the track was cut short by a decode error. Events and
	// Notes then hold whatever was decoded before it.
	Err error `json:"-"`
}

func NewTrack() *Track {
	return &Track{MinKey: DefaultKeyBound, MaxKey: DefaultKeyBound}
}

// Diagnostic records a meta event that is kept for display only.
type Diagnostic struct {
	Offset int    `json:"offset"`
	Meta   uint8  `json:"meta"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}
