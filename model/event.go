package model

// Event is one decoded channel event in a track. The concrete type is one of
// NoteOn, NoteOff or Other.
type Event interface {
	// Delta is the number of ticks since the previous event in the same track.
	Delta() uint32
	event()
}

type NoteOn struct {
	Key      uint8  `json:"key"`
	Velocity uint8  `json:"velocity"`
	Ticks    uint32 `json:"delta"`
}

type NoteOff struct {
	Key      uint8  `json:"key"`
	Velocity uint8  `json:"velocity"`
	Ticks    uint32 `json:"delta"`
}

// Other covers aftertouch, control and program change, channel pressure and
// pitch bend. Only its timing matters.
type Other struct {
	Ticks uint32 `json:"delta"`
}

func (e NoteOn) Delta() uint32  { return e.Ticks }
func (e NoteOff) Delta() uint32 { return e.Ticks }
func (e Other) Delta() uint32   { return e.Ticks }

func (NoteOn) event()  {}
func (NoteOff) event() {}
func (Other) event()   {}

// EventKind names the concrete type of e, used for rendering.
func EventKind(e Event) string {
	switch e.(type) {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case Other:
		return "Other"
	}
	return "Unknown"
}
