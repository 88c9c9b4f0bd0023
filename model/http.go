package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type EventView struct {
	Kind     string `json:"kind"`
	Key      uint8  `json:"key,omitempty"`
	Velocity uint8  `json:"velocity,omitempty"`
	Delta    uint32 `json:"delta"`
}

type TrackView struct {
	*Track
	Events []EventView `json:"events,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type DecodeResponse struct {
	RequestId string      `json:"request_id"`
	Header    Header      `json:"header"`
	Tempo     uint32      `json:"tempo"`
	BPM       float64     `json:"bpm"`
	Tracks    []TrackView `json:"tracks"`
}

func NewEventView(e Event) EventView {
	v := EventView{Kind: EventKind(e), Delta: e.Delta()}
	switch e := e.(type) {
	case NoteOn:
		v.Key, v.Velocity = e.Key, e.Velocity
	case NoteOff:
		v.Key, v.Velocity = e.Key, e.Velocity
	}
	return v
}

// NewDecodeResponse flattens f for JSON. Events are included only when
// withEvents is set since they dwarf everything else.
func NewDecodeResponse(requestId string, f *File, withEvents bool) DecodeResponse {
	res := DecodeResponse{
		RequestId: requestId,
		Header:    f.Header,
		Tempo:     f.Tempo,
		BPM:       f.BPM(),
		Tracks:    make([]TrackView, 0, len(f.Tracks)),
	}
	for _, t := range f.Tracks {
		tv := TrackView{Track: t}
		if t.Err != nil {
			tv.Error = t.Err.Error()
		}
		if withEvents {
			for _, e := range t.Events {
				tv.Events = append(tv.Events, NewEventView(e))
			}
		}
		res.Tracks = append(res.Tracks, tv)
	}
	return res
}
