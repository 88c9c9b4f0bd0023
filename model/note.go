package model

type Note struct {
	Key       uint8  `json:"key"`
	Velocity  uint8  `json:"velocity"`
	StartTime uint32 `json:"start_time"`
	// NOTE: ticks between the note-on and its matching note-off
	Duration uint32 `json:"duration"`
}
