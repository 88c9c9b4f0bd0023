package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/smfnotes/model"
)

// render writes f in the plain text layout of the decode command.
func render(w io.Writer, f *model.File, withEvents bool) {
	h := f.Header
	fmt.Fprintf(w, "File ID: %s header length: %d format: %d tracks: %d division: %d\n",
		h.ID[:], h.Length, h.Format, h.NumTracks, h.Division)
	if f.Tempo != 0 {
		fmt.Fprintf(w, "Tempo: %d (%gbpm)\n", f.Tempo, f.BPM())
	}

	for i, t := range f.Tracks {
		fmt.Fprintf(w, "\n-------- TRACK %d --------\n", i)
		if t.Name != "" {
			fmt.Fprintf(w, "Name: %s\n", t.Name)
		}
		if t.Instrument != "" {
			fmt.Fprintf(w, "Instrument: %s\n", t.Instrument)
		}
		fmt.Fprintf(w, "Keys: %d-%d\n", t.MinKey, t.MaxKey)

		if withEvents {
			fmt.Fprintf(w, "Events: %d\n", len(t.Events))
			for _, e := range t.Events {
				v := model.NewEventView(e)
				switch e.(type) {
				case model.NoteOn, model.NoteOff:
					fmt.Fprintf(w, "\t%s key: %d velocity: %d delta: %d\n", v.Kind, v.Key, v.Velocity, v.Delta)
				default:
					fmt.Fprintf(w, "\t%s delta: %d\n", v.Kind, v.Delta)
				}
			}
		}

		fmt.Fprintf(w, "Notes: %d\n", len(t.Notes))
		for _, n := range t.Notes {
			fmt.Fprintf(w, "\tkey: %d velocity: %d start: %d duration: %d\n", n.Key, n.Velocity, n.StartTime, n.Duration)
		}

		for _, d := range t.Diagnostics {
			fmt.Fprintf(w, "\t[%d] %s: %s\n", d.Offset, d.Name, d.Value)
		}
		if t.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", t.Err)
		}
	}
}
