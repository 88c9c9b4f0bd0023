package midi

import (
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/util"
)

// Summarize reduces a decoded file to what the index stores about it.
func Summarize(f *model.File, filename string) model.Summary {
	s := model.Summary{
		Filename:  filename,
		Format:    f.Header.Format,
		NumTracks: uint16(len(f.Tracks)),
		Division:  f.Header.Division,
		Tempo:     f.Tempo,
		MinKey:    model.DefaultKeyBound,
		MaxKey:    model.DefaultKeyBound,
	}

	var seen bool
	for _, t := range f.Tracks {
		if t.Name != "" {
			s.TrackNames = append(s.TrackNames, t.Name)
		}
		if t.Err != nil {
			s.NumErrors++
		}
		if len(t.Notes) == 0 {
			continue
		}
		s.NumNotes += uint32(len(t.Notes))
		if !seen {
			s.MinKey, s.MaxKey = t.MinKey, t.MaxKey
			seen = true
			continue
		}
		s.MinKey = util.Min(s.MinKey, t.MinKey)
		s.MaxKey = util.Max(s.MaxKey, t.MaxKey)
	}
	return s
}
