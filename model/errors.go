package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnexpectedEOF means the input ran out mid-read. Nothing after the
	// truncation point can be trusted, so it aborts the whole decode.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrInvalidMagic means the file does not start with "MThd".
	ErrInvalidMagic    = errors.New("invalid header magic")
	ErrMalformedHeader = errors.New("malformed header")
	ErrSeekOutOfRange  = errors.New("seek out of range")

	// Track level errors. They abort the current track only.
	ErrNoRunningStatus    = errors.New("running status without a previous status byte")
	ErrUnrecognisedStatus = errors.New("unrecognised status byte")
	ErrMalformedVarLen    = errors.New("malformed variable-length quantity")
	ErrMalformedMeta      = errors.New("malformed meta event")
	ErrInvalidChunk       = errors.New("not a track chunk")

	// ErrUnrecognisedMeta is never returned from a decode. Unknown meta
	// events are skipped and recorded as diagnostics.
	ErrUnrecognisedMeta = errors.New("unrecognised meta event")
)

// DecodeError ties an error to the track and absolute byte offset where it
// happened. Track is -1 for errors outside any track.
type DecodeError struct {
	Track  int
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Track < 0 {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("track %d, offset %d: %v", e.Track, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err ends the decode of the whole file rather than
// just the current track.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrInvalidMagic) ||
		errors.Is(err, ErrMalformedHeader)
}

// TrackErrors collects the non-fatal errors of a decode, one per aborted track.
type TrackErrors []*DecodeError

func (te TrackErrors) Error() string {
	msgs := make([]string, len(te))
	for i, e := range te {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d track(s) failed: %s", len(te), strings.Join(msgs, "; "))
}
