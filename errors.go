package raptor

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a malformed query or malformed timetable and
// footpath inputs, signalled before round 1 begins. Use errors.Is to
// test for it; the wrapped message carries the offending detail.
var ErrInvalidInput = errors.New("raptor: invalid input")

// ErrInconsistentTimetable marks a data-integrity fault: the round
// engine reached a stop on a trip that records no arrival there.
// *InconsistentTimetableError matches it via errors.Is.
var ErrInconsistentTimetable = errors.New("raptor: inconsistent timetable")

// InconsistentTimetableError reports the data-integrity fault of the
// round engine reaching a stop on a trip that has no recorded arrival
// there.
type InconsistentTimetableError struct {
	Trip TripID
	Stop StopID
}

func (e *InconsistentTimetableError) Error() string {
	return fmt.Sprintf("raptor: trip %d has no recorded arrival at stop %d", e.Trip, e.Stop)
}

// Is reports whether target is ErrInconsistentTimetable, so callers can
// use errors.Is(err, raptor.ErrInconsistentTimetable) instead of a type
// assertion when they only care about the error kind.
func (e *InconsistentTimetableError) Is(target error) bool {
	return target == ErrInconsistentTimetable
}
