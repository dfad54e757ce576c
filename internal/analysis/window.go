// Package analysis implements the metrics and recommendation engine.
// Every entry point is a pure function of its input records plus an
// explicit reference time; nothing here reads the wall clock or keeps
// state between calls.
package analysis

import (
	"time"

	"finadvisor/internal/core"
)

// Window is an inclusive calendar-date range used as the reporting period.
type Window struct {
	Start core.Date
	End   core.Date
}

// PreviousMonth returns the default reporting window: the full calendar
// month before the one containing ref. The monthly cadence is a product
// decision; callers needing a different period build a Window directly.
func PreviousMonth(ref time.Time) Window {
	firstOfCurrent := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	return Window{
		Start: core.NewDate(lastOfPrevious.Year(), int(lastOfPrevious.Month()), 1),
		End:   core.DateOf(lastOfPrevious),
	}
}

// Contains reports whether the date falls inside the window, both ends
// inclusive.
func (w Window) Contains(d core.Date) bool {
	return !d.Before(w.Start.Time) && !d.After(w.End.Time)
}

// Label returns the window's year-month label when it spans a single
// calendar month, otherwise start..end in ISO form.
func (w Window) Label() string {
	if w.Start.Year() == w.End.Year() && w.Start.Month() == w.End.Month() {
		return w.Start.Period()
	}
	return w.Start.ISO() + ".." + w.End.ISO()
}
