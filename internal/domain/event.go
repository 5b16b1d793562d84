package domain

import "time"

// CalendarEvent represents an event on the remote calendar. Events are
// created, listed and deleted remotely; they are never mutated locally.
type CalendarEvent struct {
	ID       string // Opaque identifier assigned by the remote calendar
	Title    string
	Start    time.Time
	End      time.Time
	AllDay   bool
	StartRaw string // Provider's literal start value (RFC 3339 or YYYY-MM-DD), used as sort key
}

// FormatStart returns the start for display in the given location:
// "02/01/2006" for all-day events, "02/01/2006 15:04" otherwise.
func (e *CalendarEvent) FormatStart(loc *time.Location) string {
	if e.AllDay {
		return e.Start.Format("02/01/2006")
	}
	return e.Start.In(loc).Format("02/01/2006 15:04")
}
