package domain

import "time"

// Request is one parsed inbound command, constructed fresh per message
// and discarded after execution.
type Request interface {
	isRequest()
}

// AddEvent creates a new event. For all-day events End is the exclusive
// next calendar date; for timed events End defaults to Start + 1h.
type AddEvent struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// ListEvents lists the events of one calendar month.
type ListEvents struct {
	Month int
	Year  int
}

// DeleteEvent deletes the Nth entry (1-based) of the last listing.
type DeleteEvent struct {
	Position int
}

// Help requests the static usage text.
type Help struct{}

func (AddEvent) isRequest()    {}
func (ListEvents) isRequest()  {}
func (DeleteEvent) isRequest() {}
func (Help) isRequest()        {}
