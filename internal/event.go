package internal

import "time"

type Event struct {
	ID             string
	Summary        string
	Description    string
	Location       string
	StartsAt       time.Time
	EndsAt         time.Time
	AllDay         bool
	Recurring      bool
	CreatedByMe    bool
	ResponseStatus ResponseStatus
}

// Attending reports whether the user is expected to show up: they own
// the event, accepted it, or answered maybe.
func (e Event) Attending() bool {
	if e.CreatedByMe {
		return true
	}
	switch e.ResponseStatus {
	case Accepted, Tentative:
		return true
	}
	return false
}

type ResponseStatus string

func (s ResponseStatus) String() string {
	return string(s)
}

var (
	NeedsAction ResponseStatus = "needsAction"
	Declined    ResponseStatus = "declined"
	Tentative   ResponseStatus = "tentative"
	Accepted    ResponseStatus = "accepted"
	Cancelled   ResponseStatus = "cancelled"
)
