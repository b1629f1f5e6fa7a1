package planner

import (
	"time"

	"github.com/mkralj/traveltime/internal"
)

// tracker keeps the user's last known location while walking the
// event list in chronological order. The invariant is that location
// and lastSeen are either both set or both empty.
type tracker struct {
	staleness time.Duration

	location string
	lastSeen time.Time

	prevLocation string
	prevEnd      time.Time
}

func newTracker(staleness time.Duration) *tracker {
	return &tracker{staleness: staleness}
}

// Observe must be called exactly once per event, in ascending start
// order. It returns the likely origin for the event, or ok=false when
// no trusted origin is known. All-day events feed the bookkeeping but
// never yield an origin and never reset the tracker.
func (t *tracker) Observe(e *internal.Event) (origin string, ok bool) {
	if t.prevLocation != "" {
		t.location = t.prevLocation
		t.lastSeen = t.prevEnd
	}
	t.prevLocation, t.prevEnd = e.Location, e.EndsAt

	if e.AllDay {
		return "", false
	}

	// Too long since the user was seen at the last location; they
	// could be anywhere by now.
	if t.location != "" && e.StartsAt.Sub(t.lastSeen) >= t.staleness {
		t.location = ""
		t.lastSeen = time.Time{}
	}
	return t.location, t.location != ""
}
