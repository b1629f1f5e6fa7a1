package internal

import (
	"context"
	"time"
)

type Mux interface {
	Get(platform string) (Provider, error)
}

type Provider interface {
	Login(_ context.Context, prompt func(authURL string)) ([]byte, error)
	Calendars(context.Context) ([]*Calendar, error)
	EnsureCalendar(_ context.Context, name string) (*Calendar, error)
	Events(_ context.Context, _ *Calendar, from, to time.Time) (Iterator, error)
	CreateEvent(_ context.Context, _ *Calendar, _ *Event) (*Event, error)
	// DeleteEvent must treat an already-deleted event as success.
	DeleteEvent(_ context.Context, _ *Calendar, id string) error
}

type Iterator interface {
	Next() bool
	Event() *Event
	Err() error
}
