package google

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/mkralj/traveltime/internal"
)

type eventOrError struct {
	e   *internal.Event
	err error
}

type eventIterator struct {
	events  chan eventOrError
	current eventOrError
}

func newEventIterator() *eventIterator {
	return &eventIterator{
		events: make(chan eventOrError),
	}
}

func (it *eventIterator) Next() (ok bool) {
	it.current, ok = <-it.events
	if it.current.err != nil {
		return false
	}
	return ok
}

func (it *eventIterator) Event() *internal.Event {
	c := it.current
	if c.e == nil && c.err == nil {
		panic("google: Event() called before Next()")
	}
	return c.e
}

func (it *eventIterator) Err() error {
	return it.current.err
}

func newEvent(event *calendar.Event) *internal.Event {
	if event.Status == "cancelled" {
		return &internal.Event{
			ID:             event.Id,
			ResponseStatus: internal.Cancelled,
		}
	}

	var responseStatus internal.ResponseStatus
	for _, attendee := range event.Attendees {
		if attendee.Self {
			responseStatus = internal.ResponseStatus(attendee.ResponseStatus)
		}
	}

	allDay := event.Start != nil && event.Start.DateTime == ""
	var startsAt, endsAt time.Time
	if allDay {
		startsAt, _ = time.Parse(internal.DateFormat, event.Start.Date)
		endsAt, _ = time.Parse(internal.DateFormat, event.End.Date)
	} else {
		startsAt, _ = time.Parse(time.RFC3339, event.Start.DateTime)
		endsAt, _ = time.Parse(time.RFC3339, event.End.DateTime)
	}

	return &internal.Event{
		ID:             event.Id,
		Summary:        event.Summary,
		Description:    event.Description,
		Location:       event.Location,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		AllDay:         allDay,
		Recurring:      event.RecurringEventId != "",
		CreatedByMe:    event.Creator != nil && event.Creator.Self,
		ResponseStatus: responseStatus,
	}
}

func newGoogleEvent(event *internal.Event) *calendar.Event {
	return &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start: &calendar.EventDateTime{
			DateTime: event.StartsAt.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndsAt.Format(time.RFC3339),
		},
		Reminders: &calendar.EventReminders{
			UseDefault: true,
		},
	}
}
