// Package planner scans the user's calendars in chronological order
// and keeps a dedicated calendar of companion events that block out
// the commute before each event at a new location.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mkralj/traveltime/internal"
	"github.com/mkralj/traveltime/internal/records"
)

var ErrPlanning = errors.New("an error occoured while planning, check the logs")

type (
	Calendar = internal.Calendar
	Event    = internal.Event
)

// Resolver is the routing side of the planner. Implemented by
// routes.Resolver; declared here so tests can count lookups.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination string, arrival time.Time, mode internal.TransportMode) (time.Duration, bool)
}

// RecordStore is the reconciliation state kept between runs, one
// record per source event that ever produced a routing decision.
type RecordStore interface {
	Get(ctx context.Context, sourceEventID string) (records.Record, bool)
	Put(ctx context.Context, sourceEventID string, rec records.Record) error
	Remove(ctx context.Context, sourceEventID string)
}

type Planner struct {
	output   io.Writer
	provider internal.Provider
	routes   Resolver
	records  RecordStore

	Mode          internal.TransportMode
	Staleness     time.Duration
	MaxCommute    time.Duration
	CalendarName  string
	SkipCalendars []string
}

func New(output io.Writer, provider internal.Provider, resolver Resolver, recs RecordStore) *Planner {
	if output == nil {
		output = os.Stdout
	}
	return &Planner{
		output:   output,
		provider: provider,
		routes:   resolver,
		records:  recs,

		Mode:         internal.ModeDriving,
		Staleness:    4 * time.Hour,
		MaxCommute:   5 * time.Hour,
		CalendarName: "Travel time",
	}
}

// Window returns the default scan range around now: from yesterday
// through the Sunday after next.
func Window(now time.Time) (from, to time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return today.AddDate(0, 0, -1), today.AddDate(0, 0, 15-weekday)
}

// Run performs one full pass: make sure the companion calendar
// exists, gather every event in [from, to) from the other calendars,
// and reconcile them in start order. Failing to set up the companion
// calendar is fatal; anything that goes wrong for a single event only
// skips that event.
func (p *Planner) Run(ctx context.Context, from, to time.Time) error {
	companion, err := p.provider.EnsureCalendar(ctx, p.CalendarName)
	if err != nil {
		return fmt.Errorf("unable to set up %q calendar: %w", p.CalendarName, err)
	}

	events, err := p.collect(ctx, companion, from, to)
	if err != nil {
		return err
	}
	return p.scan(ctx, companion, events)
}

func (p *Planner) collect(ctx context.Context, companion *Calendar, from, to time.Time) ([]*Event, error) {
	cals, err := p.provider.Calendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list calendars: %w", err)
	}

	var events []*Event
	for _, cal := range cals {
		if cal.ID == companion.ID || p.skipped(cal) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		it, err := p.provider.Events(ctx, cal, from, to)
		if err != nil {
			logf(p.output, cal, "Unable to get events: %v", err)
			continue
		}
		for it.Next() {
			events = append(events, it.Event())
		}
		if err := it.Err(); err != nil {
			logf(p.output, cal, "Unable to get events: %v", err)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
	return events, nil
}

func (p *Planner) scan(ctx context.Context, companion *Calendar, events []*Event) error {
	track := newTracker(p.Staleness)

	var foundErr bool
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		origin, ok := track.Observe(event)
		if event.AllDay || !ok {
			continue
		}
		if event.Recurring {
			// Occurrence ids aren't stable, so staleness tracking
			// would misfire on these.
			continue
		}

		if err := p.reconcile(ctx, companion, origin, event); err != nil {
			foundErr = true
		}
	}
	if foundErr {
		return ErrPlanning
	}
	return nil
}

// reconcile brings the companion calendar in line with one source
// event: create a companion event, replace a stale one, or do
// nothing. The steady state on repeated runs is the unchanged-record
// short circuit at the top.
func (p *Planner) reconcile(ctx context.Context, companion *Calendar, origin string, event *Event) error {
	destination := event.Location

	if rec, ok := p.records.Get(ctx, event.ID); ok {
		if rec.Matches(origin, destination, event.StartsAt) {
			return nil
		}
		if rec.EventID != "" {
			logf(p.output, companion, "Deleting stale event %s for %q", rec.EventID, event.Summary)
			if err := p.provider.DeleteEvent(ctx, companion, rec.EventID); err != nil {
				logf(p.output, companion, "Unable to delete event %s: %v", rec.EventID, err)
				return err
			}
		}
		p.records.Remove(ctx, event.ID)
	}

	if destination == "" || destination == origin {
		return nil
	}
	if !event.Attending() {
		return nil
	}

	duration, ok := p.routes.Resolve(ctx, origin, destination, event.StartsAt, p.Mode)
	if !ok {
		// No route (or the lookup failed); leave no record so the
		// event is retried on the next run.
		return nil
	}

	if duration > p.MaxCommute {
		logf(p.output, companion, "Commute %s -> %s takes %s, too long for %q", origin, destination, duration, event.Summary)
		return p.records.Put(ctx, event.ID, records.Record{
			Origin:      origin,
			Destination: destination,
			StartsAt:    event.StartsAt,
		})
	}

	title := internal.DurationText(duration, p.Mode)
	created, err := p.provider.CreateEvent(ctx, companion, &internal.Event{
		Summary: title,
		Description: strings.Join([]string{
			"Commute time",
			"From: " + origin,
			"To: " + destination,
			title,
		}, "\n"),
		StartsAt: event.StartsAt.Add(-duration),
		EndsAt:   event.StartsAt,
	})
	if err != nil {
		logf(p.output, companion, "Unable to create event for %q: %v", event.Summary, err)
		return err
	}
	logf(p.output, companion, "Created event %s: %q before %q on %s", created.ID, title, event.Summary, formatDateTime(event.StartsAt))

	err = p.records.Put(ctx, event.ID, records.Record{
		Origin:      origin,
		Destination: destination,
		StartsAt:    event.StartsAt,
		EventID:     created.ID,
	})
	if err != nil {
		logf(p.output, companion, "Unable to save record for %q: %v", event.Summary, err)

		// Let's remove the event again as we couldn't save the record,
		// this avoids that the next run duplicates it.
		_ = p.provider.DeleteEvent(ctx, companion, created.ID)
		return err
	}
	return nil
}

func (p *Planner) skipped(cal *Calendar) bool {
	for _, name := range p.SkipCalendars {
		if cal.Name == name || cal.ID == name {
			return true
		}
	}
	return false
}
