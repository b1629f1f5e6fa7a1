// Package records keeps the per-source-event reconciliation state:
// which origin, destination and start time a companion event was
// generated for, and the companion event's id. An entry with an empty
// EventID is a deliberate "no companion event needed" decision.
package records

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mkralj/traveltime/internal"
)

type Record struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EventID     string    `json:"event_id,omitempty"`
}

// Matches reports whether the record still describes the event: same
// origin, same destination, same start time.
func (r Record) Matches(origin, destination string, startsAt time.Time) bool {
	return r.Origin == origin &&
		r.Destination == destination &&
		r.StartsAt.Equal(startsAt)
}

type Store struct {
	kv  internal.KV
	ttl time.Duration
}

func NewStore(kv internal.KV, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Get returns the record for the source event. KV failures and
// payloads that don't decode are reported as not-found, which makes
// the reconciler re-evaluate the event from scratch.
func (s *Store) Get(ctx context.Context, sourceEventID string) (Record, bool) {
	value, ok, err := s.kv.Get(ctx, eventKey(sourceEventID))
	if err != nil || !ok {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

func (s *Store) Put(ctx context.Context, sourceEventID string, rec Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, eventKey(sourceEventID), string(value), s.ttl)
}

func (s *Store) Remove(ctx context.Context, sourceEventID string) {
	_ = s.kv.Remove(ctx, eventKey(sourceEventID))
}

func eventKey(sourceEventID string) string {
	return "event:" + sourceEventID
}
