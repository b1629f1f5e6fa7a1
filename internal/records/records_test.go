package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memKV struct {
	entries map[string]string
	down    bool
}

func newMemKV() *memKV {
	return &memKV{entries: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.down {
		return "", false, errors.New("kv is down")
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

var startsAt = time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(newMemKV(), time.Hour)
	ctx := context.Background()

	rec := Record{
		Origin:      "Home",
		Destination: "Office",
		StartsAt:    startsAt,
		EventID:     "companion-1",
	}
	require.NoError(t, store.Put(ctx, "standup", rec))

	got, ok := store.Get(ctx, "standup")
	require.True(t, ok)
	require.Equal(t, rec.Origin, got.Origin)
	require.Equal(t, rec.Destination, got.Destination)
	require.Equal(t, rec.EventID, got.EventID)
	require.True(t, got.StartsAt.Equal(rec.StartsAt))
}

func TestStore_NoopRecordIsDistinctFromAbsent(t *testing.T) {
	store := NewStore(newMemKV(), time.Hour)
	ctx := context.Background()

	_, ok := store.Get(ctx, "standup")
	require.False(t, ok, "never evaluated")

	require.NoError(t, store.Put(ctx, "standup", Record{
		Origin:      "Home",
		Destination: "Berlin",
		StartsAt:    startsAt,
	}))

	got, ok := store.Get(ctx, "standup")
	require.True(t, ok, "evaluated, deliberately without a companion event")
	require.Empty(t, got.EventID)
}

func TestStore_Remove(t *testing.T) {
	store := NewStore(newMemKV(), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "standup", Record{Origin: "Home"}))
	store.Remove(ctx, "standup")

	_, ok := store.Get(ctx, "standup")
	require.False(t, ok)
}

func TestStore_CorruptPayloadIsAMiss(t *testing.T) {
	kv := newMemKV()
	kv.entries["event:standup"] = "not json"
	store := NewStore(kv, time.Hour)

	_, ok := store.Get(context.Background(), "standup")
	require.False(t, ok)
}

func TestStore_KVFailureIsAMiss(t *testing.T) {
	kv := newMemKV()
	kv.down = true
	store := NewStore(kv, time.Hour)

	_, ok := store.Get(context.Background(), "standup")
	require.False(t, ok)
}

func TestRecord_Matches(t *testing.T) {
	rec := Record{Origin: "Home", Destination: "Office", StartsAt: startsAt}

	require.True(t, rec.Matches("Home", "Office", startsAt))
	require.True(t, rec.Matches("Home", "Office", startsAt.In(time.FixedZone("CET", 3600))), "same instant in another zone still matches")
	require.False(t, rec.Matches("Gym", "Office", startsAt))
	require.False(t, rec.Matches("Home", "Gym", startsAt))
	require.False(t, rec.Matches("Home", "Office", startsAt.Add(30*time.Minute)))
}
