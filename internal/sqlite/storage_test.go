package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Every pooled connection would get its own empty in-memory
	// database; pin the pool to one.
	db.SetMaxOpenConns(1)

	return NewStorage(db)
}

func TestStorage_PutGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "route:Home|Office|driving", "1200", time.Hour))

	value, ok, err := s.Get(ctx, "route:Home|Office|driving")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1200", value)

	_, ok, err = s.Get(ctx, "route:Home|Gym|driving")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStorage_PutOverwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", "old", time.Hour))
	require.NoError(t, s.Put(ctx, "k", "new", time.Hour))

	value, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", value)
}

func TestStorage_Remove(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", "v", time.Hour))
	require.NoError(t, s.Remove(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStorage_EntriesExpire(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "k", "v", time.Hour))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok, "the entry should have aged out")
}

func TestStorage_ZeroTTLNeverExpires(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "auth:google", "token", 0))

	s.now = func() time.Time { return now.AddDate(10, 0, 0) }
	value, ok, err := s.Get(ctx, "auth:google")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token", value)
}

func TestStorage_PurgeExpired(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "a", "1", time.Minute))
	require.NoError(t, s.Put(ctx, "b", "2", time.Hour))
	require.NoError(t, s.Put(ctx, "c", "3", 0))

	s.now = func() time.Time { return now.Add(30 * time.Minute) }
	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, ok, _ := s.Get(ctx, "b")
	require.True(t, ok)
	_, ok, _ = s.Get(ctx, "c")
	require.True(t, ok)
}
