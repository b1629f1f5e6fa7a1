package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const DriverName = "sqlite3"

type Storage struct {
	db *sqlx.DB

	// now is swappable so expiry can be tested deterministically.
	now func() time.Time
}

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db:  sqlx.NewDb(db, DriverName),
		now: time.Now,
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

func (s Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.db.GetContext(ctx, &e, `
		SELECT value, expires_at FROM kv WHERE key = ?
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if e.Expired(s.now()) {
		_ = s.Remove(ctx, key)
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s Storage) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(ttl).Unix(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at
	`, key, value, expiresAt)
	return err
}

func (s Storage) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM kv WHERE key = ?
	`, key)
	return err
}

// PurgeExpired drops entries whose expiry has passed. Expiry is
// otherwise enforced lazily on Get.
func (s Storage) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?
	`, s.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
