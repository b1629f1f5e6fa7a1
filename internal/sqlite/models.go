package sqlite

import (
	"database/sql"
	"time"
)

type entry struct {
	Value     string        `db:"value"`
	ExpiresAt sql.NullInt64 `db:"expires_at"`
}

func (e entry) Expired(now time.Time) bool {
	return e.ExpiresAt.Valid && e.ExpiresAt.Int64 <= now.Unix()
}
