package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key VARCHAR NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER NULL DEFAULT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS kv_expires_at ON kv (expires_at)`,
}
