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
	`CREATE TABLE IF NOT EXISTS accounts (
		id VARCHAR NOT NULL PRIMARY KEY,
		auth TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR NOT NULL PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sync_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		calendar_id VARCHAR NOT NULL,
		calendar_source VARCHAR NOT NULL,
		success INTEGER NOT NULL,
		failure INTEGER NOT NULL,
		synced_at VARCHAR NOT NULL
	)`,
}
