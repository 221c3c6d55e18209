// Package sqlite persists platform accounts, client settings and the
// sync run history. Calendar selections are deliberately not stored;
// every session resolves its target again.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitorsousa/repcal/internal"
)

const DriverName = "sqlite3"

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

func (s Storage) AddAccount(ctx context.Context, account *internal.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, auth) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET auth=?;
	`, account.ID(), account.Auth, account.Auth)
	return err
}

// Account loads the stored auth blob for platform/name. An unknown
// account comes back with an empty Auth rather than an error.
func (s Storage) Account(ctx context.Context, platform, name string) (*internal.Account, error) {
	acc := internal.Account{Platform: platform, Name: name}

	err := s.db.GetContext(ctx, &acc.Auth, `
		SELECT auth FROM accounts WHERE id = ?
	`, acc.ID())
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	return &acc, err
}

// FirstAccount returns the stored account for platform, if any.
func (s Storage) FirstAccount(ctx context.Context, platform string) (*internal.Account, error) {
	var row accountRow

	err := s.db.GetContext(ctx, &row, `
		SELECT id, auth FROM accounts WHERE id LIKE ? ORDER BY id LIMIT 1
	`, platform+"/%")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Convert(), nil
}

func (s Storage) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=?;
	`, key, value, value)
	return err
}

func (s Storage) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `
		SELECT value FROM settings WHERE key = ?
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	return value, err
}

// RecordRun appends one completed sync to the history.
func (s Storage) RecordRun(ctx context.Context, res internal.SyncResult, calendarID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, calendar_id, calendar_source, success, failure, synced_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), calendarID, res.Source, res.Success, res.Failure, at.UTC().Format(time.RFC3339))
	return err
}

// RecentRuns lists the newest entries of the history, newest first.
func (s Storage) RecentRuns(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []SyncRun
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, calendar_id, calendar_source, success, failure, synced_at
		FROM sync_runs
		ORDER BY synced_at DESC
		LIMIT ?
	`, limit)
	return runs, err
}
