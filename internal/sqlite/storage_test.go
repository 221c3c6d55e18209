package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorsousa/repcal/internal"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStorage(db)
}

func TestAccounts(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	acc, err := storage.Account(ctx, "google", "ana@example.com")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if acc.Auth != "" {
		t.Errorf("unknown account has auth %q", acc.Auth)
	}

	err = storage.AddAccount(ctx, &internal.Account{Platform: "google", Name: "ana@example.com", Auth: "token-1"})
	if err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	// Re-adding replaces the auth blob.
	err = storage.AddAccount(ctx, &internal.Account{Platform: "google", Name: "ana@example.com", Auth: "token-2"})
	if err != nil {
		t.Fatalf("AddAccount again: %v", err)
	}

	acc, err = storage.Account(ctx, "google", "ana@example.com")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if acc.Auth != "token-2" {
		t.Errorf("auth = %q, want the replacement", acc.Auth)
	}
}

func TestFirstAccount(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	acc, err := storage.FirstAccount(ctx, "google")
	if err != nil {
		t.Fatalf("FirstAccount: %v", err)
	}
	if acc != nil {
		t.Errorf("FirstAccount on empty db = %+v", acc)
	}

	if err := storage.AddAccount(ctx, &internal.Account{Platform: "google", Name: "ana@example.com", Auth: "t"}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if err := storage.AddAccount(ctx, &internal.Account{Platform: "outlook", Name: "bob@example.com", Auth: "x"}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}

	acc, err = storage.FirstAccount(ctx, "google")
	if err != nil {
		t.Fatalf("FirstAccount: %v", err)
	}
	if acc == nil || acc.Platform != "google" || acc.Name != "ana@example.com" {
		t.Errorf("FirstAccount = %+v", acc)
	}
}

func TestSettings(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	value, err := storage.Setting(ctx, "api_url")
	if err != nil {
		t.Fatalf("Setting: %v", err)
	}
	if value != "" {
		t.Errorf("unset key has value %q", value)
	}

	if err := storage.SetSetting(ctx, "api_url", "https://api.example.com"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := storage.SetSetting(ctx, "api_url", "https://api2.example.com"); err != nil {
		t.Fatalf("SetSetting again: %v", err)
	}

	value, err = storage.Setting(ctx, "api_url")
	if err != nil {
		t.Fatalf("Setting: %v", err)
	}
	if value != "https://api2.example.com" {
		t.Errorf("value = %q", value)
	}
}

func TestSyncRunHistory(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	runs, err := storage.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("empty history has %d runs", len(runs))
	}

	base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		res := internal.SyncResult{Success: i + 1, Failure: i, Source: "Google Calendar"}
		if err := storage.RecordRun(ctx, res, "cal-1", base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err = storage.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].Success != 3 || runs[1].Success != 2 {
		t.Errorf("runs = %+v", runs)
	}
	if runs[0].SyncedAt != "2024-03-15T14:00:00Z" {
		t.Errorf("synced_at = %q", runs[0].SyncedAt)
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids are not unique")
	}
}
