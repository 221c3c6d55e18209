package sqlite

import (
	"strings"

	"github.com/vitorsousa/repcal/internal"
)

type accountRow struct {
	ID   string
	Auth string
}

func (r accountRow) Convert() *internal.Account {
	acc := internal.Account{Auth: r.Auth}
	acc.Platform, acc.Name, _ = strings.Cut(r.ID, "/")
	return &acc
}

// SyncRun is one recorded sync invocation.
type SyncRun struct {
	ID         string `db:"id"`
	CalendarID string `db:"calendar_id"`
	Source     string `db:"calendar_source"`
	Success    int    `db:"success"`
	Failure    int    `db:"failure"`
	SyncedAt   string `db:"synced_at"`
}
