package internal

import "fmt"

// Account holds the auth blob for one calendar platform, as stored by
// the configure flow.
type Account struct {
	Platform string
	Name     string
	Auth     string
}

func (a Account) ID() string {
	return a.Platform + "/" + a.Name
}

// DeviceCalendar is one calendar on the target platform as reported by
// a Gateway. Source is the human-readable provider label used for
// ranking and UX messages, e.g. "Samsung Calendar".
type DeviceCalendar struct {
	ID       string
	Title    string
	Source   string
	Writable bool
	Color    string
}

func (c DeviceCalendar) String() string {
	return c.Source + "/" + c.Title
}

// CalendarSelection is the calendar chosen for the current sync
// session. It lives in memory for the lifetime of one coordinator; a
// new session re-resolves it.
type CalendarSelection struct {
	CalendarID string
	Source     string
}

// SyncResult aggregates one sync invocation over a batch of events.
// It is created fresh per call and not mutated after being returned.
type SyncResult struct {
	Success int
	Failure int
	Source  string
}

func (r SyncResult) Summary() string {
	if r.Success == 0 && r.Failure == 0 {
		return "no events to sync"
	}
	if r.Failure == 0 {
		return fmt.Sprintf("%d event(s) added to %s", r.Success, r.Source)
	}
	return fmt.Sprintf("%d event(s) added to %s, %d failed", r.Success, r.Source, r.Failure)
}
