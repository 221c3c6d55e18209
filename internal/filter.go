package internal

import (
	"fmt"
	"time"
)

// Filter is a client-side view over the in-memory event collection.
// It is a closed enum: every switch over it lists all kinds, so a new
// kind cannot be added without deciding its behavior everywhere.
type Filter int

const (
	FilterAll Filter = iota
	FilterUpcoming
	FilterPast
	FilterToday
	FilterInvited
	FilterConfirmed
	FilterMine
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterUpcoming:
		return "upcoming"
	case FilterPast:
		return "past"
	case FilterToday:
		return "today"
	case FilterInvited:
		return "invited"
	case FilterConfirmed:
		return "confirmed"
	case FilterMine:
		return "mine"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

func ParseFilter(s string) (Filter, error) {
	for _, f := range []Filter{
		FilterAll, FilterUpcoming, FilterPast, FilterToday,
		FilterInvited, FilterConfirmed, FilterMine,
	} {
		if f.String() == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// ServerQuery selects one of the backend's list endpoints.
type ServerQuery string

var (
	QueryAll       ServerQuery = "all"
	QueryUpcoming  ServerQuery = "upcoming"
	QueryInvited   ServerQuery = "invited"
	QueryConfirmed ServerQuery = "confirmed"
)

// Query maps the filter to the server query that backs it. Past, today
// and mine are purely client-side and fetch everything.
func (f Filter) Query() ServerQuery {
	switch f {
	case FilterUpcoming:
		return QueryUpcoming
	case FilterInvited:
		return QueryInvited
	case FilterConfirmed:
		return QueryConfirmed
	case FilterAll, FilterPast, FilterToday, FilterMine:
		return QueryAll
	}
	return QueryAll
}

// Matches reports whether ev belongs to the view seen by userID at now.
func (f Filter) Matches(ev *Event, userID string, now time.Time) bool {
	switch f {
	case FilterAll:
		return true
	case FilterUpcoming:
		start, err := ev.Start()
		return err == nil && start.After(now) && !ev.IsFinished
	case FilterPast:
		return ev.IsFinished
	case FilterToday:
		start, err := ev.Start()
		return err == nil && sameDay(start.In(now.Location()), now)
	case FilterInvited:
		status, ok := InvitationStatusOf(ev, userID)
		return ok && status == StatusInvited
	case FilterConfirmed:
		status, ok := InvitationStatusOf(ev, userID)
		return ok && status == StatusConfirmed
	case FilterMine:
		return ev.CreatorID == userID
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
