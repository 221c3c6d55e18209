package internal

import (
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{
		FilterAll, FilterUpcoming, FilterPast, FilterToday,
		FilterInvited, FilterConfirmed, FilterMine,
	} {
		got, err := ParseFilter(f.String())
		if err != nil {
			t.Fatalf("ParseFilter(%q): %v", f, err)
		}
		if got != f {
			t.Errorf("ParseFilter(%q) = %v", f, got)
		}
	}

	if _, err := ParseFilter("bogus"); err == nil {
		t.Error("ParseFilter(bogus) did not fail")
	}
}

func TestFilterQuery(t *testing.T) {
	tests := []struct {
		filter Filter
		want   ServerQuery
	}{
		{FilterAll, QueryAll},
		{FilterUpcoming, QueryUpcoming},
		{FilterInvited, QueryInvited},
		{FilterConfirmed, QueryConfirmed},
		{FilterPast, QueryAll},
		{FilterToday, QueryAll},
		{FilterMine, QueryAll},
	}
	for _, tt := range tests {
		if got := tt.filter.Query(); got != tt.want {
			t.Errorf("%v.Query() = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestFilterMatchesToday(t *testing.T) {
	// Any time of day counts, only the calendar day matters.
	tests := []struct {
		startsAt string
		want     bool
	}{
		{"2024-03-15T00:00:01Z", true},
		{"2024-03-15T23:59:00Z", true},
		{"2024-03-16T00:00:01Z", false},
		{"2024-03-14T23:59:00Z", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		ev := Event{StartsAt: tt.startsAt, EndsAt: "2024-03-17T00:00:00Z"}
		if got := FilterToday.Matches(&ev, "u1", now); got != tt.want {
			t.Errorf("today.Matches(start=%s) = %v, want %v", tt.startsAt, got, tt.want)
		}
	}
}

func TestFilterMatchesMine(t *testing.T) {
	mine := Event{CreatorID: "u1", Invitations: []Invitation{{UserID: "u2", Status: StatusConfirmed}}}
	other := Event{CreatorID: "u2", Invitations: []Invitation{{UserID: "u1", Status: StatusConfirmed}}}

	if !FilterMine.Matches(&mine, "u1", now) {
		t.Error("mine did not match the creator's own event")
	}
	// An invitation is not ownership.
	if FilterMine.Matches(&other, "u1", now) {
		t.Error("mine matched an event the user was only invited to")
	}
}

func TestFilterMatchesInvitationViews(t *testing.T) {
	ev := Event{
		Invitations: []Invitation{
			{UserID: "u1", Status: StatusInvited},
			{UserID: "u2", Status: StatusConfirmed},
		},
	}

	if !FilterInvited.Matches(&ev, "u1", now) {
		t.Error("invited did not match a pending invitation")
	}
	if FilterInvited.Matches(&ev, "u2", now) {
		t.Error("invited matched a confirmed invitation")
	}
	if !FilterConfirmed.Matches(&ev, "u2", now) {
		t.Error("confirmed did not match a confirmed invitation")
	}
	if FilterConfirmed.Matches(&ev, "u3", now) {
		t.Error("confirmed matched a user with no invitation")
	}
}

func TestFilterUpcomingAndPast(t *testing.T) {
	tomorrow := Event{ID: 1, StartsAt: rfc3339(now.Add(24 * time.Hour)), EndsAt: rfc3339(now.Add(26 * time.Hour))}
	yesterday := Event{ID: 2, StartsAt: rfc3339(now.Add(-26 * time.Hour)), EndsAt: rfc3339(now.Add(-24 * time.Hour))}
	DeriveStatus(&tomorrow, now)
	DeriveStatus(&yesterday, now)

	if !FilterUpcoming.Matches(&tomorrow, "u1", now) || FilterUpcoming.Matches(&yesterday, "u1", now) {
		t.Error("upcoming view is wrong")
	}
	if !FilterPast.Matches(&yesterday, "u1", now) || FilterPast.Matches(&tomorrow, "u1", now) {
		t.Error("past view is wrong")
	}
}
