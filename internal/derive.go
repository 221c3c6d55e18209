package internal

import "time"

// DeriveStatus recomputes the happening/finished flags for ev at now.
// The server copies of these flags are not authoritative. Events whose
// time bounds do not parse read as neither happening nor finished.
func DeriveStatus(ev *Event, now time.Time) {
	ev.IsHappening = false
	ev.IsFinished = false

	start, err := ev.Start()
	if err != nil {
		return
	}
	end, err := ev.End()
	if err != nil {
		return
	}
	ev.IsHappening = now.After(start) && now.Before(end)
	ev.IsFinished = now.After(end)
}

// InvitationStatusOf returns the status userID holds on ev, with
// ok=false when the user was never invited.
func InvitationStatusOf(ev *Event, userID string) (InvitationStatus, bool) {
	for _, inv := range ev.Invitations {
		if inv.UserID == userID {
			return inv.Status, true
		}
	}
	return "", false
}

type InvitationStats struct {
	Confirmed int
	Pending   int
	Declined  int
}

// CountInvitations tallies ev's invitations by status.
func CountInvitations(ev *Event) InvitationStats {
	var stats InvitationStats
	for _, inv := range ev.Invitations {
		switch inv.Status {
		case StatusConfirmed:
			stats.Confirmed++
		case StatusInvited:
			stats.Pending++
		case StatusDeclined:
			stats.Declined++
		}
	}
	return stats
}
