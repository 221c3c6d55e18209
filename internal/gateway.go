package internal

import (
	"context"
)

type Mux interface {
	Get(platform string) (Gateway, error)
}

// Gateway is the write-side abstraction over one calendar platform.
// Implementations own no state; they translate Events into platform
// calls.
type Gateway interface {
	// RequestAccess reports whether the platform grants calendar
	// access. Denial and failure both read as false; it never returns
	// an error.
	RequestAccess(ctx context.Context) bool
	// Calendars enumerates the platform's calendars. Missing access
	// yields an empty list.
	Calendars(ctx context.Context) ([]DeviceCalendar, error)
	// CreateEvent writes ev into the calendar identified by calendarID
	// and returns the platform's id for the new entry.
	CreateEvent(ctx context.Context, calendarID string, ev *Event) (string, error)
}

// EventsAPI is the backend boundary the event store talks to.
type EventsAPI interface {
	Events(_ context.Context, q ServerQuery) ([]Event, error)
	EventByID(_ context.Context, id int64) (*Event, error)
	CreateEvent(_ context.Context, form *EventForm) (*Event, error)
	UpdateEvent(_ context.Context, id int64, form *EventForm) (*Event, error)
	DeleteEvent(_ context.Context, id int64) error
	InviteUsers(_ context.Context, id int64, userIDs []string) error
	Respond(_ context.Context, id int64, userID string, status InvitationStatus) (*Event, error)
}
