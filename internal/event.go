package internal

import "time"

// Event is one republic event as served by the backend. StartsAt and
// EndsAt keep the backend's RFC3339 wire form; they are parsed on use
// so a bad timestamp degrades the single event instead of the whole
// collection.
type Event struct {
	ID           int64
	Title        string
	Description  string
	Location     string
	StartsAt     string
	EndsAt       string
	RepublicID   int64
	RepublicName string
	CreatorID    string
	CreatorName  string
	Invitations  []Invitation
	IsHappening  bool
	IsFinished   bool
	CreatedAt    string
}

func (e Event) Start() (time.Time, error) {
	return time.Parse(time.RFC3339, e.StartsAt)
}

func (e Event) End() (time.Time, error) {
	return time.Parse(time.RFC3339, e.EndsAt)
}

func (e Event) String() string {
	return e.Title
}

// EventForm carries the user-editable fields for create and update.
type EventForm struct {
	Title       string
	Description string
	Location    string
	StartsAt    string
	EndsAt      string
	RepublicID  int64
}

// Invitation is one user's standing invitation to an event. UserID is
// unique within a single event's invitation list.
type Invitation struct {
	UserID         string
	UserName       string
	UserEmail      string
	ProfilePicture *string
	Status         InvitationStatus
}

type InvitationStatus string

func (s InvitationStatus) String() string {
	return string(s)
}

var (
	StatusInvited   InvitationStatus = "INVITED"
	StatusConfirmed InvitationStatus = "CONFIRMED"
	StatusDeclined  InvitationStatus = "DECLINED"
)
