// Package store holds the in-memory source of truth for the current
// user's events, kept consistent with the backend after every call.
package store

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/vitorsousa/repcal/internal"
)

type (
	Event  = internal.Event
	Filter = internal.Filter
)

// State is the store's fetch lifecycle: Idle until the first Fetch,
// then Loading and finally Ready or Errored.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateErrored
)

// Store owns one in-memory event collection. Instances are created per
// consumer and never shared; callers serialize their own calls (rapid
// double-invocation is last-write-wins).
type Store struct {
	output io.Writer
	api    internal.EventsAPI
	userID string

	now func() time.Time

	state  State
	events []Event
	filter Filter
	errMsg string
}

func New(output io.Writer, api internal.EventsAPI, userID string) *Store {
	if output == nil {
		output = os.Stdout
	}
	return &Store{
		output: output,
		api:    api,
		userID: userID,
		now:    time.Now,
		events: []Event{},
	}
}

// Fetch refreshes the whole collection from the backend and returns
// the view for f. A fetch failure keeps the previous collection and is
// recorded on the store instead of returned; re-fetching retries.
func (s *Store) Fetch(ctx context.Context, f Filter) []Event {
	s.state = StateLoading
	s.errMsg = ""

	events, err := s.api.Events(ctx, f.Query())
	if err != nil {
		logf(s.output, "unable to fetch events: %v", err)
		s.state = StateErrored
		s.errMsg = err.Error()
		return s.Apply(f)
	}

	now := s.now()
	for i := range events {
		internal.DeriveStatus(&events[i], now)
	}
	s.events = events
	s.state = StateReady
	return s.Apply(f)
}

// Apply switches the current view to f without touching the network.
func (s *Store) Apply(f Filter) []Event {
	s.filter = f
	return s.Filtered(f)
}

// Filtered computes the view for f over the current collection,
// leaving the store's own filter alone.
func (s *Store) Filtered(f Filter) []Event {
	now := s.now()
	view := []Event{}
	for i := range s.events {
		if f.Matches(&s.events[i], s.userID, now) {
			view = append(view, s.events[i])
		}
	}
	return view
}

// Create posts the form and upserts the server's answer, so an id that
// raced into the collection through another call is replaced rather
// than duplicated.
func (s *Store) Create(ctx context.Context, form *internal.EventForm) (*Event, error) {
	created, err := s.api.CreateEvent(ctx, form)
	if err != nil {
		logf(s.output, "unable to create event: %v", err)
		return nil, err
	}
	internal.DeriveStatus(created, s.now())
	s.upsert(*created)
	return created, nil
}

func (s *Store) Update(ctx context.Context, id int64, form *internal.EventForm) (*Event, error) {
	updated, err := s.api.UpdateEvent(ctx, id, form)
	if err != nil {
		logf(s.output, "unable to update event %d: %v", id, err)
		return nil, err
	}
	internal.DeriveStatus(updated, s.now())
	s.upsert(*updated)
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		logf(s.output, "unable to delete event %d: %v", id, err)
		return err
	}
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	return nil
}

// Respond sets the current answer of userID's invitation on event id.
// Every transition between INVITED, CONFIRMED and DECLINED is allowed;
// the last answer wins.
func (s *Store) Respond(ctx context.Context, id int64, userID string, status internal.InvitationStatus) (*Event, error) {
	updated, err := s.api.Respond(ctx, id, userID, status)
	if err != nil {
		logf(s.output, "unable to respond to event %d: %v", id, err)
		return nil, err
	}
	internal.DeriveStatus(updated, s.now())
	s.upsert(*updated)
	return updated, nil
}

// Invite posts the invitations and then re-reads the event: the invite
// answer is not trusted to carry the full updated invitation list.
func (s *Store) Invite(ctx context.Context, id int64, userIDs []string) (*Event, error) {
	if err := s.api.InviteUsers(ctx, id, userIDs); err != nil {
		logf(s.output, "unable to invite users to event %d: %v", id, err)
		return nil, err
	}
	updated, err := s.api.EventByID(ctx, id)
	if err != nil {
		logf(s.output, "unable to reload event %d after invite: %v", id, err)
		return nil, err
	}
	internal.DeriveStatus(updated, s.now())
	s.upsert(*updated)
	return updated, nil
}

func (s *Store) upsert(ev Event) {
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = ev
			return
		}
	}
	s.events = append(s.events, ev)
}

// Events returns the full collection regardless of the current filter.
func (s *Store) Events() []Event {
	return s.events
}

func (s *Store) State() State {
	return s.state
}

// LastError is the message from the most recent failed fetch, empty
// once a fetch succeeds again.
func (s *Store) LastError() string {
	return s.errMsg
}

func (s *Store) Filter() Filter {
	return s.filter
}

// SetClock overrides the wall clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func logf(w io.Writer, format string, a ...any) {
	internal.Logf(w, "store:", "", format, a...)
}
