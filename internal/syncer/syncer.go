// Package syncer decides which calendar sync requests are written to
// and drives the gateway for single events and batches.
package syncer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/vitorsousa/repcal/calendar"
	"github.com/vitorsousa/repcal/internal"
	"github.com/vitorsousa/repcal/internal/store"
)

var (
	// ErrAccessDenied aborts a sync attempt before any write when the
	// platform does not grant calendar access.
	ErrAccessDenied = errors.New("calendar access was denied")

	// ErrNeedsSelection is returned when no calendar could be resolved
	// automatically. The events are parked; the caller presents
	// Choices, calls Select and then Resume.
	ErrNeedsSelection = errors.New("no calendar could be resolved, a selection is required")
)

type (
	Event      = internal.Event
	SyncResult = internal.SyncResult
)

// History records completed runs, for inspection only. Recorded runs
// are never consulted to skip or dedup later syncs.
type History interface {
	RecordRun(_ context.Context, _ SyncResult, calendarID string, at time.Time) error
}

// Syncer resolves a target calendar once per instance and pushes
// events into it. The cached selection dies with the instance; a new
// session resolves again.
type Syncer struct {
	output   io.Writer
	mux      internal.Mux
	store    *store.Store
	platform string

	// History, when set, receives every completed run.
	History History

	selection *internal.CalendarSelection
	pending   []Event
}

func New(output io.Writer, mux internal.Mux, st *store.Store, platform string) *Syncer {
	if output == nil {
		output = os.Stdout
	}
	return &Syncer{
		output:   output,
		mux:      mux,
		store:    st,
		platform: platform,
	}
}

// SyncEvent pushes a single event.
func (s *Syncer) SyncEvent(ctx context.Context, ev Event) (*SyncResult, error) {
	return s.sync(ctx, []Event{ev})
}

// SyncAll pushes the store's whole collection.
func (s *Syncer) SyncAll(ctx context.Context) (*SyncResult, error) {
	return s.syncFiltered(ctx, internal.FilterAll)
}

// SyncConfirmed pushes only the events the current user confirmed.
func (s *Syncer) SyncConfirmed(ctx context.Context) (*SyncResult, error) {
	return s.syncFiltered(ctx, internal.FilterConfirmed)
}

func (s *Syncer) syncFiltered(ctx context.Context, f internal.Filter) (*SyncResult, error) {
	events := s.store.Filtered(f)
	if len(events) == 0 {
		logf(s.output, "no events to sync")
		return &SyncResult{}, nil
	}
	return s.sync(ctx, events)
}

func (s *Syncer) sync(ctx context.Context, events []Event) (*SyncResult, error) {
	gw, err := s.mux.Get(s.platform)
	if err != nil {
		return nil, err
	}

	if !gw.RequestAccess(ctx) {
		logf(s.output, "calendar access denied, nothing was written")
		return nil, ErrAccessDenied
	}

	if s.selection == nil {
		cals, err := gw.Calendars(ctx)
		if err != nil {
			return nil, err
		}
		target := calendar.DefaultCalendar(cals)
		if target == nil {
			s.pending = events
			return nil, ErrNeedsSelection
		}
		s.selection = &internal.CalendarSelection{
			CalendarID: target.ID,
			Source:     target.Source,
		}
		logf(s.output, "using calendar %s", target)
	}

	res := calendar.WriteEvents(ctx, gw, s.output, s.selection.CalendarID, s.selection.Source, events)
	logf(s.output, "%s", res.Summary())

	if s.History != nil {
		if err := s.History.RecordRun(ctx, res, s.selection.CalendarID, time.Now()); err != nil {
			logf(s.output, "unable to record sync run: %v", err)
		}
	}
	return &res, nil
}

// Choices lists the calendars for the picker. Empty when access is
// missing.
func (s *Syncer) Choices(ctx context.Context) ([]internal.DeviceCalendar, error) {
	gw, err := s.mux.Get(s.platform)
	if err != nil {
		return nil, err
	}
	return gw.Calendars(ctx)
}

// Select installs the picker's answer as this session's calendar.
func (s *Syncer) Select(calendarID, source string) {
	s.selection = &internal.CalendarSelection{
		CalendarID: calendarID,
		Source:     source,
	}
}

// Resume retries the events parked by an ErrNeedsSelection answer with
// the now-known selection.
func (s *Syncer) Resume(ctx context.Context) (*SyncResult, error) {
	if s.selection == nil {
		return nil, ErrNeedsSelection
	}
	if len(s.pending) == 0 {
		return &SyncResult{Source: s.selection.Source}, nil
	}
	events := s.pending
	s.pending = nil
	return s.sync(ctx, events)
}

// Selection exposes the cached selection, nil until resolved.
func (s *Syncer) Selection() *internal.CalendarSelection {
	return s.selection
}
