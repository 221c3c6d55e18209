// Package calendar hosts the gateway registry and the write-side sync
// primitives shared by every calendar platform.
package calendar

import (
	"context"
	"io"
	"strings"

	"github.com/vitorsousa/repcal/internal"
)

// DefaultCalendar ranks cals and picks the sync target: a writable
// calendar whose source mentions Samsung wins, then one whose source
// mentions Google, then the first writable one in enumeration order.
// Nil when nothing is writable.
func DefaultCalendar(cals []internal.DeviceCalendar) *internal.DeviceCalendar {
	var google, first *internal.DeviceCalendar
	for i := range cals {
		if !cals[i].Writable {
			continue
		}
		if strings.Contains(cals[i].Source, "Samsung") {
			return &cals[i]
		}
		if google == nil && strings.Contains(cals[i].Source, "Google") {
			google = &cals[i]
		}
		if first == nil {
			first = &cals[i]
		}
	}
	if google != nil {
		return google
	}
	return first
}

// Discover checks access, enumerates the platform's calendars and
// picks the default target. Nil without error means access was denied
// or no writable calendar exists.
func Discover(ctx context.Context, gw internal.Gateway) (*internal.DeviceCalendar, error) {
	if !gw.RequestAccess(ctx) {
		return nil, nil
	}
	cals, err := gw.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	return DefaultCalendar(cals), nil
}

// WriteEvents creates one calendar entry per event and counts the
// outcome. An event whose dates do not parse, or whose creation fails,
// counts as a failure and the batch continues; item errors never
// surface past the aggregate counters.
func WriteEvents(ctx context.Context, gw internal.Gateway, output io.Writer, calendarID, source string, events []internal.Event) internal.SyncResult {
	res := internal.SyncResult{Source: source}
	for i := range events {
		ev := &events[i]
		if _, err := ev.Start(); err != nil {
			internal.Logf(output, "", ev.String(), "skipping, bad start date: %v", err)
			res.Failure++
			continue
		}
		if _, err := ev.End(); err != nil {
			internal.Logf(output, "", ev.String(), "skipping, bad end date: %v", err)
			res.Failure++
			continue
		}
		if _, err := gw.CreateEvent(ctx, calendarID, ev); err != nil {
			internal.Logf(output, "", ev.String(), "unable to create entry: %v", err)
			res.Failure++
			continue
		}
		res.Success++
	}
	return res
}

// SyncBatch resolves the default calendar and writes the whole batch
// into it. Nil without error means no target could be resolved.
func SyncBatch(ctx context.Context, gw internal.Gateway, output io.Writer, events []internal.Event) (*internal.SyncResult, error) {
	target, err := Discover(ctx, gw)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	res := WriteEvents(ctx, gw, output, target.ID, target.Source, events)
	return &res, nil
}
