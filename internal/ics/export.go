// Package ics renders the event collection as an iCalendar document.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/vitorsousa/repcal/internal"
)

// Export writes events as a VCALENDAR to w. Events whose time bounds
// do not parse are skipped and logged on logw; a bad event never fails
// the whole export. Returns how many events were written.
func Export(w io.Writer, logw io.Writer, events []internal.Event) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//repcal//calendar export//EN")

	now := time.Now()
	written := 0
	for i := range events {
		ev := &events[i]

		start, err := ev.Start()
		if err != nil {
			internal.Logf(logw, "ics:", ev.String(), "skipping, bad start date: %v", err)
			continue
		}
		end, err := ev.End()
		if err != nil {
			internal.Logf(logw, "ics:", ev.String(), "skipping, bad end date: %v", err)
			continue
		}

		ve := cal.AddEvent(fmt.Sprintf("repcal-%d", ev.ID))
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetDtStampTime(now)
		for _, inv := range ev.Invitations {
			if inv.UserEmail != "" {
				ve.AddAttendee(inv.UserEmail)
			}
		}
		written++
	}

	_, err := io.WriteString(w, cal.Serialize())
	return written, err
}
