package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorsousa/repcal/internal"
	"github.com/vitorsousa/repcal/internal/ics"
	"github.com/vitorsousa/repcal/internal/store"
)

var ExportCommand = _exportCommand{
	Name:        "export",
	Description: "Write events to an iCalendar file",
}

type _exportCommand struct {
	Name        string
	Description string
}

func (s _exportCommand) Run(ctx context.Context, dbFilename string, verbose bool, args []string) error {
	var (
		filterName string
		outFile    string
		from, to   internal.Date
	)

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.StringVar(&filterName, "filter", "all", "view to export (all|upcoming|past|today|invited|confirmed|mine)")
	fs.StringVar(&outFile, "o", "events.ics", "output file")
	fs.Var(&from, "from", "only events starting on this day or later (YYYY-MM-DD)")
	fs.Var(&to, "to", "only events starting on this day or earlier (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, err := internal.ParseFilter(filterName)
	if err != nil {
		return err
	}

	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}
	api, userID, err := newAPIClient(ctx, storage, verbose)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()

	st := store.New(w, api, userID)
	events := st.Fetch(ctx, filter)
	if msg := st.LastError(); msg != "" {
		return fmt.Errorf("unable to fetch events: %s", msg)
	}
	events = clampToRange(events, from, to)

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := ics.Export(f, w, events)
	if err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	fmt.Fprintf(w, "%d event(s) written to %s\n", written, outFile)
	return nil
}

// clampToRange keeps the events whose start day falls inside from/to.
// A zero bound is open; events with a bad start date are left in so the
// exporter can log them.
func clampToRange(events []internal.Event, from, to internal.Date) []internal.Event {
	if from.IsZero() && to.IsZero() {
		return events
	}

	out := events[:0]
	for _, ev := range events {
		start, err := ev.Start()
		if err != nil {
			out = append(out, ev)
			continue
		}
		day := internal.NewDateFromTime(start.UTC())
		if !from.IsZero() && day.Before(from.Time) {
			continue
		}
		if !to.IsZero() && day.After(to.Time) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
