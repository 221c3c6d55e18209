package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vitorsousa/repcal/internal"
	"github.com/vitorsousa/repcal/internal/store"
)

var ListCommand = _listCommand{
	Name:        "list",
	Description: "Fetch and print your republic's events",
}

type _listCommand struct {
	Name        string
	Description string
}

func (s _listCommand) Run(ctx context.Context, dbFilename string, verbose bool, args []string) error {
	var filterName string

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.StringVar(&filterName, "filter", "upcoming", "view to print (all|upcoming|past|today|invited|confirmed|mine)")
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

	if len(events) == 0 {
		fmt.Fprintf(w, "No %s events.\n", filter)
		return nil
	}
	for i := range events {
		printEvent(w, &events[i])
	}
	return nil
}

func printEvent(w io.Writer, ev *internal.Event) {
	when := ev.StartsAt
	if start, err := ev.Start(); err == nil {
		when = formatDateTime(start)
	}

	marker := " "
	switch {
	case ev.IsHappening:
		marker = ">"
	case ev.IsFinished:
		marker = "x"
	}

	stats := internal.CountInvitations(ev)
	fmt.Fprintf(w, "%s %s  %q", marker, when, ev.Title)
	if ev.Location != "" {
		fmt.Fprintf(w, " at %s", ev.Location)
	}
	fmt.Fprintf(w, " (by %s: %d confirmed, %d pending, %d declined)\n",
		ev.CreatorName, stats.Confirmed, stats.Pending, stats.Declined)
}
