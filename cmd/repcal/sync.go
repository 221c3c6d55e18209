package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"

	"github.com/vitorsousa/repcal/calendar/google"
	"github.com/vitorsousa/repcal/internal"
	"github.com/vitorsousa/repcal/internal/store"
	"github.com/vitorsousa/repcal/internal/syncer"
)

var SyncCommand = _syncCommand{
	Name:        "sync",
	Description: "Push your republic's events into your calendar",
}

type _syncCommand struct {
	Name        string
	Description string
}

func (s _syncCommand) Run(ctx context.Context, dbFilename string, verbose bool, args []string) error {
	var (
		credFile       string
		confirmedOnly  bool
		calendarID     string
		calendarSource string
		every          string
	)

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s %s:\n", os.Args[0], fs.Name())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&credFile, "google-cred", "credentials.json", "credentials file for google")
	fs.BoolVar(&confirmedOnly, "confirmed", false, "sync only the events you confirmed")
	fs.StringVar(&calendarID, "calendar-id", "", "write into this calendar instead of resolving one")
	fs.StringVar(&calendarSource, "calendar-source", "", "label for -calendar-id, used in messages")
	fs.StringVar(&every, "every", "", `cron schedule to keep syncing (e.g. "*/15 * * * *")`)
	if err := fs.Parse(args); err != nil {
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
	mux, err := newMux(ctx, storage, credFile, verbose)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()

	st := store.New(w, api, userID)
	sc := syncer.New(w, mux, st, googlePlatform)
	sc.History = storage

	if calendarID != "" {
		if calendarSource == "" {
			calendarSource = google.Source
		}
		sc.Select(calendarID, calendarSource)
	}

	runOnce := func(ctx context.Context) error {
		st.Fetch(ctx, internal.FilterAll)
		if msg := st.LastError(); msg != "" {
			return fmt.Errorf("unable to fetch events: %s", msg)
		}

		var runErr error
		if confirmedOnly {
			_, runErr = sc.SyncConfirmed(ctx)
		} else {
			_, runErr = sc.SyncAll(ctx)
		}
		if errors.Is(runErr, syncer.ErrNeedsSelection) {
			cal, err := pickCalendar(ctx, sc, w)
			if err != nil {
				return err
			}
			sc.Select(cal.ID, cal.Source)
			_, runErr = sc.Resume(ctx)
		}
		return runErr
	}

	if every == "" {
		return runOnce(ctx)
	}

	c := cron.New()
	_, err = c.AddFunc(every, func() {
		if err := runOnce(ctx); err != nil {
			internal.Logf(w, "", "", "sync failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid -every schedule: %w", err)
	}

	// First run happens right away, then on schedule until interrupted.
	if err := runOnce(ctx); err != nil {
		internal.Logf(w, "", "", "sync failed: %v", err)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// pickCalendar is the CLI's picker: it lists the platform's calendars
// and reads the user's choice.
func pickCalendar(ctx context.Context, sc *syncer.Syncer, w io.Writer) (*internal.DeviceCalendar, error) {
	cals, err := sc.Choices(ctx)
	if err != nil {
		return nil, err
	}
	if len(cals) == 0 {
		return nil, errors.New("no calendars available to choose from")
	}

	fmt.Fprintln(w, "No calendar could be resolved automatically, pick one:")
	for i, cal := range cals {
		marker := " "
		if !cal.Writable {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %2d. %s\n", marker, i+1, cal)
	}

	var choice int
	for {
		fmt.Fprint(w, "Calendar number: ")
		fmt.Scanln(&choice)
		if choice >= 1 && choice <= len(cals) {
			break
		}
		fmt.Fprintf(w, "Pick a number between 1 and %d.\n", len(cals))
	}
	return &cals[choice-1], nil
}
