package main

import (
	"context"
	"flag"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var HistoryCommand = _historyCommand{
	Name:        "history",
	Description: "Show recent sync runs",
}

type _historyCommand struct {
	Name        string
	Description string
}

func (s _historyCommand) Run(ctx context.Context, dbFilename string, verbose bool, args []string) error {
	var limit int

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.IntVar(&limit, "limit", 20, "how many runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}

	runs, err := storage.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No sync runs recorded yet.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%s  %s: %d ok, %d failed\n", run.SyncedAt, run.Source, run.Success, run.Failure)
	}
	return nil
}
