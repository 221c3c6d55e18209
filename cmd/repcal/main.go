package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set the variables directly.
	_ = godotenv.Load()

	var (
		dbFilename string
		verbose    bool
	)
	flag.StringVar(&dbFilename, "db", "repcal.db", "path of the local database")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	var err error
	switch args[0] {
	case ConfigureCommand.Name:
		err = ConfigureCommand.Run(ctx, dbFilename, verbose, args[1:])
	case ListCommand.Name:
		err = ListCommand.Run(ctx, dbFilename, verbose, args[1:])
	case SyncCommand.Name:
		err = SyncCommand.Run(ctx, dbFilename, verbose, args[1:])
	case ExportCommand.Name:
		err = ExportCommand.Run(ctx, dbFilename, verbose, args[1:])
	case HistoryCommand.Name:
		err = HistoryCommand.Run(ctx, dbFilename, verbose, args[1:])
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command %q\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage of %s:\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s [options] <command> [command options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range []struct{ Name, Description string }{
		{ConfigureCommand.Name, ConfigureCommand.Description},
		{ListCommand.Name, ListCommand.Description},
		{SyncCommand.Name, SyncCommand.Description},
		{ExportCommand.Name, ExportCommand.Description},
		{HistoryCommand.Name, HistoryCommand.Description},
	} {
		fmt.Fprintf(w, "  %-10s %s\n", c.Name, c.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Options:\n")
	flag.PrintDefaults()
}
