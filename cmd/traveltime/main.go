package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

const (
	googleProvider = "google"

	// authKey is where the OAuth token lives in the kv store.
	authKey = "auth:" + googleProvider
)

func main() {
	var (
		cfgFilename string
		dbFilename  string
		verbose     bool
	)
	flag.StringVar(&cfgFilename, "config", "traveltime.yml", "configuration file")
	flag.StringVar(&dbFilename, "db", "traveltime.db", "cache database file")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case RunCommand.Name:
		err = RunCommand.Run(ctx, cfgFilename, dbFilename, verbose, args[1:])
	case ConfigureCommand.Name:
		err = ConfigureCommand.Run(ctx, cfgFilename, dbFilename, verbose, args[1:])
	default:
		usage()
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
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintf(w, "  %s\t%s\n", ConfigureCommand.Name, ConfigureCommand.Description)
	fmt.Fprintf(w, "  %s\t%s\n", RunCommand.Name, RunCommand.Description)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.PrintDefaults()
}
