package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"

	calgoogle "github.com/mkralj/traveltime/calendar/google"
	"github.com/mkralj/traveltime/internal/config"
	"github.com/mkralj/traveltime/internal/sqlite"
)

var ConfigureCommand = _configureCommand{
	Name:        "configure",
	Description: "Authorize access to your calendars",
}

type _configureCommand struct {
	Name        string
	Description string
}

func (s _configureCommand) Run(ctx context.Context, cfgFilename, dbFilename string, verbose bool, args []string) error {
	cfg, err := config.Load(cfgFilename)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	w := flag.CommandLine.Output()

	// First run: leave a config file behind so the defaults are
	// visible and editable.
	if _, err := os.Stat(cfgFilename); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfgFilename, cfg); err != nil {
			return fmt.Errorf("unable to write configuration: %w", err)
		}
		fmt.Fprintf(w, "Wrote default configuration to %s\n", cfgFilename)
	}

	db, err := sql.Open(sqlite.DriverName, dbFilename)
	if err != nil {
		return err
	}
	storage := sqlite.NewStorage(db)

	credJSON, err := os.ReadFile(cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("unable to read credentials file: %w", err)
	}
	client, err := calgoogle.NewClient(credJSON)
	if err != nil {
		return fmt.Errorf("creating client: %v", err)
	}
	client.Verbose = verbose

	authToken, err := client.Login(ctx, func(authURL string) {
		fmt.Fprintf(w, "Go to the following link in your browser\n%s\n", authURL)
	})
	if err != nil {
		return fmt.Errorf("google: logging in: %v", err)
	}

	// The token must outlive the cache entries, store it without expiry.
	err = storage.Put(ctx, authKey, string(authToken), 0)
	if err != nil {
		return fmt.Errorf("saving authorization: %v", err)
	}
	fmt.Fprintln(w, "Authorization saved!")
	return nil
}
