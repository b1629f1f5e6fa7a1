package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"

	"github.com/mkralj/traveltime/calendar"
	calgoogle "github.com/mkralj/traveltime/calendar/google"
	"github.com/mkralj/traveltime/internal"
	"github.com/mkralj/traveltime/internal/config"
	"github.com/mkralj/traveltime/internal/planner"
	"github.com/mkralj/traveltime/internal/records"
	"github.com/mkralj/traveltime/internal/routes"
	"github.com/mkralj/traveltime/internal/sqlite"
	mapsgoogle "github.com/mkralj/traveltime/maps/google"
)

var RunCommand = _runCommand{
	Name:        "run",
	Description: "Create travel time events for the upcoming days",
}

type _runCommand struct {
	Name        string
	Description string
}

func (r _runCommand) Run(ctx context.Context, cfgFilename, dbFilename string, verbose bool, args []string) error {
	cfg, err := config.Load(cfgFilename)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	mode, err := internal.ParseTransportMode(cfg.Transport)
	if err != nil {
		return err
	}

	var (
		from, to      internal.Date
		cronSpec      string
		skipCalendars Strings
	)

	fs := flag.NewFlagSet(r.Name, flag.ExitOnError)
	fs.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s %s:\n", os.Args[0], fs.Name())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Var(&from, "from", "plan events since the date (e.g. 2022-08-12)")
	fs.Var(&to, "to", "plan events until the date (e.g. 2022-08-26)")
	fs.StringVar(&cronSpec, "cron", cfg.Cron, "keep running and replan on this schedule")
	fs.Var(&skipCalendars, "skip-calendar", "calendar name or id to leave out of the scan")

	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := sql.Open(sqlite.DriverName, dbFilename)
	if err != nil {
		return err
	}

	output := flag.CommandLine.Output()
	storage := sqlite.NewStorage(db)
	if n, err := storage.PurgeExpired(ctx); err == nil && n > 0 && verbose {
		fmt.Fprintf(output, "Removed %d expired cache entries\n", n)
	}

	mux, err := newMux(ctx, cfg, storage, verbose)
	if err != nil {
		return err
	}
	provider, err := mux.Get(googleProvider)
	if err != nil {
		return err
	}
	router, err := newRouter(cfg)
	if err != nil {
		return err
	}

	ttl := time.Duration(cfg.CacheTTL)
	resolver := routes.NewResolver(routes.NewCache(storage, ttl), router)

	p := planner.New(output, provider, resolver, records.NewStore(storage, ttl))
	p.Mode = mode
	p.Staleness = time.Duration(cfg.LocationStaleness)
	p.MaxCommute = time.Duration(cfg.MaxCommute)
	p.CalendarName = cfg.CalendarName
	p.SkipCalendars = append(cfg.SkipCalendars, skipCalendars...)

	plan := func() error {
		defaultFrom, defaultTo := planner.Window(time.Now())
		if !from.IsZero() {
			defaultFrom = from.Time
		}
		if !to.IsZero() {
			defaultTo = to.Time
		}
		return p.Run(ctx, defaultFrom, defaultTo)
	}

	if cronSpec == "" {
		return plan()
	}

	c := cron.New()
	_, err = c.AddFunc(cronSpec, func() {
		if err := plan(); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(output, "Planning failed:", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", cronSpec, err)
	}

	fmt.Fprintf(output, "Planning on schedule %q, press Ctrl+C to stop\n", cronSpec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func newMux(ctx context.Context, cfg *config.Config, kv internal.KV, verbose bool) (internal.Mux, error) {
	credJSON, err := os.ReadFile(cfg.Google.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	client, err := calgoogle.NewClient(credJSON)
	if err != nil {
		return nil, err
	}
	client.Verbose = verbose

	auth, ok, err := kv.Get(ctx, authKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no stored authorization, run %q first", ConfigureCommand.Name)
	}
	if err := client.SetAuth([]byte(auth)); err != nil {
		return nil, err
	}

	mux := calendar.NewMux()
	mux.Register(googleProvider, client)
	return mux, nil
}

func newRouter(cfg *config.Config) (internal.Router, error) {
	apiKey := cfg.Maps.APIKey
	if apiKey == "" && cfg.Maps.APIKeyFile != "" {
		data, err := os.ReadFile(cfg.Maps.APIKeyFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read maps api key: %w", err)
		}
		apiKey = strings.TrimSpace(string(data))
	}
	if apiKey == "" {
		return nil, errors.New("no maps api key configured")
	}
	return mapsgoogle.NewRouter(apiKey)
}
