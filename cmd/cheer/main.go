/*
main.go - Application entry point

PURPOSE:
  Command-line interface and server startup for the office cheer system.
  Handles configuration loading, dependency wiring per the live flag, and
  graceful shutdown of the serve mode.

COMMANDS:
  list                      Print all personnel records
  show -id ID               Print one record
  add -name .. -email .. -birthday .. -start ..  Add a record
  update -id ID [fields]    Partial update of a record
  delete -id ID             Delete a record
  seed [-count N] [-events] Populate the database with synthetic records
  upcoming [-days N]        Print upcoming birthdays and milestones
  check [-dry-run]          Process today's events now
  serve                     Run the HTTP API and daily scheduler

CONFIGURATION:
  Everything comes from CHEER_* environment variables (see config).
  Live mode (CHEER_LIVE=true) selects SMTP delivery and, when endpoints
  are configured, remote greeting and card generation. Non-live mode
  logs instead of sending and uses deterministic templates and
  placeholder cards.

GRACEFUL SHUTDOWN (serve):
  On SIGINT/SIGTERM:
  1. Stop the scheduler (waits for an in-flight run)
  2. Stop accepting new connections, drain requests (30s timeout)
  3. Close the database
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment keys and defaults
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/api"
	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/cards"
	"github.com/warp/office-cheer/config"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/greetings"
	"github.com/warp/office-cheer/notify"
	"github.com/warp/office-cheer/people"
	"github.com/warp/office-cheer/store/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	st, err := sqlite.Open(cfg.DBPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open database")
	}
	defer st.Close()

	app := &app{cfg: cfg, store: st, log: log}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "list":
		err = app.list(args)
	case "show":
		err = app.show(args)
	case "add":
		err = app.add(args)
	case "update":
		err = app.update(args)
	case "delete":
		err = app.delete(args)
	case "seed":
		err = app.seed(args)
	case "upcoming":
		err = app.upcoming(args)
	case "check":
		err = app.check(args)
	case "serve":
		err = app.serve(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cheer <command> [flags]

commands:
  list       print all personnel records
  show       print one record (-id)
  add        add a record (-name -email -birthday -start [-alias] [-interests])
  update     partial update (-id plus any add flag)
  delete     delete a record (-id)
  seed       populate the database with synthetic records (-count, -events)
  upcoming   print upcoming birthdays and milestones (-days)
  check      process today's events now (-dry-run)
  serve      run the HTTP API and daily scheduler`)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
}

// =============================================================================
// APPLICATION WIRING
// =============================================================================

type app struct {
	cfg   *config.Config
	store people.Store
	log   zerolog.Logger
}

func (a *app) evaluator() *events.Evaluator {
	return events.NewEvaluator(a.store, a.log)
}

// orchestrator assembles the pipeline. Live mode selects SMTP delivery
// plus remote generation where endpoints are configured; dry overrides
// that back to logging and placeholders.
func (a *app) orchestrator(dry bool) *notify.Orchestrator {
	live := a.cfg.Live && !dry

	var sender notify.Sender = &notify.LogSender{Log: a.log}
	var generator greetings.Generator
	var renderer cards.Renderer

	if live {
		sender = &notify.SMTPSender{
			Addr:     a.cfg.SMTPAddr,
			From:     a.cfg.EmailSender,
			ReplyTo:  a.cfg.EmailReplyTo,
			Username: a.cfg.SMTPUsername,
			Password: a.cfg.SMTPPassword,
		}
		if a.cfg.GreetingEndpoint != "" {
			generator = greetings.NewRemote(a.cfg.GreetingEndpoint, a.cfg.GreetingModel)
		}
		if a.cfg.RenderEndpoint != "" {
			renderer = cards.NewHTTPRenderer(a.cfg.RenderEndpoint, a.cfg.RenderModel)
		}
	}

	lib := cards.NewLibrary(renderer, a.cfg.ImageDir, a.log)
	subjects := notify.SubjectTemplates{
		Birthday:    a.cfg.SubjectBirthday,
		Anniversary: a.cfg.SubjectAnniversary,
	}
	return notify.NewOrchestrator(a.evaluator(), generator, lib, sender, subjects, a.log)
}

// =============================================================================
// PERSONNEL COMMANDS
// =============================================================================

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster, err := a.store.ListAll(context.Background())
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		fmt.Println("no records")
		return nil
	}
	for _, p := range roster {
		printPerson(p)
	}
	return nil
}

func (a *app) show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p, err := a.store.GetByID(context.Background(), *id)
	if err != nil {
		return err
	}
	printPerson(p)
	return nil
}

func (a *app) add(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	alias := fs.String("alias", "", "preferred name (optional)")
	email := fs.String("email", "", "email address")
	birthday := fs.String("birthday", "", "birthday, YYYY-MM-DD")
	start := fs.String("start", "", "start date, YYYY-MM-DD")
	interests := fs.String("interests", "", "comma-separated interests (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bd, err := calendar.Parse(*birthday)
	if err != nil {
		return fmt.Errorf("invalid -birthday: %w", err)
	}
	sd, err := calendar.Parse(*start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}

	p, err := a.store.Add(context.Background(), people.Person{
		Name:      *name,
		Alias:     *alias,
		Email:     *email,
		Birthday:  bd,
		StartDate: sd,
		Interests: splitInterests(*interests),
	})
	if err != nil {
		return err
	}

	fmt.Printf("added %s (%s)\n", p.DisplayName(), p.ID)
	return nil
}

func (a *app) update(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "record id")
	name := fs.String("name", "", "full name")
	alias := fs.String("alias", "", "preferred name; empty string clears")
	email := fs.String("email", "", "email address")
	birthday := fs.String("birthday", "", "birthday, YYYY-MM-DD")
	start := fs.String("start", "", "start date, YYYY-MM-DD")
	interests := fs.String("interests", "", "comma-separated; empty string clears")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	// Only flags the user passed become part of the update.
	var upd people.Update
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			upd.Name = name
		case "alias":
			upd.Alias = alias
		case "email":
			upd.Email = email
		case "interests":
			vals := splitInterests(*interests)
			upd.Interests = &vals
		}
	})
	if wasSet(fs, "birthday") {
		d, err := calendar.Parse(*birthday)
		if err != nil {
			return fmt.Errorf("invalid -birthday: %w", err)
		}
		upd.Birthday = &d
	}
	if wasSet(fs, "start") {
		d, err := calendar.Parse(*start)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		upd.StartDate = &d
	}
	if upd.IsEmpty() {
		return fmt.Errorf("nothing to update")
	}

	if err := a.store.Update(context.Background(), *id, upd); err != nil {
		return err
	}
	fmt.Printf("updated %s\n", *id)
	return nil
}

func (a *app) delete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := a.store.Delete(context.Background(), *id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *id)
	return nil
}

// seed fills the database with synthetic records for demos and dev.
// Records that collide with existing emails are skipped, so re-running
// against a seeded database is harmless.
func (a *app) seed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	count := fs.Int("count", 20, "number of synthetic records")
	events := fs.Bool("events", false, "include records with events in the next 14 days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster := people.SampleRoster(*count)
	if *events {
		roster = append(roster, people.UpcomingEventSamples(calendar.Today())...)
	}

	ctx := context.Background()
	added := 0
	for _, p := range roster {
		if _, err := a.store.Add(ctx, p); err != nil {
			a.log.Warn().Err(err).Str("name", p.Name).Msg("skipping sample record")
			continue
		}
		added++
	}

	fmt.Printf("seeded %d of %d records\n", added, len(roster))
	if *events {
		fmt.Println("upcoming events included; try: cheer upcoming -days 14")
	}
	return nil
}

// =============================================================================
// EVENT COMMANDS
// =============================================================================

func (a *app) upcoming(args []string) error {
	fs := flag.NewFlagSet("upcoming", flag.ExitOnError)
	days := fs.Int("days", a.cfg.LookaheadDays, "lookahead window in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ev := a.evaluator()
	ctx := context.Background()

	birthdays, err := ev.UpcomingBirthdays(ctx, *days)
	if err != nil {
		return err
	}
	anniversaries, err := ev.UpcomingAnniversaries(ctx, *days)
	if err != nil {
		return err
	}

	if len(birthdays) == 0 && len(anniversaries) == 0 {
		fmt.Printf("nothing within %d day(s)\n", *days)
		return nil
	}
	for _, p := range birthdays {
		fmt.Printf("birthday     %-24s %s (in %d day(s))\n",
			p.DisplayName(), calendar.FormatOrdinal(calendar.NextOccurrence(p.Birthday, ev.Now())),
			ev.DaysToNextBirthday(p))
	}
	for _, an := range anniversaries {
		fmt.Printf("anniversary  %-24s %d year(s) (in %d day(s))\n",
			an.Person.DisplayName(), an.Years, ev.DaysToNextAnniversary(an.Person))
	}
	return nil
}

func (a *app) check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "log instead of sending")
	today := fs.Bool("today", false, "same-day events only, no lookahead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orch := a.orchestrator(*dryRun)
	ctx := context.Background()

	var outcomes []notify.Outcome
	if *today {
		outcomes = orch.ProcessToday(ctx)
	} else {
		outcomes = orch.ProcessUpcoming(ctx, a.cfg.LookaheadDays)
	}

	var sent, failed int
	for _, out := range outcomes {
		if out.Status == notify.StatusSent {
			sent++
		} else {
			failed++
			fmt.Printf("failed: %s (%s): %v\n", out.Person.DisplayName(), out.Event, out.Err)
		}
	}
	fmt.Printf("done: %d sent, %d failed\n", sent, failed)
	return nil
}

// =============================================================================
// SERVE
// =============================================================================

func (a *app) serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", a.cfg.Listen, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orch := a.orchestrator(false)
	handler := &api.Handler{
		Store:         a.store,
		Evaluator:     a.evaluator(),
		Orchestrator:  orch,
		DryRun:        a.orchestrator(true),
		LookaheadDays: a.cfg.LookaheadDays,
		Log:           a.log,
	}

	sched := api.NewScheduler(orch, a.cfg.CronSpec(), a.cfg.LookaheadDays, a.log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if a.cfg.CheckOnStartup {
		go sched.RunNow()
	}

	server := &http.Server{
		Addr:         *listen,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("listen", *listen).Bool("live", a.cfg.Live).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		sched.Stop()
		return err
	case sig := <-quit:
		a.log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	a.log.Info().Msg("server stopped")
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func printPerson(p people.Person) {
	interests := "-"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	fmt.Printf("%s  %-24s %-28s birthday=%s start=%s interests=%s\n",
		p.ID, p.DisplayName(), p.Email, p.Birthday, p.StartDate, interests)
}

func splitInterests(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func wasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
