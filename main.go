package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/example/recall/internal/config"
	"github.com/example/recall/internal/database"
	"github.com/example/recall/internal/deck"
	"github.com/example/recall/internal/excel"
	"github.com/example/recall/internal/notify"
	"github.com/example/recall/internal/progress"
	"github.com/example/recall/internal/scheduler"
	"github.com/example/recall/internal/selector"
	"github.com/example/recall/internal/session"
	sr "github.com/example/recall/internal/spaced_repetition"
	"github.com/example/recall/internal/stats"
	pkgconfig "github.com/example/recall/pkg/config"
	"github.com/example/recall/pkg/models"
)

func main() {
	cmd := &cli.Command{
		Name:  "recall",
		Usage: "Spaced-repetition flashcards in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("RECALL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "engine",
				Aliases: []string{"e"},
				Usage:   "Scheduling engine (sm2 or leitner)",
				Sources: cli.EnvVars("RECALL_ENGINE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "review",
				Usage: "Run a review session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "deck", Usage: "Review a single deck"},
					&cli.StringFlag{Name: "mode", Usage: "Queue mode: spaced or random"},
					&cli.BoolFlag{Name: "random", Usage: "Shorthand for --mode random"},
					&cli.IntFlag{Name: "max-review", Usage: "Cap on due cards this session"},
					&cli.IntFlag{Name: "max-new", Usage: "Cap on new cards this session"},
				},
				Action: runReview,
			},
			{
				Name:  "stats",
				Usage: "Show learning progress",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON"},
				},
				Action: runStats,
			},
			{
				Name:   "decks",
				Usage:  "List available decks",
				Action: runDecks,
			},
			{
				Name:  "import",
				Usage: "Import cards from an Excel or CSV file into a deck",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Source .xlsx or .csv file", Required: true},
					&cli.StringFlag{Name: "deck", Usage: "Deck name (defaults to the file name)"},
					&cli.StringFlag{Name: "sheet", Usage: "Excel sheet to read"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing deck file"},
				},
				Action: runImport,
			},
			{
				Name:  "remind",
				Usage: "Run the reminder daemon",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "once", Usage: "Check once, print the due count and exit"},
				},
				Action: runRemind,
			},
			{
				Name:  "reset",
				Usage: "Wipe all stored progress for the selected engine",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "Confirm the wipe"},
				},
				Action: runReset,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the config file (when present), applies the --engine
// override and installs the default logger.
func loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if engine := cmd.String("engine"); engine != "" {
		cfg.Review.Engine = engine
		if err := cfg.Review.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// openStore picks the progress backend configured in storage.backend.
func openStore(cfg *config.Config, log *slog.Logger) (progress.Store, error) {
	engine := cfg.Review.Engine
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if err := database.Connect(database.DriverSQLite, cfg.Storage.Path); err != nil {
			return nil, err
		}
		return database.NewProgressRepository(engine, log), nil
	case config.BackendPostgres:
		if err := database.Connect(database.DriverPostgres, cfg.Storage.DSN); err != nil {
			return nil, err
		}
		return database.NewProgressRepository(engine, log), nil
	default:
		path := filepath.Join(cfg.Storage.Dir, progress.DefaultFilename(engine))
		return progress.NewFileStore(path, log)
	}
}

// loadCatalog loads every deck and optionally narrows to a single one.
func loadCatalog(cfg *config.Config, only string) ([]models.Card, error) {
	decks, err := deck.LoadDir(cfg.Decks.Dir)
	if err != nil {
		return nil, err
	}
	if only == "" {
		return deck.Flatten(decks), nil
	}
	for _, d := range decks {
		if strings.EqualFold(d.Name, only) {
			return d.Cards, nil
		}
	}
	return nil, fmt.Errorf("deck %q not found in %s", only, cfg.Decks.Dir)
}

func runReview(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg, cmd.String("deck"))
	if err != nil {
		return err
	}

	engine, err := sr.ForEngine(cfg.Review.Engine)
	if err != nil {
		return err
	}
	mode, err := cfg.Review.SelectionMode()
	if err != nil {
		return err
	}
	if m := cmd.String("mode"); m != "" {
		mode, err = selector.ParseMode(m)
		if err != nil {
			return err
		}
	}
	if cmd.Bool("random") {
		mode = selector.ModeRandom
	}

	caps := cfg.Review.Caps()
	if cmd.IsSet("max-review") {
		caps.MaxReview = int(cmd.Int("max-review"))
	}
	if cmd.IsSet("max-new") {
		caps.MaxNew = int(cmd.Int("max-new"))
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := &session.Runner{
		Store:     store,
		Scheduler: engine,
		Presenter: session.NewStdTerminal(),
		Mode:      mode,
		Caps:      caps,
		Log:       log,
	}
	if _, err := runner.Run(ctx, catalog); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg, "")
	if err != nil {
		return err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := store.Snapshot()
	if err != nil {
		return err
	}
	meta, err := store.SessionMeta()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	report := stats.Summarize(catalog, snapshot, meta, now)
	if reporter, ok := store.(progress.StreakReporter); ok {
		days, err := reporter.StreakDays(now)
		if err != nil {
			log.Warn("failed to compute review streak", slog.String("error", err.Error()))
		} else {
			report.StreakDays = days
		}
	}

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printStats(os.Stdout, report)
	return nil
}

func printStats(out io.Writer, st models.Stats) {
	fmt.Fprintf(out, "Cards:     %d total, %d reviewed, %d unreviewed\n", st.TotalCards, st.Reviewed, st.Unreviewed)
	fmt.Fprintf(out, "Queue:     %d due now, %d new available\n", st.DueNow, st.NewCards)
	fmt.Fprintf(out, "Answers:   %d correct, %d incorrect (%.1f%% accuracy)\n", st.Correct, st.Incorrect, st.Accuracy*100)
	if st.Reviewed > 0 {
		fmt.Fprintf(out, "Easiness:  %.2f average\n", st.MeanEasiness)
	}
	fmt.Fprintf(out, "Phases:    %d new, %d learning, %d reviewing, %d mastered\n",
		st.Phases.New, st.Phases.Learning, st.Phases.Reviewing, st.Phases.Mastered)

	if st.Reviewed > 0 {
		fmt.Fprintln(out, "\nIntervals:")
		for _, b := range st.Intervals {
			fmt.Fprintf(out, "  %-6s %d\n", b.Label, b.Count)
		}
	}

	if len(st.Decks) > 0 {
		fmt.Fprintln(out, "\nDecks:")
		for _, d := range st.Decks {
			fmt.Fprintf(out, "  %-20s %3d cards, %3d seen, %3d mastered\n", d.Deck, d.Total, d.Seen, d.Mastered)
		}
	}

	if st.Sessions > 0 {
		fmt.Fprintf(out, "\nSessions:  %d (last %s)\n", st.Sessions, st.LastSession.Format("2006-01-02 15:04"))
	}
	if st.StreakDays > 0 {
		unit := "days"
		if st.StreakDays == 1 {
			unit = "day"
		}
		fmt.Fprintf(out, "Streak:    %d %s\n", st.StreakDays, unit)
	}
}

func runDecks(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	decks, err := deck.LoadDir(cfg.Decks.Dir)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Printf("No decks found in %s. Import one with `recall import`.\n", cfg.Decks.Dir)
		return nil
	}

	total := 0
	for _, d := range decks {
		fmt.Printf("  %-20s %d cards\n", d.Name, len(d.Cards))
		total += len(d.Cards)
	}
	fmt.Printf("%d decks, %d cards\n", len(decks), total)
	return nil
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	icfg := excel.DefaultImportConfig()
	icfg.FilePath = cmd.String("file")
	icfg.DeckName = cmd.String("deck")
	icfg.OutDir = cfg.Decks.Dir
	icfg.Force = cmd.Bool("force")
	if sheet := cmd.String("sheet"); sheet != "" {
		icfg.SheetName = sheet
	}

	result, err := excel.ImportCards(icfg)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d rows into %s (%d skipped)\n",
		result.Created, result.TotalProcessed, result.OutPath, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  %s\n", e)
	}
	return nil
}

func runRemind(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	var notifier notify.Notifier = &notify.Console{Out: os.Stdout}
	if cfg.Reminder.Telegram.Enabled() {
		notifier, err = notify.NewTelegram(cfg.Reminder.Telegram.Token, cfg.Reminder.Telegram.ChatID)
		if err != nil {
			return fmt.Errorf("failed to set up telegram: %w", err)
		}
	}

	catalog := func() ([]models.Card, error) { return loadCatalog(cfg, "") }
	window := scheduler.Window{StartHour: cfg.Reminder.StartHour, EndHour: cfg.Reminder.EndHour}
	sched := scheduler.New(notifier, store, catalog, window, log)

	if cmd.Bool("once") {
		count, err := sched.RunManualCheck()
		if err != nil {
			return err
		}
		fmt.Printf("%d cards due for review\n", count)
		return nil
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	log.Info("reminder daemon started",
		slog.Int("start_hour", cfg.Reminder.StartHour),
		slog.Int("end_hour", cfg.Reminder.EndHour))

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}

func runReset(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		return fmt.Errorf("refusing to wipe progress for engine %q without --yes", cfg.Review.Engine)
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Reset(); err != nil {
		return err
	}
	fmt.Printf("Progress for engine %q cleared.\n", cfg.Review.Engine)
	return nil
}
