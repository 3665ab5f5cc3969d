// Command marketsim runs the shop/client market reputation simulation.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/talgya/mini-market/internal/config"
	"github.com/talgya/mini-market/internal/engine"
	"github.com/talgya/mini-market/internal/persistence"
	"github.com/talgya/mini-market/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("marketsim failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("marketsim", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to a YAML run configuration")
	width := flagSet.Int("width", 0, "grid width (overrides config)")
	height := flagSet.Int("height", 0, "grid height (overrides config)")
	clients := flagSet.Int("clients", 0, "number of clients (overrides config)")
	shops := flagSet.Int("shops", 0, "number of shops (overrides config)")
	days := flagSet.Int("days", 0, "days to simulate (overrides config)")
	seed := flagSet.Int64("seed", 0, "random seed (overrides config)")
	dbPath := flagSet.String("db", "", "SQLite file to archive results to (overrides config)")
	interval := flagSet.Duration("interval", 0, "pause between days (overrides config)")
	logLevel := flagSet.String("log-level", "", "debug, info, warn or error (overrides config)")
	logFormat := flagSet.String("log-format", "", "text or json (overrides config)")
	showGrid := flagSet.Bool("grid", false, "print the grid layout and occupancy heatmap after the run")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Only flags given explicitly override the file.
	flagSet.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "clients":
			cfg.Clients = *clients
		case "shops":
			cfg.Shops = *shops
		case "days":
			cfg.Days = *days
		case "seed":
			cfg.Seed = *seed
		case "db":
			cfg.Database = *dbPath
		case "interval":
			cfg.Interval = *interval
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("market simulation",
		"width", cfg.Width, "height", cfg.Height,
		"clients", cfg.Clients, "shops", cfg.Shops,
		"days", cfg.Days, "seed", cfg.Seed,
	)

	// ── Model ─────────────────────────────────────────────────────────
	model, err := engine.NewModel(cfg.Model())
	if err != nil {
		return fmt.Errorf("initialize market: %w", err)
	}

	// ── Result archive ────────────────────────────────────────────────
	var db *persistence.DB
	var runID uuid.UUID
	if cfg.Database != "" {
		db, err = persistence.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Database)

		runID, err = db.BeginRun(persistence.RunInfo{
			Seed:    cfg.Seed,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Clients: cfg.Clients,
			Shops:   cfg.Shops,
			Days:    cfg.Days,
		})
		if err != nil {
			return err
		}
	}

	// ── Day loop ──────────────────────────────────────────────────────
	eng := engine.NewEngine(cfg.Days)
	eng.Interval = cfg.Interval
	eng.OnDay = func(day int) error {
		snap := model.Step()
		if db == nil {
			return nil
		}
		return db.SaveDay(runID, snap)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigCh)
		close(done)
	}()
	go watchSignals(sigCh, done, eng)

	if err := eng.Run(); err != nil {
		return err
	}

	if db != nil {
		for _, shop := range model.Shops() {
			if err := db.SaveSales(runID, shop.ID, shop.Sales()); err != nil {
				return fmt.Errorf("save sales for shop %d: %w", shop.ID, err)
			}
		}
		slog.Info("results archived", "run", runID, "days", model.Day())
	}

	// ── Summary ───────────────────────────────────────────────────────
	if snap, ok := model.Recorder.Latest(); ok {
		if err := report.WriteSummary(stdout, snap); err != nil {
			return err
		}
	}
	if *showGrid {
		fmt.Fprintf(stdout, "\nGrid:\n%s\nAgents per cell:\n", model.RenderGrid())
		if err := report.WriteHeatmap(stdout, model.Grid()); err != nil {
			return err
		}
	}
	return nil
}

// watchSignals stops the engine on the first signal. It returns when done
// is closed.
func watchSignals(sigCh <-chan os.Signal, done <-chan struct{}, eng *engine.Engine) {
	select {
	case sig := <-sigCh:
		slog.Info("received signal, stopping after current day", "signal", sig)
		eng.Stop()
	case <-done:
	}
}
