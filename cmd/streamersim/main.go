package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/session"
	"github.com/DaanHessen/streamer-sim/internal/store"
	"github.com/DaanHessen/streamer-sim/internal/text"
	"github.com/DaanHessen/streamer-sim/internal/ui"
	"github.com/DaanHessen/streamer-sim/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	seedFlag := flag.String("seed", "", "Run seed string (optional; random if omitted)")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "Journal DSN: postgres://... or a sqlite file (empty disables)")
	settings := flag.String("settings", os.Getenv("STREAMERSIM_SETTINGS"), "YAML file overriding balance and timing")
	autoplay := flag.Bool("autoplay", false, "Start with autoplay engaged")
	headless := flag.Duration("headless", 0, "Run without the TUI under autoplay for this long, then print a summary")
	metricsAddr := flag.String("metrics-addr", os.Getenv("STREAMERSIM_METRICS_ADDR"), "Serve Prometheus metrics on this address")
	logFile := flag.String("log-file", util.EnvOr("STREAMERSIM_LOG_FILE", "streamersim.log"), "Log file used while the TUI owns the terminal")
	logLevel := flag.String("log-level", util.EnvOr("STREAMERSIM_LOG_LEVEL", "info"), "debug|info|warn|error")
	player := flag.String("player", "", "Player name (skips the setup screen together with --channel)")
	channel := flag.String("channel", "", "Channel name")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "streamersim [--seed s] [--dsn DSN] [--settings file] [--autoplay] [--headless 10m] [--metrics-addr :9090] | migrate up|down | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("streamersim", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			if err := migrateCmd(*dsn, args[1]); err != nil {
				log.Fatal(err)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	seedText := strings.TrimSpace(*seedFlag)
	if seedText == "" {
		generated, err := generateSeed()
		if err != nil {
			log.Fatal("failed to generate seed", "err", err)
		}
		seedText = generated
		fmt.Printf("New run seed: %s\n", seedText)
	}

	cfg := util.Config{
		SeedText:     seedText,
		DSN:          *dsn,
		SettingsPath: *settings,
		Autoplay:     *autoplay,
		Headless:     *headless,
		MetricsAddr:  *metricsAddr,
		LogFile:      *logFile,
		LogLevel:     *logLevel,
		Player:       *player,
		Channel:      *channel,
		APIKey:       os.Getenv("DEEPSEEK_API_KEY"),
		Version:      version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func migrateCmd(dsn, action string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn, store.DefaultMigrationsDir)
	if err != nil {
		return err
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Println("Migrations rolled back")
	default:
		return errors.New("unknown migrate action; use up|down")
	}
	return nil
}

// newLogger writes to stderr when headless. The TUI owns the terminal
// otherwise, so logs go to a rotated file.
func newLogger(cfg util.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "log level")
	}
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.Headless == 0 {
		lj := &lumberjack.Logger{Filename: cfg.LogFile, MaxSize: 10, MaxBackups: 3, MaxAge: 14}
		w, closer = lj, lj
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "streamersim",
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func run(ctx context.Context, cfg util.Config) error {
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	settings, err := util.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	seed, err := engine.NewRunSeed(cfg.SeedText)
	if err != nil {
		return errors.Wrap(err, "seed")
	}

	deps := session.Deps{
		Balance: settings.Balance,
		Timing:  settings.Timing,
		Seed:    seed,
		Logger:  logger,
	}
	if ds, err := text.NewDeepSeek(cfg.APIKey, text.WithRateLimit(500*time.Millisecond, 4)); err != nil {
		logger.Info("content gateway offline, using templates", "reason", err)
	} else {
		deps.Gateway = ds
	}

	var journal *store.Journal
	if cfg.DSN != "" {
		if store.IsPostgres(cfg.DSN) {
			// Ensure migrations are present and applied before opening
			if err := migrateCmd(cfg.DSN, "up"); err != nil {
				return errors.Wrap(err, "migrations")
			}
		}
		db, err := store.Open(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		journal = store.NewJournal(db, cfg.SeedText, logger)
		deps.Journal = journal
	}

	s, err := session.New(deps)
	if err != nil {
		return err
	}
	if cfg.Player != "" && cfg.Channel != "" {
		if err := s.Start(cfg.Player, cfg.Channel); err != nil {
			return err
		}
	}
	s.SetAutoplay(cfg.Autoplay)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return session.NewScheduler(s).Run(gctx) })
	if cfg.MetricsAddr != "" {
		serveMetrics(gctx, g, cfg.MetricsAddr, logger)
	}
	g.Go(func() error {
		defer cancel()
		if cfg.Headless > 0 {
			return runHeadless(gctx, s, cfg)
		}
		return ui.Run(gctx, s, cfg)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if cfg.Headless > 0 {
		printSummary(s, journal)
	}
	return nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	g.Go(func() error {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func runHeadless(ctx context.Context, s *session.Session, cfg util.Config) error {
	if s.Phase() == engine.PhaseSetup {
		player, channel := cfg.Player, cfg.Channel
		if player == "" {
			player = "Auto"
		}
		if channel == "" {
			channel = "Autopilot TV"
		}
		if err := s.Start(player, channel); err != nil {
			return err
		}
	}
	s.SetAutoplay(true)
	t := time.NewTimer(cfg.Headless)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	return nil
}

func printSummary(s *session.Session, journal *store.Journal) {
	snap := s.Snapshot()
	p := snap.State
	fmt.Printf("%s after %d days: %.0f subscribers, %d views, %s, level %d, rank #%d, %d videos\n",
		p.ChannelName, p.Day, p.Subscribers, p.TotalViews, p.Money, p.Level, snap.Rank, len(p.Videos))
	fmt.Printf("ticks %d, watchdog resets %d\n", s.Ticks(), s.WatchdogResets())
	if journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sum, err := journal.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal summary: %v\n", err)
		return
	}
	fmt.Printf("journal run %s: %d videos, %d comments, %d days, %d events, peak %.0f subs on day %d\n",
		journal.RunID(), sum.Videos, sum.Comments, sum.Days, sum.Events, sum.MaxSubs, sum.BestDay)
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
