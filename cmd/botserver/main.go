package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/config"
	"github.com/udisondev/fragbots/internal/db"
	"github.com/udisondev/fragbots/internal/debugview"
	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/world"
)

func main() {
	configPath := flag.String("config", "", "config file (overridden by "+config.EnvPath+")")
	issueToken := flag.String("issue-token", "", "print a debug view token for the given subject and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of an issued token")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	cfg, err := config.LoadBotServer(config.Path(*configPath))
	if err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}

	if *issueToken != "" {
		tok, err := debugview.IssueToken([]byte(cfg.Debug.JWTSecret), cfg.Debug.Issuer, *issueToken, *tokenTTL)
		if err != nil {
			slog.Error("fatal", "err", err)
			os.Exit(1)
		}
		fmt.Println(tok)
		return
	}

	if err := run(ctx, cfg); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.BotServer) error {
	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ai.EnableDebugLogging(cfg.AI.DebugLogging || logLevel == slog.LevelDebug)
	ai.EnableStrictContracts(cfg.AI.StrictContracts)

	slog.Info("fragbots server starting", "log_level", cfg.LogLevel)

	layout, err := world.LoadLayout(cfg.Layout)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}
	arena, err := world.NewArena(layout)
	if err != nil {
		return fmt.Errorf("building arena: %w", err)
	}

	profiles, err := configProfiles(cfg.Bots)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	var events ai.EventSink
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		profiles, err = loadProfiles(ctx, db.NewProfileRepository(database.Pool()), profiles)
		if err != nil {
			return err
		}

		writer := db.NewEventWriter(
			db.NewGoalEventRepository(database.Pool()),
			uuid.New(),
			cfg.Events.BatchSize,
			cfg.Events.QueueSize,
			cfg.Events.FlushInterval,
		)
		events = writer
		g.Go(func() error {
			return writer.Run(gctx)
		})
		slog.Info("goal events recorded", "match", writer.MatchID())
	}

	m, err := newMatch(arena, profiles, cfg.AI.Config(), events,
		ai.WithInterval(cfg.Tick.Interval),
		ai.WithShards(cfg.Tick.Shards))
	if err != nil {
		return err
	}

	g.Go(func() error {
		slog.Info("starting AI tick manager", "interval", cfg.Tick.Interval, "bots", m.manager.Count())
		if err := m.manager.Start(gctx); err != nil {
			return fmt.Errorf("AI tick manager: %w", err)
		}
		return nil
	})

	if cfg.Debug.Enabled {
		view, err := debugview.New(m.snapshots, debugview.Options{
			Secret:       []byte(cfg.Debug.JWTSecret),
			Issuer:       cfg.Debug.Issuer,
			PushInterval: cfg.Debug.PushInterval,
		})
		if err != nil {
			return fmt.Errorf("creating debug view: %w", err)
		}
		g.Go(func() error {
			if err := view.ListenAndServe(gctx, cfg.Debug.Addr); err != nil {
				return fmt.Errorf("debug view: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("fragbots server stopped", "frames", m.manager.Frames())
	return nil
}

func configProfiles(entries []config.BotEntry) ([]model.BotProfile, error) {
	profiles := make([]model.BotProfile, 0, len(entries))
	for _, e := range entries {
		p, err := e.Profile()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

type profileStore interface {
	LoadEnabled(ctx context.Context) ([]model.BotProfile, error)
	Upsert(ctx context.Context, p model.BotProfile) error
}

// loadProfiles prefers stored profiles and seeds the store from config when it is empty.
func loadProfiles(ctx context.Context, store profileStore, fallback []model.BotProfile) ([]model.BotProfile, error) {
	stored, err := store.LoadEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading bot profiles: %w", err)
	}
	if len(stored) > 0 {
		slog.Info("bot profiles loaded", "count", len(stored))
		return stored, nil
	}

	for _, p := range fallback {
		if err := store.Upsert(ctx, p); err != nil {
			return nil, fmt.Errorf("seeding bot profiles: %w", err)
		}
	}
	slog.Info("bot profiles seeded from config", "count", len(fallback))
	return fallback, nil
}
