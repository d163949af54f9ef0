// herdsim runs a headless herd-defense session: waves of hostile agents
// converge on the pen while a scripted player fights them off.
//
// Usage:
//
//	go run ./cmd/herdsim
//	go run ./cmd/herdsim -fast -duration 10m
//	HERDSIM_CONFIG=config/herdsim.yaml go run ./cmd/herdsim
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

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/config"
	"github.com/udisondev/herdguard/internal/encounter"
	"github.com/udisondev/herdguard/internal/game/wave"
)

const ConfigPath = "config/herdsim.yaml"

// errSessionOver ends the errgroup once the game is decided.
var errSessionOver = errors.New("session over")

func main() {
	fast := flag.Bool("fast", false, "run frames back to back instead of in real time")
	duration := flag.Duration("duration", 0, "stop after this much session time (0 = until the game ends)")
	watch := flag.Bool("watch", true, "hot-reload wave tuning when the config file changes")
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

	if err := run(ctx, options{fast: *fast, duration: *duration, watch: *watch}); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type options struct {
	fast     bool
	duration time.Duration
	watch    bool
}

func run(ctx context.Context, opts options) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("HERDSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSession(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("herdsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"frame_rate", cfg.Frame.Rate,
		"fast", opts.fast)

	var result outcome
	session, err := encounter.New(cfg, encounter.Options{
		Cues: logCues{},
		Hooks: encounter.Hooks{
			OnWaveStart: func(n int, rec wave.Record) {
				slog.Info("wave incoming", "wave", n, "enemies", rec.EnemyCount, "tier", rec.Tier)
			},
			OnEnemyDeath:  result.enemyKilled,
			OnPlayerDeath: result.playerKilled,
			OnAnimalDeath: result.animalKilled,
		},
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	player, err := session.RegisterPlayer()
	if err != nil {
		return err
	}
	pilot := newPilot(session, player)

	if err := session.Start(); err != nil {
		return fmt.Errorf("starting waves: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	reloads := make(chan config.Session, 1)

	if opts.watch {
		watcher, err := config.NewWatcher(cfgPath)
		if err != nil {
			slog.Warn("config hot reload disabled", "path", cfgPath, "error", err)
		} else {
			g.Go(func() error {
				slog.Info("starting config watcher", "path", cfgPath)
				return watcher.Run(gctx, func(next config.Session) {
					// keep only the latest pending reload
					select {
					case <-reloads:
					default:
					}
					reloads <- next
				})
			})
		}
	}

	g.Go(func() error {
		slog.Info("starting frame loop", "step", cfg.FrameStep())
		loop := &frameLoop{
			session:  session,
			pilot:    pilot,
			outcome:  &result,
			step:     cfg.FrameStep(),
			duration: opts.duration,
			reloads:  reloads,
		}
		var err error
		if opts.fast {
			err = loop.runFast(gctx)
		} else {
			err = loop.runRealtime(gctx)
		}
		if err != nil {
			return err
		}
		return errSessionOver
	})

	err = g.Wait()
	result.report(session)
	if errors.Is(err, errSessionOver) {
		return nil
	}
	return err
}
