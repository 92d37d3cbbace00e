package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/pitchside/live-engine/internal/completion"
	"github.com/pitchside/live-engine/internal/config"
	"github.com/pitchside/live-engine/internal/dashboard"
	"github.com/pitchside/live-engine/internal/events"
	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/scrape"
	"github.com/pitchside/live-engine/internal/simulator"
	"github.com/pitchside/live-engine/internal/store"
	"github.com/pitchside/live-engine/internal/telegram"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logging.NewLogger(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("live-engine exited", "err", err)
		os.Exit(1)
	}
	fmt.Println("live-engine stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	// --- Initialize reference data ---
	ref, cleanup, err := openReference(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, fn := range cleanup {
			fn()
		}
	}()

	fixtures, err := ref.Fixtures(ctx)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	// --- Simulator + completion notifier ---
	matches := store.NewMemoryStore(fixtures)
	sim := simulator.New(matches, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), simulator.Config{
		Interval:          cfg.Simulator.Interval,
		UpdateProbability: cfg.Simulator.UpdateProbability,
		SixProbability:    cfg.Simulator.SixProbability,
	}, time.Now())

	var rev completion.Revalidator
	if cfg.Server.BaseURL != "" {
		rev = completion.NewHTTPRevalidator(cfg.Server.BaseURL)
		slog.Info("revalidation via HTTP", "base_url", cfg.Server.BaseURL)
	} else {
		tag := cfg.Revalidate.Tag
		rev = completion.RevalidatorFunc(func(ctx context.Context) error {
			return ref.InvalidateTag(ctx, tag)
		})
	}
	notifier := completion.NewNotifier(rev, cfg.Revalidate.Timeout)
	defer notifier.Wait()

	// --- Event pipeline ---
	wsHub := dashboard.NewWSHub()
	history := events.NewHistory(cfg.Events.HistorySize)

	sinks := []events.Sink{events.LogSink{}, wsHub}
	if cfg.Telegram.Enabled {
		tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelay)
		if err != nil {
			return err
		}
		sinks = append(sinks, tg)
		slog.Info("telegram notifications enabled")
	}

	svc := dashboard.NewService(dashboard.Deps{
		Simulator: sim,
		Notifier:  notifier,
		Reference: ref,
		Scraper: scrape.New(scrape.Config{
			ESPNURL: cfg.Scrape.ESPNURL,
			NDTVURL: cfg.Scrape.NDTVURL,
			Timeout: cfg.Scrape.Timeout,
		}),
		History:       history,
		RevalidateTag: cfg.Revalidate.Tag,
	})

	poller := events.NewPoller(svc.Source(), events.NewDetector(), history,
		events.Filtered(cfg.Notifications, events.Multi(sinks...)), cfg.Events.PollInterval)

	// --- HTTP router ---
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"live-engine"}`))
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// WebSocket stays outside the request timeout.
		r.Get("/ws", wsHub.HandleWS)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

			r.Get("/matches", svc.GetMatches)
			r.Get("/points-table", svc.GetPointsTable)
			r.Get("/schedule", svc.GetSchedule)
			r.Post("/revalidate-points", svc.RevalidatePoints)
			r.Get("/events", svc.RecentEvents)

			r.Get("/live-data", svc.LiveData)
			r.Get("/live-data-v2", svc.LiveDataV2)
			r.Get("/live-data/all", svc.LiveDataAll)
		})
	})

	// --- Server ---
	port := strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Scrape.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("live-engine listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down live-engine...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
		return nil
	})

	return g.Wait()
}

// openReference selects the reference data backend: PostgreSQL when a
// database URL is configured, the built-in seed otherwise, optionally
// fronted by the Redis cache.
func openReference(ctx context.Context, cfg *config.Config) (dashboard.Reference, []func(), error) {
	var (
		ref     dashboard.Reference
		cleanup []func()
	)

	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		cleanup = append(cleanup, pool.Close)

		pg := store.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if cfg.Database.Seed {
			seeded, err := pg.SeedIfEmpty(ctx, store.DefaultSeed())
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			if seeded {
				slog.Info("seeded reference data")
			}
		}
		ref = pg
		slog.Info("connected to PostgreSQL")
	} else {
		slog.Warn("database.url not set, using built-in reference data")
		ref = store.NewMemoryReference(store.DefaultSeed())
	}

	// Wrap with Redis read-through cache if configured.
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			for _, fn := range cleanup {
				fn()
			}
			return nil, nil, fmt.Errorf("invalid redis.url: %w", err)
		}
		rdb := redis.NewClient(opt)
		cleanup = append(cleanup, func() { rdb.Close() })
		ref = store.NewCachedStore(ref, rdb, cfg.Redis.TTL)
		slog.Info("Redis cache enabled", "ttl", cfg.Redis.TTL)
	}

	return ref, cleanup, nil
}
