// Command watch polls a live-engine matches endpoint and reports match
// events as they happen, on stdout and optionally to Telegram.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pitchside/live-engine/internal/config"
	"github.com/pitchside/live-engine/internal/events"
	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/telegram"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	url := flag.String("url", "", "matches endpoint to poll (overrides events.source_url)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *url != "" {
		cfg.Events.SourceURL = *url
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr))

	sinks := []events.Sink{printer{w: os.Stdout}}
	if cfg.Telegram.Enabled {
		tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelay)
		if err != nil {
			slog.Error("telegram setup failed", "err", err)
			os.Exit(1)
		}
		sinks = append(sinks, tg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := events.NewPoller(
		events.NewHTTPSource(cfg.Events.SourceURL, cfg.Events.PollInterval),
		events.NewDetector(),
		events.NewHistory(cfg.Events.HistorySize),
		events.Filtered(cfg.Notifications, events.Multi(sinks...)),
		cfg.Events.PollInterval,
	)

	slog.Info("watching matches", "url", cfg.Events.SourceURL, "interval", cfg.Events.PollInterval)
	if err := poller.Run(ctx); err != nil {
		slog.Error("watch stopped", "err", err)
		os.Exit(1)
	}
}

// printer writes one line per event.
type printer struct {
	w io.Writer
}

func (p printer) Notify(_ context.Context, ev model.MatchEvent) error {
	_, err := fmt.Fprintf(p.w, "%s  %-14s match %-3d %s\n",
		ev.Timestamp.Local().Format("15:04:05"), events.Headline(ev.Type), ev.MatchID, ev.Description)
	return err
}
