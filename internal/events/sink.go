package events

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pitchside/live-engine/internal/model"
)

// Sink receives detected events.
type Sink interface {
	Notify(ctx context.Context, ev model.MatchEvent) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(ctx context.Context, ev model.MatchEvent) error

func (f SinkFunc) Notify(ctx context.Context, ev model.MatchEvent) error { return f(ctx, ev) }

// LogSink writes each event to the default slog logger.
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, ev model.MatchEvent) error {
	level := slog.LevelInfo
	if ev.Significance == model.SignificanceLow {
		level = slog.LevelDebug
	}
	slog.Log(ctx, level, Title(ev.Type),
		"match_id", ev.MatchID,
		"event_id", ev.ID,
		"significance", ev.Significance,
		"description", ev.Description,
	)
	return nil
}

// Filtered drops events the settings do not allow before they reach next.
func Filtered(settings Settings, next Sink) Sink {
	return SinkFunc(func(ctx context.Context, ev model.MatchEvent) error {
		if !settings.Allows(ev.Type) {
			return nil
		}
		return next.Notify(ctx, ev)
	})
}

// Multi delivers every event to each sink in order and joins their errors.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, ev model.MatchEvent) error {
		var errs []error
		for _, s := range sinks {
			if err := s.Notify(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Icon returns the emoji shown next to an event of type t.
func Icon(t model.EventType) string {
	switch t {
	case model.EventWicket:
		return "🏏"
	case model.EventBoundary:
		return "4️⃣"
	case model.EventSix:
		return "6️⃣"
	case model.EventMilestone:
		return "🎯"
	case model.EventMatchStart:
		return "🚀"
	case model.EventMatchEnd:
		return "🏆"
	case model.EventInningsBreak:
		return "⏸️"
	default:
		return "📢"
	}
}

// Title is the upper-case heading for t, e.g. "MATCH START".
func Title(t model.EventType) string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// Headline combines icon and title.
func Headline(t model.EventType) string {
	return Icon(t) + " " + Title(t)
}
