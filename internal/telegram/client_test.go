package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pitchside/live-engine/internal/model"
)

type fakeBot struct {
	fails int
	sent  []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.fails > 0 {
		f.fails--
		return tgbotapi.Message{}, errors.New("too many requests")
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

var sixEvent = model.MatchEvent{
	ID:           "ev-1",
	MatchID:      2,
	Type:         model.EventSix,
	Timestamp:    time.Date(2026, 4, 13, 15, 4, 5, 0, time.UTC),
	Description:  "KKR hits a SIX! 6 runs added",
	Significance: model.SignificanceHigh,
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"plain text", "plain text"},
		{"RCB 201/4 (20.0)", "RCB 201/4 \\(20\\.0\\)"},
		{"SIX!", "SIX\\!"},
		{"match_start", "match\\_start"},
		{"a-b+c=d", "a\\-b\\+c\\=d"},
	}
	for _, tt := range tests {
		if got := escapeMarkdownV2(tt.in); got != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestFormatMessage(t *testing.T) {
	got := formatMessage(sixEvent)
	for _, want := range []string{
		"*6️⃣ SIX*",
		"KKR hits a SIX\\! 6 runs added",
		"Match 2",
		"2026\\-04\\-13 15:04:05",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("message missing %q:\n%s", want, got)
		}
	}
}

func TestNotify_RetriesThenSucceeds(t *testing.T) {
	bot := &fakeBot{fails: 2}
	c, err := newClient(bot, "-100123", 3, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Notify(context.Background(), sixEvent); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected one delivered message, got %d", len(bot.sent))
	}
	msg := bot.sent[0]
	if msg.ChatID != -100123 || msg.ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Errorf("unexpected message config: chat %d mode %q", msg.ChatID, msg.ParseMode)
	}
	if msg.DisableNotification {
		t.Error("high-significance events should notify")
	}
}

func TestNotify_GivesUp(t *testing.T) {
	bot := &fakeBot{fails: 10}
	c, _ := newClient(bot, "42", 2, time.Millisecond)
	err := c.Notify(context.Background(), sixEvent)
	if err == nil || !strings.Contains(err.Error(), "after 2 retries") {
		t.Fatalf("expected retry exhaustion, got %v", err)
	}
}

func TestNotify_StopsOnCancel(t *testing.T) {
	bot := &fakeBot{fails: 10}
	c, _ := newClient(bot, "42", 5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Notify(ctx, sixEvent); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestNewClient_InvalidChatID(t *testing.T) {
	if _, err := newClient(&fakeBot{}, "not-a-number", 0, 0); err == nil {
		t.Fatal("expected invalid chat ID error")
	}
}
