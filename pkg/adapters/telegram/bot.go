// Package telegram hosts the dialogue engine behind a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/pkg/dialogue"
	"github.com/askarpov/farebot/pkg/domain"
)

// Bot routes Telegram updates into the dialogue engine. Telebot delivers
// updates for one chat in order, which gives the engine the one-message-at-a-
// time guarantee it needs per session; different chats run concurrently.
type Bot struct {
	bot    *tele.Bot
	engine *dialogue.Engine
	logger *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger configures the transport logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// New connects to Telegram and registers the command and message handlers.
func New(token string, engine *dialogue.Engine, opts ...Option) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	b := &Bot{
		bot:    tb,
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	tb.Handle("/start", func(c tele.Context) error {
		return c.Send(dialogue.Welcome)
	})
	tb.Handle("/plan_trip", b.handleEvent(domain.Begin()))
	tb.Handle("/cancel", b.handleEvent(domain.Cancel()))
	tb.Handle(tele.OnText, func(c tele.Context) error {
		return b.dispatch(c, domain.Text(c.Text()))
	})

	return b, nil
}

func (b *Bot) handleEvent(ev domain.Event) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.dispatch(c, ev)
	}
}

func (b *Bot) dispatch(c tele.Context, ev domain.Event) error {
	userID := c.Sender().ID

	reply, err := b.engine.Handle(context.Background(), userID, ev)
	if err != nil {
		// Engine errors are store faults, not user mistakes. Log and stay quiet;
		// the conversation must never crash the poller.
		b.logger.Error("dialogue dispatch failed", "user", userID, "event", ev.Kind, "err", err)
		return nil
	}
	if reply.Text == "" {
		return nil
	}
	if reply.Markdown {
		return c.Send(reply.Text, tele.ModeMarkdown)
	}
	return c.Send(reply.Text)
}

// Start begins long polling and blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.logger.Info("telegram poller started")
	b.bot.Start()
	b.logger.Info("telegram poller stopped")
}
