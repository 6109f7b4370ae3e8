// Package console runs the dialogue on a local terminal, for development
// without a Telegram token.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/pkg/dialogue"
	"github.com/askarpov/farebot/pkg/domain"
)

// consoleUserID stands in for the Telegram sender ID; the console hosts a
// single conversation.
const consoleUserID int64 = 1

// Console reads commands and answers from stdin and prints engine replies,
// rendering Markdown replies through glamour when stdout is a terminal.
type Console struct {
	engine *dialogue.Engine
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	renderMarkdown func(string) (string, error)
	prompt         string
}

// Option configures the Console.
type Option func(*Console)

// WithIO overrides stdin/stdout, used by tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Console) {
		c.in = in
		c.out = out
		c.renderMarkdown = nil // no TTY rendering for injected writers
	}
}

// WithLogger configures the console logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) { c.logger = logger }
}

// New builds a console transport around the engine.
func New(engine *dialogue.Engine, opts ...Option) *Console {
	c := &Console{
		engine: engine,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logging.NewNop(),
		prompt: "> ",
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			c.renderMarkdown = r.Render
		}
		c.prompt = termenv.String("> ").Bold().String()
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the read-dispatch-print loop until EOF, "exit", or ctx
// cancellation. Slash commands map onto the same events the Telegram
// transport produces.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, dialogue.Welcome)
	fmt.Fprintln(c.out, "Commands: /plan_trip, /cancel, exit")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		var ev domain.Event
		switch line {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(c.out, "Bye!")
			return nil
		case "/start":
			fmt.Fprintln(c.out, dialogue.Welcome)
			continue
		case "/plan_trip":
			ev = domain.Begin()
		case "/cancel":
			ev = domain.Cancel()
		default:
			ev = domain.Text(line)
		}

		reply, err := c.engine.Handle(ctx, consoleUserID, ev)
		if err != nil {
			c.logger.Error("dialogue dispatch failed", "err", err)
			continue
		}
		if reply.Text == "" {
			continue
		}
		c.print(reply)
	}
}

func (c *Console) print(reply domain.Reply) {
	if reply.Markdown && c.renderMarkdown != nil {
		if rendered, err := c.renderMarkdown(reply.Text); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, reply.Text)
}
