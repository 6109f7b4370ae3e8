/*
Package farebot wires the trip-planning dialogue together.

The dialogue core (pkg/dialogue) collects start date, end date, origin and
destination city from a user one answer at a time, then resolves both cities
to IATA codes and fetches the cheapest direct round-trip fares. This package
is the composition root for library consumers and for cmd/farebot: it builds
the engine with the production adapters and exposes functional options to
substitute any port.
*/
package farebot

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/askarpov/farebot/internal/config"
	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/pkg/adapters/memory"
	"github.com/askarpov/farebot/pkg/adapters/travelpayouts"
	"github.com/askarpov/farebot/pkg/dialogue"
	"github.com/askarpov/farebot/pkg/ports"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// App holds the assembled dialogue engine and its collaborators.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *dialogue.Engine

	store    ports.SessionStore
	resolver ports.CityResolver
	fares    ports.FareSearch
	now      func() time.Time
}

// Option configures the App before wiring.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithStore substitutes the session store.
func WithStore(store ports.SessionStore) Option {
	return func(a *App) { a.store = store }
}

// WithResolver substitutes the city resolver.
func WithResolver(r ports.CityResolver) Option {
	return func(a *App) { a.resolver = r }
}

// WithFareSearch substitutes the fare-search provider.
func WithFareSearch(f ports.FareSearch) Option {
	return func(a *App) { a.fares = f }
}

// WithClock overrides the time source used for date validation.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New assembles the engine. Ports not overridden by options default to the
// production adapters: an in-memory session store and the Travelpayouts client.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.resolver == nil || a.fares == nil {
		client := travelpayouts.New(cfg.TravelpayoutsToken,
			travelpayouts.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			travelpayouts.WithLogger(a.logger),
		)
		if a.resolver == nil {
			a.resolver = client
		}
		if a.fares == nil {
			a.fares = client
		}
	}

	engine, err := dialogue.New(a.store, a.resolver, a.fares,
		dialogue.WithLogger(a.logger),
		dialogue.WithClock(a.now),
		dialogue.WithUpstreamTimeout(cfg.HTTPTimeout),
		dialogue.WithSearchParams(cfg.Currency, cfg.ResultLimit),
	)
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return a, nil
}

// Engine returns the assembled dialogue engine for a transport to drive.
func (a *App) Engine() *dialogue.Engine {
	return a.engine
}
