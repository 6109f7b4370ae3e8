package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/internal/metrics"
	"github.com/askarpov/farebot/pkg/domain"
	"github.com/askarpov/farebot/pkg/ports"
	"github.com/askarpov/farebot/pkg/present"
)

// handler processes one text answer for the state it is registered under.
// It mutates the session in place and returns the outbound reply.
type handler func(ctx context.Context, s *domain.Session, text string) domain.Reply

// Engine drives the trip interview: one inbound event in, one reply out.
// It owns the user-to-session mapping through the store and never keeps
// ambient state of its own, so a single Engine serves all users.
type Engine struct {
	store     ports.SessionStore
	resolver  ports.CityResolver
	fares     ports.FareSearch
	validCity ports.CityValidatorFunc
	render    func([]domain.ItineraryCandidate) string

	now      func() time.Time
	timeout  time.Duration
	currency string
	limit    int
	logger   *slog.Logger

	table map[domain.TripState]handler
}

// Option configures the Engine.
type Option func(*Engine)

// WithClock overrides the time source used for date validation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger configures the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithCityValidator sets the input-time city check. The default accepts
// every answer and defers city failures to the terminal resolution step.
func WithCityValidator(fn ports.CityValidatorFunc) Option {
	return func(e *Engine) { e.validCity = fn }
}

// WithRenderer overrides how result candidates are formatted.
func WithRenderer(render func([]domain.ItineraryCandidate) string) Option {
	return func(e *Engine) { e.render = render }
}

// WithUpstreamTimeout bounds the terminal fetch sequence (both resolutions
// plus the fare search).
func WithUpstreamTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithSearchParams fixes the currency and result cap passed to fare search.
func WithSearchParams(currency string, limit int) Option {
	return func(e *Engine) {
		e.currency = currency
		e.limit = limit
	}
}

// New assembles the dialogue engine. It fails if the transition table does
// not cover every active state, so a state added without a handler is a
// construction-time error rather than a silent dead end.
func New(store ports.SessionStore, resolver ports.CityResolver, fares ports.FareSearch, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:     store,
		resolver:  resolver,
		fares:     fares,
		validCity: ports.AcceptAllCities,
		render:    present.Render,
		now:       time.Now,
		timeout:   15 * time.Second,
		currency:  "rub",
		limit:     5,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.table = map[domain.TripState]handler{
		domain.StateStartDate:       e.handleStartDate,
		domain.StateEndDate:         e.handleEndDate,
		domain.StateOriginCity:      e.handleOriginCity,
		domain.StateDestinationCity: e.handleDestinationCity,
	}
	for _, st := range domain.ActiveStates() {
		if _, ok := e.table[st]; !ok {
			return nil, fmt.Errorf("dialogue: no handler for state %q", st)
		}
	}
	return e, nil
}

// Handle processes one inbound event for a user and returns the single
// outbound reply. A reply with empty Text means the input was ignored.
func (e *Engine) Handle(ctx context.Context, userID int64, ev domain.Event) (domain.Reply, error) {
	switch ev.Kind {
	case domain.EventBegin:
		return e.begin(ctx, userID)
	case domain.EventCancel:
		return e.cancel(ctx, userID)
	case domain.EventText:
		return e.answer(ctx, userID, ev.Text)
	default:
		return domain.Reply{}, fmt.Errorf("dialogue: unknown event kind %q", ev.Kind)
	}
}

// begin creates a fresh session, replacing any prior one for the user.
func (e *Engine) begin(ctx context.Context, userID int64) (domain.Reply, error) {
	if _, err := e.store.Load(ctx, userID); err == nil {
		if err := e.store.Delete(ctx, userID); err != nil {
			return domain.Reply{}, fmt.Errorf("replace session: %w", err)
		}
		metrics.SessionsActive.Dec()
		metrics.SessionsTerminated.WithLabelValues(metrics.ReasonReplaced).Inc()
	}

	s := domain.NewSession(userID, e.now())
	if err := e.store.Save(ctx, s); err != nil {
		return domain.Reply{}, fmt.Errorf("save session: %w", err)
	}
	metrics.SessionsStarted.Inc()
	metrics.SessionsActive.Inc()
	e.logger.Debug("interview started", "user", userID)
	return domain.Reply{Text: msgPromptStartDate}, nil
}

func (e *Engine) cancel(ctx context.Context, userID int64) (domain.Reply, error) {
	if _, err := e.store.Load(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Reply{Text: msgNothingToDo}, nil
		}
		return domain.Reply{}, fmt.Errorf("load session: %w", err)
	}
	if err := e.store.Delete(ctx, userID); err != nil {
		return domain.Reply{}, fmt.Errorf("delete session: %w", err)
	}
	metrics.SessionsActive.Dec()
	metrics.SessionsTerminated.WithLabelValues(metrics.ReasonCanceled).Inc()
	e.logger.Debug("interview canceled", "user", userID)
	return domain.Reply{Text: msgCanceled}, nil
}

// answer routes a plain text message to the handler for the user's state.
// Text from a user with no session is ignored: they are not in a conversation.
func (e *Engine) answer(ctx context.Context, userID int64, text string) (domain.Reply, error) {
	s, err := e.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Reply{}, nil
		}
		return domain.Reply{}, fmt.Errorf("load session: %w", err)
	}

	h, ok := e.table[s.State]
	if !ok {
		// Terminated sessions are deleted on termination, so this only
		// triggers if a stale record leaks through. Treat as no conversation.
		return domain.Reply{}, nil
	}

	reply := h(ctx, s, text)

	if s.Terminated() {
		if err := e.store.Delete(ctx, userID); err != nil {
			return domain.Reply{}, fmt.Errorf("dispose session: %w", err)
		}
		metrics.SessionsActive.Dec()
		return reply, nil
	}
	if err := e.store.Save(ctx, s); err != nil {
		return domain.Reply{}, fmt.Errorf("save session: %w", err)
	}
	return reply, nil
}

func (e *Engine) handleStartDate(_ context.Context, s *domain.Session, text string) domain.Reply {
	d, ok := parseTripDate(text, e.now())
	if !ok {
		return domain.Reply{Text: msgInvalidDate}
	}
	s.StartDate = d
	s.State = domain.StateEndDate
	return domain.Reply{Text: msgPromptEndDate}
}

func (e *Engine) handleEndDate(_ context.Context, s *domain.Session, text string) domain.Reply {
	d, ok := parseTripDate(text, e.now())
	if !ok {
		return domain.Reply{Text: msgInvalidDate}
	}
	if d.Before(s.StartDate) {
		return domain.Reply{Text: msgEndBeforeStart}
	}
	s.EndDate = d
	s.State = domain.StateOriginCity
	return domain.Reply{Text: msgPromptOrigin}
}

func (e *Engine) handleOriginCity(ctx context.Context, s *domain.Session, text string) domain.Reply {
	if !e.validCity(ctx, text) {
		return domain.Reply{Text: msgCityNotFound(text)}
	}
	s.OriginCity = text
	s.State = domain.StateDestinationCity
	return domain.Reply{Text: msgPromptDest}
}

func (e *Engine) handleDestinationCity(ctx context.Context, s *domain.Session, text string) domain.Reply {
	if !e.validCity(ctx, text) {
		return domain.Reply{Text: msgCityNotFound(text)}
	}
	s.DestinationCity = text
	s.State = domain.StateTerminated
	return e.finishTrip(ctx, s)
}
