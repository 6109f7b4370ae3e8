package dialogue

import (
	"context"
	"errors"

	"github.com/askarpov/farebot/internal/metrics"
	"github.com/askarpov/farebot/pkg/domain"
)

// finishTrip runs the one-shot resolve-then-search-then-render sequence once
// all four answers are collected. Every outcome (route miss, upstream
// failure, empty results, rendered results) terminates the session; nothing
// here is retried and no error escapes to the transport.
func (e *Engine) finishTrip(ctx context.Context, s *domain.Session) domain.Reply {
	ctx, cancelFn := context.WithTimeout(ctx, e.timeout)
	defer cancelFn()

	// The two directory lookups are independent, so issue them together.
	// The fare search needs both codes.
	type resolution struct {
		code string
		err  error
	}
	originCh := make(chan resolution, 1)
	destCh := make(chan resolution, 1)
	go func() {
		code, err := e.resolver.Resolve(ctx, s.OriginCity)
		originCh <- resolution{code, err}
	}()
	go func() {
		code, err := e.resolver.Resolve(ctx, s.DestinationCity)
		destCh <- resolution{code, err}
	}()
	origin, dest := <-originCh, <-destCh

	for _, r := range []resolution{origin, dest} {
		if r.err == nil {
			continue
		}
		if errors.Is(r.err, domain.ErrCityNotFound) {
			e.logger.Info("route not resolvable",
				"user", s.UserID, "origin", s.OriginCity, "destination", s.DestinationCity)
			metrics.SessionsTerminated.WithLabelValues(metrics.ReasonRouteNotFound).Inc()
			return domain.Reply{Text: msgRouteNotFound}
		}
		e.logger.Error("city resolution failed", "user", s.UserID, "err", r.err)
		metrics.SessionsTerminated.WithLabelValues(metrics.ReasonUpstreamFailure).Inc()
		return domain.Reply{Text: msgSearchFailed}
	}

	candidates, err := e.fares.Search(ctx, domain.FareQuery{
		Origin:      origin.code,
		Destination: dest.code,
		DepartDate:  s.StartDate,
		ReturnDate:  s.EndDate,
		Currency:    e.currency,
		Limit:       e.limit,
	})
	if err != nil {
		e.logger.Error("fare search failed",
			"user", s.UserID, "origin", origin.code, "destination", dest.code, "err", err)
		metrics.FareSearches.WithLabelValues("error").Inc()
		metrics.SessionsTerminated.WithLabelValues(metrics.ReasonUpstreamFailure).Inc()
		return domain.Reply{Text: msgSearchFailed}
	}

	status := "ok"
	if len(candidates) == 0 {
		status = "empty"
	}
	metrics.FareSearches.WithLabelValues(status).Inc()
	metrics.SessionsTerminated.WithLabelValues(metrics.ReasonCompleted).Inc()
	e.logger.Debug("interview completed",
		"user", s.UserID, "origin", origin.code, "destination", dest.code, "results", len(candidates))

	return domain.Reply{Text: e.render(candidates), Markdown: true}
}
