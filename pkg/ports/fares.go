package ports

import (
	"context"

	"github.com/askarpov/farebot/pkg/domain"
)

// FareSearch queries a fare provider for round-trip itineraries.
// The returned slice is ordered the way the provider ranked it (ascending
// price) and may be empty; an empty result is not an error.
type FareSearch interface {
	Search(ctx context.Context, q domain.FareQuery) ([]domain.ItineraryCandidate, error)
}
