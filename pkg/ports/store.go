package ports

import (
	"context"

	"github.com/askarpov/farebot/pkg/domain"
)

// SessionStore persists one Session per user for the lifetime of the
// conversation. Sessions live only in process memory; the store exists so the
// dialogue engine owns an explicit user-to-session mapping instead of ambient
// framework state.
type SessionStore interface {
	// Save persists the session for its user, replacing any previous one.
	Save(ctx context.Context, s *domain.Session) error

	// Load retrieves the session for a user.
	// Returns domain.ErrSessionNotFound if the user has no active session.
	Load(ctx context.Context, userID int64) (*domain.Session, error)

	// Delete removes the session for a user. Deleting an absent session is a no-op.
	Delete(ctx context.Context, userID int64) error

	// List returns the user IDs with an active session.
	List(ctx context.Context) ([]int64, error)
}
