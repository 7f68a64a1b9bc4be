package ports

import (
	"context"

	"github.com/parleykit/parley/pkg/domain"
)

// SessionStore persists serve-mode dialogue sessions, enabling walks that
// span multiple requests or process restarts.
type SessionStore interface {
	// Save persists the session under the given ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the ID is unknown.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, sessionID string) error
}
