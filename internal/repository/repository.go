package repository

import (
	"context"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
)

// SessionRepository defines the interface for checkout session
// persistence.
type SessionRepository interface {
	// Get retrieves a session by its ID.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// SaveIfVersion persists the session only when the stored version
	// still matches expectedVersion (0 for a session not yet stored).
	// On success the stored version is expectedVersion+1 and the
	// session's Version field is updated to match. Returns false
	// without error on a version mismatch.
	SaveIfVersion(ctx context.Context, session *domain.Session, expectedVersion int64) (bool, error)

	// Delete removes a session from the store.
	Delete(ctx context.Context, sessionID string) error
}
