package directory

import (
	"context"
	"log/slog"
)

// Store reads user profiles
type Store interface {
	GetByID(ctx context.Context, id string) (*Identity, error)
}

// Service resolves user IDs to display identities. Lookups are best-effort:
// a missing user or a failed read degrades to a placeholder identity and is
// never surfaced to the caller.
type Service struct {
	store Store
}

// NewService creates a new directory service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Resolve returns the identity for userID, falling back to the placeholder
// when the user is unknown or the lookup fails.
func (s *Service) Resolve(ctx context.Context, userID string) *Identity {
	identity, err := s.store.GetByID(ctx, userID)
	if err != nil {
		slog.Warn("could not fetch user info", "user_id", userID, "error", err)
		return Placeholder(userID)
	}
	if identity == nil {
		return Placeholder(userID)
	}

	if identity.DisplayName == "" {
		if identity.Email != "" {
			identity.DisplayName = identity.Email
		} else {
			identity.DisplayName = PlaceholderName
		}
	}

	return identity
}
