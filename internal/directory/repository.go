package directory

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads user profiles from the users table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new directory repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user profile by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Identity, error) {
	query := `
		SELECT id, COALESCE(display_name, ''), COALESCE(email, ''), photo_url
		FROM users
		WHERE id = $1
	`

	identity := &Identity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&identity.UserID,
		&identity.DisplayName,
		&identity.Email,
		&identity.PhotoURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return identity, nil
}
