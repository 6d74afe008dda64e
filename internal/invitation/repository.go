package invitation

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles invitation persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new invitation
func (r *Repository) Create(ctx context.Context, inv *Invitation) error {
	query := `
		INSERT INTO invitations (token, group_id, created_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, inv.Token, inv.GroupID, inv.CreatedBy, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetByToken retrieves an invitation by its token
func (r *Repository) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	query := `
		SELECT token, group_id, created_by, created_at, expires_at
		FROM invitations
		WHERE token = $1
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.Token,
		&inv.GroupID,
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

// ActiveByGroup retrieves the newest non-expired invitation for a group
func (r *Repository) ActiveByGroup(ctx context.Context, groupID string) (*Invitation, error) {
	query := `
		SELECT token, group_id, created_by, created_at, expires_at
		FROM invitations
		WHERE group_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(
		&inv.Token,
		&inv.GroupID,
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active invitation: %w", err)
	}

	return inv, nil
}
