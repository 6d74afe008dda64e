package contribution

import (
	"context"
	"database/sql"
	"fmt"
)

const selectColumns = `id, group_id, contributor_id, amount, description, type, payment_method, entry_date, voucher_type, voucher_number, user_name, user_photo, created_at, updated_at`

// Repository handles contribution data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new contribution repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanContribution(row interface{ Scan(...interface{}) error }) (*Contribution, error) {
	c := &Contribution{}
	err := row.Scan(
		&c.ID,
		&c.GroupID,
		&c.ContributorID,
		&c.Amount,
		&c.Description,
		&c.Type,
		&c.PaymentMethod,
		&c.EntryDate,
		&c.VoucherType,
		&c.VoucherNumber,
		&c.UserName,
		&c.UserPhoto,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new contribution
func (r *Repository) Create(ctx context.Context, c *Contribution) error {
	query := `
		INSERT INTO contributions (id, group_id, contributor_id, amount, description, type, payment_method, entry_date, voucher_type, voucher_number, user_name, user_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.GroupID, c.ContributorID, c.Amount, c.Description, c.Type,
		c.PaymentMethod, c.EntryDate, c.VoucherType, c.VoucherNumber,
		c.UserName, c.UserPhoto, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contribution: %w", err)
	}

	return nil
}

// GetByID retrieves a contribution scoped to its group
func (r *Repository) GetByID(ctx context.Context, groupID, id string) (*Contribution, error) {
	query := `SELECT ` + selectColumns + ` FROM contributions WHERE group_id = $1 AND id = $2`

	c, err := scanContribution(r.db.QueryRowContext(ctx, query, groupID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}

	return c, nil
}

// ListByGroup retrieves all contributions of a group, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Contribution, error) {
	query := `SELECT ` + selectColumns + ` FROM contributions WHERE group_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, groupID)
}

// ListRecent retrieves the limit newest contributions of a group
func (r *Repository) ListRecent(ctx context.Context, groupID string, limit int) ([]*Contribution, error) {
	query := `SELECT ` + selectColumns + ` FROM contributions WHERE group_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, groupID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*Contribution, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}

	return contributions, rows.Err()
}

// Update modifies a contribution's editable fields
func (r *Repository) Update(ctx context.Context, groupID, id string, req *UpdateContributionRequest) (*Contribution, error) {
	query := `
		UPDATE contributions
		SET amount = COALESCE($3, amount),
		    description = COALESCE($4, description),
		    type = COALESCE($5, type),
		    payment_method = COALESCE($6, payment_method),
		    entry_date = COALESCE($7, entry_date),
		    voucher_type = COALESCE($8, voucher_type),
		    voucher_number = COALESCE($9, voucher_number),
		    updated_at = NOW()
		WHERE group_id = $1 AND id = $2
		RETURNING ` + selectColumns

	c, err := scanContribution(r.db.QueryRowContext(ctx, query, groupID, id,
		req.Amount, req.Description, req.Type, req.PaymentMethod, req.Date,
		req.VoucherType, req.VoucherNumber,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update contribution: %w", err)
	}

	return c, nil
}

// Delete removes a contribution
func (r *Repository) Delete(ctx context.Context, groupID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE group_id = $1 AND id = $2`, groupID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contribution: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("contribution not found")
	}

	return nil
}
