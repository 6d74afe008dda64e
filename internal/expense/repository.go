package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

const selectColumns = `id, group_id, amount, description, category, subcategory, entry_date, paid_by, split_among, payment_method, created_by, user_name, user_photo, created_at, updated_at`

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanExpense(row interface{ Scan(...interface{}) error }) (*Expense, error) {
	e := &Expense{}
	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Amount,
		&e.Description,
		&e.Category,
		&e.Subcategory,
		&e.EntryDate,
		&e.PaidBy,
		pq.Array(&e.SplitAmong),
		&e.PaymentMethod,
		&e.CreatedBy,
		&e.UserName,
		&e.UserPhoto,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new expense
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	query := `
		INSERT INTO expenses (id, group_id, amount, description, category, subcategory, entry_date, paid_by, split_among, payment_method, created_by, user_name, user_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.GroupID, e.Amount, e.Description, e.Category, e.Subcategory,
		e.EntryDate, e.PaidBy, pq.Array(e.SplitAmong), e.PaymentMethod,
		e.CreatedBy, e.UserName, e.UserPhoto, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense scoped to its group
func (r *Repository) GetByID(ctx context.Context, groupID, id string) (*Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM expenses WHERE group_id = $1 AND id = $2`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, groupID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// ListByGroup retrieves all expenses of a group, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM expenses WHERE group_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, groupID)
}

// ListRecent retrieves the limit newest expenses of a group
func (r *Repository) ListRecent(ctx context.Context, groupID string, limit int) ([]*Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM expenses WHERE group_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, groupID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// Update modifies an expense's editable fields. A nil SplitAmong keeps the
// stored split.
func (r *Repository) Update(ctx context.Context, groupID, id string, req *UpdateExpenseRequest) (*Expense, error) {
	var split interface{}
	if req.SplitAmong != nil {
		split = pq.Array(req.SplitAmong)
	}

	query := `
		UPDATE expenses
		SET amount = COALESCE($3, amount),
		    description = COALESCE($4, description),
		    category = COALESCE($5, category),
		    subcategory = COALESCE($6, subcategory),
		    entry_date = COALESCE($7, entry_date),
		    paid_by = COALESCE($8, paid_by),
		    split_among = COALESCE($9, split_among),
		    payment_method = COALESCE($10, payment_method),
		    updated_at = NOW()
		WHERE group_id = $1 AND id = $2
		RETURNING ` + selectColumns

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, groupID, id,
		req.Amount, req.Description, req.Category, req.Subcategory,
		req.Date, req.PaidBy, split, req.PaymentMethod,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return e, nil
}

// Delete removes an expense
func (r *Repository) Delete(ctx context.Context, groupID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE group_id = $1 AND id = $2`, groupID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
