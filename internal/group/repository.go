package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group and its creator's member row in one transaction
func (r *Repository) Create(ctx context.Context, g *Group, creator *Member) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	groupQuery := `
		INSERT INTO groups (id, name, description, icon, color, target_amount, currency, created_by, member_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, groupQuery,
		g.ID, g.Name, g.Description, g.Icon, g.Color, g.TargetAmount,
		g.Currency, g.CreatedBy, pq.Array(g.MemberIDs), g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, memberQuery, creator.GroupID, creator.UserID, creator.Role, creator.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add creator member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group creation: %w", err)
	}

	return nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `
		SELECT id, name, description, icon, color, target_amount, currency, created_by, member_ids, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Icon,
		&g.Color,
		&g.TargetAmount,
		&g.Currency,
		&g.CreatedBy,
		pq.Array(&g.MemberIDs),
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// ListByMember retrieves all groups the user belongs to, newest first
func (r *Repository) ListByMember(ctx context.Context, userID string) ([]*Group, error) {
	query := `
		SELECT id, name, description, icon, color, target_amount, currency, created_by, member_ids, created_at, updated_at
		FROM groups
		WHERE $1 = ANY(member_ids)
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Description,
			&g.Icon,
			&g.Color,
			&g.TargetAmount,
			&g.Currency,
			&g.CreatedBy,
			pq.Array(&g.MemberIDs),
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Update modifies a group's scalar attributes (last writer wins)
func (r *Repository) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    icon = COALESCE($4, icon),
		    color = COALESCE($5, color),
		    target_amount = COALESCE($6, target_amount),
		    currency = COALESCE($7, currency),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, icon, color, target_amount, currency, created_by, member_ids, created_at, updated_at
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description, req.Icon, req.Color, req.TargetAmount, req.Currency).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Icon,
		&g.Color,
		&g.TargetAmount,
		&g.Currency,
		&g.CreatedBy,
		pq.Array(&g.MemberIDs),
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return g, nil
}

// Delete removes a group and everything hanging off it in one transaction.
// The batch either fully commits or the whole operation fails.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"contributions", "expenses", "invitations", "group_members"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE group_id = $1", table), id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("group not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group deletion: %w", err)
	}

	return nil
}

// AddMember unions the user into the member set and upserts the member row.
// The array update is a single conditional statement so concurrent adds and
// removes of different users never overwrite each other. Idempotent.
func (r *Repository) AddMember(ctx context.Context, m *Member) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	unionQuery := `
		UPDATE groups
		SET member_ids = CASE WHEN $2 = ANY(member_ids) THEN member_ids ELSE array_append(member_ids, $2) END,
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, unionQuery, m.GroupID, m.UserID); err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id, role, joined_at, joined_via)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, memberQuery, m.GroupID, m.UserID, m.Role, m.JoinedAt, m.JoinedVia); err != nil {
		return fmt.Errorf("failed to create member row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member addition: %w", err)
	}

	return nil
}

// RemoveMember differences the user out of the member set and deletes the
// member row, leaving every other member untouched
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	removeQuery := `
		UPDATE groups
		SET member_ids = array_remove(member_ids, $2),
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, removeQuery, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member from group: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID); err != nil {
		return fmt.Errorf("failed to delete member row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member removal: %w", err)
	}

	return nil
}

// GetMembers retrieves all member rows of a group
func (r *Repository) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	query := `
		SELECT group_id, user_id, role, joined_at, joined_via
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role, &m.JoinedAt, &m.JoinedVia); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
