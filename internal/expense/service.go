package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kitty/internal/directory"
	"kitty/internal/group"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrNotAuthor          = errors.New("can only edit your own expenses")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrDescriptionMissing = errors.New("description is required")
	ErrCategoryMissing    = errors.New("category is required")
	ErrEmptySplit         = errors.New("split_among must not be empty")
)

// Store handles expense persistence
type Store interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, groupID, id string) (*Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]*Expense, error)
	Update(ctx context.Context, groupID, id string, req *UpdateExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, groupID, id string) error
}

// Groups gates ledger access on membership
type Groups interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
}

// Resolver resolves user IDs to display identities (best-effort)
type Resolver interface {
	Resolve(ctx context.Context, userID string) *directory.Identity
}

// Service handles expense business logic
type Service struct {
	store     Store
	groups    Groups
	directory Resolver
}

// NewService creates a new expense service
func NewService(store Store, groups Groups, dir Resolver) *Service {
	return &Service{store: store, groups: groups, directory: dir}
}

// Add records a shared expense. paid_by defaults to the caller and
// split_among to the full current member set; ownership of the record stays
// with the caller either way.
func (s *Service) Add(ctx context.Context, groupID, callerID string, req *CreateExpenseRequest) (*Expense, error) {
	g, err := s.requireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}
	if req.Category == "" {
		return nil, ErrCategoryMissing
	}

	paidBy := callerID
	if req.PaidBy != nil && *req.PaidBy != "" {
		paidBy = *req.PaidBy
	}
	splitAmong := req.SplitAmong
	if len(splitAmong) == 0 {
		splitAmong = append([]string(nil), g.MemberIDs...)
	}

	identity := s.directory.Resolve(ctx, callerID)

	now := time.Now().UTC()
	e := &Expense{
		ID:            uuid.NewString(),
		GroupID:       groupID,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		EntryDate:     req.Date,
		PaidBy:        paidBy,
		SplitAmong:    splitAmong,
		PaymentMethod: req.PaymentMethod,
		CreatedBy:     callerID,
		UserName:      identity.DisplayName,
		UserPhoto:     identity.PhotoURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// List retrieves the group's expenses, newest first
func (s *Service) List(ctx context.Context, groupID, callerID string) ([]*Expense, error) {
	if _, err := s.requireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}
	return s.store.ListByGroup(ctx, groupID)
}

// Update edits an expense; only its author may do this, regardless of who
// paid. A patch may never leave the split empty.
func (s *Service) Update(ctx context.Context, groupID, callerID, id string, req *UpdateExpenseRequest) (*Expense, error) {
	if err := s.requireAuthor(ctx, groupID, callerID, id); err != nil {
		return nil, err
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.SplitAmong != nil && len(req.SplitAmong) == 0 {
		return nil, ErrEmptySplit
	}

	e, err := s.store.Update(ctx, groupID, id, req)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// Delete removes an expense; only its author may do this
func (s *Service) Delete(ctx context.Context, groupID, callerID, id string) error {
	if err := s.requireAuthor(ctx, groupID, callerID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, groupID, id)
}

func (s *Service) requireMember(ctx context.Context, groupID, callerID string) (*group.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if !g.HasMember(callerID) {
		return nil, group.ErrNotMember
	}
	return g, nil
}

func (s *Service) requireAuthor(ctx context.Context, groupID, callerID, id string) error {
	if _, err := s.requireMember(ctx, groupID, callerID); err != nil {
		return err
	}

	e, err := s.store.GetByID(ctx, groupID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}
	if e.CreatedBy != callerID {
		return ErrNotAuthor
	}
	return nil
}
