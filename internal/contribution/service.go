package contribution

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
	ErrContributionNotFound = errors.New("contribution not found")
	ErrNotContributor       = errors.New("can only edit your own contributions")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
)

// Store handles contribution persistence
type Store interface {
	Create(ctx context.Context, c *Contribution) error
	GetByID(ctx context.Context, groupID, id string) (*Contribution, error)
	ListByGroup(ctx context.Context, groupID string) ([]*Contribution, error)
	Update(ctx context.Context, groupID, id string, req *UpdateContributionRequest) (*Contribution, error)
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

// Service handles contribution business logic
type Service struct {
	store     Store
	groups    Groups
	directory Resolver
}

// NewService creates a new contribution service
func NewService(store Store, groups Groups, dir Resolver) *Service {
	return &Service{store: store, groups: groups, directory: dir}
}

// Add records a deposit by the caller into the group pool. The caller's
// display name/photo are resolved best-effort and denormalized onto the entry.
func (s *Service) Add(ctx context.Context, groupID, callerID string, req *CreateContributionRequest) (*Contribution, error) {
	if _, err := s.requireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	identity := s.directory.Resolve(ctx, callerID)

	now := time.Now().UTC()
	c := &Contribution{
		ID:            uuid.NewString(),
		GroupID:       groupID,
		ContributorID: callerID,
		Amount:        req.Amount,
		Description:   req.Description,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		EntryDate:     req.Date,
		VoucherType:   req.VoucherType,
		VoucherNumber: req.VoucherNumber,
		UserName:      identity.DisplayName,
		UserPhoto:     identity.PhotoURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List retrieves the group's contributions, newest first
func (s *Service) List(ctx context.Context, groupID, callerID string) ([]*Contribution, error) {
	if _, err := s.requireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}
	return s.store.ListByGroup(ctx, groupID)
}

// Update edits a contribution; only its contributor may do this
func (s *Service) Update(ctx context.Context, groupID, callerID, id string, req *UpdateContributionRequest) (*Contribution, error) {
	if err := s.requireContributor(ctx, groupID, callerID, id); err != nil {
		return nil, err
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	c, err := s.store.Update(ctx, groupID, id, req)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContributionNotFound
	}
	return c, nil
}

// Delete removes a contribution; only its contributor may do this
func (s *Service) Delete(ctx context.Context, groupID, callerID, id string) error {
	if err := s.requireContributor(ctx, groupID, callerID, id); err != nil {
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

func (s *Service) requireContributor(ctx context.Context, groupID, callerID, id string) error {
	if _, err := s.requireMember(ctx, groupID, callerID); err != nil {
		return err
	}

	c, err := s.store.GetByID(ctx, groupID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrContributionNotFound
	}
	if c.ContributorID != callerID {
		return ErrNotContributor
	}
	return nil
}
