package invitation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kitty/internal/group"
)

// Common errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
)

// Store handles invitation persistence
type Store interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	ActiveByGroup(ctx context.Context, groupID string) (*Invitation, error)
}

// Groups is the slice of the group registry the invitation flow needs
type Groups interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
	AddMember(ctx context.Context, m *group.Member) error
}

// Service handles invitation business logic
type Service struct {
	store  Store
	groups Groups
	now    func() time.Time
}

// NewService creates a new invitation service
func NewService(store Store, groups Groups) *Service {
	return &Service{
		store:  store,
		groups: groups,
		now:    time.Now,
	}
}

// Create mints a fresh join token for the group; only the creator may do this
func (s *Service) Create(ctx context.Context, groupID, callerID string) (*Invitation, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if g.CreatedBy != callerID {
		return nil, group.ErrNotCreator
	}

	return s.mint(ctx, groupID, callerID)
}

// Verify checks a token and returns its target group. Public: no caller
// identity is required.
func (s *Service) Verify(ctx context.Context, token string) (*Invitation, *group.Group, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	g, err := s.groups.GetByID(ctx, inv.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, group.ErrGroupNotFound
	}

	return inv, g, nil
}

// Accept redeems a token for the caller. Idempotent: accepting a token the
// caller already redeemed changes nothing and succeeds.
func (s *Service) Accept(ctx context.Context, token, callerID string) (string, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return "", err
	}

	joinedVia := inv.Token
	m := &group.Member{
		GroupID:   inv.GroupID,
		UserID:    callerID,
		Role:      group.MemberRoleMember,
		JoinedAt:  s.now().UTC(),
		JoinedVia: &joinedVia,
	}
	if err := s.groups.AddMember(ctx, m); err != nil {
		return "", err
	}

	return inv.GroupID, nil
}

// ActiveToken returns the newest non-expired token for the group, or ""
func (s *Service) ActiveToken(ctx context.Context, groupID string) (string, error) {
	inv, err := s.store.ActiveByGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	if inv == nil {
		return "", nil
	}
	return inv.Token, nil
}

// Mint creates a fresh token without a permission check; the group registry
// calls this on its get path after gating on the creator itself
func (s *Service) Mint(ctx context.Context, groupID, createdBy string) (string, error) {
	inv, err := s.mint(ctx, groupID, createdBy)
	if err != nil {
		return "", err
	}
	return inv.Token, nil
}

func (s *Service) mint(ctx context.Context, groupID, createdBy string) (*Invitation, error) {
	now := s.now().UTC()
	inv := &Invitation{
		Token:     uuid.NewString(),
		GroupID:   groupID,
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
	if err := s.store.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) lookup(ctx context.Context, token string) (*Invitation, error) {
	inv, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if !inv.Active(s.now()) {
		return nil, ErrInvitationExpired
	}
	return inv, nil
}
