package group

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kitty/internal/directory"
)

// Common errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotMember          = errors.New("access denied")
	ErrNotCreator         = errors.New("only the group creator can do this")
	ErrCannotRemoveSelf   = errors.New("cannot remove yourself, use leave instead")
	ErrCreatorCannotLeave = errors.New("creator cannot leave the group, delete it instead")
	ErrNameRequired       = errors.New("name is required")
)

// DefaultCurrency is assigned when group creation omits a currency
const DefaultCurrency = "PEN"

// Store handles group persistence
type Store interface {
	Create(ctx context.Context, g *Group, creator *Member) error
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByMember(ctx context.Context, userID string) ([]*Group, error)
	Update(ctx context.Context, id string, req *UpdateGroupRequest) (*Group, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	GetMembers(ctx context.Context, groupID string) ([]*Member, error)
}

// Resolver resolves user IDs to display identities (best-effort)
type Resolver interface {
	Resolve(ctx context.Context, userID string) *directory.Identity
}

// InvitationMinter surfaces and mints join tokens for the get-group path
type InvitationMinter interface {
	// ActiveToken returns the newest non-expired token for the group, or ""
	ActiveToken(ctx context.Context, groupID string) (string, error)
	// Mint creates a fresh token for the group
	Mint(ctx context.Context, groupID, createdBy string) (string, error)
}

// GroupDetail is a group together with its resolved members and join token
type GroupDetail struct {
	Group           *Group
	Members         []*MemberDetail
	InvitationToken string
}

// MemberDetail pairs a member row with its resolved identity
type MemberDetail struct {
	Member   *Member
	Identity *directory.Identity
}

// Service handles group business logic
type Service struct {
	store       Store
	directory   Resolver
	invitations InvitationMinter
}

// NewService creates a new group service
func NewService(store Store, dir Resolver, invitations InvitationMinter) *Service {
	return &Service{
		store:       store,
		directory:   dir,
		invitations: invitations,
	}
}

// Create creates a new group with the creator as its only (admin) member
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	currency := DefaultCurrency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	now := time.Now().UTC()
	g := &Group{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Color:        req.Color,
		TargetAmount: req.TargetAmount,
		Currency:     currency,
		CreatedBy:    creatorID,
		MemberIDs:    []string{creatorID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	creator := &Member{
		GroupID:  g.ID,
		UserID:   creatorID,
		Role:     MemberRoleAdmin,
		JoinedAt: now,
	}

	if err := s.store.Create(ctx, g, creator); err != nil {
		return nil, err
	}

	return g, nil
}

// List retrieves the caller's groups, newest first, with creator names resolved
func (s *Service) List(ctx context.Context, callerID string) ([]*GroupResponse, error) {
	groups, err := s.store.ListByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		resp := g.ToResponse()
		resp.CreatorName = s.directory.Resolve(ctx, g.CreatedBy).DisplayName
		responses[i] = resp
	}

	return responses, nil
}

// Get retrieves a group with member details and the active invitation token.
// When no invitation is active, only the creator gets a fresh one minted.
func (s *Service) Get(ctx context.Context, groupID, callerID string) (*GroupDetail, error) {
	g, err := s.requireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}

	token, err := s.invitations.ActiveToken(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if token == "" && g.CreatedBy == callerID {
		token, err = s.invitations.Mint(ctx, groupID, callerID)
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.store.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Member, len(rows))
	for _, m := range rows {
		byID[m.UserID] = m
	}

	// The denormalized set is authoritative for who is a member; member rows
	// supply role/joinedAt metadata.
	members := make([]*MemberDetail, 0, len(g.MemberIDs))
	for _, id := range g.MemberIDs {
		m, ok := byID[id]
		if !ok {
			m = &Member{GroupID: groupID, UserID: id, Role: MemberRoleMember}
		}
		members = append(members, &MemberDetail{
			Member:   m,
			Identity: s.directory.Resolve(ctx, id),
		})
	}

	return &GroupDetail{
		Group:           g,
		Members:         members,
		InvitationToken: token,
	}, nil
}

// Update modifies a group; only the creator may do this
func (s *Service) Update(ctx context.Context, groupID, callerID string, req *UpdateGroupRequest) (*Group, error) {
	if _, err := s.requireCreator(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	g, err := s.store.Update(ctx, groupID, req)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// Delete removes a group and all its ledgers; only the creator may do this
func (s *Service) Delete(ctx context.Context, groupID, callerID string) error {
	if _, err := s.requireCreator(ctx, groupID, callerID); err != nil {
		return err
	}
	return s.store.Delete(ctx, groupID)
}

// RemoveMember removes another member from the group; only the creator may
// do this, and not to themselves
func (s *Service) RemoveMember(ctx context.Context, groupID, callerID, targetID string) error {
	if _, err := s.requireCreator(ctx, groupID, callerID); err != nil {
		return err
	}
	if callerID == targetID {
		return ErrCannotRemoveSelf
	}
	return s.store.RemoveMember(ctx, groupID, targetID)
}

// Leave removes the caller from the group; the creator must delete instead
func (s *Service) Leave(ctx context.Context, groupID, callerID string) error {
	g, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if g.CreatedBy == callerID {
		return ErrCreatorCannotLeave
	}
	return s.store.RemoveMember(ctx, groupID, callerID)
}

// requireMember loads the group and fails unless the caller is a member
func (s *Service) requireMember(ctx context.Context, groupID, callerID string) (*Group, error) {
	g, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if !g.HasMember(callerID) {
		return nil, ErrNotMember
	}
	return g, nil
}

// requireCreator loads the group and fails unless the caller created it
func (s *Service) requireCreator(ctx context.Context, groupID, callerID string) (*Group, error) {
	g, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if g.CreatedBy != callerID {
		return nil, ErrNotCreator
	}
	return g, nil
}
