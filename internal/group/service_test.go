package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"kitty/internal/directory"
)

type fakeStore struct {
	groups  map[string]*Group
	members map[string][]*Member
	removed []string
	deleted []string
}

func newFakeStore(groups ...*Group) *fakeStore {
	s := &fakeStore{
		groups:  make(map[string]*Group),
		members: make(map[string][]*Member),
	}
	for _, g := range groups {
		s.groups[g.ID] = g
	}
	return s
}

func (s *fakeStore) Create(ctx context.Context, g *Group, creator *Member) error {
	s.groups[g.ID] = g
	s.members[g.ID] = []*Member{creator}
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*Group, error) {
	return s.groups[id], nil
}

func (s *fakeStore) ListByMember(ctx context.Context, userID string) ([]*Group, error) {
	var out []*Group
	for _, g := range s.groups {
		if g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*Group, error) {
	g := s.groups[id]
	if g != nil && req.Name != nil {
		g.Name = *req.Name
	}
	return g, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	delete(s.groups, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) AddMember(ctx context.Context, m *Member) error {
	s.members[m.GroupID] = append(s.members[m.GroupID], m)
	return nil
}

func (s *fakeStore) RemoveMember(ctx context.Context, groupID, userID string) error {
	s.removed = append(s.removed, userID)
	return nil
}

func (s *fakeStore) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	return s.members[groupID], nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, userID string) *directory.Identity {
	return &directory.Identity{UserID: userID, DisplayName: "name-" + userID}
}

type fakeMinter struct {
	active string
	minted int
}

func (m *fakeMinter) ActiveToken(ctx context.Context, groupID string) (string, error) {
	return m.active, nil
}

func (m *fakeMinter) Mint(ctx context.Context, groupID, createdBy string) (string, error) {
	m.minted++
	return "fresh-token", nil
}

func testGroup() *Group {
	return &Group{
		ID:        "g1",
		Name:      "Trip",
		Currency:  "PEN",
		CreatedBy: "creator",
		MemberIDs: []string{"creator", "alice"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeResolver{}, &fakeMinter{})

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "u1", &CreateGroupRequest{})
		if !errors.Is(err, ErrNameRequired) {
			t.Fatalf("err = %v, want ErrNameRequired", err)
		}
	})

	t.Run("creator becomes sole admin member", func(t *testing.T) {
		g, err := svc.Create(context.Background(), "u1", &CreateGroupRequest{Name: "Trip"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if g.ID == "" {
			t.Error("expected generated id")
		}
		if g.Currency != DefaultCurrency {
			t.Errorf("Currency = %q, want %q", g.Currency, DefaultCurrency)
		}
		if len(g.MemberIDs) != 1 || g.MemberIDs[0] != "u1" {
			t.Errorf("MemberIDs = %v, want [u1]", g.MemberIDs)
		}
		members := store.members[g.ID]
		if len(members) != 1 || members[0].Role != MemberRoleAdmin {
			t.Errorf("members = %+v, want one admin row", members)
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("non-member is denied", func(t *testing.T) {
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, &fakeMinter{})
		_, err := svc.Get(context.Background(), "g1", "stranger")
		if !errors.Is(err, ErrNotMember) {
			t.Fatalf("err = %v, want ErrNotMember", err)
		}
	})

	t.Run("missing group", func(t *testing.T) {
		svc := NewService(newFakeStore(), fakeResolver{}, &fakeMinter{})
		_, err := svc.Get(context.Background(), "nope", "creator")
		if !errors.Is(err, ErrGroupNotFound) {
			t.Fatalf("err = %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("reuses the active invitation token", func(t *testing.T) {
		minter := &fakeMinter{active: "existing"}
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, minter)
		detail, err := svc.Get(context.Background(), "g1", "creator")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.InvitationToken != "existing" {
			t.Errorf("InvitationToken = %q, want %q", detail.InvitationToken, "existing")
		}
		if minter.minted != 0 {
			t.Errorf("minted = %d, want 0", minter.minted)
		}
	})

	t.Run("creator gets a fresh token when none is active", func(t *testing.T) {
		minter := &fakeMinter{}
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, minter)
		detail, err := svc.Get(context.Background(), "g1", "creator")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.InvitationToken != "fresh-token" {
			t.Errorf("InvitationToken = %q, want fresh-token", detail.InvitationToken)
		}
		if minter.minted != 1 {
			t.Errorf("minted = %d, want 1", minter.minted)
		}
	})

	t.Run("plain member never mints", func(t *testing.T) {
		minter := &fakeMinter{}
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, minter)
		detail, err := svc.Get(context.Background(), "g1", "alice")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.InvitationToken != "" {
			t.Errorf("InvitationToken = %q, want empty", detail.InvitationToken)
		}
		if minter.minted != 0 {
			t.Errorf("minted = %d, want 0", minter.minted)
		}
	})

	t.Run("members missing a row are synthesized", func(t *testing.T) {
		store := newFakeStore(testGroup())
		store.members["g1"] = []*Member{{GroupID: "g1", UserID: "creator", Role: MemberRoleAdmin}}
		svc := NewService(store, fakeResolver{}, &fakeMinter{active: "tok"})
		detail, err := svc.Get(context.Background(), "g1", "alice")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(detail.Members) != 2 {
			t.Fatalf("len(Members) = %d, want 2", len(detail.Members))
		}
		alice := detail.Members[1]
		if alice.Member.UserID != "alice" || alice.Member.Role != MemberRoleMember {
			t.Errorf("synthesized member = %+v", alice.Member)
		}
		if alice.Identity.DisplayName != "name-alice" {
			t.Errorf("DisplayName = %q", alice.Identity.DisplayName)
		}
	})
}

func TestCreatorOnlyOperations(t *testing.T) {
	t.Run("update by non-creator is denied", func(t *testing.T) {
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, &fakeMinter{})
		name := "New"
		_, err := svc.Update(context.Background(), "g1", "alice", &UpdateGroupRequest{Name: &name})
		if !errors.Is(err, ErrNotCreator) {
			t.Fatalf("err = %v, want ErrNotCreator", err)
		}
	})

	t.Run("delete by creator removes the group", func(t *testing.T) {
		store := newFakeStore(testGroup())
		svc := NewService(store, fakeResolver{}, &fakeMinter{})
		if err := svc.Delete(context.Background(), "g1", "creator"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != "g1" {
			t.Errorf("deleted = %v, want [g1]", store.deleted)
		}
	})

	t.Run("creator cannot remove themselves", func(t *testing.T) {
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, &fakeMinter{})
		err := svc.RemoveMember(context.Background(), "g1", "creator", "creator")
		if !errors.Is(err, ErrCannotRemoveSelf) {
			t.Fatalf("err = %v, want ErrCannotRemoveSelf", err)
		}
	})

	t.Run("creator removes another member", func(t *testing.T) {
		store := newFakeStore(testGroup())
		svc := NewService(store, fakeResolver{}, &fakeMinter{})
		if err := svc.RemoveMember(context.Background(), "g1", "creator", "alice"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if len(store.removed) != 1 || store.removed[0] != "alice" {
			t.Errorf("removed = %v, want [alice]", store.removed)
		}
	})
}

func TestLeave(t *testing.T) {
	t.Run("creator cannot leave", func(t *testing.T) {
		svc := NewService(newFakeStore(testGroup()), fakeResolver{}, &fakeMinter{})
		err := svc.Leave(context.Background(), "g1", "creator")
		if !errors.Is(err, ErrCreatorCannotLeave) {
			t.Fatalf("err = %v, want ErrCreatorCannotLeave", err)
		}
	})

	t.Run("member leaves", func(t *testing.T) {
		store := newFakeStore(testGroup())
		svc := NewService(store, fakeResolver{}, &fakeMinter{})
		if err := svc.Leave(context.Background(), "g1", "alice"); err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if len(store.removed) != 1 || store.removed[0] != "alice" {
			t.Errorf("removed = %v, want [alice]", store.removed)
		}
	})
}
