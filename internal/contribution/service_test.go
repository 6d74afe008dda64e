package contribution

import (
	"context"
	"errors"
	"testing"

	"kitty/internal/directory"
	"kitty/internal/group"
)

type fakeStore struct {
	entries map[string]*Contribution
	deleted []string
}

func newFakeStore(entries ...*Contribution) *fakeStore {
	s := &fakeStore{entries: make(map[string]*Contribution)}
	for _, c := range entries {
		s.entries[c.ID] = c
	}
	return s
}

func (s *fakeStore) Create(ctx context.Context, c *Contribution) error {
	s.entries[c.ID] = c
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, groupID, id string) (*Contribution, error) {
	c := s.entries[id]
	if c == nil || c.GroupID != groupID {
		return nil, nil
	}
	return c, nil
}

func (s *fakeStore) ListByGroup(ctx context.Context, groupID string) ([]*Contribution, error) {
	var out []*Contribution
	for _, c := range s.entries {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(ctx context.Context, groupID, id string, req *UpdateContributionRequest) (*Contribution, error) {
	c, _ := s.GetByID(ctx, groupID, id)
	if c != nil && req.Amount != nil {
		c.Amount = *req.Amount
	}
	return c, nil
}

func (s *fakeStore) Delete(ctx context.Context, groupID, id string) error {
	delete(s.entries, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeGroups struct {
	group *group.Group
}

func (g *fakeGroups) GetByID(ctx context.Context, id string) (*group.Group, error) {
	if g.group != nil && g.group.ID == id {
		return g.group, nil
	}
	return nil, nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, userID string) *directory.Identity {
	return &directory.Identity{UserID: userID, DisplayName: "name-" + userID}
}

func testGroups() *fakeGroups {
	return &fakeGroups{group: &group.Group{
		ID:        "g1",
		CreatedBy: "creator",
		MemberIDs: []string{"creator", "alice"},
	}}
}

func TestAdd(t *testing.T) {
	t.Run("non-member is denied", func(t *testing.T) {
		svc := NewService(newFakeStore(), testGroups(), fakeResolver{})
		_, err := svc.Add(context.Background(), "g1", "stranger", &CreateContributionRequest{Amount: 10})
		if !errors.Is(err, group.ErrNotMember) {
			t.Fatalf("err = %v, want ErrNotMember", err)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewService(newFakeStore(), testGroups(), fakeResolver{})
		for _, amount := range []float64{0, -5} {
			_, err := svc.Add(context.Background(), "g1", "alice", &CreateContributionRequest{Amount: amount})
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("amount %v: err = %v, want ErrInvalidAmount", amount, err)
			}
		}
	})

	t.Run("denormalizes the contributor identity", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, testGroups(), fakeResolver{})
		c, err := svc.Add(context.Background(), "g1", "alice", &CreateContributionRequest{Amount: 25.5})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if c.ContributorID != "alice" {
			t.Errorf("ContributorID = %q, want alice", c.ContributorID)
		}
		if c.UserName != "name-alice" {
			t.Errorf("UserName = %q, want name-alice", c.UserName)
		}
		if c.ID == "" {
			t.Error("expected generated id")
		}
		if store.entries[c.ID] == nil {
			t.Error("entry not persisted")
		}
	})
}

func TestUpdate(t *testing.T) {
	entry := &Contribution{ID: "c1", GroupID: "g1", ContributorID: "alice", Amount: 10}

	t.Run("only the contributor can edit", func(t *testing.T) {
		svc := NewService(newFakeStore(entry), testGroups(), fakeResolver{})
		amount := 20.0
		_, err := svc.Update(context.Background(), "g1", "creator", "c1", &UpdateContributionRequest{Amount: &amount})
		if !errors.Is(err, ErrNotContributor) {
			t.Fatalf("err = %v, want ErrNotContributor", err)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewService(newFakeStore(entry), testGroups(), fakeResolver{})
		amount := -1.0
		_, err := svc.Update(context.Background(), "g1", "alice", "c1", &UpdateContributionRequest{Amount: &amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("err = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		svc := NewService(newFakeStore(), testGroups(), fakeResolver{})
		_, err := svc.Update(context.Background(), "g1", "alice", "nope", &UpdateContributionRequest{})
		if !errors.Is(err, ErrContributionNotFound) {
			t.Fatalf("err = %v, want ErrContributionNotFound", err)
		}
	})

	t.Run("contributor edits their own entry", func(t *testing.T) {
		own := &Contribution{ID: "c2", GroupID: "g1", ContributorID: "alice", Amount: 10}
		svc := NewService(newFakeStore(own), testGroups(), fakeResolver{})
		amount := 42.0
		c, err := svc.Update(context.Background(), "g1", "alice", "c2", &UpdateContributionRequest{Amount: &amount})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if c.Amount != 42 {
			t.Errorf("Amount = %v, want 42", c.Amount)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("only the contributor can delete", func(t *testing.T) {
		entry := &Contribution{ID: "c1", GroupID: "g1", ContributorID: "alice"}
		svc := NewService(newFakeStore(entry), testGroups(), fakeResolver{})
		err := svc.Delete(context.Background(), "g1", "creator", "c1")
		if !errors.Is(err, ErrNotContributor) {
			t.Fatalf("err = %v, want ErrNotContributor", err)
		}
	})

	t.Run("contributor deletes their own entry", func(t *testing.T) {
		entry := &Contribution{ID: "c1", GroupID: "g1", ContributorID: "alice"}
		store := newFakeStore(entry)
		svc := NewService(store, testGroups(), fakeResolver{})
		if err := svc.Delete(context.Background(), "g1", "alice", "c1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != "c1" {
			t.Errorf("deleted = %v, want [c1]", store.deleted)
		}
	})
}
