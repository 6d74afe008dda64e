package activity

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"kitty/internal/contribution"
	"kitty/internal/expense"
	"kitty/internal/group"
)

// Each ledger contributes at most perKindLimit entries; the merged feed is
// capped at feedLimit.
const (
	perKindLimit = 10
	feedLimit    = 20
)

// Groups gates access on membership
type Groups interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
}

// Contributions reads recent deposits
type Contributions interface {
	ListRecent(ctx context.Context, groupID string, limit int) ([]*contribution.Contribution, error)
}

// Expenses reads recent spending
type Expenses interface {
	ListRecent(ctx context.Context, groupID string, limit int) ([]*expense.Expense, error)
}

// Service assembles the merged activity feed
type Service struct {
	groups        Groups
	contributions Contributions
	expenses      Expenses
}

// NewService creates a new activity service
func NewService(groups Groups, contributions Contributions, expenses Expenses) *Service {
	return &Service{groups: groups, contributions: contributions, expenses: expenses}
}

// Feed returns the newest entries from both ledgers, merged and sorted
// newest first
func (s *Service) Feed(ctx context.Context, groupID, callerID string) ([]*EntryResponse, error) {
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

	var (
		contributions []*contribution.Contribution
		expenses      []*expense.Expense
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		contributions, err = s.contributions.ListRecent(egCtx, groupID, perKindLimit)
		return err
	})
	eg.Go(func() error {
		var err error
		expenses, err = s.expenses.ListRecent(egCtx, groupID, perKindLimit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(contributions)+len(expenses))
	for _, c := range contributions {
		entries = append(entries, &Entry{
			Kind:      KindContribution,
			CreatedAt: c.CreatedAt,
			Data:      c.ToResponse(),
		})
	}
	for _, e := range expenses {
		entries = append(entries, &Entry{
			Kind:      KindExpense,
			CreatedAt: e.CreatedAt,
			Data:      e.ToResponse(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > feedLimit {
		entries = entries[:feedLimit]
	}

	feed := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		feed[i] = e.ToResponse()
	}
	return feed, nil
}
