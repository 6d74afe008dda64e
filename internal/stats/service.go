package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kitty/internal/contribution"
	"kitty/internal/directory"
	"kitty/internal/expense"
	"kitty/internal/group"
)

// Groups gates access on membership
type Groups interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
}

// Contributions reads the deposit ledger
type Contributions interface {
	ListByGroup(ctx context.Context, groupID string) ([]*contribution.Contribution, error)
}

// Expenses reads the spend ledger
type Expenses interface {
	ListByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error)
}

// Resolver resolves user IDs to display identities (best-effort)
type Resolver interface {
	Resolve(ctx context.Context, userID string) *directory.Identity
}

// Service derives consumption balances on demand. Nothing is cached or
// incrementally maintained: every call re-reads both ledgers and folds from
// scratch, so there is no derived state to drift.
type Service struct {
	groups        Groups
	contributions Contributions
	expenses      Expenses
	directory     Resolver
}

// NewService creates a new stats service
func NewService(groups Groups, contributions Contributions, expenses Expenses, dir Resolver) *Service {
	return &Service{
		groups:        groups,
		contributions: contributions,
		expenses:      expenses,
		directory:     dir,
	}
}

// Compute returns the group's consumption summary with member identities
// resolved for display
func (s *Service) Compute(ctx context.Context, groupID, callerID string) (*StatsResponse, error) {
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
		contributions, err = s.contributions.ListByGroup(egCtx, groupID)
		return err
	})
	eg.Go(func() error {
		var err error
		expenses, err = s.expenses.ListByGroup(egCtx, groupID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := Compute(g.MemberIDs, contributions, expenses)

	members := make([]*MemberStatResponse, len(summary.Members))
	for i, m := range summary.Members {
		identity := s.directory.Resolve(ctx, m.UserID)
		members[i] = &MemberStatResponse{
			UserID:      m.UserID,
			Name:        identity.DisplayName,
			PhotoURL:    identity.PhotoURL,
			Contributed: m.Contributed,
			Spent:       m.Spent,
			Balance:     m.Balance,
		}
	}

	return &StatsResponse{
		TotalContributed: summary.TotalContributed,
		TotalExpenses:    summary.TotalExpenses,
		Balance:          summary.Balance,
		ByCategory:       summary.ByCategory,
		Members:          members,
		MemberCount:      summary.MemberCount,
	}, nil
}
