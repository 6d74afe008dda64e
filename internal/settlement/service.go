package settlement

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

// Service produces settlement plans on demand from the raw ledgers
type Service struct {
	groups        Groups
	contributions Contributions
	expenses      Expenses
	directory     Resolver
}

// NewService creates a new settlement service
func NewService(groups Groups, contributions Contributions, expenses Expenses, dir Resolver) *Service {
	return &Service{
		groups:        groups,
		contributions: contributions,
		expenses:      expenses,
		directory:     dir,
	}
}

// Plan computes who owes whom for a group
func (s *Service) Plan(ctx context.Context, groupID, callerID string) (*SettlementResponse, error) {
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

	plan := Compute(g.MemberIDs, contributions, expenses)

	names := make(map[string]string, len(plan.Balances))
	balances := make([]*BalanceResponse, len(plan.Balances))
	for i, b := range plan.Balances {
		identity := s.directory.Resolve(ctx, b.UserID)
		names[b.UserID] = identity.DisplayName
		balances[i] = &BalanceResponse{
			UserID:   b.UserID,
			Name:     identity.DisplayName,
			PhotoURL: identity.PhotoURL,
			Amount:   b.Amount,
		}
	}

	transfers := make([]*TransferResponse, len(plan.Transfers))
	for i, tr := range plan.Transfers {
		transfers[i] = &TransferResponse{
			From:     tr.From,
			FromName: names[tr.From],
			To:       tr.To,
			ToName:   names[tr.To],
			Amount:   tr.Amount,
		}
	}

	return &SettlementResponse{Balances: balances, Settlements: transfers}, nil
}
