// Package balanceservice serves group settlement sheets.
package balanceservice

import (
	"context"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/settlement"
	"github.com/rs/zerolog"
)

// GroupRepo provides the groups balances are computed for.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type GroupRepo interface {
	Get(ctx context.Context, id int64) (domain.Group, error)
}

// ExpenseRepo provides every expense of a group.
type ExpenseRepo interface {
	ListAllByGroup(ctx context.Context, groupID int64) ([]domain.Expense, error)
}

// Cache stores computed sheets under versioned keys.
type Cache interface {
	Key(ctx context.Context, groupID int64) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) (bool, error)
}

// Observer records served settlements.
type Observer interface {
	ObserveSettlement(cacheHit bool)
}

// Service facilitates balance service layer logic.
type Service struct {
	groupRepo   GroupRepo
	expenseRepo ExpenseRepo
	cache       Cache
	observer    Observer
}

// New returns balance service struct.
func New(gr GroupRepo, er ExpenseRepo, cache Cache, observer Observer) *Service {
	return &Service{
		groupRepo:   gr,
		expenseRepo: er,
		cache:       cache,
		observer:    observer,
	}
}

// Group returns the settlement sheet of the group. Only members may read it.
func (s *Service) Group(ctx context.Context, username string, groupID int64) (domain.GroupBalances, error) {
	l := zerolog.Ctx(ctx)

	g, err := s.groupRepo.Get(ctx, groupID)
	if err != nil {
		return domain.GroupBalances{}, err
	}

	if !g.HasMember(username) {
		l.Warn().Str("username", username).Int64("group_id", groupID).Msg("group access denied")
		return domain.GroupBalances{}, domain.ErrNotGroupMember
	}

	key, err := s.cache.Key(ctx, groupID)
	if err != nil {
		l.Error().Err(err).Int64("group_id", groupID).Msg("balance cache unavailable")
		return s.computeUncached(ctx, g)
	}

	var loadErr error

	loader := func(ctx context.Context) (any, error) {
		gb, err := s.compute(ctx, g)
		loadErr = err

		return gb, err
	}

	var gb domain.GroupBalances

	hit, err := s.cache.FetchJSON(ctx, key, &gb, loader)
	if err != nil {
		if loadErr != nil {
			return domain.GroupBalances{}, loadErr
		}

		l.Error().Err(err).Int64("group_id", groupID).Msg("balance cache unavailable")

		return s.computeUncached(ctx, g)
	}

	s.observer.ObserveSettlement(hit)

	return gb, nil
}

// computeUncached serves the sheet bypassing the cache and records it as a miss.
func (s *Service) computeUncached(ctx context.Context, g domain.Group) (domain.GroupBalances, error) {
	gb, err := s.compute(ctx, g)
	if err != nil {
		return domain.GroupBalances{}, err
	}

	s.observer.ObserveSettlement(false)

	return gb, nil
}

func (s *Service) compute(ctx context.Context, g domain.Group) (domain.GroupBalances, error) {
	stored, err := s.expenseRepo.ListAllByGroup(ctx, g.ID)
	if err != nil {
		return domain.GroupBalances{}, err
	}

	expenses := make([]settlement.Expense, 0, len(stored))
	for _, e := range stored {
		expenses = append(expenses, settlement.Expense{
			Amount:    settlement.ParseAmount(e.Amount),
			Payer:     e.Payer,
			SplitWith: e.SplitWith,
		})
	}

	sheet := settlement.Settle(g.Members, expenses)

	gb := domain.GroupBalances{
		GroupID:    g.ID,
		Currency:   g.Currency,
		TotalSpent: sheet.TotalSpent.StringFixed(2),
		Balances:   make([]domain.MemberBalance, 0, len(sheet.Balances)),
		Transfers:  make([]domain.TransferSuggestion, 0, len(sheet.Transfers)),
	}

	for _, b := range sheet.Balances {
		gb.Balances = append(gb.Balances, domain.MemberBalance{
			Member:  b.Member,
			Net:     b.Rounded().StringFixed(2),
			Unknown: b.Unknown,
		})
	}

	for _, t := range sheet.Transfers {
		gb.Transfers = append(gb.Transfers, domain.TransferSuggestion{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.StringFixed(2),
		})
	}

	return gb, nil
}

// Me returns the caller's own position in the group and the transfers involving them.
func (s *Service) Me(ctx context.Context, username string, groupID int64) (domain.UserBalance, error) {
	gb, err := s.Group(ctx, username, groupID)
	if err != nil {
		return domain.UserBalance{}, err
	}

	ub := domain.UserBalance{
		GroupID:  gb.GroupID,
		Username: username,
		Currency: gb.Currency,
		Net:      "0.00",
		Owes:     []domain.TransferSuggestion{},
		Owed:     []domain.TransferSuggestion{},
	}

	for _, b := range gb.Balances {
		if b.Member == username {
			ub.Net = b.Net
			break
		}
	}

	for _, t := range gb.Transfers {
		switch username {
		case t.From:
			ub.Owes = append(ub.Owes, t)
		case t.To:
			ub.Owed = append(ub.Owed, t)
		}
	}

	return ub, nil
}
