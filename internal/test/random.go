package test

import (
	"sort"
	"time"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/randompkg"
)

// RandomGroup returns a random group created by creator.
// The returned Members are sorted and include the creator.
func RandomGroup(creator string, members ...string) domain.Group {
	all := append([]string{creator}, members...)
	sort.Strings(all)

	return domain.Group{
		ID:        randompkg.IntBetween(1, 1000),
		Name:      randompkg.String(8),
		Currency:  randompkg.Currency(),
		CreatedBy: creator,
		Members:   all,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomExpense returns a random expense of the group paid by payer.
func RandomExpense(groupID int64, payer string, splitWith ...string) domain.Expense {
	now := time.Now().Truncate(time.Second).UTC()

	return domain.Expense{
		ID:          randompkg.IntBetween(1, 1000),
		GroupID:     groupID,
		Description: randompkg.String(12),
		Amount:      randompkg.MoneyAmountBetween(1, 500),
		Payer:       payer,
		SplitWith:   splitWith,
		ExpenseDate: now.Truncate(24 * time.Hour),
		CreatedBy:   payer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
