// Package test provides shared test helpers.
package test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/expenserepo"
	"github.com/go-petr/rentmates/internal/grouprepo"
	"github.com/go-petr/rentmates/internal/userrepo"
	"github.com/go-petr/rentmates/pkg/currencypkg"
	"github.com/go-petr/rentmates/pkg/dbpkg"
	"github.com/go-petr/rentmates/pkg/passpkg"
	"github.com/go-petr/rentmates/pkg/randompkg"
)

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Username(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedGroup creates a USD group owned by creator with the given members inside a test transaction.
// The creator is always added to the members.
func SeedGroup(t *testing.T, tx dbpkg.SQLInterface, creator string, members ...string) domain.Group {
	t.Helper()

	all := append([]string{creator}, members...)
	sort.Strings(all)

	arg := domain.CreateGroupParams{
		Name:      randompkg.String(8),
		Currency:  currencypkg.USD,
		CreatedBy: creator,
		Members:   all,
	}

	groupRepo := grouprepo.NewRepoPGS(tx)

	group, err := groupRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("groupRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return group
}

// SeedExpense records an expense paid and created by payer inside a test transaction.
func SeedExpense(t *testing.T, tx dbpkg.SQLInterface, groupID int64, payer, amount string, splitWith ...string) domain.Expense {
	t.Helper()

	arg := domain.CreateExpenseParams{
		GroupID:     groupID,
		Description: randompkg.String(12),
		Amount:      amount,
		Payer:       payer,
		SplitWith:   splitWith,
		ExpenseDate: time.Now().UTC().Truncate(24 * time.Hour),
		CreatedBy:   payer,
	}

	expenseRepo := expenserepo.NewRepoPGS(tx)

	expense, err := expenseRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("expenseRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return expense
}
