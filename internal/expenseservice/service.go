// Package expenseservice manages business logic layer of expenses.
package expenseservice

import (
	"context"
	"strings"
	"time"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by expense service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package expenseservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateExpenseParams) (domain.Expense, error)
	Get(ctx context.Context, id int64) (domain.Expense, error)
	ListByGroup(ctx context.Context, arg domain.ListExpensesParams) ([]domain.Expense, error)
	Update(ctx context.Context, arg domain.UpdateExpenseParams) (domain.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// GroupRepo provides the groups expenses belong to.
type GroupRepo interface {
	Get(ctx context.Context, id int64) (domain.Group, error)
}

// Invalidator drops cached balances of a group.
type Invalidator interface {
	Bump(ctx context.Context, groupID int64) error
}

// Service facilitates expense service layer logic.
type Service struct {
	repo      Repo
	groupRepo GroupRepo
	cache     Invalidator
	now       func() time.Time
}

// New returns expense service struct to manage expense business logic.
func New(er Repo, gr GroupRepo, cache Invalidator) *Service {
	return &Service{
		repo:      er,
		groupRepo: gr,
		cache:     cache,
		now:       time.Now,
	}
}

// CreateInput is the caller supplied data of a new expense.
// Zero Payer means the caller paid, zero ExpenseDate means today.
type CreateInput struct {
	Description string
	Amount      string
	Payer       string
	SplitWith   []string
	ExpenseDate time.Time
}

// UpdateInput is the caller supplied data of an edited expense.
// Zero ExpenseDate keeps the stored date.
type UpdateInput struct {
	Description string
	Amount      string
	ExpenseDate time.Time
}

func validAmount(amount string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", domain.ErrInvalidAmount
	}

	if !d.IsPositive() {
		return "", domain.ErrNegativeAmount
	}

	return d.String(), nil
}

func (s *Service) memberGroup(ctx context.Context, username string, groupID int64) (domain.Group, error) {
	g, err := s.groupRepo.Get(ctx, groupID)
	if err != nil {
		return domain.Group{}, err
	}

	if !g.HasMember(username) {
		zerolog.Ctx(ctx).Warn().Str("username", username).Int64("group_id", groupID).Msg("group access denied")
		return domain.Group{}, domain.ErrNotGroupMember
	}

	return g, nil
}

func (s *Service) bump(ctx context.Context, groupID int64) {
	if err := s.cache.Bump(ctx, groupID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("group_id", groupID).Msg("balance cache bump failed")
	}
}

// Create records an expense in the group on behalf of username.
// The payer and everyone the expense is split with must be group members.
func (s *Service) Create(ctx context.Context, username string, groupID int64, in CreateInput) (domain.Expense, error) {
	g, err := s.memberGroup(ctx, username, groupID)
	if err != nil {
		return domain.Expense{}, err
	}

	amount, err := validAmount(in.Amount)
	if err != nil {
		return domain.Expense{}, err
	}

	payer := in.Payer
	if payer == "" {
		payer = username
	}

	if !g.HasMember(payer) {
		return domain.Expense{}, domain.ErrNotGroupMember
	}

	seen := make(map[string]struct{}, len(in.SplitWith))
	splitWith := make([]string, 0, len(in.SplitWith))

	for _, m := range in.SplitWith {
		if _, ok := seen[m]; ok {
			continue
		}

		if !g.HasMember(m) {
			return domain.Expense{}, domain.ErrNotGroupMember
		}

		seen[m] = struct{}{}
		splitWith = append(splitWith, m)
	}

	date := in.ExpenseDate
	if date.IsZero() {
		date = s.now()
	}

	arg := domain.CreateExpenseParams{
		GroupID:     groupID,
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Payer:       payer,
		SplitWith:   splitWith,
		ExpenseDate: date.UTC().Truncate(24 * time.Hour),
		CreatedBy:   username,
	}

	e, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.Expense{}, err
	}

	s.bump(ctx, groupID)

	return e, nil
}

// List returns a page of group expenses, newest first.
func (s *Service) List(ctx context.Context, username string, groupID int64, pageSize, pageID int32) ([]domain.Expense, error) {
	if _, err := s.memberGroup(ctx, username, groupID); err != nil {
		return nil, err
	}

	arg := domain.ListExpensesParams{
		GroupID: groupID,
		Limit:   pageSize,
		Offset:  (pageID - 1) * pageSize,
	}

	return s.repo.ListByGroup(ctx, arg)
}

func (s *Service) owned(ctx context.Context, username string, id int64) (domain.Expense, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}

	if e.CreatedBy != username {
		zerolog.Ctx(ctx).Warn().Str("username", username).Int64("expense_id", id).Msg("expense access denied")
		return domain.Expense{}, domain.ErrNotExpenseOwner
	}

	return e, nil
}

// Update edits an expense. Only the user who recorded it may edit.
func (s *Service) Update(ctx context.Context, username string, id int64, in UpdateInput) (domain.Expense, error) {
	current, err := s.owned(ctx, username, id)
	if err != nil {
		return domain.Expense{}, err
	}

	amount, err := validAmount(in.Amount)
	if err != nil {
		return domain.Expense{}, err
	}

	date := current.ExpenseDate
	if !in.ExpenseDate.IsZero() {
		date = in.ExpenseDate.UTC().Truncate(24 * time.Hour)
	}

	arg := domain.UpdateExpenseParams{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		ExpenseDate: date,
	}

	e, err := s.repo.Update(ctx, arg)
	if err != nil {
		return domain.Expense{}, err
	}

	s.bump(ctx, current.GroupID)

	return e, nil
}

// Delete removes an expense. Only the user who recorded it may delete.
func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	current, err := s.owned(ctx, username, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bump(ctx, current.GroupID)

	return nil
}
