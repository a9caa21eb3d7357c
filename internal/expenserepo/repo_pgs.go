// Package expenserepo manages repository layer of expenses.
package expenserepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/dbpkg"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates expense repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns expense RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const expenseColumns = `id, group_id, description, amount, payer, split_with, expense_date, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (domain.Expense, error) {
	var e domain.Expense

	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Description,
		&e.Amount,
		&e.Payer,
		pq.Array(&e.SplitWith),
		&e.ExpenseDate,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if e.SplitWith == nil {
		e.SplitWith = []string{}
	}

	return e, err
}

func scanExpenses(rows *sql.Rows) ([]domain.Expense, error) {
	defer rows.Close()

	expenses := []domain.Expense{}

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

const invalidTextRepresentation = "22P02"

// mapWriteErr converts constraint violations into domain errors.
func mapWriteErr(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return errorspkg.ErrInternal
	}

	if pqErr.Code == invalidTextRepresentation {
		return domain.ErrInvalidAmount
	}

	switch pqErr.Constraint {
	case "expenses_group_id_fkey":
		return domain.ErrGroupNotFound
	case "expenses_payer_fkey", "expenses_created_by_fkey":
		return domain.ErrUserNotFound
	case "expenses_amount_check":
		return domain.ErrNegativeAmount
	}

	return errorspkg.ErrInternal
}

func splitWithArray(splitWith []string) any {
	if splitWith == nil {
		splitWith = []string{}
	}

	return pq.Array(splitWith)
}

const createQuery = `
INSERT INTO expenses (
	group_id,
	description,
	amount,
	payer,
	split_with,
	expense_date,
	created_by
) VALUES (
	$1, $2, $3, $4, $5, $6, $7
) RETURNING ` + expenseColumns

// Create records the expense and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateExpenseParams) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.GroupID,
		arg.Description,
		arg.Amount,
		arg.Payer,
		splitWithArray(arg.SplitWith),
		arg.ExpenseDate,
		arg.CreatedBy,
	)

	e, err := scanExpense(row)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Expense{}, mapWriteErr(err)
	}

	return e, nil
}

const getQuery = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

// Get returns the expense with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	e, err := scanExpense(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, domain.ErrExpenseNotFound
		}

		l.Error().Err(err).Send()

		return domain.Expense{}, errorspkg.ErrInternal
	}

	return e, nil
}

const listByGroupQuery = `
SELECT ` + expenseColumns + `
FROM expenses
WHERE group_id = $1
ORDER BY expense_date DESC, id DESC
LIMIT $2
OFFSET $3
`

// ListByGroup returns a page of group expenses, newest first.
func (r *RepoPGS) ListByGroup(ctx context.Context, arg domain.ListExpensesParams) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByGroupQuery, arg.GroupID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	expenses, err := scanExpenses(rows)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return expenses, nil
}

const listAllByGroupQuery = `
SELECT ` + expenseColumns + `
FROM expenses
WHERE group_id = $1
ORDER BY id
`

// ListAllByGroup returns every expense of the group in insertion order.
func (r *RepoPGS) ListAllByGroup(ctx context.Context, groupID int64) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listAllByGroupQuery, groupID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	expenses, err := scanExpenses(rows)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return expenses, nil
}

const updateQuery = `
UPDATE expenses
SET description = $2,
	amount = $3,
	expense_date = $4,
	updated_at = now()
WHERE id = $1
RETURNING ` + expenseColumns

// Update overwrites the editable fields of the expense.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateExpenseParams) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery,
		arg.ID,
		arg.Description,
		arg.Amount,
		arg.ExpenseDate,
	)

	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, domain.ErrExpenseNotFound
		}

		l.Error().Err(err).Send()

		return domain.Expense{}, mapWriteErr(err)
	}

	return e, nil
}

const deleteQuery = `DELETE FROM expenses WHERE id = $1`

// Delete removes the expense.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}
