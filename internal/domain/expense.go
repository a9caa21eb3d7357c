package domain

import (
	"errors"
	"time"
)

var (
	// ErrExpenseNotFound indicates that the expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrNotExpenseOwner indicates that only the user who recorded the expense may change it.
	ErrNotExpenseOwner = errors.New("only the expense owner is allowed")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates negative or zero amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInvalidExpenseDate indicates that the expense date could not be parsed.
	ErrInvalidExpenseDate = errors.New("invalid expense date")
)

// ExpenseDateLayout is the wire format of expense dates.
const ExpenseDateLayout = "2006-01-02"

// Expense is a payment made by one member on behalf of several members.
type Expense struct {
	ID          int64  `json:"id"`
	GroupID     int64  `json:"group_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"` // must be positive
	Payer       string `json:"payer"`
	// SplitWith lists who shares the expense. Empty means every group member.
	SplitWith   []string  `json:"split_with"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateExpenseParams is the input data to record an expense.
type CreateExpenseParams struct {
	GroupID     int64     `json:"group_id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Payer       string    `json:"payer"`
	SplitWith   []string  `json:"split_with"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedBy   string    `json:"created_by"`
}

// UpdateExpenseParams is the input data to edit an expense.
type UpdateExpenseParams struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
}

// ListExpensesParams is the input data to page through group expenses.
type ListExpensesParams struct {
	GroupID int64 `json:"group_id"`
	Limit   int32 `json:"limit"`
	Offset  int32 `json:"offset"`
}
