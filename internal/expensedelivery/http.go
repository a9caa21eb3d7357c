// Package expensedelivery manages delivery layer of expenses.
package expensedelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/expenseservice"
	"github.com/go-petr/rentmates/internal/middleware"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/go-petr/rentmates/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by expense delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package expensedelivery
type Service interface {
	Create(ctx context.Context, username string, groupID int64, in expenseservice.CreateInput) (domain.Expense, error)
	List(ctx context.Context, username string, groupID int64, pageSize, pageID int32) ([]domain.Expense, error)
	Update(ctx context.Context, username string, id int64, in expenseservice.UpdateInput) (domain.Expense, error)
	Delete(ctx context.Context, username string, id int64) error
}

// Handler facilitates expense delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns expense handler.
func NewHandler(es Service) *Handler {
	return &Handler{service: es}
}

type expenseData struct {
	Expense domain.Expense `json:"expense"`
}

type expensesData struct {
	Expenses []domain.Expense `json:"expenses"`
}

func (h *Handler) respondErr(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrInvalidExpenseDate:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrGroupNotFound, domain.ErrExpenseNotFound, domain.ErrUserNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrNotGroupMember, domain.ErrNotExpenseOwner:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// parseDate parses an optional expense date. Empty input yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	d, err := time.Parse(domain.ExpenseDateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidExpenseDate
	}

	return d, nil
}

type uriID struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type createRequest struct {
	Description string   `json:"description" binding:"required,max=200"`
	Amount      string   `json:"amount" binding:"required"`
	Payer       string   `json:"payer" binding:"omitempty,alphanum"`
	SplitWith   []string `json:"split_with" binding:"omitempty,dive,required"`
	ExpenseDate string   `json:"expense_date"`
}

// Create handles http request to record a group expense.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriID
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	in := expenseservice.CreateInput{
		Description: req.Description,
		Amount:      req.Amount,
		Payer:       req.Payer,
		SplitWith:   req.SplitWith,
		ExpenseDate: date,
	}

	expense, err := h.service.Create(ctx, middleware.AuthUsername(gctx), uri.ID, in)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: expenseData{Expense: expense}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list group expenses.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriID
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	expenses, err := h.service.List(ctx, middleware.AuthUsername(gctx), uri.ID, req.PageSize, req.PageID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: expensesData{Expenses: expenses}})
}

type updateRequest struct {
	Description string `json:"description" binding:"required,max=200"`
	Amount      string `json:"amount" binding:"required"`
	ExpenseDate string `json:"expense_date"`
}

// Update handles http request to edit an expense.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriID
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	in := expenseservice.UpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: date,
	}

	expense, err := h.service.Update(ctx, middleware.AuthUsername(gctx), uri.ID, in)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: expenseData{Expense: expense}})
}

// Delete handles http request to delete an expense.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriID
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	if err := h.service.Delete(ctx, middleware.AuthUsername(gctx), uri.ID); err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}
