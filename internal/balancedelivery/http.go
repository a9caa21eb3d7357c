// Package balancedelivery manages delivery layer of group balances.
package balancedelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/middleware"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/go-petr/rentmates/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Group(ctx context.Context, username string, groupID int64) (domain.GroupBalances, error)
	Me(ctx context.Context, username string, groupID int64) (domain.UserBalance, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type groupURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type sheetData struct {
	Sheet domain.GroupBalances `json:"sheet"`
}

type meData struct {
	Balance domain.UserBalance `json:"balance"`
}

func (h *Handler) respondErr(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrGroupNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrNotGroupMember:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Group handles http request to get the settlement sheet of a group.
func (h *Handler) Group(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri groupURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	sheet, err := h.service.Group(ctx, middleware.AuthUsername(gctx), uri.ID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: sheetData{Sheet: sheet}})
}

// Me handles http request to get the caller's position in a group.
func (h *Handler) Me(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri groupURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	balance, err := h.service.Me(ctx, middleware.AuthUsername(gctx), uri.ID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: meData{Balance: balance}})
}
