// Package groupdelivery manages delivery layer of groups.
package groupdelivery

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

// Service provides service layer interface needed by group delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package groupdelivery
type Service interface {
	Create(ctx context.Context, creator, name, currency string, memberEmails []string) (domain.Group, error)
	Get(ctx context.Context, username string, id int64) (domain.Group, error)
	List(ctx context.Context, username string, pageSize, pageID int32) ([]domain.Group, error)
	AddMember(ctx context.Context, username string, id int64, email string) (domain.Group, error)
	Delete(ctx context.Context, username string, id int64) error
}

// Handler facilitates group delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns group handler.
func NewHandler(gs Service) *Handler {
	return &Handler{service: gs}
}

type groupData struct {
	Group domain.Group `json:"group"`
}

type groupsData struct {
	Groups []domain.Group `json:"groups"`
}

func (h *Handler) respondErr(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrGroupNotFound, domain.ErrUserNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrNotGroupMember, domain.ErrNotGroupCreator:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case domain.ErrGroupAlreadyExists, domain.ErrAlreadyMember:
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Currency     string   `json:"currency" binding:"required,currency"`
	MemberEmails []string `json:"member_emails" binding:"omitempty,dive,email"`
}

// Create handles http request to create a group.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	group, err := h.service.Create(ctx, middleware.AuthUsername(gctx), req.Name, req.Currency, req.MemberEmails)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: groupData{Group: group}})
}

type groupURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a group.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri groupURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	group, err := h.service.Get(ctx, middleware.AuthUsername(gctx), uri.ID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: groupData{Group: group}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list the groups of the user.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	groups, err := h.service.List(ctx, middleware.AuthUsername(gctx), req.PageSize, req.PageID)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: groupsData{Groups: groups}})
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddMember handles http request to invite a roommate into a group.
func (h *Handler) AddMember(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri groupURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req addMemberRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	group, err := h.service.AddMember(ctx, middleware.AuthUsername(gctx), uri.ID, req.Email)
	if err != nil {
		h.respondErr(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: groupData{Group: group}})
}

// Delete handles http request to delete a group.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri groupURI
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
