// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/go-petr/rentmates/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error)
	CheckPassword(ctx context.Context, username, password string) (domain.UserWithoutPassword, error)
}

// SessionMaker facilitates session creation.
type SessionMaker interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service      Service
	sessionMaker SessionMaker
}

// NewHandler returns user handler.
func NewHandler(us Service, sm SessionMaker) *Handler {
	return &Handler{
		service:      us,
		sessionMaker: sm,
	}
}

type userData struct {
	User domain.UserWithoutPassword `json:"user"`
}

type createRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// Create handles http request to create user.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	createdUser, err := h.service.Create(ctx, req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		switch err {
		case domain.ErrUsernameAlreadyExists, domain.ErrEmailAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	h.respondWithSession(gctx, createdUser)
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Login handles http login request and returns user and session data.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	user, err := h.service.CheckPassword(ctx, req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	h.respondWithSession(gctx, user)
}

func (h *Handler) respondWithSession(gctx *gin.Context, user domain.UserWithoutPassword) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	arg := domain.CreateSessionParams{
		Username:  user.Username,
		UserAgent: gctx.Request.UserAgent(),
		ClientIP:  gctx.ClientIP(),
	}

	accessToken, accessTokenExpiresAt, session, err := h.sessionMaker.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		Data:                  userData{User: user},
	}

	gctx.JSON(http.StatusOK, res)
}
