// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/configpkg"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/go-petr/rentmates/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// New returns session service struct to manage session business logic.
func New(sr Repo, config configpkg.Config, tm tokenpkg.Maker) (*Service, error) {
	if tm == nil {
		return nil, errors.New("token maker is required")
	}

	return &Service{
		repo:       sr,
		config:     config,
		TokenMaker: tm,
	}, nil
}

// Create issues an access token and a refresh token and stores the refresh token session.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.TokenMaker.CreateToken(arg.Username, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	refreshToken, refreshPayload, err := s.TokenMaker.CreateToken(arg.Username, s.config.RefreshTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	arg.ID = refreshPayload.ID
	arg.RefreshToken = refreshToken
	arg.ExpiresAt = refreshPayload.ExpiredAt

	sess, err := s.repo.Create(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, accessPayload.ExpiredAt, sess, nil
}

// RenewAccessToken checks the refresh token session and issues a new access token.
func (s *Service) RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.TokenMaker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return "", time.Time{}, err
	}

	sess, err := s.repo.Get(ctx, refreshPayload.ID)
	if err != nil {
		return "", time.Time{}, err
	}

	switch {
	case sess.IsBlocked:
		err = domain.ErrBlockedSession
	case sess.Username != refreshPayload.Username:
		err = domain.ErrInvalidUser
	case sess.RefreshToken != refreshToken:
		err = domain.ErrMismatchedRefreshToken
	case time.Now().After(sess.ExpiresAt):
		err = domain.ErrExpiredSession
	}

	if err != nil {
		l.Warn().Err(err).Str("session_id", sess.ID.String()).Send()
		return "", time.Time{}, err
	}

	accessToken, accessPayload, err := s.TokenMaker.CreateToken(refreshPayload.Username, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return accessToken, accessPayload.ExpiredAt, nil
}
