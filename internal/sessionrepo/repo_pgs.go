// Package sessionrepo manages repository layer of sessions.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/dbpkg"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates session repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns session RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO sessions (
	id,
	username,
	refresh_token,
	user_agent,
	client_ip,
	is_blocked,
	expires_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7
) RETURNING id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
`

// Create creates the session and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.Username,
		arg.RefreshToken,
		arg.UserAgent,
		arg.ClientIP,
		arg.IsBlocked,
		arg.ExpiresAt,
	)

	s, err := scanSession(row)
	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "sessions_username_fkey" {
			return domain.Session{}, domain.ErrUserNotFound
		}

		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

const getQuery = `
SELECT
	id,
	username,
	refresh_token,
	user_agent,
	client_ip,
	is_blocked,
	expires_at,
	created_at
FROM sessions
WHERE id = $1
`

// Get returns session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanSession(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, domain.ErrSessionNotFound
		}

		l.Error().Err(err).Send()

		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

func scanSession(row *sql.Row) (domain.Session, error) {
	var s domain.Session

	err := row.Scan(
		&s.ID,
		&s.Username,
		&s.RefreshToken,
		&s.UserAgent,
		&s.ClientIP,
		&s.IsBlocked,
		&s.ExpiresAt,
		&s.CreatedAt,
	)

	return s, err
}
