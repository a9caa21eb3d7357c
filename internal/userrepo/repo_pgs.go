// Package userrepo manages repository layer of users.
package userrepo

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

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const userColumns = `username, hashed_password, full_name, email, password_changed_at, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)

	return u, err
}

const createQuery = `
INSERT INTO users (
	username,
	hashed_password,
	full_name,
	email
) VALUES (
	$1, $2, $3, $4
) RETURNING ` + userColumns

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "users_pkey":
				return domain.User{}, domain.ErrUsernameAlreadyExists
			case "users_email_key":
				return domain.User{}, domain.ErrEmailAlreadyExists
			}
		}

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, getQuery, username)
}

const getByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

// GetByEmail returns the user registered with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, getByEmailQuery, email)
}

func (r *RepoPGS) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}
