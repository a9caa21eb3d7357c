// Package grouprepo manages repository layer of groups.
package grouprepo

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

// RepoPGS facilitates group repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns group RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const groupColumns = `id, name, currency, created_by, members, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (domain.Group, error) {
	var g domain.Group

	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Currency,
		&g.CreatedBy,
		pq.Array(&g.Members),
		&g.CreatedAt,
	)

	return g, err
}

// mapWriteErr converts constraint violations into domain errors.
func mapWriteErr(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return errorspkg.ErrInternal
	}

	switch pqErr.Constraint {
	case "groups_creator_name_members_key":
		return domain.ErrGroupAlreadyExists
	case "groups_created_by_fkey":
		return domain.ErrUserNotFound
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO groups (
	name,
	currency,
	created_by,
	members
) VALUES (
	$1, $2, $3, $4
) RETURNING ` + groupColumns

// Create creates the group and then returns it.
// Members are stored as given, callers keep them sorted.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateGroupParams) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Name,
		arg.Currency,
		arg.CreatedBy,
		pq.Array(arg.Members),
	)

	g, err := scanGroup(row)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Group{}, mapWriteErr(err)
	}

	return g, nil
}

const getQuery = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

// Get returns the group with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	g, err := scanGroup(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Group{}, domain.ErrGroupNotFound
		}

		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrInternal
	}

	return g, nil
}

const listByMemberQuery = `
SELECT ` + groupColumns + `
FROM groups
WHERE $1 = ANY(members)
ORDER BY id
LIMIT $2
OFFSET $3
`

// ListByMember returns a page of groups the user belongs to.
func (r *RepoPGS) ListByMember(ctx context.Context, arg domain.ListGroupsParams) ([]domain.Group, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByMemberQuery, arg.Username, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	groups := []domain.Group{}

	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return groups, nil
}

const addMemberQuery = `
UPDATE groups
SET members = (
	SELECT array_agg(m ORDER BY m)
	FROM unnest(array_append(members, $2::varchar)) AS m
)
WHERE id = $1 AND NOT ($2::varchar = ANY(members))
RETURNING ` + groupColumns

// AddMember appends the username to the group members keeping them sorted.
// Adding an existing member fails with domain.ErrAlreadyMember.
func (r *RepoPGS) AddMember(ctx context.Context, id int64, username string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	g, err := scanGroup(r.db.QueryRowContext(ctx, addMemberQuery, id, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, err := r.Get(ctx, id); err != nil {
				return domain.Group{}, err
			}

			return domain.Group{}, domain.ErrAlreadyMember
		}

		l.Error().Err(err).Send()

		return domain.Group{}, mapWriteErr(err)
	}

	return g, nil
}

const deleteQuery = `DELETE FROM groups WHERE id = $1`

// Delete removes the group together with its expenses.
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
		return domain.ErrGroupNotFound
	}

	return nil
}
