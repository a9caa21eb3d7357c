// Package groupservice manages business logic layer of groups.
package groupservice

import (
	"context"
	"sort"
	"strings"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by group service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package groupservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateGroupParams) (domain.Group, error)
	Get(ctx context.Context, id int64) (domain.Group, error)
	ListByMember(ctx context.Context, arg domain.ListGroupsParams) ([]domain.Group, error)
	AddMember(ctx context.Context, id int64, username string) (domain.Group, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepo resolves roommates invited by email.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// Invalidator drops cached balances of a group.
type Invalidator interface {
	Bump(ctx context.Context, groupID int64) error
	Drop(ctx context.Context, groupID int64) error
}

// Service facilitates group service layer logic.
type Service struct {
	repo     Repo
	userRepo UserRepo
	cache    Invalidator
}

// New returns group service struct to manage group business logic.
func New(gr Repo, ur UserRepo, cache Invalidator) *Service {
	return &Service{
		repo:     gr,
		userRepo: ur,
		cache:    cache,
	}
}

// Create creates a group owned by creator with the roommates registered under memberEmails.
// The creator is always a member, their own email is skipped.
func (s *Service) Create(ctx context.Context, creator, name, currency string, memberEmails []string) (domain.Group, error) {
	seen := map[string]struct{}{creator: {}}
	members := []string{creator}

	for _, email := range memberEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		u, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return domain.Group{}, err
		}

		if _, ok := seen[u.Username]; ok {
			continue
		}

		seen[u.Username] = struct{}{}
		members = append(members, u.Username)
	}

	sort.Strings(members)

	arg := domain.CreateGroupParams{
		Name:      strings.TrimSpace(name),
		Currency:  currency,
		CreatedBy: creator,
		Members:   members,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the group if username is one of its members.
func (s *Service) Get(ctx context.Context, username string, id int64) (domain.Group, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Group{}, err
	}

	if !g.HasMember(username) {
		zerolog.Ctx(ctx).Warn().Str("username", username).Int64("group_id", id).Msg("group access denied")
		return domain.Group{}, domain.ErrNotGroupMember
	}

	return g, nil
}

// List returns a page of groups the user belongs to.
func (s *Service) List(ctx context.Context, username string, pageSize, pageID int32) ([]domain.Group, error) {
	arg := domain.ListGroupsParams{
		Username: username,
		Limit:    pageSize,
		Offset:   (pageID - 1) * pageSize,
	}

	return s.repo.ListByMember(ctx, arg)
}

// AddMember invites the user registered under email into the group.
// Only the group creator may invite.
func (s *Service) AddMember(ctx context.Context, username string, id int64, email string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Group{}, err
	}

	if g.CreatedBy != username {
		return domain.Group{}, domain.ErrNotGroupCreator
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.Group{}, err
	}

	if g.HasMember(u.Username) {
		return domain.Group{}, domain.ErrAlreadyMember
	}

	updated, err := s.repo.AddMember(ctx, id, u.Username)
	if err != nil {
		return domain.Group{}, err
	}

	// Expenses without an explicit split now include the new member.
	if err := s.cache.Bump(ctx, id); err != nil {
		l.Error().Err(err).Int64("group_id", id).Msg("balance cache bump failed")
	}

	return updated, nil
}

// Delete removes the group and its expenses. Only the group creator may delete.
func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if g.CreatedBy != username {
		return domain.ErrNotGroupCreator
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Drop(ctx, id); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("group_id", id).Msg("balance cache drop failed")
	}

	return nil
}
