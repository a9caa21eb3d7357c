package domain

import (
	"errors"
	"time"
)

var (
	// ErrGroupNotFound indicates that the group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupAlreadyExists indicates that the creator already has a group with the same name and members.
	ErrGroupAlreadyExists = errors.New("group with the same name and members already exists")
	// ErrNotGroupMember indicates that the user does not belong to the group.
	ErrNotGroupMember = errors.New("user is not a group member")
	// ErrNotGroupCreator indicates that only the group creator may perform the action.
	ErrNotGroupCreator = errors.New("only the group creator is allowed")
	// ErrAlreadyMember indicates that the user is already in the group.
	ErrAlreadyMember = errors.New("user is already a group member")
)

// Group is a set of roommates sharing expenses in a single currency.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedBy string    `json:"created_by"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether username belongs to the group.
func (g Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}

	return false
}

// CreateGroupParams is the input data to create a group.
type CreateGroupParams struct {
	Name      string   `json:"name"`
	Currency  string   `json:"currency"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members"`
}

// ListGroupsParams is the input data to list the groups of a user.
type ListGroupsParams struct {
	Username string `json:"username"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}
