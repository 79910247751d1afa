package member

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("member not found")

// Repository gives read access to the chapter roster.
type Repository interface {
	GetMemberByID(ctx context.Context, id string) (Member, error)
	// QueryActiveMembers returns all members in the "Active" status.
	QueryActiveMembers(ctx context.Context) ([]Member, error)
}
