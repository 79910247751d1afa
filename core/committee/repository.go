package committee

import "context"

type Repository interface {
	QueryAllCommittees(ctx context.Context) ([]Committee, error)
}
