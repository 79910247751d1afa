package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ttgamma/gemportal/core/committee"
)

type committeeRepository struct {
	db *committeeTable
}

var _ committee.Repository = (*committeeRepository)(nil) // interface compliance check

func NewCommitteeRepository(db *DB) *committeeRepository {
	return &committeeRepository{db: db.committee}
}

// AddCommittee seeds a committee; real committees are owned elsewhere.
func (repo *committeeRepository) AddCommittee(c committee.Committee) committee.Committee {
	repo.db.Lock()
	defer repo.db.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	repo.db.table[c.ID] = &c
	return c
}

func (repo *committeeRepository) QueryAllCommittees(ctx context.Context) ([]committee.Committee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	committees := make([]committee.Committee, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		committees = append(committees, *c)
	}
	sort.Slice(committees, func(i, j int) bool { return committees[i].Name < committees[j].Name })
	return committees, nil
}
