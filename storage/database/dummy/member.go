package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ttgamma/gemportal/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) *memberRepository {
	return &memberRepository{db: db.member}
}

// AddMember seeds the roster; the real roster is owned by the
// member-management service.
func (repo *memberRepository) AddMember(m member.Member) member.Member {
	repo.db.Lock()
	defer repo.db.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	repo.db.table[m.ID] = &m
	return m
}

func (repo *memberRepository) GetMemberByID(ctx context.Context, id string) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) QueryActiveMembers(ctx context.Context) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		if m.IsActive() {
			members = append(members, *m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].RollNo < members[j].RollNo })
	return members, nil
}
