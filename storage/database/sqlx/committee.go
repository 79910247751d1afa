package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core/committee"
)

// committeeRepository reads committees and their membership rosters. Read-only.
type committeeRepository struct {
	db *sqlx.DB
}

var _ committee.Repository = (*committeeRepository)(nil) // interface compliance check

func NewCommitteeRepository(db *sqlx.DB) *committeeRepository {
	return &committeeRepository{db: db}
}

func (repo committeeRepository) QueryAllCommittees(ctx context.Context) ([]committee.Committee, error) {
	var rows []struct {
		ID     string      `db:"id"`
		Name   string      `db:"name"`
		HeadID null.String `db:"head_id"`
	}
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, name, head_id FROM committee ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying committees")
	}

	var memberships []struct {
		CommitteeID string `db:"committee_id"`
		MemberID    string `db:"member_id"`
	}
	err = repo.db.SelectContext(ctx, &memberships,
		`SELECT committee_id, member_id FROM committee_member`)
	if err != nil {
		return nil, errors.Wrap(err, "querying committee members")
	}
	membersByCommittee := make(map[string][]string, len(rows))
	for _, m := range memberships {
		membersByCommittee[m.CommitteeID] = append(membersByCommittee[m.CommitteeID], m.MemberID)
	}

	committees := make([]committee.Committee, 0, len(rows))
	for _, r := range rows {
		committees = append(committees, committee.Committee{
			ID:        r.ID,
			Name:      r.Name,
			HeadID:    r.HeadID,
			MemberIDs: membersByCommittee[r.ID],
		})
	}
	return committees, nil
}
