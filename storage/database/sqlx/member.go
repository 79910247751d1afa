package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ttgamma/gemportal/core/member"
)

// memberRepository reads the member roster owned by the member-management
// service. This service never writes members.
type memberRepository struct {
	db *sqlx.DB
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *sqlx.DB) *memberRepository {
	return &memberRepository{db: db}
}

type memberRow struct {
	ID         string `db:"id"`
	RollNo     string `db:"roll_no"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Email      string `db:"email"`
	Status     string `db:"status"`
	Role       string `db:"role"`
	IsECouncil bool   `db:"is_ecouncil"`
}

func (r memberRow) toMember() member.Member {
	return member.Member{
		ID:         r.ID,
		RollNo:     r.RollNo,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Status:     r.Status,
		Role:       r.Role,
		IsECouncil: r.IsECouncil,
	}
}

const memberColumns = `id, roll_no, first_name, last_name, email, status, role, is_ecouncil`

func (repo memberRepository) GetMemberByID(ctx context.Context, id string) (member.Member, error) {
	var row memberRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+memberColumns+` FROM member WHERE id = $1`, id)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return member.Member{}, member.ErrNotFound
		}
		return member.Member{}, errors.Wrap(err, "getting member")
	}
	return row.toMember(), nil
}

func (repo memberRepository) QueryActiveMembers(ctx context.Context) ([]member.Member, error) {
	var rows []memberRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+memberColumns+` FROM member WHERE status = $1 ORDER BY roll_no`,
		member.StatusActive,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying active members")
	}
	members := make([]member.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.toMember())
	}
	return members, nil
}
