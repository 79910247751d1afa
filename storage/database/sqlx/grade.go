package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ttgamma/gemportal/core/gem"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ gem.GradeRepository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to gem.ErrGradeNotFound
func (repo gradeRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return gem.ErrGradeNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo gradeRepository) GetGrade(ctx context.Context, memberID, semester string) (gem.GradeRecord, error) {
	var rec gem.GradeRecord
	err := repo.db.GetContext(ctx, &rec,
		`SELECT id, member_id, semester, gpa, updated_at
		 FROM gem_grade
		 WHERE member_id = $1 AND semester = $2`,
		memberID, semester,
	)
	if err != nil {
		return gem.GradeRecord{}, repo.trapNoRowsErr(err, "getting grade")
	}
	return rec, nil
}

func (repo gradeRepository) QueryGradesBySemester(ctx context.Context, semester string) ([]gem.GradeRecord, error) {
	var recs []gem.GradeRecord
	err := repo.db.SelectContext(ctx, &recs,
		`SELECT id, member_id, semester, gpa, updated_at
		 FROM gem_grade
		 WHERE semester = $1`,
		semester,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return recs, nil
}

// UpsertGrade relies on the storage layer's atomic insert-or-update so two
// concurrent edits of the same member's grade cannot lose an update.
func (repo gradeRepository) UpsertGrade(ctx context.Context, rec gem.GradeRecord) (gem.GradeRecord, error) {
	var saved gem.GradeRecord
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO gem_grade (id, member_id, semester, gpa, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (member_id, semester)
		 DO UPDATE SET gpa = EXCLUDED.gpa, updated_at = EXCLUDED.updated_at
		 RETURNING id, member_id, semester, gpa, updated_at`,
		rec.ID, rec.MemberID, rec.Semester, rec.GPA, rec.UpdatedAt,
	).StructScan(&saved)
	if err != nil {
		return gem.GradeRecord{}, errors.Wrap(err, "upserting grade")
	}
	return saved, nil
}
