package dummydb

import (
	"context"

	"github.com/ttgamma/gemportal/core/gem"
)

type gradeRepository struct {
	db *gradeTable
}

var _ gem.GradeRepository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) GetGrade(ctx context.Context, memberID, semester string) (gem.GradeRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[gradeKey{memberID, semester}]; ok {
		return *rec, nil
	}
	return gem.GradeRecord{}, gem.ErrGradeNotFound
}

func (repo *gradeRepository) QueryGradesBySemester(ctx context.Context, semester string) ([]gem.GradeRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var recs []gem.GradeRecord
	for key, rec := range repo.db.table {
		if key.semester == semester {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

// UpsertGrade is atomic under the table lock: find-or-create-or-replace as one
// operation, keeping the original record id on replacement.
func (repo *gradeRepository) UpsertGrade(ctx context.Context, rec gem.GradeRecord) (gem.GradeRecord, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := gradeKey{rec.MemberID, rec.Semester}
	if orig, ok := repo.db.table[key]; ok {
		rec.ID = orig.ID
	}
	repo.db.table[key] = &rec
	return rec, nil
}
