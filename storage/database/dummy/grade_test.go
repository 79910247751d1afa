package dummydb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core/gem"
)

func TestGradeRepository_UpsertGrade(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	repo := NewGradeRepository(db)

	memberID := "0b7aa463-2f05-4b35-9bb3-3f38c4c54edb"

	_, err = repo.GetGrade(ctx, memberID, "Fall 2025")
	assert.Equal(t, gem.ErrGradeNotFound, err)

	rec, err := repo.UpsertGrade(ctx, gem.GradeRecord{
		ID: "g1", MemberID: memberID, Semester: "Fall 2025", GPA: null.Float64From(3.1),
	})
	assert.NoError(t, err)
	assert.Equal(t, "g1", rec.ID)

	// replacing the same (member, semester) pair keeps the original id
	rec, err = repo.UpsertGrade(ctx, gem.GradeRecord{
		ID: "g2", MemberID: memberID, Semester: "Fall 2025", GPA: null.Float64From(2.4),
	})
	assert.NoError(t, err)
	assert.Equal(t, "g1", rec.ID)
	assert.Equal(t, 2.4, rec.GPA.Float64)

	// a different semester is a separate record
	rec, err = repo.UpsertGrade(ctx, gem.GradeRecord{
		ID: "g3", MemberID: memberID, Semester: "Spring 2026",
	})
	assert.NoError(t, err)
	assert.Equal(t, "g3", rec.ID)

	recs, err := repo.QueryGradesBySemester(ctx, "Fall 2025")
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
}
