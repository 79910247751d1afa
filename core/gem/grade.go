package gem

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core"
)

var ErrGradeNotFound = errors.New("grade record not found")

// GradeRecord is the manually entered grade value for one (member, semester)
// pair. The only entity this engine mutates; at most one record exists per
// pair.
type GradeRecord struct {
	ID        string       `json:"id" db:"id"`
	MemberID  string       `json:"member_id" db:"member_id"`
	Semester  string       `json:"semester" db:"semester"`
	GPA       null.Float64 `json:"gpa" db:"gpa"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"` // UTC
}

type GradeRepository interface {
	GetGrade(ctx context.Context, memberID, semester string) (GradeRecord, error)
	QueryGradesBySemester(ctx context.Context, semester string) ([]GradeRecord, error)
	// UpsertGrade atomically creates or replaces the record keyed by
	// (memberID, semester). Repeated identical writes produce the same stored
	// state.
	UpsertGrade(ctx context.Context, rec GradeRecord) (GradeRecord, error)
}

// GradeUpdate is the grade mutation payload. A null gpa clears the stored
// value.
type GradeUpdate struct {
	MemberID string       `json:"member_id" validate:"required,uuid"`
	Semester string       `json:"semester"`
	GPA      null.Float64 `json:"gpa"`
}

func (gu *GradeUpdate) Validate() error {
	gu.MemberID = core.CleanString(gu.MemberID)
	gu.Semester = core.CleanString(gu.Semester)

	if err := core.Validate.Struct(gu); err != nil {
		return err
	}
	if gu.GPA.Valid && (gu.GPA.Float64 < 0 || gu.GPA.Float64 > 4) {
		return core.NewValidationError(nil,
			core.FieldError{Field: "gpa", Error: "gpa must be null or between 0.0 and 4.0"})
	}
	return nil
}
