package gem

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Requirement identifies one of the nine categorical membership requirements.
type Requirement string

const (
	ReqGeneralConference Requirement = "general_conference"
	ReqCommitteeMeetings Requirement = "committee_meetings"
	ReqBrotherhood       Requirement = "brotherhood"
	ReqService           Requirement = "service"
	ReqProfessionalism   Requirement = "professionalism"
	ReqRush              Requirement = "rush"
	ReqFSO               Requirement = "fso"
	ReqLockIn            Requirement = "lock_in"
	ReqGPA               Requirement = "gpa"
)

// Requirements is the fixed evaluation and display order.
var Requirements = []Requirement{
	ReqGeneralConference,
	ReqCommitteeMeetings,
	ReqBrotherhood,
	ReqService,
	ReqProfessionalism,
	ReqRush,
	ReqFSO,
	ReqLockIn,
	ReqGPA,
}

type (
	// RequirementResult is one satisfaction flag plus a human-readable detail.
	// The detail is for display only; it never feeds back into the boolean logic.
	RequirementResult struct {
		Requirement Requirement `json:"requirement"`
		Satisfied   bool        `json:"satisfied"`
		Detail      string      `json:"detail"`
	}

	// MemberStanding is one member's standing for a window. Derived, never
	// persisted.
	MemberStanding struct {
		MemberID        string              `json:"member_id"`
		RollNo          string              `json:"roll_no"`
		FirstName       string              `json:"first_name"`
		LastName        string              `json:"last_name"`
		Requirements    []RequirementResult `json:"requirements"`
		TotalSatisfied  int                 `json:"total_satisfied"`
		HasCompletedGem bool                `json:"has_completed_gem"`
		GradeUpdatedAt  null.Time           `json:"grade_updated_at,omitempty"`
	}

	// Report is the full chapter response: window figures plus per-member
	// standings sorted by roll number.
	Report struct {
		Semester                string           `json:"semester"`
		StartDate               time.Time        `json:"start_date"`
		EndDate                 time.Time        `json:"end_date"`
		GeneralConferenceTotal  int              `json:"general_conference_total"`
		GeneralConferenceTarget int              `json:"general_conference_target"`
		RushTarget              int              `json:"rush_target"`
		Members                 []MemberStanding `json:"members"`
	}
)
