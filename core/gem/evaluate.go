package gem

import (
	"fmt"
	"strings"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/committee"
	"github.com/ttgamma/gemportal/core/event"
	"github.com/ttgamma/gemportal/core/member"
)

// Evaluator turns raw counters into the nine satisfaction flags per member.
// Each requirement is evaluated independently.
type Evaluator struct {
	conf       core.GemConfig
	tally      *Tally
	committees []committee.Committee
}

func NewEvaluator(conf core.GemConfig, tally *Tally, committees []committee.Committee) *Evaluator {
	return &Evaluator{conf: conf, tally: tally, committees: committees}
}

// GeneralConferenceTarget is the attendance count needed this window:
// ceil(total/3).
func (ev *Evaluator) GeneralConferenceTarget() int {
	return (ev.tally.Total(event.CategoryGeneralConference) + 2) / 3
}

// Evaluate computes a member's standing. grade may be nil when no record
// exists for the window.
func (ev *Evaluator) Evaluate(m member.Member, grade *GradeRecord) MemberStanding {
	results := []RequirementResult{
		ev.generalConference(m.ID),
		ev.committeeMeetings(m.ID),
		ev.presence(m.ID, ReqBrotherhood, event.CategoryBrotherhood, "brotherhood events"),
		ev.presence(m.ID, ReqService, event.CategoryService, "service events"),
		ev.presence(m.ID, ReqProfessionalism, event.CategoryProfessionalism, "professionalism events"),
		ev.rush(m.ID),
		ev.presence(m.ID, ReqFSO, event.CategoryFSO, "FSO events"),
		ev.presence(m.ID, ReqLockIn, event.CategoryLockIn, "lock-ins"),
		ev.gpa(grade),
	}

	standing := MemberStanding{
		MemberID:     m.ID,
		RollNo:       m.RollNo,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Requirements: results,
	}
	for _, res := range results {
		if res.Satisfied {
			standing.TotalSatisfied++
		}
	}
	standing.HasCompletedGem = standing.TotalSatisfied >= ev.conf.CompletionTarget

	if grade != nil {
		standing.GradeUpdatedAt.SetValid(grade.UpdatedAt)
	}
	return standing
}

// generalConference requires attending at least a third (rounded up) of the
// chapter's general conferences. A window with zero conferences leaves the
// requirement unsatisfied for everyone; it is never vacuously true.
func (ev *Evaluator) generalConference(memberID string) RequirementResult {
	total := ev.tally.Total(event.CategoryGeneralConference)
	attended := ev.tally.Attended(memberID, event.CategoryGeneralConference)
	target := ev.GeneralConferenceTarget()

	return RequirementResult{
		Requirement: ReqGeneralConference,
		Satisfied:   total > 0 && attended >= target,
		Detail:      fmt.Sprintf("attended %d of %d general conferences (need %d)", attended, total, target),
	}
}

// committeeMeetings requires a strict majority of each of the member's
// committees' meetings. A member in no committees passes vacuously; this
// asymmetry with the general-conference zero-total rule is intentional and
// pinned by tests.
func (ev *Evaluator) committeeMeetings(memberID string) RequirementResult {
	satisfied := true
	details := make([]string, 0, len(ev.committees))

	var belongsToAny bool
	for _, c := range ev.committees {
		if !c.HasMember(memberID) {
			continue
		}
		belongsToAny = true

		total := ev.tally.CommitteeTotal(c.ID)
		attended := ev.tally.CommitteeAttended(memberID, c.ID)
		need := total/2 + 1
		if total == 0 || attended < need {
			satisfied = false
		}
		details = append(details, fmt.Sprintf("%s: %d of %d meetings (need %d)", c.Name, attended, total, need))
	}

	detail := strings.Join(details, "; ")
	if !belongsToAny {
		detail = "not a member of any committee"
	}
	return RequirementResult{
		Requirement: ReqCommitteeMeetings,
		Satisfied:   satisfied,
		Detail:      detail,
	}
}

// presence is the simple "attended at least one" pattern shared by the
// brotherhood, service, professionalism, FSO and lock-in requirements.
func (ev *Evaluator) presence(memberID string, req Requirement, cat event.Category, label string) RequirementResult {
	attended := ev.tally.Attended(memberID, cat)
	return RequirementResult{
		Requirement: req,
		Satisfied:   attended > 0,
		Detail:      fmt.Sprintf("attended %d %s", attended, label),
	}
}

// rush compares the combined rush-event + rush-tabling count to the fixed
// configured target, independent of how many rush events were held.
func (ev *Evaluator) rush(memberID string) RequirementResult {
	credits := ev.tally.Attended(memberID, event.CategoryRushEvent) +
		ev.tally.Attended(memberID, event.CategoryRushTabling)
	return RequirementResult{
		Requirement: ReqRush,
		Satisfied:   credits >= ev.conf.RushTarget,
		Detail:      fmt.Sprintf("%d of %d rush credits", credits, ev.conf.RushTarget),
	}
}

// gpa requires a recorded, non-null grade at or above the configured
// threshold. An absent or cleared grade is always unsatisfied.
func (ev *Evaluator) gpa(grade *GradeRecord) RequirementResult {
	res := RequirementResult{Requirement: ReqGPA}
	if grade == nil || !grade.GPA.Valid {
		res.Detail = "no grade recorded"
		return res
	}
	res.Satisfied = grade.GPA.Float64 >= ev.conf.GradeThreshold
	res.Detail = fmt.Sprintf("gpa %.2f (need %.2f)", grade.GPA.Float64, ev.conf.GradeThreshold)
	return res
}
