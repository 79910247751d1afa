package gem

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/committee"
	"github.com/ttgamma/gemportal/core/event"
	"github.com/ttgamma/gemportal/core/member"
)

// ErrForbidden is returned when a self-only viewer touches another member's
// standing, or a non-privileged viewer mutates a grade.
var ErrForbidden = errors.New("permission denied")

// wellFormedMemberID rejects ids that cannot possibly match a member row
// before any lookup runs. Member ids are uuids.
func wellFormedMemberID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "member_id", Error: "must be a valid member id"})
	}
	return nil
}

type (
	// Viewer is the already-authenticated caller. Privileged viewers (admin,
	// superadmin or E-Council) may read the whole roster and edit any grade;
	// everyone else is restricted to their own standing.
	Viewer struct {
		MemberID   string
		Privileged bool
	}

	// Filter scopes a report request. All fields are optional.
	Filter struct {
		Start    *time.Time
		End      *time.Time
		Semester string
		MemberID string
	}

	Service struct {
		conf       core.GemConfig
		members    member.Repository
		committees committee.Repository
		events     event.Repository
		grades     GradeRepository
		mailSvc    core.EmailService
		now        func() time.Time
	}
)

func NewService(
	conf core.GemConfig,
	members member.Repository,
	committees committee.Repository,
	events event.Repository,
	grades GradeRepository,
	mailSvc core.EmailService,
) *Service {
	return &Service{
		conf:       conf,
		members:    members,
		committees: committees,
		events:     events,
		grades:     grades,
		mailSvc:    mailSvc,
		now:        time.Now,
	}
}

// Report computes standings for the resolved window, scoped by the viewer's
// privilege. The read path is a pure function of the corpus at request time;
// nothing is cached between requests.
func (svc *Service) Report(ctx context.Context, viewer Viewer, f Filter) (Report, error) {
	rep, _, err := svc.buildReport(ctx, viewer, f)
	return rep, err
}

func (svc *Service) buildReport(ctx context.Context, viewer Viewer, f Filter) (Report, []member.Member, error) {
	f.MemberID = core.CleanString(f.MemberID)
	if f.MemberID != "" {
		if err := wellFormedMemberID(f.MemberID); err != nil {
			return Report{}, nil, err
		}
		if f.MemberID != viewer.MemberID && !viewer.Privileged {
			return Report{}, nil, errors.Wrap(ErrForbidden, "requesting another member's standing")
		}
	}

	window, err := svc.resolveWindow(ctx, f)
	if err != nil {
		return Report{}, nil, err
	}

	pool, err := svc.memberPool(ctx, viewer, f)
	if err != nil {
		return Report{}, nil, err
	}

	events, err := svc.events.QueryEventsInWindow(ctx, window.StartDate, window.EndDate)
	if err != nil {
		return Report{}, nil, errors.Wrap(err, "querying events")
	}
	committees, err := svc.committees.QueryAllCommittees(ctx)
	if err != nil {
		return Report{}, nil, errors.Wrap(err, "querying committees")
	}
	grades, err := svc.grades.QueryGradesBySemester(ctx, window.Name)
	if err != nil {
		return Report{}, nil, errors.Wrap(err, "querying grades")
	}
	gradesByMember := make(map[string]GradeRecord, len(grades))
	for _, g := range grades {
		gradesByMember[g.MemberID] = g
	}

	tally := Accumulate(events, svc.now())
	evaluator := NewEvaluator(svc.conf, tally, committees)

	standings := make([]MemberStanding, 0, len(pool))
	for _, m := range pool {
		var grade *GradeRecord
		if g, ok := gradesByMember[m.ID]; ok {
			grade = &g
		}
		standings = append(standings, evaluator.Evaluate(m, grade))
	}
	sort.Slice(standings, func(i, j int) bool { return standings[i].RollNo < standings[j].RollNo })
	sort.Slice(pool, func(i, j int) bool { return pool[i].RollNo < pool[j].RollNo })

	rep := Report{
		Semester:                window.Name,
		StartDate:               window.StartDate,
		EndDate:                 window.EndDate,
		GeneralConferenceTotal:  tally.Total(event.CategoryGeneralConference),
		GeneralConferenceTarget: evaluator.GeneralConferenceTarget(),
		RushTarget:              svc.conf.RushTarget,
		Members:                 standings,
	}
	return rep, pool, nil
}

func (svc *Service) resolveWindow(ctx context.Context, f Filter) (SemesterWindow, error) {
	reference := svc.now()
	if f.Start == nil && f.End == nil && core.CleanString(f.Semester) == "" {
		latest, err := svc.events.LatestEventStart(ctx)
		if err != nil {
			return SemesterWindow{}, errors.Wrap(err, "finding latest event")
		}
		if !latest.IsZero() {
			reference = latest
		}
	}
	return ResolveWindow(f.Start, f.End, f.Semester, reference)
}

// memberPool selects whose standings are computed: one member when a specific
// id is requested (or the viewer is self-only), otherwise every Active member
// plus the viewer's own record regardless of its status.
func (svc *Service) memberPool(ctx context.Context, viewer Viewer, f Filter) ([]member.Member, error) {
	targetID := f.MemberID
	if targetID == "" && !viewer.Privileged {
		targetID = viewer.MemberID
	}

	if targetID != "" {
		m, err := svc.members.GetMemberByID(ctx, targetID)
		if err != nil {
			return nil, errors.Wrap(err, "finding member by ID")
		}
		return []member.Member{m}, nil
	}

	pool, err := svc.members.QueryActiveMembers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying active members")
	}
	for _, m := range pool {
		if m.ID == viewer.MemberID {
			return pool, nil
		}
	}
	self, err := svc.members.GetMemberByID(ctx, viewer.MemberID)
	if err == nil {
		pool = append(pool, self)
	} else if errors.Cause(err) != member.ErrNotFound {
		return nil, errors.Wrap(err, "finding viewer's member record")
	}
	return pool, nil
}

// SetGrade upserts the manually entered grade for (member, semester).
// Privileged viewers only.
func (svc *Service) SetGrade(ctx context.Context, viewer Viewer, gu GradeUpdate) (GradeRecord, error) {
	if !viewer.Privileged {
		return GradeRecord{}, errors.Wrap(ErrForbidden, "updating a grade")
	}
	if err := gu.Validate(); err != nil {
		return GradeRecord{}, err
	}

	if _, err := svc.members.GetMemberByID(ctx, gu.MemberID); err != nil {
		return GradeRecord{}, errors.Wrap(err, "finding member by ID")
	}

	semester := gu.Semester
	if semester == "" {
		window, err := svc.resolveWindow(ctx, Filter{})
		if err != nil {
			return GradeRecord{}, err
		}
		semester = window.Name
	}

	rec := GradeRecord{
		ID:        uuid.New().String(),
		MemberID:  gu.MemberID,
		Semester:  semester,
		GPA:       gu.GPA,
		UpdatedAt: svc.now().UTC(),
	}
	rec, err := svc.grades.UpsertGrade(ctx, rec)
	return rec, errors.Wrap(err, "upserting grade")
}

// Grade returns the stored grade for (member, semester), gated like a report
// read.
func (svc *Service) Grade(ctx context.Context, viewer Viewer, memberID, semester string) (GradeRecord, error) {
	memberID = core.CleanString(memberID)
	if memberID == "" {
		memberID = viewer.MemberID
	} else if err := wellFormedMemberID(memberID); err != nil {
		return GradeRecord{}, err
	}
	if memberID != viewer.MemberID && !viewer.Privileged {
		return GradeRecord{}, errors.Wrap(ErrForbidden, "requesting another member's grade")
	}
	if semester = core.CleanString(semester); semester == "" {
		window, err := svc.resolveWindow(ctx, Filter{})
		if err != nil {
			return GradeRecord{}, err
		}
		semester = window.Name
	}
	return svc.grades.GetGrade(ctx, memberID, semester)
}

// RemindIncomplete emails every member in the window's roster whose GEM is
// incomplete a summary of their unmet requirements. Returns the number of
// notices sent.
func (svc *Service) RemindIncomplete(ctx context.Context, viewer Viewer, f Filter) (int, error) {
	if !viewer.Privileged {
		return 0, errors.Wrap(ErrForbidden, "sending reminders")
	}
	f.MemberID = ""

	rep, pool, err := svc.buildReport(ctx, viewer, f)
	if err != nil {
		return 0, err
	}

	membersByID := make(map[string]member.Member, len(pool))
	for _, m := range pool {
		membersByID[m.ID] = m
	}

	msgs := make([]*core.EmailMessage, 0, len(rep.Members))
	for _, st := range rep.Members {
		if st.HasCompletedGem {
			continue
		}
		m, ok := membersByID[st.MemberID]
		if !ok || m.Email == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{{Name: m.FullName(), Address: m.Email}},
			Subject: fmt.Sprintf("GEM standing for %s", rep.Semester),
			BodyStr: reminderBody(rep.Semester, st),
		})
	}
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}
	return len(msgs), nil
}

func reminderBody(semester string, st MemberStanding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", st.FirstName)
	fmt.Fprintf(&b, "You have completed %d of %d GEM requirements for %s. Still outstanding:\n",
		st.TotalSatisfied, len(st.Requirements), semester)
	for _, res := range st.Requirements {
		if !res.Satisfied {
			fmt.Fprintf(&b, "  - %s: %s\n", res.Requirement, res.Detail)
		}
	}
	fmt.Fprintf(&b, "\nView your full standing at %s.\n", core.Conf.FrontendBaseURL)
	return b.String()
}
