package gem_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/committee"
	"github.com/ttgamma/gemportal/core/event"
	"github.com/ttgamma/gemportal/core/gem"
	"github.com/ttgamma/gemportal/core/member"
	emailsvc "github.com/ttgamma/gemportal/services/email"
	dummydb "github.com/ttgamma/gemportal/storage/database/dummy"
)

type fixture struct {
	svc   *gem.Service
	db    *dummydb.DB
	admin member.Member // alumni admin; privileged but not in the active roster
	m1    member.Member
	m2    member.Member
	cmt   committee.Committee
}

func springEvent(day int, typ string, cat event.Category, cmtID string, attendees ...member.Member) event.Event {
	atts := make([]event.Attendance, 0, len(attendees))
	for _, m := range attendees {
		atts = append(atts, event.Attendance{Member: event.MemberRef{ID: m.ID}})
	}
	e := event.Event{
		Type:       typ,
		Category:   cat,
		Status:     event.StatusCompleted,
		StartAt:    time.Date(2025, time.March, day, 19, 0, 0, 0, time.UTC),
		Attendance: atts,
	}
	if cmtID != "" {
		e.CommitteeID = null.StringFrom(cmtID)
	}
	return e
}

func setup(t *testing.T) fixture {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	members := dummydb.NewMemberRepository(db)
	committees := dummydb.NewCommitteeRepository(db)
	events := dummydb.NewEventRepository(db)
	grades := dummydb.NewGradeRepository(db)

	admin := members.AddMember(member.Member{
		RollNo: "001", FirstName: "Ama", LastName: "Owusu",
		Status: member.StatusAlumni, Role: member.RoleAdmin,
	})
	m1 := members.AddMember(member.Member{
		RollNo: "042", FirstName: "Kofi", LastName: "Mensah", Email: "kofi@test.cd",
		Status: member.StatusActive, Role: member.RoleMember,
	})
	m2 := members.AddMember(member.Member{
		RollNo: "043", FirstName: "Yaw", LastName: "Asante", Email: "yaw@test.cd",
		Status: member.StatusActive, Role: member.RoleMember,
	})
	members.AddMember(member.Member{
		RollNo: "007", FirstName: "Kwame", LastName: "Boateng",
		Status: member.StatusRemoved, Role: member.RoleMember,
	})

	cmt := committees.AddCommittee(committee.Committee{Name: "Service", MemberIDs: []string{m1.ID}})

	// Spring 2025 corpus: three general conferences, two committee meetings,
	// one brotherhood event.
	events.AddEvent(springEvent(3, event.TypeChapter, "", "", m1, m2))
	events.AddEvent(springEvent(10, event.TypeChapter, "", "", m2))
	events.AddEvent(springEvent(17, event.TypeChapter, "", ""))
	events.AddEvent(springEvent(5, event.TypeMeeting, "", cmt.ID, m1))
	events.AddEvent(springEvent(12, event.TypeMeeting, "", cmt.ID, m1))
	events.AddEvent(springEvent(20, event.TypeEvent, event.CategoryBrotherhood, "", m1))

	svc := gem.NewService(
		core.GemConfig{GradeThreshold: 2.75, RushTarget: 5, CompletionTarget: 5},
		members, committees, events, grades,
		emailsvc.NewConsoleServiceMock(),
	)
	return fixture{svc: svc, db: db, admin: admin, m1: m1, m2: m2, cmt: cmt}
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	adminViewer := gem.Viewer{MemberID: fx.admin.ID, Privileged: true}
	selfViewer := gem.Viewer{MemberID: fx.m1.ID}

	t.Run("self-only viewer cannot read another member", func(t *testing.T) {
		_, err := fx.svc.Report(ctx, selfViewer, gem.Filter{MemberID: fx.m2.ID})
		assert.Equal(t, gem.ErrForbidden, errors.Cause(err))
	})

	t.Run("malformed member id is rejected before any lookup", func(t *testing.T) {
		_, err := fx.svc.Report(ctx, adminViewer, gem.Filter{MemberID: "42"})
		assert.IsType(t, &core.ValidationError{}, errors.Cause(err))

		// the shape check beats the permission gate for self-only viewers too
		_, err = fx.svc.Report(ctx, selfViewer, gem.Filter{MemberID: "not-a-uuid"})
		assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
	})

	t.Run("self-only viewer defaults to own standing", func(t *testing.T) {
		rep, err := fx.svc.Report(ctx, selfViewer, gem.Filter{Semester: "Spring 2025"})
		assert.NoError(t, err)
		if assert.Len(t, rep.Members, 1) {
			assert.Equal(t, fx.m1.ID, rep.Members[0].MemberID)
		}
	})

	t.Run("privileged roster includes the viewer's own record", func(t *testing.T) {
		rep, err := fx.svc.Report(ctx, adminViewer, gem.Filter{Semester: "Spring 2025"})
		assert.NoError(t, err)
		// active members plus the alumni admin, sorted by roll number; the
		// removed member is excluded
		if assert.Len(t, rep.Members, 3) {
			assert.Equal(t, fx.admin.ID, rep.Members[0].MemberID)
			assert.Equal(t, fx.m1.ID, rep.Members[1].MemberID)
			assert.Equal(t, fx.m2.ID, rep.Members[2].MemberID)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := fx.svc.Report(ctx, adminViewer, gem.Filter{MemberID: "9f4e2b8a-0000-4000-8000-000000000000"})
		assert.Equal(t, member.ErrNotFound, errors.Cause(err))
	})

	t.Run("window inferred from latest event", func(t *testing.T) {
		rep, err := fx.svc.Report(ctx, adminViewer, gem.Filter{})
		assert.NoError(t, err)
		assert.Equal(t, "Spring 2025", rep.Semester)
	})

	t.Run("report figures", func(t *testing.T) {
		rep, err := fx.svc.Report(ctx, adminViewer, gem.Filter{Semester: "Spring 2025"})
		assert.NoError(t, err)
		assert.Equal(t, 3, rep.GeneralConferenceTotal)
		assert.Equal(t, 1, rep.GeneralConferenceTarget)
		assert.Equal(t, 5, rep.RushTarget)

		var m1st, m2st gem.MemberStanding
		for _, st := range rep.Members {
			switch st.MemberID {
			case fx.m1.ID:
				m1st = st
			case fx.m2.ID:
				m2st = st
			}
		}
		// m1: 1 of 3 conferences (need 1), 2 of 2 committee meetings, brotherhood
		assert.True(t, requirementOf(m1st, gem.ReqGeneralConference))
		assert.True(t, requirementOf(m1st, gem.ReqCommitteeMeetings))
		assert.True(t, requirementOf(m1st, gem.ReqBrotherhood))
		assert.False(t, requirementOf(m1st, gem.ReqRush))
		assert.Equal(t, 3, m1st.TotalSatisfied)
		assert.False(t, m1st.HasCompletedGem)

		// m2: 2 conferences, no committees (vacuous), nothing else
		assert.True(t, requirementOf(m2st, gem.ReqGeneralConference))
		assert.True(t, requirementOf(m2st, gem.ReqCommitteeMeetings))
		assert.False(t, requirementOf(m2st, gem.ReqBrotherhood))
		assert.Equal(t, 2, m2st.TotalSatisfied)
	})

	t.Run("explicit window excludes out-of-range events", func(t *testing.T) {
		rep, err := fx.svc.Report(ctx, adminViewer, gem.Filter{Semester: "Fall 2025"})
		assert.NoError(t, err)
		assert.Equal(t, 0, rep.GeneralConferenceTotal)
		for _, st := range rep.Members {
			assert.False(t, requirementOf(st, gem.ReqGeneralConference))
		}
	})
}

func requirementOf(st gem.MemberStanding, req gem.Requirement) bool {
	for _, res := range st.Requirements {
		if res.Requirement == req {
			return res.Satisfied
		}
	}
	return false
}

func TestService_SetGrade(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	adminViewer := gem.Viewer{MemberID: fx.admin.ID, Privileged: true}

	t.Run("privileged only", func(t *testing.T) {
		_, err := fx.svc.SetGrade(ctx, gem.Viewer{MemberID: fx.m1.ID},
			gem.GradeUpdate{MemberID: fx.m1.ID, GPA: null.Float64From(3.0)})
		assert.Equal(t, gem.ErrForbidden, errors.Cause(err))
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := fx.svc.SetGrade(ctx, adminViewer, gem.GradeUpdate{MemberID: "42"})
		assert.Error(t, err)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: "9f4e2b8a-0000-4000-8000-000000000000", GPA: null.Float64From(3.0)})
		assert.Equal(t, member.ErrNotFound, errors.Cause(err))
	})

	t.Run("upsert and read back", func(t *testing.T) {
		rec, err := fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: fx.m1.ID, Semester: "Spring 2025", GPA: null.Float64From(3.0)})
		assert.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "Spring 2025", rec.Semester)

		got, err := fx.svc.Grade(ctx, gem.Viewer{MemberID: fx.m1.ID}, "", "Spring 2025")
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, 3.0, got.GPA.Float64)

		// replacing keeps the record id
		rec2, err := fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: fx.m1.ID, Semester: "Spring 2025", GPA: null.Float64From(2.1)})
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, rec2.ID)
		assert.Equal(t, 2.1, rec2.GPA.Float64)
	})

	t.Run("semester defaults to the inferred window", func(t *testing.T) {
		rec, err := fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: fx.m2.ID, GPA: null.Float64From(2.9)})
		assert.NoError(t, err)
		assert.Equal(t, "Spring 2025", rec.Semester)
	})

	t.Run("clearing feeds back into the standing", func(t *testing.T) {
		_, err := fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: fx.m1.ID, Semester: "Spring 2025", GPA: null.Float64From(3.5)})
		assert.NoError(t, err)
		rep, err := fx.svc.Report(ctx, adminViewer, gem.Filter{Semester: "Spring 2025", MemberID: fx.m1.ID})
		assert.NoError(t, err)
		assert.True(t, requirementOf(rep.Members[0], gem.ReqGPA))

		_, err = fx.svc.SetGrade(ctx, adminViewer,
			gem.GradeUpdate{MemberID: fx.m1.ID, Semester: "Spring 2025"}) // null gpa
		assert.NoError(t, err)
		rep, err = fx.svc.Report(ctx, adminViewer, gem.Filter{Semester: "Spring 2025", MemberID: fx.m1.ID})
		assert.NoError(t, err)
		assert.False(t, requirementOf(rep.Members[0], gem.ReqGPA))
	})
}

func TestService_Grade(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	t.Run("no record", func(t *testing.T) {
		_, err := fx.svc.Grade(ctx, gem.Viewer{MemberID: fx.m1.ID}, "", "Spring 2025")
		assert.Equal(t, gem.ErrGradeNotFound, errors.Cause(err))
	})

	t.Run("self-only viewer cannot read another member's grade", func(t *testing.T) {
		_, err := fx.svc.Grade(ctx, gem.Viewer{MemberID: fx.m1.ID}, fx.m2.ID, "Spring 2025")
		assert.Equal(t, gem.ErrForbidden, errors.Cause(err))
	})

	t.Run("malformed member id", func(t *testing.T) {
		_, err := fx.svc.Grade(ctx, gem.Viewer{MemberID: fx.admin.ID, Privileged: true}, "42", "Spring 2025")
		assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
	})
}

func TestService_RemindIncomplete(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	adminViewer := gem.Viewer{MemberID: fx.admin.ID, Privileged: true}

	t.Run("privileged only", func(t *testing.T) {
		_, err := fx.svc.RemindIncomplete(ctx, gem.Viewer{MemberID: fx.m1.ID}, gem.Filter{})
		assert.Equal(t, gem.ErrForbidden, errors.Cause(err))
	})

	t.Run("notifies incomplete members with an email address", func(t *testing.T) {
		emailsvc.ClearSentMessages()

		sent, err := fx.svc.RemindIncomplete(ctx, adminViewer, gem.Filter{Semester: "Spring 2025"})
		assert.NoError(t, err)
		// everyone is incomplete; the admin has no email address on file
		assert.Equal(t, 2, sent)
		if assert.Len(t, emailsvc.SentMessages, 2) {
			msg := emailsvc.SentMessages[0]
			assert.Contains(t, msg.Subject, "Spring 2025")
			assert.Contains(t, msg.TextContent, "GEM requirements")
		}
	})
}
