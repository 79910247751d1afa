package gem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core/event"
)

const (
	mbr1 = "0b7aa463-2f05-4b35-9bb3-3f38c4c54edb"
	mbr2 = "3a0c6fc3-93b8-4f8a-8f7c-9c3b25a4a3f7"
	cmt1 = "7e2b9a8a-6f3e-4f44-9f43-0a2f2b9f0f10"
)

func attendance(ids ...string) []event.Attendance {
	atts := make([]event.Attendance, 0, len(ids))
	for _, id := range ids {
		atts = append(atts, event.Attendance{Member: event.MemberRef{ID: id}})
	}
	return atts
}

func TestAccumulate(t *testing.T) {
	now := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	events := []event.Event{
		{Type: event.TypeChapter, Status: event.StatusCompleted, StartAt: past,
			Attendance: attendance(mbr1, mbr1, mbr2)}, // mbr1 checked in twice
		{Type: event.TypeChapter, Status: event.StatusCompleted, StartAt: past,
			Attendance: attendance(mbr2)},
		{Type: event.TypeChapter, Status: event.StatusCancelled, StartAt: past,
			Attendance: attendance(mbr1, mbr2)}, // cancelled; contributes nothing
		{Type: event.TypeChapter, Status: event.StatusScheduled, StartAt: future,
			Attendance: attendance(mbr1)}, // not started yet
		{Type: event.TypeChapter, Status: event.StatusCompleted, StartAt: future}, // completed early
		{Type: event.TypeMeeting, Status: event.StatusCompleted, StartAt: past,
			CommitteeID: null.StringFrom(cmt1), Attendance: attendance(mbr1)},
		{Type: event.TypeMeeting, Status: event.StatusCompleted, StartAt: past,
			CommitteeID: null.StringFrom(cmt1)},
		{Type: event.TypeMeeting, Status: event.StatusCompleted, StartAt: past}, // no committee; unclassified
		{Type: event.TypeEvent, Status: event.StatusCompleted, StartAt: past,
			Category: event.CategoryBrotherhood, Attendance: attendance(mbr2)},
	}

	tally := Accumulate(events, now)

	assert.Equal(t, 3, tally.Total(event.CategoryGeneralConference))
	assert.Equal(t, 2, tally.Total(event.CategoryCommitteeMeeting))
	assert.Equal(t, 1, tally.Total(event.CategoryBrotherhood))
	assert.Equal(t, 2, tally.CommitteeTotal(cmt1))

	assert.Equal(t, 1, tally.Attended(mbr1, event.CategoryGeneralConference))
	assert.Equal(t, 2, tally.Attended(mbr2, event.CategoryGeneralConference))
	assert.Equal(t, 1, tally.CommitteeAttended(mbr1, cmt1))
	assert.Equal(t, 0, tally.CommitteeAttended(mbr2, cmt1))
	assert.Equal(t, 1, tally.Attended(mbr2, event.CategoryBrotherhood))

	// unknown member
	assert.Equal(t, 0, tally.Attended("deadbeef", event.CategoryGeneralConference))
}
