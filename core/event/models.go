package event

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Statuses
const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Event types
const (
	TypeMeeting = "meeting"
	TypeEvent   = "event"
	TypeChapter = "chapter"
)

// Category is one of the requirement buckets an event can be classified into.
type Category string

const (
	CategoryGeneralConference Category = "general-conference"
	CategoryCommitteeMeeting  Category = "committee-meeting"
	CategoryBrotherhood       Category = "brotherhood"
	CategoryService           Category = "service"
	CategoryProfessionalism   Category = "professionalism"
	CategoryRushEvent         Category = "rush-event"
	CategoryRushTabling       Category = "rush-tabling"
	CategoryFSO               Category = "fso"
	CategoryLockIn            Category = "lock-in"
)

var Categories = []Category{
	CategoryGeneralConference,
	CategoryCommitteeMeeting,
	CategoryBrotherhood,
	CategoryService,
	CategoryProfessionalism,
	CategoryRushEvent,
	CategoryRushTabling,
	CategoryFSO,
	CategoryLockIn,
}

// Recognized reports whether c is one of the known requirement categories.
func (c Category) Recognized() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type (
	// Attendance is a single check-in record. Member may arrive re-encoded in
	// several shapes; see MemberRef.
	Attendance struct {
		Member      MemberRef `json:"member"`
		CheckedInAt time.Time `json:"checked_in_at"`
	}

	// Event is a chapter event. Read-only input to the standing engine;
	// attendance entries may contain duplicate references to the same member.
	Event struct {
		ID          string       `json:"id"`
		CommitteeID null.String  `json:"committee_id,omitempty"`
		StartAt     time.Time    `json:"start_at"`
		Status      string       `json:"status"`
		Type        string       `json:"type"`
		Category    Category     `json:"category,omitempty"` // explicit label; may be empty
		Attendance  []Attendance `json:"attendance,omitempty"`
	}
)

// Countable reports whether the event may contribute attendance: it must have
// started (or be completed) and not be cancelled. Future-scheduled events never
// count, even if attendee records exist.
func (e Event) Countable(now time.Time) bool {
	if e.Status == StatusCancelled {
		return false
	}
	return !e.StartAt.After(now) || e.Status == StatusCompleted
}

// InWindow reports whether the event starts inside [start, end] (inclusive).
func (e Event) InWindow(start, end time.Time) bool {
	return !e.StartAt.Before(start) && !e.StartAt.After(end)
}

// AttendeeIDs returns the canonical ids of the event's attendees, de-duplicated
// so a member re-encoded under several reference shapes is counted once.
func (e Event) AttendeeIDs() []string {
	seen := make(map[string]struct{}, len(e.Attendance))
	ids := make([]string, 0, len(e.Attendance))
	for _, att := range e.Attendance {
		id := att.Member.ID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
