package gem

import (
	"time"

	"github.com/ttgamma/gemportal/core/event"
)

type (
	// memberTally is one member's raw counters.
	memberTally struct {
		categories map[event.Category]int
		committees map[string]int // committeeID -> meetings attended
	}

	// Tally is the output of one pass over the filtered, classified event
	// corpus: chapter-wide category totals, per-committee meeting totals and
	// per-member nested counters.
	Tally struct {
		categoryTotals    map[event.Category]int
		committeeMeetings map[string]int // committeeID -> total meetings held
		members           map[string]*memberTally
	}
)

func newTally() *Tally {
	return &Tally{
		categoryTotals:    make(map[event.Category]int),
		committeeMeetings: make(map[string]int),
		members:           make(map[string]*memberTally),
	}
}

func (t *Tally) member(id string) *memberTally {
	mt, ok := t.members[id]
	if !ok {
		mt = &memberTally{
			categories: make(map[event.Category]int),
			committees: make(map[string]int),
		}
		t.members[id] = mt
	}
	return mt
}

// Total is the chapter-wide count of countable events in a category.
func (t *Tally) Total(c event.Category) int { return t.categoryTotals[c] }

// CommitteeTotal is the number of meetings a committee held in the window.
func (t *Tally) CommitteeTotal(committeeID string) int { return t.committeeMeetings[committeeID] }

// Attended is a member's attendance count for a category.
func (t *Tally) Attended(memberID string, c event.Category) int {
	if mt, ok := t.members[memberID]; ok {
		return mt.categories[c]
	}
	return 0
}

// CommitteeAttended is a member's attendance count for one committee's meetings.
func (t *Tally) CommitteeAttended(memberID, committeeID string) int {
	if mt, ok := t.members[memberID]; ok {
		return mt.committees[committeeID]
	}
	return 0
}

// Accumulate walks the event corpus once. Events that are cancelled, not yet
// started (and not completed), or classified into no category contribute
// nothing. Within one event a member is counted at most once per category no
// matter how many attendance entries reference them.
func Accumulate(events []event.Event, now time.Time) *Tally {
	t := newTally()

	for _, e := range events {
		if !e.Countable(now) {
			continue
		}
		cat, ok := event.Classify(e)
		if !ok {
			continue
		}

		t.categoryTotals[cat]++
		committeeMeeting := cat == event.CategoryCommitteeMeeting && e.CommitteeID.Valid
		if committeeMeeting {
			t.committeeMeetings[e.CommitteeID.String]++
		}

		for _, memberID := range e.AttendeeIDs() {
			mt := t.member(memberID)
			mt.categories[cat]++
			if committeeMeeting {
				mt.committees[e.CommitteeID.String]++
			}
		}
	}
	return t
}
