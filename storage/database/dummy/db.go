package dummydb

import (
	"sync"

	"github.com/ttgamma/gemportal/core/committee"
	"github.com/ttgamma/gemportal/core/event"
	"github.com/ttgamma/gemportal/core/gem"
	"github.com/ttgamma/gemportal/core/member"
)

type (
	DB struct {
		member    *memberTable
		committee *committeeTable
		event     *eventTable
		grade     *gradeTable
	}

	memberTable struct {
		sync.RWMutex
		table map[string]*member.Member
	}

	committeeTable struct {
		sync.RWMutex
		table map[string]*committee.Committee
	}

	eventTable struct {
		sync.RWMutex
		table map[string]*event.Event
	}

	gradeTable struct {
		sync.RWMutex
		table map[gradeKey]*gem.GradeRecord
	}

	gradeKey struct {
		memberID string
		semester string
	}
)

func Open() (*DB, error) {
	db := &DB{
		member:    &memberTable{table: make(map[string]*member.Member)},
		committee: &committeeTable{table: make(map[string]*committee.Committee)},
		event:     &eventTable{table: make(map[string]*event.Event)},
		grade:     &gradeTable{table: make(map[gradeKey]*gem.GradeRecord)},
	}
	return db, nil
}
