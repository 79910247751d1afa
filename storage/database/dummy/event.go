package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ttgamma/gemportal/core/event"
)

type eventRepository struct {
	db *eventTable
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db.event}
}

// AddEvent seeds the corpus; real events are owned by the event service.
func (repo *eventRepository) AddEvent(e event.Event) event.Event {
	repo.db.Lock()
	defer repo.db.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	repo.db.table[e.ID] = &e
	return e
}

func (repo *eventRepository) QueryEventsInWindow(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		if e.Status == event.StatusCancelled {
			continue
		}
		if !e.InWindow(start, end) {
			continue
		}
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartAt.Before(events[j].StartAt) })
	return events, nil
}

func (repo *eventRepository) LatestEventStart(ctx context.Context) (time.Time, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest time.Time
	for _, e := range repo.db.table {
		if e.Status == event.StatusCancelled {
			continue
		}
		if e.StartAt.After(latest) {
			latest = e.StartAt
		}
	}
	return latest, nil
}
