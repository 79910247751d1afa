package event

import (
	"context"
	"time"
)

// Repository gives read access to the event corpus.
type Repository interface {
	// QueryEventsInWindow returns events starting inside [start, end]
	// (inclusive), excluding cancelled ones.
	QueryEventsInWindow(ctx context.Context, start, end time.Time) ([]Event, error)
	// LatestEventStart returns the start time of the most recent
	// non-cancelled event, or the zero time when the corpus is empty.
	LatestEventStart(ctx context.Context) (time.Time, error)
}
