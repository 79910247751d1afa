package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core/event"
)

// eventRepository reads the event corpus owned by the event service. The
// attendance column is jsonb written by the check-in tool; member references
// inside it arrive in whatever shape that tool produced, which is why decoding
// goes through event.MemberRef.
type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

type eventRow struct {
	ID          string      `db:"id"`
	CommitteeID null.String `db:"committee_id"`
	StartAt     time.Time   `db:"start_at"`
	Status      string      `db:"status"`
	Type        string      `db:"type"`
	Category    null.String `db:"category"`
	Attendance  []byte      `db:"attendance"`
}

func (r eventRow) toEvent() event.Event {
	e := event.Event{
		ID:          r.ID,
		CommitteeID: r.CommitteeID,
		StartAt:     r.StartAt,
		Status:      r.Status,
		Type:        r.Type,
		Category:    event.Category(r.Category.String),
	}
	if len(r.Attendance) > 0 {
		// MemberRef.UnmarshalJSON is total; a malformed entry yields a zero
		// ref, never an error for the whole row.
		_ = json.Unmarshal(r.Attendance, &e.Attendance)
	}
	return e
}

func (repo eventRepository) QueryEventsInWindow(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	var rows []eventRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, committee_id, start_at, status, type, category, attendance
		 FROM event
		 WHERE status <> $1 AND start_at >= $2 AND start_at <= $3
		 ORDER BY start_at`,
		event.StatusCancelled, start, end,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toEvent())
	}
	return events, nil
}

func (repo eventRepository) LatestEventStart(ctx context.Context) (time.Time, error) {
	var latest null.Time
	err := repo.db.GetContext(ctx, &latest,
		`SELECT max(start_at) FROM event WHERE status <> $1`, event.StatusCancelled)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "finding latest event start")
	}
	return latest.Time, nil
}
