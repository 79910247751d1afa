package gem

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ttgamma/gemportal/core"
)

// SemesterWindow is the date interval attendance is tallied over.
type SemesterWindow struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Semester cutoffs are fixed calendar dates: Spring runs Jan 1 through Jun 30,
// Fall runs Jul 1 through Dec 31. The original system inferred the current
// semester from the most recent event; the cutoffs themselves were never
// recorded, so these are ours and are deliberately not configurable.
const (
	semesterSpring = "Spring"
	semesterFall   = "Fall"
)

// ResolveWindow maps an optional explicit range or semester name to a concrete
// window. Precedence: explicit start+end, then a named semester
// ("Fall 2025" / "Spring 2026"), then the semester containing the reference
// date (callers pass the most recent non-cancelled event's start, falling back
// to now).
func ResolveWindow(start, end *time.Time, name string, reference time.Time) (SemesterWindow, error) {
	name = core.CleanString(name)

	if start != nil || end != nil {
		if start == nil || end == nil {
			return SemesterWindow{}, core.NewValidationError(
				errors.New("start and end must be supplied together"))
		}
		if !start.Before(*end) {
			return SemesterWindow{}, core.NewValidationError(
				errors.New("start must be before end"))
		}
		w := SemesterWindow{Name: name, StartDate: start.UTC(), EndDate: end.UTC()}
		if w.Name == "" {
			w.Name = semesterNameFor(w.StartDate)
		}
		return w, nil
	}

	if name != "" {
		w, err := parseSemesterName(name)
		if err != nil {
			return SemesterWindow{}, err
		}
		return w, nil
	}

	return semesterFor(reference), nil
}

func parseSemesterName(name string) (SemesterWindow, error) {
	parts := strings.Fields(name)
	if len(parts) == 2 {
		year, err := strconv.Atoi(parts[1])
		if err == nil {
			switch strings.Title(strings.ToLower(parts[0])) {
			case semesterSpring:
				return springWindow(year), nil
			case semesterFall:
				return fallWindow(year), nil
			}
		}
	}
	return SemesterWindow{}, core.NewValidationError(
		errors.Errorf("unrecognized semester %q; expected e.g. \"Fall 2025\"", name))
}

func semesterFor(t time.Time) SemesterWindow {
	t = t.UTC()
	if t.Month() < time.July {
		return springWindow(t.Year())
	}
	return fallWindow(t.Year())
}

func semesterNameFor(t time.Time) string {
	return semesterFor(t).Name
}

func springWindow(year int) SemesterWindow {
	return SemesterWindow{
		Name:      fmt.Sprintf("%s %d", semesterSpring, year),
		StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.June, 30, 23, 59, 59, 0, time.UTC),
	}
}

func fallWindow(year int) SemesterWindow {
	return SemesterWindow{
		Name:      fmt.Sprintf("%s %d", semesterFall, year),
		StartDate: time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}
