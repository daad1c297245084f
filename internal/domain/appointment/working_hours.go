package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

// Window is one working day in the shop's location. The break, when set,
// is a sub-range where no slot may fall.
type Window struct {
	Start time.Time
	End   time.Time

	HasBreak   bool
	BreakStart time.Time
	BreakEnd   time.Time
}

// ===============================
// Fallback policy
// ===============================

// SchedulePolicy decides the window for a professional that has no weekly schedule at all.
type SchedulePolicy interface {
	Fallback(date time.Time) *Window
}

// DefaultOpen treats an unconfigured professional as working Start..End (minutes from midnight).
type DefaultOpen struct {
	StartMinute int
	EndMinute   int
}

func (p DefaultOpen) Fallback(date time.Time) *Window {
	return &Window{
		Start: atMinute(date, p.StartMinute),
		End:   atMinute(date, p.EndMinute),
	}
}

type DefaultClosed struct{}

func (DefaultClosed) Fallback(time.Time) *Window { return nil }

const (
	FallbackOpen   = "open"
	FallbackClosed = "closed"
)

// PolicyFor maps the barbershop setting to a policy; anything but "closed" is open 09:00–18:00.
func PolicyFor(setting string) SchedulePolicy {
	if setting == FallbackClosed {
		return DefaultClosed{}
	}
	return DefaultOpen{StartMinute: 9 * 60, EndMinute: 18 * 60}
}

// ===============================
// Resolution
// ===============================

// ResolveWorkingHours returns the window for date, or nil when the professional does not work.
// date must already be in the shop's location.
func ResolveWorkingHours(
	entries []models.WorkingHours,
	date time.Time,
	policy SchedulePolicy,
) (*Window, error) {

	if len(entries) == 0 {
		if policy == nil {
			return nil, nil
		}
		return policy.Fallback(date), nil
	}

	weekday := int(date.Weekday())

	var entry *models.WorkingHours
	for i := range entries {
		if entries[i].Weekday == weekday {
			entry = &entries[i]
			break
		}
	}

	if entry == nil || !entry.Active || entry.StartTime == "" || entry.EndTime == "" {
		return nil, nil
	}

	start, err := ParseClock(entry.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(entry.EndTime)
	if err != nil {
		return nil, err
	}

	w := &Window{
		Start: atMinute(date, start),
		End:   atMinute(date, end),
	}

	if entry.LunchStart != "" && entry.LunchEnd != "" {
		ls, errS := ParseClock(entry.LunchStart)
		le, errE := ParseClock(entry.LunchEnd)
		// a malformed break is ignored rather than closing the day
		if errS == nil && errE == nil && le > ls {
			w.HasBreak = true
			w.BreakStart = atMinute(date, ls)
			w.BreakEnd = atMinute(date, le)
		}
	}

	return w, nil
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func atMinute(date time.Time, minute int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minute/60, minute%60, 0, 0,
		date.Location(),
	)
}
