package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

// Booking is the calendar view of an appointment.
type Booking struct {
	ID     uint
	Start  time.Time
	End    time.Time
	Status Status
}

func BookingsFromModels(aps []models.Appointment) []Booking {
	out := make([]Booking, 0, len(aps))
	for _, ap := range aps {
		out = append(out, Booking{
			ID:     ap.ID,
			Start:  ap.StartTime,
			End:    ap.EndTime,
			Status: Status(ap.Status),
		})
	}
	return out
}

// Overlaps uses half-open ranges: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether [start, start+duration) overlaps any booking that occupies the calendar.
func HasConflict(bookings []Booking, start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	for _, b := range bookings {
		if !b.Status.OccupiesCalendar() {
			continue
		}
		if Overlaps(b.Start, b.End, start, end) {
			return true
		}
	}
	return false
}
