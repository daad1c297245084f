package appointment

import (
	"iter"
	"time"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint
	Date         time.Time

	// IntervalMin overrides the step between slot starts; zero means the service duration.
	IntervalMin int

	// Public requests honour the shop's minimum advance notice.
	Public bool
}

type Reason string

const (
	ReasonNone         Reason = ""
	ReasonPast         Reason = "past"
	ReasonBreak        Reason = "break"
	ReasonConflict     Reason = "conflict"
	ReasonOutsideHours Reason = "outside_hours"
	ReasonClosed       Reason = "closed"
)

type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
	Reason    Reason
}

type SlotParams struct {
	Window   *Window
	Bookings []Booking
	Duration time.Duration
	Interval time.Duration

	Now time.Time
	// NotBefore is the earliest bookable instant; zero disables it.
	NotBefore time.Time
}

// GenerateSlots walks the window from start to end in Interval steps and yields
// every slot that fits before the window closes. The sequence can be ranged over
// more than once.
func GenerateSlots(p SlotParams) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if p.Window == nil || p.Duration <= 0 {
			return
		}

		step := p.Interval
		if step <= 0 {
			step = p.Duration
		}

		for start := p.Window.Start; !start.Add(p.Duration).After(p.Window.End); start = start.Add(step) {
			end := start.Add(p.Duration)

			slot := Slot{Start: start, End: end, Available: true}
			if r := rejectReason(p, start, end); r != ReasonNone {
				slot.Available = false
				slot.Reason = r
			}

			if !yield(slot) {
				return
			}
		}
	}
}

// past > break > conflict
func rejectReason(p SlotParams, start, end time.Time) Reason {
	if isPast(start, p.Now, p.NotBefore) {
		return ReasonPast
	}
	if p.Window.HasBreak && Overlaps(start, end, p.Window.BreakStart, p.Window.BreakEnd) {
		return ReasonBreak
	}
	if HasConflict(p.Bookings, start, end.Sub(start)) {
		return ReasonConflict
	}
	return ReasonNone
}

func isPast(start, now, notBefore time.Time) bool {
	if !start.After(now) {
		return true
	}
	return !notBefore.IsZero() && start.Before(notBefore)
}

type SlotCheck struct {
	Available bool
	Reason    Reason
}

// CheckSlot validates one requested start time at commit time.
func CheckSlot(
	w *Window,
	bookings []Booking,
	start time.Time,
	duration time.Duration,
	now time.Time,
	notBefore time.Time,
) SlotCheck {

	if w == nil {
		return SlotCheck{Reason: ReasonClosed}
	}

	end := start.Add(duration)
	if duration <= 0 || start.Before(w.Start) || end.After(w.End) {
		return SlotCheck{Reason: ReasonOutsideHours}
	}

	p := SlotParams{Window: w, Bookings: bookings, Now: now, NotBefore: notBefore}
	if r := rejectReason(p, start, end); r != ReasonNone {
		return SlotCheck{Reason: r}
	}

	return SlotCheck{Available: true}
}

// Err maps a rejected slot to the business error returned to callers.
func (c SlotCheck) Err() error {
	switch c.Reason {
	case ReasonNone:
		return nil
	case ReasonConflict:
		return errSlotUnavailable
	case ReasonPast:
		return errSlotInPast
	case ReasonBreak, ReasonOutsideHours, ReasonClosed:
		return errOutsideWorkingHours
	}
	return errSlotUnavailable
}
