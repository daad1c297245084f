package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusBlocked    Status = "blocked"
	StatusEarlyLeave Status = "early_leave"
)

// AllStatuses lists every known status; tests use it to keep switches exhaustive.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusBlocked,
	StatusEarlyLeave,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// OccupiesCalendar reports whether a booking in this status reserves its time range.
// Only cancelled bookings free their slot; an unrecognised status is treated as occupying.
func (s Status) OccupiesCalendar() bool {
	switch s {
	case StatusCancelled:
		return false
	case StatusPending, StatusConfirmed, StatusCompleted, StatusBlocked, StatusEarlyLeave:
		return true
	}
	return true
}

// IsPlaceholder: reserves time without representing a client visit.
func (s Status) IsPlaceholder() bool {
	switch s {
	case StatusBlocked, StatusEarlyLeave:
		return true
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return false
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed, StatusBlocked, StatusEarlyLeave:
		return nil
	case StatusCompleted, StatusCancelled:
		return httperr.Conflict("invalid_state")
	}
	return httperr.Conflict("invalid_state")
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCompleted:
		return httperr.Conflict("already_settled")
	case StatusCancelled, StatusBlocked, StatusEarlyLeave:
		return httperr.Conflict("invalid_state")
	}
	return httperr.Conflict("invalid_state")
}

func CanConfirm(current Status) error {
	switch current {
	case StatusPending:
		return nil
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusBlocked, StatusEarlyLeave:
		return httperr.Conflict("invalid_state")
	}
	return httperr.Conflict("invalid_state")
}

// InitialStatus: public bookings wait for staff confirmation.
func InitialStatus(public bool) Status {
	if public {
		return StatusPending
	}
	return StatusConfirmed
}
