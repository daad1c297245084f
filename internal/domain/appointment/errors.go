package appointment

import "github.com/BruksfildServices01/barber-club/internal/httperr"

var (
	errSlotUnavailable     = httperr.Conflict("slot_unavailable")
	errSlotInPast          = httperr.Validation("too_soon")
	errOutsideWorkingHours = httperr.Validation("outside_working_hours")
)
