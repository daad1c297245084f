package commission

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

type Repository interface {
	ListByStatus(
		ctx context.Context,
		barbershopID uint,
		status string,
		start time.Time,
		end time.Time,
	) ([]models.Commission, error)

	ListBarbers(
		ctx context.Context,
		barbershopID uint,
	) ([]models.User, error)

	// MarkPaid flips every pending row of userIDs created in [start, end) in one statement.
	MarkPaid(
		ctx context.Context,
		barbershopID uint,
		userIDs []uint,
		start time.Time,
		end time.Time,
		paidAt time.Time,
	) (int64, error)
}
