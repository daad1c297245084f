package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

const (
	LogPending = "pending"
	LogSent    = "sent"
	LogFailed  = "failed"
)

// Reminder is one message about an upcoming appointment.
type Reminder struct {
	AppointmentID  uint
	BarbershopName string
	ClientName     string
	Phone          string
	ServiceName    string
	BarberName     string
	StartTime      time.Time
	MinutesBefore  int
}

func (r Reminder) Text() string {
	when := r.StartTime.Format("02/01 às 15:04")
	if r.ServiceName == "" {
		return fmt.Sprintf("Olá %s! Lembrete do seu horário na %s em %s.", r.ClientName, r.BarbershopName, when)
	}
	return fmt.Sprintf(
		"Olá %s! Lembrete: %s com %s na %s em %s.",
		r.ClientName, r.ServiceName, r.BarberName, r.BarbershopName, when,
	)
}

type Notifier interface {
	SendReminder(ctx context.Context, r Reminder) error
}

// DueRange is the half-open-at-the-start range (from, to] of start times a sweep at now
// must remind for an offset of minutesBefore.
func DueRange(now time.Time, minutesBefore int, window time.Duration) (time.Time, time.Time) {
	to := now.Add(time.Duration(minutesBefore) * time.Minute)
	return to.Add(-window), to
}

func FromAppointment(ap models.Appointment, minutesBefore int) Reminder {
	return Reminder{
		AppointmentID:  ap.ID,
		BarbershopName: ap.Barbershop.Name,
		ClientName:     ap.ClientName,
		Phone:          ap.ClientPhone,
		ServiceName:    ap.BarberProduct.Name,
		BarberName:     ap.Barber.Name,
		StartTime:      ap.StartTime.In(timezone.Location(ap.Barbershop.Timezone)),
		MinutesBefore:  minutesBefore,
	}
}

type Repository interface {
	// ListAllOffsets returns the offsets of every barbershop.
	ListAllOffsets(ctx context.Context) ([]models.ReminderOffset, error)
	ListOffsets(ctx context.Context, barbershopID uint) ([]models.ReminderOffset, error)
	ReplaceOffsets(ctx context.Context, barbershopID uint, minutes []int) error

	// ListDue returns pending/confirmed appointments with a phone whose start is in (from, to].
	ListDue(ctx context.Context, barbershopID uint, from, to time.Time) ([]models.Appointment, error)

	// Claim inserts the log row; false means another sweep already owns the pair.
	Claim(ctx context.Context, log *models.ReminderLog) (bool, error)
	UpdateLog(ctx context.Context, log *models.ReminderLog) error
}
