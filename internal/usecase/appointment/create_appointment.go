package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
	"github.com/BruksfildServices01/barber-club/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	// ActorID is the staff user creating the booking; nil for public bookings.
	ActorID *uint
	Public  bool

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
	log     *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	clock timezone.Clock,
	log *zap.Logger,
) *CreateAppointment {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		metrics: m,
		clock:   clock,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" || strings.TrimSpace(in.ClientPhone) == "" {
		return nil, httperr.Validation("invalid_request")
	}
	phone, ok := validators.NormalizePhone(in.ClientPhone)
	if !ok {
		return nil, httperr.Validation("invalid_phone")
	}
	in.ClientPhone = phone

	// --------------------------------------------------
	// Barbearia e profissional
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, shop.Timezone)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.DurationMin <= 0 {
		return nil, httperr.Validation("invalid_duration")
	}

	duration := time.Duration(product.DurationMin) * time.Minute
	now := uc.clock.NowIn(shop.Timezone)
	notBefore := earliestBookable(shop.MinAdvanceMinutes, now, in.Public)

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		ClientID:        &client.ID,
		BarberProductID: &product.ID,
		StartTime:       start,
		EndTime:         start.Add(duration),
		Status:          string(domain.InitialStatus(in.Public)),
		ClientName:      client.Name,
		ClientPhone:     client.Phone,
		Notes:           in.Notes,
	}

	// --------------------------------------------------
	// Conflito + criação (mesma transação)
	// --------------------------------------------------
	if err := commitBooking(
		ctx,
		uc.repo,
		uc.metrics,
		ap,
		workingSlotCheck(shop, start, duration, now, notBefore),
	); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.log.Info("booking rejected",
				zap.Uint("barber_id", in.BarberID),
				zap.Time("start", start),
			)
		}
		return nil, err
	}

	origin := "staff"
	if in.Public {
		origin = "public"
	}
	uc.metrics.BookingCreated(origin)

	// --------------------------------------------------
	// Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"origin": origin},
	})

	return ap, nil
}
