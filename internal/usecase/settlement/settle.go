package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	apptdomain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/metrics"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SettleInput struct {
	BarbershopID  uint
	OperatorID    uint
	AppointmentID uint

	Amount        decimal.Decimal
	PaymentMethod string
}

type SettlementResult struct {
	AppointmentID uint            `json:"appointment_id"`
	TransactionID uint            `json:"transaction_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Covered       bool            `json:"covered"`

	CommissionGenerated bool            `json:"commission_generated"`
	CommissionAmount    decimal.Decimal `json:"commission_amount"`
}

// ======================================================
// USE CASE
// ======================================================

type SettleAppointment struct {
	store   domain.Store
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
	log     *zap.Logger
}

func NewSettleAppointment(
	store domain.Store,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	clock timezone.Clock,
	log *zap.Logger,
) *SettleAppointment {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SettleAppointment{
		store:   store,
		audit:   audit,
		metrics: m,
		clock:   clock,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute charges, completes and then records credit usage and commission for one
// appointment. Payment and completion are all-or-nothing. Usage and commission run in
// savepoints: when one fails the settlement still commits and the failure comes back
// as *PartialSettlementError together with a non-nil result.
func (uc *SettleAppointment) Execute(
	ctx context.Context,
	in SettleInput,
) (*SettlementResult, error) {

	// --------------------------------------------------
	// 0️⃣ Validação
	// --------------------------------------------------
	method, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if in.Amount.IsNegative() {
		return nil, httperr.Validation("invalid_amount")
	}

	shop, err := uc.store.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.NowIn(shop.Timezone)
	cycleStart := clubdomain.CycleStart(now, timezone.Location(shop.Timezone))

	var (
		result   *SettlementResult
		partials []error
		redeemed bool
	)

	err = uc.store.WithinTx(ctx, func(tx domain.Tx) error {
		result, partials, redeemed = nil, nil, false

		ap, err := tx.LockAppointment(ctx, in.BarbershopID, in.AppointmentID)
		if err != nil {
			return err
		}
		if err := apptdomain.CanComplete(apptdomain.Status(ap.Status)); err != nil {
			return err
		}

		barber, err := tx.GetBarber(ctx, in.BarbershopID, ap.BarberID)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// Assinatura: cobertura forçada no servidor
		// --------------------------------------------------
		cov, err := resolveCoverage(ctx, tx, ap, cycleStart)
		if err != nil {
			return err
		}

		amount := in.Amount
		payMethod := method

		switch {
		case cov.check.Allowed:
			amount = decimal.Zero
			payMethod = domain.MethodMembershipBalance
		case method == domain.MethodMembershipBalance && cov.check.Covered:
			return httperr.CreditExceeded("credit_exceeded")
		case method == domain.MethodMembershipBalance:
			return httperr.Validation("not_a_member")
		case amount.IsZero():
			return httperr.Validation("invalid_amount")
		}

		// --------------------------------------------------
		// 1️⃣ Transação financeira
		// --------------------------------------------------
		txn := &models.Transaction{
			BarbershopID:  in.BarbershopID,
			ClientID:      ap.ClientID,
			AppointmentID: ap.ID,
			Amount:        amount,
			PaymentMethod: string(payMethod),
			Status:        domain.TransactionPaid,
			Reference:     uuid.New(),
		}
		if err := tx.CreateTransaction(ctx, txn); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.Conflict("already_settled")
			}
			return fmt.Errorf("create transaction: %w", err)
		}

		// --------------------------------------------------
		// 2️⃣ Agendamento concluído
		// --------------------------------------------------
		if err := apptdomain.Complete(ap, txn.ID, now); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("complete appointment: %w", err)
		}

		result = &SettlementResult{
			AppointmentID:    ap.ID,
			TransactionID:    txn.ID,
			Status:           ap.Status,
			Amount:           amount,
			PaymentMethod:    string(payMethod),
			Covered:          cov.check.Allowed,
			CommissionAmount: decimal.Zero,
		}

		// --------------------------------------------------
		// 3️⃣ Consumo do crédito
		// --------------------------------------------------
		if cov.check.Allowed {
			usage := &models.UsageRecord{
				SubscriptionID:  cov.sub.ID,
				BarberProductID: *ap.BarberProductID,
				AppointmentID:   ap.ID,
				UsedAt:          now,
			}
			err := tx.Savepoint(ctx, func(sp domain.Tx) error {
				return sp.CreateUsageRecord(ctx, usage)
			})
			if err != nil {
				partials = append(partials, &domain.PartialSettlementError{
					AppointmentID: ap.ID,
					TransactionID: txn.ID,
					Step:          domain.StepUsage,
					Err:           err,
				})
			} else {
				redeemed = true
			}
		}

		// --------------------------------------------------
		// 4️⃣ Comissão
		// --------------------------------------------------
		if value, ok := domain.ComputeCommission(amount, barber.CommissionPercentage); ok {
			commission := &models.Commission{
				BarbershopID:         in.BarbershopID,
				AppointmentID:        ap.ID,
				UserID:               barber.ID,
				ServiceAmount:        amount,
				CommissionPercentage: *barber.CommissionPercentage,
				CommissionAmount:     value,
				Status:               domain.CommissionPending,
			}
			err := tx.Savepoint(ctx, func(sp domain.Tx) error {
				return sp.CreateCommission(ctx, commission)
			})
			if err != nil {
				partials = append(partials, &domain.PartialSettlementError{
					AppointmentID: ap.ID,
					TransactionID: txn.ID,
					Step:          domain.StepCommission,
					Err:           err,
				})
			} else {
				result.CommissionGenerated = true
				result.CommissionAmount = value
			}
		}

		return nil
	})

	if err != nil {
		outcome := "failed"
		if httperr.IsBusiness(err, "already_settled") {
			outcome = "duplicate"
		} else if httperr.IsKind(err, httperr.KindValidation) || httperr.IsKind(err, httperr.KindCreditExceeded) {
			outcome = "rejected"
		}
		uc.metrics.Settlement(outcome)
		return nil, err
	}

	if redeemed {
		uc.metrics.CreditRedeemed()
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.OperatorID,
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &result.AppointmentID,
		Metadata: map[string]any{
			"transaction_id": result.TransactionID,
			"amount":         result.Amount.StringFixed(2),
			"payment_method": result.PaymentMethod,
			"covered":        result.Covered,
		},
	})

	if len(partials) == 0 {
		uc.metrics.Settlement("ok")
		return result, nil
	}

	uc.metrics.Settlement("partial")
	for _, p := range domain.PartialFailures(errors.Join(partials...)) {
		uc.log.Error("settlement partially failed",
			zap.Uint("appointment_id", p.AppointmentID),
			zap.Uint("transaction_id", p.TransactionID),
			zap.String("step", string(p.Step)),
			zap.Error(p.Err),
		)
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.BarbershopID,
			UserID:       &in.OperatorID,
			Action:       "settlement_partial_failure",
			Entity:       "appointment",
			EntityID:     &result.AppointmentID,
			Metadata:     map[string]any{"step": p.Step, "error": p.Err.Error()},
		})
	}

	if len(partials) == 1 {
		return result, partials[0]
	}
	return result, errors.Join(partials...)
}

type coverage struct {
	sub   *models.Subscription
	check clubdomain.CreditCheck
}

// resolveCoverage locks the client's active subscription so concurrent redemptions
// see each other's usage.
func resolveCoverage(
	ctx context.Context,
	tx domain.Tx,
	ap *models.Appointment,
	cycleStart time.Time,
) (coverage, error) {

	if ap.ClientID == nil || ap.BarberProductID == nil {
		return coverage{}, nil
	}

	sub, err := tx.LockActiveSubscription(ctx, ap.BarbershopID, *ap.ClientID)
	if err != nil || sub == nil {
		return coverage{}, err
	}

	item := clubdomain.ItemFor(&sub.Plan, *ap.BarberProductID)
	if item == nil {
		return coverage{sub: sub}, nil
	}

	used, err := tx.CountUsageSince(ctx, sub.ID, *ap.BarberProductID, cycleStart)
	if err != nil {
		return coverage{}, err
	}

	return coverage{sub: sub, check: clubdomain.CheckCredit(item, used)}, nil
}
