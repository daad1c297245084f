package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	settlementdomain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/dto"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-club/internal/usecase/settlement"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	block        *appointment.BlockTime
	cancel       *appointment.CancelAppointment
	confirm      *appointment.ConfirmAppointment
	listByDate   *appointment.ListAppointmentsByDate
	listByMonth  *appointment.ListAppointmentsByMonth
	availability *appointment.GetAvailability
	settle       *settlement.SettleAppointment
	quote        *settlement.QuoteSettlement
	log          *zap.Logger
}

type AppointmentHandlerDeps struct {
	Create       *appointment.CreateAppointment
	Block        *appointment.BlockTime
	Cancel       *appointment.CancelAppointment
	Confirm      *appointment.ConfirmAppointment
	ListByDate   *appointment.ListAppointmentsByDate
	ListByMonth  *appointment.ListAppointmentsByMonth
	Availability *appointment.GetAvailability
	Settle       *settlement.SettleAppointment
	Quote        *settlement.QuoteSettlement
	Log          *zap.Logger
}

func NewAppointmentHandler(d AppointmentHandlerDeps) *AppointmentHandler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &AppointmentHandler{
		create:       d.Create,
		block:        d.Block,
		cancel:       d.Cancel,
		confirm:      d.Confirm,
		listByDate:   d.ListByDate,
		listByMonth:  d.ListByMonth,
		availability: d.Availability,
		settle:       d.Settle,
		quote:        d.Quote,
		log:          d.Log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// BarberID defaults to the logged-in professional.
	BarberID    uint   `json:"barber_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required,ymd"`
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes"`
}

type BlockTimeRequest struct {
	BarberID  uint   `json:"barber_id"`
	Kind      string `json:"kind"`
	Date      string `json:"date" binding:"required,ymd"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Notes     string `json:"notes"`
}

type SettleRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

type partialFailureDTO struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}

func parseDay(raw string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", raw)
	return d, err == nil
}

// ======================================================
// CREATE / BLOCK
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	actorID := currentUser(c)
	barberID := req.BarberID
	if barberID == 0 {
		barberID = actorID
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BarbershopID: currentShop(c),
		BarberID:     barberID,
		ActorID:      &actorID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		respond(c, h.log, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Block(c *gin.Context) {
	var req BlockTimeRequest
	if !bindJSON(c, &req) {
		return
	}

	actorID := currentUser(c)
	barberID := req.BarberID
	if barberID == 0 {
		barberID = actorID
	}

	ap, err := h.block.Execute(c.Request.Context(), appointment.BlockTimeInput{
		BarbershopID: currentShop(c),
		BarberID:     barberID,
		ActorID:      actorID,
		Kind:         req.Kind,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	if err != nil {
		respond(c, h.log, err, "failed_to_block_time")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, ok := parseDay(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), barberID, currentShop(c), date)
	if err != nil {
		respond(c, h.log, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), barberID, currentShop(c), year, month)
	if err != nil {
		respond(c, h.log, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date, ok := parseDay(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}
	productID, ok := queryUint(c, "product_id")
	if !ok {
		return
	}
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	if barberID == 0 {
		barberID = currentUser(c)
	}
	interval, ok := queryUint(c, "interval")
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: currentShop(c),
		BarberID:     barberID,
		ProductID:    productID,
		Date:         date,
		IntervalMin:  int(interval),
	})
	if err != nil {
		respond(c, h.log, err, "availability_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": dto.Slots(slots),
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), currentShop(c), currentUser(c), id)
	if err != nil {
		respond(c, h.log, err, "failed_to_cancel_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), currentShop(c), currentUser(c), id)
	if err != nil {
		respond(c, h.log, err, "failed_to_confirm_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// SETTLEMENT
// ======================================================

func (h *AppointmentHandler) Quote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.quote.Execute(c.Request.Context(), currentShop(c), id)
	if err != nil {
		respond(c, h.log, err, "failed_to_quote_settlement")
		return
	}

	httpresp.OK(c, q)
}

// Settle answers 207 when the payment committed but a follow-up step did not.
func (h *AppointmentHandler) Settle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SettleRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.settle.Execute(c.Request.Context(), settlement.SettleInput{
		BarbershopID:  currentShop(c),
		OperatorID:    currentUser(c),
		AppointmentID: id,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})

	if partials := settlementdomain.PartialFailures(err); res != nil && len(partials) > 0 {
		failures := make([]partialFailureDTO, 0, len(partials))
		for _, p := range partials {
			failures = append(failures, partialFailureDTO{Step: string(p.Step), Error: p.Err.Error()})
		}
		h.log.Warn("partial settlement",
			zap.Uint("appointment_id", id),
			zap.Uint("transaction_id", res.TransactionID),
			zap.Error(err),
		)
		c.JSON(http.StatusMultiStatus, gin.H{
			"result":          res,
			"partial_failure": failures,
		})
		return
	}

	if err != nil {
		respond(c, h.log, err, "failed_to_settle_appointment")
		return
	}

	httpresp.OK(c, res)
}
