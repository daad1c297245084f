package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/usecase/commission"
)

type CommissionHandler struct {
	payouts *commission.Payouts
	log     *zap.Logger
}

func NewCommissionHandler(payouts *commission.Payouts, log *zap.Logger) *CommissionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommissionHandler{payouts: payouts, log: log}
}

type PayoutRequest struct {
	Year    int    `json:"year" binding:"required"`
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	UserIDs []uint `json:"user_ids"`
}

// ListPending groups the month's unpaid commissions by professional.
func (h *CommissionHandler) ListPending(c *gin.Context) {
	year, month, ok := queryYearMonth(c)
	if !ok {
		return
	}

	groups, err := h.payouts.ListPending(c.Request.Context(), currentShop(c), year, month)
	if err != nil {
		respond(c, h.log, err, "failed_to_list_commissions")
		return
	}

	httpresp.List(c, groups)
}

func (h *CommissionHandler) Payout(c *gin.Context) {
	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	n, err := h.payouts.Payout(c.Request.Context(), currentShop(c), currentUser(c), req.Year, req.Month, req.UserIDs)
	if err != nil {
		respond(c, h.log, err, "failed_to_pay_commissions")
		return
	}

	httpresp.OK(c, gin.H{"paid": n})
}
