package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/usecase/reminder"
)

type ReminderHandler struct {
	offsets *reminder.Offsets
	log     *zap.Logger
}

func NewReminderHandler(offsets *reminder.Offsets, log *zap.Logger) *ReminderHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReminderHandler{offsets: offsets, log: log}
}

type ReminderOffsetsRequest struct {
	MinutesBefore []int `json:"minutes_before"`
}

func (h *ReminderHandler) List(c *gin.Context) {
	rows, err := h.offsets.List(c.Request.Context(), currentShop(c))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_reminders")
		return
	}
	httpresp.List(c, rows)
}

func (h *ReminderHandler) Replace(c *gin.Context) {
	var req ReminderOffsetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rows, err := h.offsets.Replace(c.Request.Context(), currentShop(c), req.MinutesBefore)
	if err != nil {
		respond(c, h.log, err, "failed_to_save_reminders")
		return
	}
	httpresp.List(c, rows)
}
