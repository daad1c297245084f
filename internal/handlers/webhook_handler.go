package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/usecase/club"
)

type WebhookHandler struct {
	apply *club.ApplyGatewayEvent
	log   *zap.Logger
}

func NewWebhookHandler(apply *club.ApplyGatewayEvent, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{apply: apply, log: log}
}

// paymentNotification is the body Mercado Pago posts for preapproval events.
type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Payments re-reads the subscription from the gateway; the notification body is
// only used to find which one changed.
func (h *WebhookHandler) Payments(c *gin.Context) {
	var n paymentNotification
	_ = c.ShouldBindJSON(&n)

	ref := n.Data.ID
	if ref == "" {
		ref = c.Query("data.id")
	}
	if ref == "" {
		ref = c.Query("id")
	}

	sub, err := h.apply.Execute(c.Request.Context(), ref)
	if err != nil {
		respond(c, h.log, err, "failed_to_apply_payment_event")
		return
	}

	h.log.Info("payment event applied",
		zap.String("gateway_ref", ref),
		zap.Uint("subscription_id", sub.ID),
		zap.String("status", sub.Status),
	)
	c.JSON(http.StatusOK, gin.H{"status": sub.Status})
}
