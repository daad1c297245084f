package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// clientRow is a client plus its active club subscription, if any.
type clientRow struct {
	models.Client
	SubscriptionID *uint   `json:"subscription_id"`
	PlanName       *string `json:"plan_name"`
}

// ======================================================
// LIST CLIENTS (BARBEIRO)
// ======================================================

// List searches by name, phone or e-mail. member=true|false keeps only club
// members or only non-members.
func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := currentShop(c)
	page := httpresp.ParsePage(c, 50, 200)

	q := h.db.WithContext(c.Request.Context()).
		Table("clients").
		Joins(
			"LEFT JOIN subscriptions s ON s.client_id = clients.id AND s.barbershop_id = clients.barbershop_id AND s.status = ?",
			string(clubdomain.StatusActive),
		).
		Joins("LEFT JOIN club_plans p ON p.id = s.plan_id").
		Where("clients.barbershop_id = ?", barbershopID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(clients.name) LIKE ? OR clients.phone LIKE ? OR LOWER(clients.email) LIKE ?",
			like, like, like,
		)
	}

	switch c.Query("member") {
	case "true":
		q = q.Where("s.id IS NOT NULL")
	case "false":
		q = q.Where("s.id IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	var clients []clientRow
	if err := q.
		Select("clients.*, s.id AS subscription_id, p.name AS plan_name").
		Order("clients.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.Page(c, page, total, clients)
}
