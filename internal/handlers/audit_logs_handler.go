package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List pages through the shop's audit trail. from/to are calendar days in the
// shop's timezone; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	barbershopID := currentShop(c)
	page := httpresp.ParsePage(c, 50, 200)

	var shop models.Barbershop
	if err := h.db.WithContext(ctx).Select("id", "timezone").First(&shop, barbershopID).Error; err != nil {
		httperr.NotFoundResponse(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	// --------------------------------------------------
	// Query base (sempre protegido por barbershop)
	// --------------------------------------------------
	q := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", barbershopID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(raw, shop.Timezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(raw, shop.Timezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, page, total, logs)
}
