package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	settlementdomain "github.com/BruksfildServices01/barber-club/internal/domain/settlement"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the logged professional, their shop and what the shop owes them
// in unpaid commissions.
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).
		Preload("Barbershop").
		First(&user, currentUser(c)).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	var pending struct {
		Total decimal.Decimal
	}
	if err := h.db.WithContext(ctx).
		Model(&models.Commission{}).
		Select("COALESCE(SUM(commission_amount), 0) AS total").
		Where("barbershop_id = ? AND user_id = ? AND status = ?",
			user.BarbershopID, user.ID, settlementdomain.CommissionPending).
		Scan(&pending).Error; err != nil {
		httperr.Internal(c, "failed_to_load_commissions", "Erro ao carregar comissões.")
		return
	}

	shop := user.Barbershop
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"role":     user.Role,
			"is_owner": user.Role == models.RoleOwner,

			"commission_percentage": user.CommissionPercentage,
			"pending_commissions":   pending.Total.StringFixed(2),
		},
		"barbershop": gin.H{
			"id":                  shop.ID,
			"name":                shop.Name,
			"slug":                shop.Slug,
			"phone":               shop.Phone,
			"address":             shop.Address,
			"timezone":            shop.Timezone,
			"logo_url":            shop.LogoURL,
			"min_advance_minutes": shop.MinAdvanceMinutes,
			"schedule_fallback":   shop.ScheduleFallback,
		},
	})
}
