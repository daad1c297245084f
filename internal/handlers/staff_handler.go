package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// StaffHandler manages the professionals of a barbershop.
type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: audit}
}

type CreateStaffRequest struct {
	Name                 string           `json:"name" binding:"required"`
	Email                string           `json:"email" binding:"required,email"`
	Password             string           `json:"password" binding:"required,min=6"`
	Phone                string           `json:"phone"`
	CommissionPercentage *decimal.Decimal `json:"commission_percentage"`
}

type UpdateCommissionRequest struct {
	// Nil clears the percentage: settlements of this professional generate no commission.
	CommissionPercentage *decimal.Decimal `json:"commission_percentage"`
}

var hundred = decimal.NewFromInt(100)

func validPercentage(p *decimal.Decimal) bool {
	return p == nil || (!p.IsNegative() && p.LessThanOrEqual(hundred))
}

func (h *StaffHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", currentShop(c)).
		Order("name ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}
	httpresp.List(c, users)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !validPercentage(req.CommissionPercentage) {
		httperr.BadRequest(c, "invalid_commission_percentage", "Percentual de comissão inválido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	user := models.User{
		BarbershopID:         currentShop(c),
		Name:                 req.Name,
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:         string(hashed),
		Phone:                req.Phone,
		Role:                 models.RoleBarber,
		CommissionPercentage: req.CommissionPercentage,
	}

	err = h.db.WithContext(c.Request.Context()).Omit("Barbershop").Create(&user).Error
	if httperr.IsUniqueViolation(err) {
		httperr.Write(c, http.StatusConflict, "email_taken", "E-mail já cadastrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Erro ao cadastrar profissional.")
		return
	}

	actorID := currentUser(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: user.BarbershopID,
		UserID:       &actorID,
		Action:       "staff_created",
		Entity:       "user",
		EntityID:     &user.ID,
	})

	httpresp.Created(c, user)
}

func (h *StaffHandler) UpdateCommission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !validPercentage(req.CommissionPercentage) {
		httperr.BadRequest(c, "invalid_commission_percentage", "Percentual de comissão inválido.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, currentShop(c)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFoundResponse(c, "barber_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_staff", "Erro ao buscar profissional.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).
		Update("commission_percentage", req.CommissionPercentage).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Erro ao salvar profissional.")
		return
	}
	user.CommissionPercentage = req.CommissionPercentage

	actorID := currentUser(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: user.BarbershopID,
		UserID:       &actorID,
		Action:       "commission_percentage_updated",
		Entity:       "user",
		EntityID:     &user.ID,
		Metadata:     gin.H{"commission_percentage": req.CommissionPercentage},
	})

	httpresp.OK(c, user)
}
