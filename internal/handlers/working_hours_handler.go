package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// validate rejects active days whose clock values do not parse or are out of order.
func (d WorkingDayConfig) validate() bool {
	if !d.Active {
		return true
	}
	start, err1 := domain.ParseClock(d.StartTime)
	end, err2 := domain.ParseClock(d.EndTime)
	if err1 != nil || err2 != nil || start >= end {
		return false
	}
	if d.LunchStart == "" && d.LunchEnd == "" {
		return true
	}
	ls, err1 := domain.ParseClock(d.LunchStart)
	le, err2 := domain.ParseClock(d.LunchEnd)
	return err1 == nil && err2 == nil && start <= ls && ls < le && le <= end
}

// targetBarber is the logged-in user unless ?barber_id names a colleague.
func (h *WorkingHoursHandler) targetBarber(c *gin.Context) (uint, bool) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return 0, false
	}
	if barberID == 0 {
		return currentUser(c), true
	}

	var count int64
	h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ? AND barbershop_id = ?", barberID, currentShop(c)).
		Count(&count)
	if count == 0 {
		httperr.NotFoundResponse(c, "barber_not_found", "Profissional não encontrado.")
		return 0, false
	}
	return barberID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := h.targetBarber(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := h.targetBarber(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] || !d.validate() {
			httperr.BadRequest(c, "invalid_working_hours", "Horário de atendimento inválido.")
			return
		}
		seen[d.Weekday] = true

		toCreate = append(toCreate, models.WorkingHours{
			BarberID:   barberID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	c.JSON(http.StatusOK, toCreate)
}
