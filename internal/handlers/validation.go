package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
)

// Tags usable in binding:"..." on request DTOs.
const (
	tagDate  = "ymd"  // YYYY-MM-DD
	tagClock = "hhmm" // HH:MM
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation(tagDate, func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation(tagClock, func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
}

// bindJSON answers 400 itself when the body does not bind. Bad dates and times get
// their own code so the booking forms can highlight the field.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == tagDate || fe.Tag() == tagClock {
				httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
				return false
			}
		}
	}

	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
	return false
}
