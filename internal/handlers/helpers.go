package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/middleware"
)

// --------------------------------------------------
// Contexto autenticado
// --------------------------------------------------

func currentShop(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBarbershopID).(uint)
}

func currentUser(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// --------------------------------------------------
// Parâmetros
// --------------------------------------------------

func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_request", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// queryUint reads an optional positive integer; a missing value is 0.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(v), true
}

func queryYearMonth(c *gin.Context) (int, int, bool) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_request", "Ano ou mês inválido.")
		return 0, 0, false
	}
	return year, month, true
}

// --------------------------------------------------
// Erros
// --------------------------------------------------

// respond writes err as a business error or, for anything unexpected, logs it and
// answers with fallbackCode.
func respond(c *gin.Context, log *zap.Logger, err error, fallbackCode string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Kind == httperr.KindUpstream {
		log.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.Error(err),
		)
	}
	httperr.FromError(c, err, fallbackCode, "Erro interno.")
}
