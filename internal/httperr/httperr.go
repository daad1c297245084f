package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindCreditExceeded:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// FromError writes a business error with its mapped status, anything else as a 500
// carrying fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := messages[be.Code]
		if msg == "" {
			msg = be.Code
		}
		Write(c, StatusFor(be.Kind), be.Code, msg)
		return
	}
	Internal(c, fallbackCode, fallbackMessage)
}

var messages = map[string]string{
	"invalid_request":             "Dados inválidos.",
	"invalid_phone":               "Telefone inválido.",
	"invalid_date_or_time":        "Data ou hora inválida.",
	"invalid_duration":            "Duração inválida.",
	"invalid_amount":              "Valor inválido.",
	"invalid_payment_method":      "Forma de pagamento inválida.",
	"invalid_state":               "Operação não permitida para o status atual.",
	"too_soon":                    "Horário inválido.",
	"outside_working_hours":       "Fora do horário de atendimento.",
	"slot_unavailable":            "Horário não está mais disponível.",
	"barbershop_not_found":        "Barbearia não encontrada.",
	"barber_not_found":            "Profissional não encontrado.",
	"product_not_found":           "Serviço não encontrado.",
	"client_not_found":            "Cliente não encontrado.",
	"appointment_not_found":       "Agendamento não encontrado.",
	"plan_not_found":              "Plano não encontrado.",
	"subscription_not_found":      "Assinatura não encontrada.",
	"already_settled":             "Agendamento já foi finalizado.",
	"plan_not_available":          "Plano indisponível para compra.",
	"subscription_already_active": "Cliente já possui assinatura ativa.",
	"not_a_member":                "Cliente não possui assinatura ativa para este serviço.",
	"credit_exceeded":             "Limite do plano atingido neste ciclo.",
	"empty_selection":             "Selecione ao menos um profissional.",
	"payment_gateway_unavailable": "Pagamento indisponível, tente novamente.",
	"notification_failed":         "Falha ao enviar notificação.",
	"object_store_unavailable":    "Falha ao enviar imagem, tente novamente.",
	"invalid_image":               "Imagem inválida.",
	"owner_only":                  "Apenas o proprietário pode executar esta ação.",
	"invalid_interval":            "Periodicidade não suportada.",
	"invalid_plan_items":          "Itens do plano inválidos.",
	"invalid_status":              "Status inválido.",
	"invalid_icon":                "Ícone inválido.",
	"unauthorized":                "Não autorizado.",
	"rate_limited":                "Muitas requisições, tente novamente em instantes.",
}
