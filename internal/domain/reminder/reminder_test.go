package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

func TestDueRange(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	from, to := DueRange(now, 60, 10*time.Minute)

	assert.Equal(t, time.Date(2026, 3, 2, 8, 50, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), to)
}

func TestReminderText(t *testing.T) {
	ap := models.Appointment{
		ID:          3,
		ClientName:  "João",
		ClientPhone: "5511999999999",
		StartTime:   time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
	}
	ap.Barbershop.Name = "Navalha de Ouro"
	ap.Barbershop.Timezone = "America/Sao_Paulo"
	ap.BarberProduct.Name = "Corte"
	ap.Barber.Name = "Carlos"

	r := FromAppointment(ap, 60)

	assert.Equal(t, "Olá João! Lembrete: Corte com Carlos na Navalha de Ouro em 02/03 às 11:30.", r.Text())
	assert.Equal(t, 60, r.MinutesBefore)
}
