package commission

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

func TestGroupByProfessional(t *testing.T) {
	rows := []models.Commission{
		{UserID: 2, CommissionAmount: decimal.RequireFromString("10.50")},
		{UserID: 1, CommissionAmount: decimal.RequireFromString("7.25")},
		{UserID: 2, CommissionAmount: decimal.RequireFromString("4.50")},
	}
	barbers := []models.User{{ID: 1, Name: "Bruno"}, {ID: 2, Name: "Ana"}}

	groups := GroupByProfessional(rows, barbers)

	require.Len(t, groups, 2)
	assert.Equal(t, "Ana", groups[0].Name)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "15.00", groups[0].Total.StringFixed(2))
	assert.Equal(t, "Bruno", groups[1].Name)
	assert.Len(t, groups[1].Rows, 1)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.December, time.UTC)

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
