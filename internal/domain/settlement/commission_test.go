package settlement

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeCommission(t *testing.T) {
	got, ok := ComputeCommission(decimal.RequireFromString("45.00"), pct("40"))
	require.True(t, ok)
	assert.Equal(t, "18.00", got.StringFixed(2))

	got, ok = ComputeCommission(decimal.RequireFromString("33.33"), pct("12.5"))
	require.True(t, ok)
	// 4.16625 rounds half-up
	assert.Equal(t, "4.17", got.StringFixed(2))

	got, _ = ComputeCommission(decimal.RequireFromString("10.10"), pct("15"))
	// 1.515
	assert.Equal(t, "1.52", got.StringFixed(2))
}

func TestComputeCommissionSkips(t *testing.T) {
	cases := []struct {
		amount string
		pct    *decimal.Decimal
	}{
		{"0", pct("50")},
		{"100", nil},
		{"100", pct("0")},
		{"100", pct("-5")},
	}

	for _, tc := range cases {
		_, ok := ComputeCommission(decimal.RequireFromString(tc.amount), tc.pct)
		assert.False(t, ok, "amount=%s", tc.amount)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("pix")
	require.NoError(t, err)
	assert.Equal(t, MethodPix, m)

	_, err = ParsePaymentMethod("bitcoin")
	assert.Error(t, err)
}

func TestPartialFailures(t *testing.T) {
	usage := &PartialSettlementError{AppointmentID: 1, TransactionID: 2, Step: StepUsage, Err: errors.New("x")}
	comm := &PartialSettlementError{AppointmentID: 1, TransactionID: 2, Step: StepCommission, Err: errors.New("y")}

	assert.Len(t, PartialFailures(errors.Join(usage, comm)), 2)
	assert.Len(t, PartialFailures(fmt.Errorf("wrap: %w", usage)), 1)
	assert.Empty(t, PartialFailures(errors.New("plain")))
	assert.Empty(t, PartialFailures(nil))
	assert.Contains(t, usage.Error(), "usage")
}
