package club

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

func intPtr(v int) *int { return &v }

func TestCheckCreditCeiling(t *testing.T) {
	item := &models.PlanItem{BarberProductID: 1, QuantityLimit: intPtr(2)}

	for used := 0; used <= 4; used++ {
		c := CheckCredit(item, used)
		assert.True(t, c.Covered)
		assert.Equal(t, used < 2, c.Allowed, "used=%d", used)
		assert.Equal(t, max(2-used, 0), c.Remaining)
	}
}

func TestCheckCreditExhausted(t *testing.T) {
	c := CheckCredit(&models.PlanItem{QuantityLimit: intPtr(2)}, 2)

	assert.Equal(t, CreditCheck{Covered: true, Allowed: false, Remaining: 0}, c)
}

func TestCheckCreditUnlimited(t *testing.T) {
	assert.True(t, CheckCredit(&models.PlanItem{}, 50).Unlimited)
	assert.True(t, CheckCredit(&models.PlanItem{QuantityLimit: intPtr(0)}, 50).Allowed)
}

func TestCheckCreditNotCovered(t *testing.T) {
	c := CheckCredit(nil, 0)
	assert.False(t, c.Covered)
	assert.False(t, c.Allowed)
}

func TestCycleStart(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 5, 17, 15, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, loc), CycleStart(now, loc))
}

func TestPlanPurchasable(t *testing.T) {
	assert.True(t, IsPurchasable(&models.ClubPlan{IsActive: true, IsPublished: true}))
	assert.False(t, IsPurchasable(&models.ClubPlan{IsActive: true}))
	assert.False(t, IsPurchasable(&models.ClubPlan{IsPublished: true}))
	assert.False(t, IsPurchasable(nil))
}

func TestValidatePlan(t *testing.T) {
	p := &models.ClubPlan{Name: "Clube", Items: []models.PlanItem{{BarberProductID: 1}, {BarberProductID: 1}}}
	assert.Error(t, ValidatePlan(p))

	p.Items = p.Items[:1]
	assert.NoError(t, ValidatePlan(p))
	assert.Equal(t, IntervalMonthly, p.Interval)

	assert.NotNil(t, ItemFor(p, 1))
	assert.Nil(t, ItemFor(p, 2))
}

func TestFromGateway(t *testing.T) {
	st, ok := FromGateway("authorized")
	assert.True(t, ok)
	assert.Equal(t, StatusActive, st)

	st, _ = FromGateway("paused")
	assert.Equal(t, StatusOverdue, st)

	_, ok = FromGateway("weird")
	assert.False(t, ok)
}
