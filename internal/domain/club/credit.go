package club

import (
	"time"

	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/timezone"
)

type CreditCheck struct {
	Covered   bool `json:"covered"`
	Allowed   bool `json:"allowed"`
	Unlimited bool `json:"unlimited"`
	Remaining int  `json:"remaining"`
}

// CheckCredit decides whether one more redemption of the item is within the cycle limit.
// used is the count of usage records since CycleStart.
func CheckCredit(item *models.PlanItem, used int) CreditCheck {
	if item == nil {
		return CreditCheck{}
	}

	if item.QuantityLimit == nil || *item.QuantityLimit == 0 {
		return CreditCheck{Covered: true, Allowed: true, Unlimited: true}
	}

	remaining := max(*item.QuantityLimit-used, 0)

	return CreditCheck{
		Covered:   true,
		Allowed:   remaining > 0,
		Remaining: remaining,
	}
}

// CycleStart is the first instant of the current calendar month in the shop's location.
func CycleStart(now time.Time, loc *time.Location) time.Time {
	return timezone.StartOfMonth(now, loc)
}
