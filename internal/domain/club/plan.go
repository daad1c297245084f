package club

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

const IntervalMonthly = "monthly"

// IsPurchasable: a plan is sold only while active and published; anything else is a draft.
func IsPurchasable(p *models.ClubPlan) bool {
	return p != nil && p.IsActive && p.IsPublished
}

// ValidatePlan checks the owner-editable fields of a plan and its items.
func ValidatePlan(p *models.ClubPlan) error {
	if p.Name == "" {
		return httperr.Validation("invalid_request")
	}
	if p.Price.LessThan(decimal.Zero) {
		return httperr.Validation("invalid_amount")
	}
	if p.Interval == "" {
		p.Interval = IntervalMonthly
	}
	if p.Interval != IntervalMonthly {
		return httperr.Validation("invalid_interval")
	}

	seen := make(map[uint]bool, len(p.Items))
	for _, it := range p.Items {
		if it.BarberProductID == 0 || seen[it.BarberProductID] {
			return httperr.Validation("invalid_plan_items")
		}
		if it.QuantityLimit != nil && *it.QuantityLimit < 0 {
			return httperr.Validation("invalid_plan_items")
		}
		seen[it.BarberProductID] = true
	}
	return nil
}

// ItemFor returns the plan item covering productID, or nil.
func ItemFor(p *models.ClubPlan, productID uint) *models.PlanItem {
	if p == nil {
		return nil
	}
	for i := range p.Items {
		if p.Items[i].BarberProductID == productID {
			return &p.Items[i]
		}
	}
	return nil
}
