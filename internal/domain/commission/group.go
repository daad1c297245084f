package commission

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

type ProfessionalCommissions struct {
	UserID uint                `json:"user_id"`
	Name   string              `json:"name"`
	Count  int                 `json:"count"`
	Total  decimal.Decimal     `json:"total"`
	Rows   []models.Commission `json:"rows"`
}

// GroupByProfessional folds commission rows per user, ordered by name.
func GroupByProfessional(rows []models.Commission, barbers []models.User) []ProfessionalCommissions {
	names := make(map[uint]string, len(barbers))
	for _, b := range barbers {
		names[b.ID] = b.Name
	}

	byUser := map[uint]*ProfessionalCommissions{}
	for _, r := range rows {
		g, ok := byUser[r.UserID]
		if !ok {
			g = &ProfessionalCommissions{UserID: r.UserID, Name: names[r.UserID], Total: decimal.Zero}
			byUser[r.UserID] = g
		}
		g.Count++
		g.Total = g.Total.Add(r.CommissionAmount)
		g.Rows = append(g.Rows, r)
	}

	out := make([]ProfessionalCommissions, 0, len(byUser))
	for _, g := range byUser {
		out = append(out, *g)
	}

	slices.SortFunc(out, func(a, b ProfessionalCommissions) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	return out
}

// MonthRange returns [first day of month, first day of next month) in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
