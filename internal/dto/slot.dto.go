package dto

import (
	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
)

type SlotDTO struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func Slots(slots []domain.Slot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDTO{
			Start:     s.Start.Format("15:04"),
			End:       s.End.Format("15:04"),
			Available: s.Available,
			Reason:    string(s.Reason),
		})
	}
	return out
}

// AvailableOnly keeps the slots a client can still pick.
func AvailableOnly(slots []SlotDTO) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
