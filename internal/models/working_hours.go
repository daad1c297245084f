package models

import "time"

// WorkingHours is one weekday of a professional's schedule. Weekday follows
// time.Weekday; times are "HH:MM" in the shop's timezone and empty lunch fields
// mean no break.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:ux_working_hours_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:ux_working_hours_barber_weekday" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
