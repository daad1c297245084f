package models

import "time"

type ReminderOffset struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	BarbershopID  uint `gorm:"uniqueIndex:ux_reminder_offsets_shop_minutes" json:"barbershop_id"`
	MinutesBefore int  `gorm:"uniqueIndex:ux_reminder_offsets_shop_minutes" json:"minutes_before"`
}

// ReminderLog claims one (appointment, offset) pair; the unique index makes the claim atomic.
type ReminderLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"uniqueIndex:ux_reminder_logs_appt_minutes" json:"appointment_id"`
	MinutesBefore int       `gorm:"uniqueIndex:ux_reminder_logs_appt_minutes" json:"minutes_before"`
	Status        string    `gorm:"size:20" json:"status"`
	Error         string    `gorm:"size:255" json:"error"`
	CreatedAt     time.Time `json:"created_at"`
}
