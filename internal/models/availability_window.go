package models

import "time"

// AvailabilityWindow is a recurring weekly rule: a time-of-day range that
// repeats on a set of weekdays. The advisor's window set is replaced
// wholesale on every save, never patched.
type AvailabilityWindow struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AdvisorID uint `gorm:"index" json:"advisor_id"`

	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	Weekdays []string `gorm:"serializer:json" json:"weekdays"` // MONDAY..SUNDAY

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
