package models

import "time"

type BookingAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Required bool   `json:"required"`
}

// Booking is a committed slot. The composite unique index on
// (advisor_id, scheduled_time) enforces per-advisor slot exclusivity at the
// store level: the advisor's calendar is one shared resource across all of
// their links, so conflicts are never scoped to a single link.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the public identifier returned to visitors.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	AdvisorID uint `gorm:"uniqueIndex:idx_bookings_advisor_slot;index" json:"advisor_id"`

	SchedulingLinkID uint           `gorm:"index" json:"scheduling_link_id"`
	SchedulingLink   SchedulingLink `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"scheduling_link"`

	Email       string `gorm:"size:100;not null" json:"email"`
	LinkedInURL string `gorm:"size:255" json:"linkedin_url"`

	Answers []BookingAnswer `gorm:"serializer:json" json:"answers"`

	ScheduledTime time.Time `gorm:"uniqueIndex:idx_bookings_advisor_slot;not null" json:"scheduled_time"`

	CreatedAt time.Time `json:"created_at"`
}
