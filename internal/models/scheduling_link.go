package models

import "time"

type CustomQuestion struct {
	Question string `json:"question"`
	Required bool   `json:"required"`
}

// SchedulingLink is a shareable entry point into an advisor's availability.
// The slug is the externally shared token. A link is immutable after
// creation; the only mutation is deletion.
type SchedulingLink struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdvisorID uint    `gorm:"index" json:"advisor_id"`
	Advisor   Advisor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Slug string `gorm:"size:32;uniqueIndex;not null" json:"slug"`

	MeetingLengthMinutes int `json:"meeting_length_minutes"`
	MaxAdvanceDays       int `json:"max_advance_days"`

	UsageLimit *int       `json:"usage_limit"`
	ExpiresAt  *time.Time `json:"expires_at"`

	CustomQuestions []CustomQuestion `gorm:"serializer:json" json:"custom_questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
