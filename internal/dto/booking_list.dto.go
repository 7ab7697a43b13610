package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Email         string    `json:"email"`
	LinkedInURL   string    `json:"linkedin_url"`
	LinkSlug      string    `json:"link_slug"`
	CreatedAt     time.Time `json:"created_at"`
}
