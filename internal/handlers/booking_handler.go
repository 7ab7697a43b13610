package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/dto"
	"github.com/advisorkit/scheduler/internal/httperr"
	infraRepo "github.com/advisorkit/scheduler/internal/infra/repository"
	"github.com/advisorkit/scheduler/internal/middleware"
)

// BookingHandler serves the advisor-facing read side of the ledger.
// Bookings are append-only: they are created by the public commit path and
// never modified here.
type BookingHandler struct {
	db *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

func (h *BookingHandler) List(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	var from, to time.Time

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		from = parsed
	}

	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		to = parsed.Add(24 * time.Hour)
	}

	repo := infraRepo.NewSchedulingGormRepository(h.db)

	bookings, err := repo.ListBookingsForAdvisor(c.Request.Context(), advisorID, from, to)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			Reference:     b.Reference,
			ScheduledTime: b.ScheduledTime,
			Email:         b.Email,
			LinkedInURL:   b.LinkedInURL,
			LinkSlug:      b.SchedulingLink.Slug,
			CreatedAt:     b.CreatedAt,
		})
	}

	c.JSON(200, out)
}
