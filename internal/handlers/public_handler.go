package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/advisorkit/scheduler/internal/cache"
	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/metrics"
	"github.com/advisorkit/scheduler/internal/models"
	"github.com/advisorkit/scheduler/internal/notify"
	ucBooking "github.com/advisorkit/scheduler/internal/usecase/booking"
	"github.com/advisorkit/scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler is the visitor-facing boundary: list a link's availability,
// commit a booking. The slug in the URL is the shared token.
type PublicHandler struct {
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
	cache          *cache.AvailabilityCache
	notify         *notify.Dispatcher
}

func NewPublicHandler(
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
	availabilityCache *cache.AvailabilityCache,
	notifyDispatcher *notify.Dispatcher,
) *PublicHandler {
	return &PublicHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cache:          availabilityCache,
		notify:         notifyDispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ScheduledTime string `json:"scheduled_time" binding:"required"` // RFC 3339

	Email       string `json:"email" binding:"required"`
	LinkedInURL string `json:"linkedin_url" binding:"required"`

	Answers []models.BookingAnswer `json:"answers"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	metrics.IncAvailabilityRequests()

	var dateFilter *time.Time
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date filter.")
			return
		}
		dateFilter = &parsed
	}

	result, err := h.availabilityUC.Execute(c.Request.Context(), slug, dateFilter)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeLinkNotFound):
			httperr.NotFound(c, httperr.CodeLinkNotFound, "Scheduling link not found.")
		case httperr.IsBusiness(err, httperr.CodeLinkExpired):
			httperr.BadRequest(c, httperr.CodeLinkExpired, "This scheduling link has expired.")
		case httperr.BusinessCode(err) != "":
			httperr.BadRequest(c, httperr.BusinessCode(err), "Could not compute availability.")
		default:
			httperr.Unavailable(c, "store_unavailable", "Could not compute availability.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailFormatValid(email) || !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email", "The email address does not appear to be valid.")
		return
	}

	if !strings.Contains(req.LinkedInURL, "linkedin.com") {
		httperr.BadRequest(c, "invalid_linkedin_url", "A linkedin.com profile URL is required.")
		return
	}

	scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		metrics.ObserveBooking(httperr.CodeInvalidScheduledTime)
		httperr.BadRequest(c, httperr.CodeInvalidScheduledTime, "Invalid scheduled time.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Slug:          slug,
		ScheduledTime: scheduledTime,
		Email:         email,
		LinkedInURL:   req.LinkedInURL,
		Answers:       req.Answers,
	})

	if err != nil {
		code := httperr.BusinessCode(err)
		if code == "" {
			metrics.ObserveBooking("store_unavailable")
			httperr.Unavailable(c, "store_unavailable", "Could not create the booking. Please retry.")
			return
		}

		metrics.ObserveBooking(code)

		switch code {
		case httperr.CodeLinkNotFound:
			httperr.NotFound(c, code, "Scheduling link not found.")
		case httperr.CodeLinkExpired:
			httperr.BadRequest(c, code, "This scheduling link has expired.")
		case httperr.CodeUsageLimitReached:
			httperr.BadRequest(c, code, "This scheduling link has reached its booking limit.")
		case httperr.CodeSlotTaken:
			httperr.BadRequest(c, code, "This time slot is already booked.")
		default:
			httperr.BadRequest(c, code, "Invalid booking request.")
		}
		return
	}

	// The advisor's calendar is shared across links, so every cached
	// listing of theirs is stale now, not just this link's.
	h.cache.InvalidateAdvisor(c.Request.Context(), created.AdvisorID)

	h.notify.Dispatch(notify.Event{
		Booking: *created,
		Answers: req.Answers,
	})

	metrics.ObserveBooking("created")

	c.JSON(http.StatusCreated, gin.H{
		"booking_reference": created.Reference,
		"scheduled_time":    created.ScheduledTime,
	})
}
