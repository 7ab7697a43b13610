package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/httpresp"
	infraRepo "github.com/advisorkit/scheduler/internal/infra/repository"
	"github.com/advisorkit/scheduler/internal/middleware"
	"github.com/advisorkit/scheduler/internal/models"
	ucLink "github.com/advisorkit/scheduler/internal/usecase/link"
)

// ======================================================
// HANDLER
// ======================================================

type LinkHandler struct {
	db       *gorm.DB
	createUC *ucLink.CreateLink
	deleteUC *ucLink.DeleteLink
}

func NewLinkHandler(
	db *gorm.DB,
	createUC *ucLink.CreateLink,
	deleteUC *ucLink.DeleteLink,
) *LinkHandler {
	return &LinkHandler{
		db:       db,
		createUC: createUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLinkRequest struct {
	MeetingLengthMinutes int `json:"meeting_length_minutes" binding:"required"`
	MaxAdvanceDays       int `json:"max_advance_days" binding:"required"`

	UsageLimit *int       `json:"usage_limit"`
	ExpiresAt  *time.Time `json:"expires_at"`

	CustomQuestions []models.CustomQuestion `json:"custom_questions" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *LinkHandler) List(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	repo := infraRepo.NewSchedulingGormRepository(h.db)

	links, err := repo.ListLinksForAdvisor(c.Request.Context(), advisorID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_links", "Could not list scheduling links.")
		return
	}

	httpresp.List(c, links)
}

func (h *LinkHandler) Create(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid link payload.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucLink.CreateLinkInput{
		AdvisorID:            advisorID,
		MeetingLengthMinutes: req.MeetingLengthMinutes,
		MaxAdvanceDays:       req.MaxAdvanceDays,
		UsageLimit:           req.UsageLimit,
		ExpiresAt:            req.ExpiresAt,
		CustomQuestions:      req.CustomQuestions,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeInvalidMeetingLength):
			httperr.BadRequest(c, httperr.CodeInvalidMeetingLength, "Meeting length must be between 15 and 480 minutes.")
		case httperr.IsBusiness(err, httperr.CodeInvalidAdvanceDays):
			httperr.BadRequest(c, httperr.CodeInvalidAdvanceDays, "Max advance days must be between 1 and 365.")
		case httperr.IsBusiness(err, httperr.CodeInvalidUsageLimit):
			httperr.BadRequest(c, httperr.CodeInvalidUsageLimit, "Usage limit must be at least 1.")
		case httperr.IsBusiness(err, httperr.CodeInvalidCustomQuestions):
			httperr.BadRequest(c, httperr.CodeInvalidCustomQuestions, "At least one non-empty question is required.")
		case httperr.IsBusiness(err, httperr.CodeSlugExhausted):
			httperr.Internal(c, httperr.CodeSlugExhausted, "Could not generate a unique slug.")
		default:
			httperr.Unavailable(c, "store_unavailable", "Could not create the scheduling link.")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LinkHandler) Delete(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	linkID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_link_id", "Invalid link id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), advisorID, uint(linkID)); err != nil {
		if httperr.IsBusiness(err, httperr.CodeLinkNotFound) {
			httperr.NotFound(c, httperr.CodeLinkNotFound, "Scheduling link not found.")
			return
		}
		httperr.Unavailable(c, "store_unavailable", "Could not delete the scheduling link.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
