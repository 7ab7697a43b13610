package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/audit"
	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
	infraRepo "github.com/advisorkit/scheduler/internal/infra/repository"
	"github.com/advisorkit/scheduler/internal/middleware"
	"github.com/advisorkit/scheduler/internal/models"
)

type WindowHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWindowHandler(db *gorm.DB, audit *audit.Dispatcher) *WindowHandler {
	return &WindowHandler{db: db, audit: audit}
}

type WindowConfig struct {
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time" binding:"required"`
	Weekdays  []string `json:"weekdays" binding:"required"`
}

type WindowsUpdateRequest struct {
	Windows []WindowConfig `json:"windows" binding:"required"`
}

func (h *WindowHandler) Get(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	repo := infraRepo.NewSchedulingGormRepository(h.db)

	windows, err := repo.ListWindowsForAdvisor(c.Request.Context(), advisorID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_windows", "Could not load availability windows.")
		return
	}

	c.JSON(http.StatusOK, windows)
}

// Update replaces the advisor's whole window set: delete-all then
// insert-all, never an incremental diff. Callers treat the set as a value.
func (h *WindowHandler) Update(c *gin.Context) {
	advisorID := c.MustGet(middleware.ContextAdvisorID).(uint)

	var req WindowsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	toCreate := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		if err := domain.ValidateWindow(domain.Window{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Weekdays:  w.Weekdays,
		}); err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidWindow, "Each window needs start before end and at least one weekday.")
			return
		}

		toCreate = append(toCreate, models.AvailabilityWindow{
			AdvisorID: advisorID,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Weekdays:  w.Weekdays,
		})
	}

	repo := infraRepo.NewSchedulingGormRepository(h.db)

	created, err := repo.ReplaceWindowsForAdvisor(c.Request.Context(), advisorID, toCreate)
	if err != nil {
		httperr.Internal(c, "failed_to_save_windows", "Could not save availability windows.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdvisorID: advisorID,
		Action:    "windows_replaced",
		Entity:    "availability_window",
		Metadata:  map[string]any{"count": len(created)},
	})

	c.JSON(http.StatusOK, created)
}
