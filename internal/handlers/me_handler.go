package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/middleware"
	"github.com/advisorkit/scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	advisorIDVal, exists := c.Get(middleware.ContextAdvisorID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "advisor_not_in_context"})
		return
	}

	advisorID, ok := advisorIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_advisor_id_type"})
		return
	}

	var advisor models.Advisor
	if err := h.db.First(&advisor, advisorID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "advisor_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advisor": gin.H{
			"id":    advisor.ID,
			"name":  advisor.Name,
			"email": advisor.Email,
		},
	})
}
