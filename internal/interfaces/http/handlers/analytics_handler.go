package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/internal/usecases"
)

type AnalyticsHandler struct {
	analyticsUsecase *usecases.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// Dashboard returns this month's figures.
// GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}
	stats, err := h.analyticsUsecase.Dashboard(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// Today returns today's figures.
// GET /api/v1/analytics/today
func (h *AnalyticsHandler) Today(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}
	stats, err := h.analyticsUsecase.Today(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
