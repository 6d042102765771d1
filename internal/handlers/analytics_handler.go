package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnireach/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// RealtimeStats handles GET /campaigns/:id/realtime-stats
func (h *AnalyticsHandler) RealtimeStats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	stats, err := h.analyticsService.RealtimeStats(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch real-time stats", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Weekly handles GET /analytics/weekly
func (h *AnalyticsHandler) Weekly(c *gin.Context) {
	series, err := h.analyticsService.WeeklyActivity(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weekly analytics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}

// Performance handles GET /analytics/performance
func (h *AnalyticsHandler) Performance(c *gin.Context) {
	series, err := h.analyticsService.PerformanceSeries(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch performance analytics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}
