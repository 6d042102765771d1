package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnireach/crm-backend/internal/services"
)

// AIHandler handles generative-AI HTTP requests. Upstream failures all
// surface as 500 with a terse error, never retried.
type AIHandler struct {
	aiService *services.AIService
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// SuggestMessages handles POST /ai/messages
func (h *AIHandler) SuggestMessages(c *gin.Context) {
	var req struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	messages, err := h.aiService.SuggestMessages(c, req.Input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI message suggestions failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SegmentRules handles POST /ai/segment-rules
func (h *AIHandler) SegmentRules(c *gin.Context) {
	var req struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rules, err := h.aiService.SegmentRules(c, req.Input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI segment rules failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// PerformanceSummary handles POST /ai/performance-summary
func (h *AIHandler) PerformanceSummary(c *gin.Context) {
	var req struct {
		Stats map[string]interface{} `json:"stats" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.aiService.PerformanceSummary(c, req.Stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI performance summary failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// SmartSchedule handles POST /ai/smart-schedule
func (h *AIHandler) SmartSchedule(c *gin.Context) {
	var req struct {
		Audience interface{} `json:"audience"`
		History  interface{} `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	suggestion, err := h.aiService.SmartSchedule(c, req.Audience, req.History)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI smart schedule failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

// Lookalike handles POST /ai/lookalike
func (h *AIHandler) Lookalike(c *gin.Context) {
	var req struct {
		Segment interface{} `json:"segment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lookalikes, err := h.aiService.Lookalike(c, req.Segment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI lookalike generator failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lookalikes": lookalikes})
}

// AutoTag handles POST /ai/auto-tag
func (h *AIHandler) AutoTag(c *gin.Context) {
	var req struct {
		Audience interface{} `json:"audience"`
		Message  string      `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.aiService.AutoTag(c, req.Audience, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI auto-tagging failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DashboardInsight handles POST /ai/dashboard-insight
func (h *AIHandler) DashboardInsight(c *gin.Context) {
	var req struct {
		Audience interface{} `json:"audience"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	insight, err := h.aiService.DashboardInsight(c, req.Audience)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI dashboard insight failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// ValidateRecords handles POST /data/validate
func (h *AIHandler) ValidateRecords(c *gin.Context) {
	var req struct {
		Records interface{} `json:"records"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	insight, err := h.aiService.ValidateRecords(c, req.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI data validation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// AutoFixRecords handles POST /data/autofix
func (h *AIHandler) AutoFixRecords(c *gin.Context) {
	var req struct {
		Records interface{} `json:"records"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.aiService.AutoFixRecords(c, req.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "AI auto-fix failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
