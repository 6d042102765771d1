package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignService *services.CampaignService
	scheduler       *services.SchedulerService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *services.CampaignService, scheduler *services.SchedulerService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		scheduler:       scheduler,
	}
}

// currentUserID reads the authenticated account id set by the JWT middleware
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString("userID")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authenticated user"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func campaignID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCampaigns handles GET /campaigns
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaigns, err := h.campaignService.GetCampaignsByUser(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.campaignService.CreateCampaign(c, &campaign, userID); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// GetCampaignByID handles GET /campaigns/:id
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	campaign, err := h.campaignService.GetCampaignByID(c, id)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaign", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaignStatus handles PATCH /campaigns/:id/status
func (h *CampaignHandler) UpdateCampaignStatus(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignService.UpdateStatus(c, id, req.Status)
	switch {
	case errors.Is(err, services.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, campaign)
	}
}

// DeleteCampaign handles DELETE /campaigns/:id
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	err := h.campaignService.DeleteCampaign(c, id)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// PreviewAudience handles POST /campaigns/audience-preview
func (h *CampaignHandler) PreviewAudience(c *gin.Context) {
	var req struct {
		Rules map[string]interface{} `json:"rules"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	audience, err := h.campaignService.PreviewAudience(c, req.Rules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview audience", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"size": len(audience), "audience": audience})
}

// SendCampaign handles POST /campaigns/:id/send
func (h *CampaignHandler) SendCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	result, err := h.campaignService.SendCampaign(c, id)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send campaign", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScheduleCampaign handles POST /campaigns/:id/schedule
func (h *CampaignHandler) ScheduleCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	var req struct {
		ScheduledAt *time.Time `json:"scheduledAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ScheduledAt == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduledAt required"})
		return
	}

	if _, err := h.scheduler.ScheduleCampaignSend(c, id, *req.ScheduledAt); err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule campaign", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "Scheduled",
		"campaignId":  id.Hex(),
		"scheduledAt": req.ScheduledAt,
	})
}

// SimulateOpen handles POST /campaigns/:id/simulate-open
func (h *CampaignHandler) SimulateOpen(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	req := struct {
		Percentage float64 `json:"percentage"`
	}{Percentage: 60}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.campaignService.SimulateOpens(c, id, req.Percentage)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate open", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opened": result.Opened, "total": result.Total})
}

// SimulateClick handles POST /campaigns/:id/simulate-click
func (h *CampaignHandler) SimulateClick(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	req := struct {
		Percentage float64 `json:"percentage"`
	}{Percentage: 30}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.campaignService.SimulateClicks(c, id, req.Percentage)
	if errors.Is(err, services.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate click", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clicked": result.Clicked, "total": result.Total})
}

// DeliveryReceipt handles POST /delivery-receipt, the public vendor callback
func (h *CampaignHandler) DeliveryReceipt(c *gin.Context) {
	var req struct {
		LogID  string `json:"logId" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logID, err := primitive.ObjectIDFromHex(req.LogID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log ID format"})
		return
	}

	err = h.campaignService.ApplyDeliveryReceipt(c, logID, req.Status)
	switch {
	case errors.Is(err, services.ErrLogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery status", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetCommunicationLogs handles GET /communication-logs?campaignId=
func (h *CampaignHandler) GetCommunicationLogs(c *gin.Context) {
	var campaignRef *primitive.ObjectID
	if raw := c.Query("campaignId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID format"})
			return
		}
		campaignRef = &id
	}

	logs, err := h.campaignService.GetLogs(c, campaignRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communication logs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
