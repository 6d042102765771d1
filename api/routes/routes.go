package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/omnireach/crm-backend/internal/config"
	"github.com/omnireach/crm-backend/internal/handlers"
	"github.com/omnireach/crm-backend/internal/middleware"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Auth      *handlers.AuthHandler
	Campaign  *handlers.CampaignHandler
	Analytics *handlers.AnalyticsHandler
	Data      *handlers.DataHandler
	Template  *handlers.TemplateHandler
	AI        *handlers.AIHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Vendor delivery callback, no auth: the simulated delivery vendor
		// posts receipts here
		public.POST("/delivery-receipt", h.Campaign.DeliveryReceipt)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", h.Auth.Me)

		// Campaign routes
		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("", h.Campaign.GetCampaigns)
			campaigns.POST("", h.Campaign.CreateCampaign)
			campaigns.POST("/audience-preview", h.Campaign.PreviewAudience)
			campaigns.GET("/:id", h.Campaign.GetCampaignByID)
			campaigns.PATCH("/:id/status", h.Campaign.UpdateCampaignStatus)
			campaigns.DELETE("/:id", h.Campaign.DeleteCampaign)
			campaigns.POST("/:id/send", h.Campaign.SendCampaign)
			campaigns.POST("/:id/schedule", h.Campaign.ScheduleCampaign)
			campaigns.POST("/:id/simulate-open", h.Campaign.SimulateOpen)
			campaigns.POST("/:id/simulate-click", h.Campaign.SimulateClick)
			campaigns.GET("/:id/realtime-stats", h.Analytics.RealtimeStats)
		}

		protected.GET("/communication-logs", h.Campaign.GetCommunicationLogs)

		// Analytics routes
		analytics := protected.Group("/analytics")
		{
			analytics.GET("/weekly", h.Analytics.Weekly)
			analytics.GET("/performance", h.Analytics.Performance)
		}

		// Customer and order ingestion
		customers := protected.Group("/customers")
		{
			customers.GET("", h.Data.GetCustomers)
			customers.GET("/count", h.Data.GetCustomerCount)
			customers.POST("", h.Data.IngestCustomer)
		}
		protected.POST("/orders", h.Data.IngestOrder)

		// Raw data ingestion
		protected.POST("/data-records", h.Data.IngestDataRecords)
		protected.GET("/data-records", h.Data.GetDataRecords)
		protected.GET("/data-sources", h.Data.GetDataSources)

		data := protected.Group("/data")
		{
			data.POST("/validate", h.AI.ValidateRecords)
			data.POST("/autofix", h.AI.AutoFixRecords)
		}

		// Template routes
		templates := protected.Group("/templates")
		{
			templates.GET("", h.Template.GetTemplates)
			templates.POST("", h.Template.CreateTemplate)
			templates.PUT("/:id", h.Template.UpdateTemplate)
			templates.DELETE("/:id", h.Template.DeleteTemplate)
		}

		// AI routes
		ai := protected.Group("/ai")
		{
			ai.POST("/messages", h.AI.SuggestMessages)
			ai.POST("/segment-rules", h.AI.SegmentRules)
			ai.POST("/performance-summary", h.AI.PerformanceSummary)
			ai.POST("/smart-schedule", h.AI.SmartSchedule)
			ai.POST("/lookalike", h.AI.Lookalike)
			ai.POST("/auto-tag", h.AI.AutoTag)
			ai.POST("/dashboard-insight", h.AI.DashboardInsight)
		}
	}

	return router
}
