package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DataHandler handles customer/order/data-record ingestion requests
type DataHandler struct {
	customerService *services.CustomerService
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(customerService *services.CustomerService) *DataHandler {
	return &DataHandler{customerService: customerService}
}

// IngestCustomer handles POST /customers
func (h *DataHandler) IngestCustomer(c *gin.Context) {
	var req struct {
		GoogleID string `json:"googleId"`
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Avatar   string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	customer, created, err := h.customerService.IngestCustomer(c, &models.Customer{
		GoogleID: req.GoogleID,
		Email:    req.Email,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest customer", "details": err.Error()})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, customer)
}

// GetCustomers handles GET /customers
func (h *DataHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.GetCustomers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerCount handles GET /customers/count
func (h *DataHandler) GetCustomerCount(c *gin.Context) {
	count, err := h.customerService.GetCustomerCount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// IngestOrder handles POST /orders
func (h *DataHandler) IngestOrder(c *gin.Context) {
	var req struct {
		CustomerID string             `json:"userId" binding:"required"`
		OrderID    string             `json:"orderId" binding:"required"`
		Amount     float64            `json:"amount" binding:"required"`
		Status     string             `json:"status"`
		Items      []models.OrderItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return
	}
	if req.Status == "" {
		req.Status = "completed"
	}

	order := &models.Order{
		CustomerID: customerID,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
		Status:     req.Status,
		Items:      req.Items,
	}
	err = h.customerService.IngestOrder(c, order)
	if errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// IngestDataRecords handles POST /data-records
func (h *DataHandler) IngestDataRecords(c *gin.Context) {
	var req struct {
		Records []*models.DataRecord `json:"records"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No records provided"})
		return
	}

	if err := h.customerService.IngestDataRecords(c, req.Records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest data records", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req.Records)
}

// GetDataRecords handles GET /data-records
func (h *DataHandler) GetDataRecords(c *gin.Context) {
	records, err := h.customerService.GetDataRecords(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data records", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDataSources handles GET /data-sources
func (h *DataHandler) GetDataSources(c *gin.Context) {
	sources, err := h.customerService.GetDataSources(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data sources", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sources)
}
