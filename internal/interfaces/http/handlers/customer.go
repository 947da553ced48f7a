// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"gorm.io/gorm"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *customer.Service
	config          *config.Config
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(db *gorm.DB, cfg *config.Config) *CustomerHandler {
	return &CustomerHandler{
		customerService: customer.NewService(db, cfg),
		config:          cfg,
	}
}

// GetCustomers handles customer listing with search
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var req customer.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customers, total, err := h.customerService.GetCustomers(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": customers,
			"total": total,
			"page":  req.Page,
			"limit": req.Limit,
		},
	})
}

// GetCustomer handles single customer retrieval
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	cust, err := h.customerService.GetCustomer(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": cust,
	})
}

// CreateCustomer handles customer creation
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cust, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer created successfully",
		"data":    cust,
	})
}

// UpdateCustomer handles customer updates
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cust, err := h.customerService.UpdateCustomer(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer updated successfully",
		"data":    cust,
	})
}

// DeleteCustomer handles customer deletion
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}
