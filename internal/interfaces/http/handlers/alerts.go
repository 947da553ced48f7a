// internal/interfaces/http/handlers/alerts.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/alert"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// AlertHandler handles inventory alert endpoints
type AlertHandler struct {
	alertService *alert.Service
	config       *config.Config
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *AlertHandler {
	return &AlertHandler{
		alertService: alert.NewService(db, cfg, redisClient),
		config:       cfg,
	}
}

// GenerateAlertsRequest optionally overrides sweep thresholds
type GenerateAlertsRequest struct {
	LowStockThreshold      int `json:"low_stock_threshold" binding:"omitempty,min=1"`
	CriticalStockThreshold int `json:"critical_stock_threshold" binding:"omitempty,min=1"`
	NoMovementDays         int `json:"no_movement_days" binding:"omitempty,min=1"`
}

// GenerateAlerts runs a full inventory alert sweep
func (h *AlertHandler) GenerateAlerts(c *gin.Context) {
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// Body is optional; thresholds default from configuration
	var req GenerateAlertsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	sweep := &alert.SweepConfig{
		LowStockThreshold:      req.LowStockThreshold,
		CriticalStockThreshold: req.CriticalStockThreshold,
		NoMovementDays:         req.NoMovementDays,
	}

	result, err := h.alertService.Generate(sweep, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert sweep completed",
		"data":    result,
	})
}

// GetAlerts handles alert listing with filters
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	var req alert.AlertListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	alerts, err := h.alertService.GetAlerts(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": alerts,
	})
}

// GetAlertStats returns aggregate alert counts
func (h *AlertHandler) GetAlertStats(c *gin.Context) {
	stats, err := h.alertService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetAlert handles single alert retrieval
func (h *AlertHandler) GetAlert(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	a, err := h.alertService.GetAlert(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": a,
	})
}

// UpdateAlert handles alert read/active state updates
func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req alert.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	a, err := h.alertService.UpdateAlert(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert updated successfully",
		"data":    a,
	})
}

// MarkAlertRead marks one alert as read
func (h *AlertHandler) MarkAlertRead(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.alertService.MarkRead(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert marked as read",
	})
}

// MarkAllAlertsRead marks every active unread alert as read
func (h *AlertHandler) MarkAllAlertsRead(c *gin.Context) {
	count, err := h.alertService.MarkAllRead()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alerts marked as read",
		"data":    gin.H{"updated": count},
	})
}

// ResolveAlert deactivates an alert
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.alertService.Resolve(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert resolved",
	})
}

// DeleteAlert removes an alert permanently
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.alertService.Delete(id, role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert deleted successfully",
	})
}
