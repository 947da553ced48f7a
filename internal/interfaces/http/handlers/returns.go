// internal/interfaces/http/handlers/returns.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/returns"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// ReturnHandler handles return and refund endpoints
type ReturnHandler struct {
	returnService *returns.Service
	saleService   *sale.Service
	pdfService    *pdf.Service
	config        *config.Config
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(db *gorm.DB, cfg *config.Config) *ReturnHandler {
	return &ReturnHandler{
		returnService: returns.NewService(db, cfg),
		saleService:   sale.NewService(db, cfg),
		pdfService:    pdf.NewService(cfg),
		config:        cfg,
	}
}

// CreateReturn processes a return against a completed sale
func (h *ReturnHandler) CreateReturn(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req returns.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.CreateReturn(&req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Return processed successfully",
		"data":    ret,
	})
}

// ValidateReturn checks return eligibility without processing anything
func (h *ReturnHandler) ValidateReturn(c *gin.Context) {
	saleID, err := parseID(c, "sale_id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var at *time.Time
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' timestamp, expected RFC3339"})
			return
		}
		at = &parsed
	}

	validation, err := h.returnService.ValidateReturn(saleID, at)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": validation,
	})
}

// GetReturns handles return listing with filters
func (h *ReturnHandler) GetReturns(c *gin.Context) {
	var req returns.ReturnListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.returnService.GetReturns(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// GetReturn handles single return retrieval
func (h *ReturnHandler) GetReturn(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.GetReturn(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ret,
	})
}

// ExportReturns streams the filtered return list as a CSV download
func (h *ReturnHandler) ExportReturns(c *gin.Context) {
	var req returns.ReturnListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	filename := fmt.Sprintf("returns-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := h.returnService.ExportCSV(&req, c.Writer); err != nil {
		// Headers are already sent, nothing left to do but log through gin
		c.Error(err)
	}
}

// GetReturnReceipt renders a PDF receipt for a processed return
func (h *ReturnHandler) GetReturnReceipt(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.GetReturn(id)
	if err != nil {
		respondError(c, err)
		return
	}

	sl, err := h.saleService.GetSale(ret.SaleID)
	if err != nil {
		respondError(c, err)
		return
	}

	pdfBuffer, err := h.pdfService.GenerateReturnReceipt(ret, sl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=return-receipt-%d.pdf", ret.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
