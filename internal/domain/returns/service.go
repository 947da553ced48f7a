// internal/domain/returns/service.go
package returns

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/audit"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles return and exchange business logic
type Service struct {
	db           *gorm.DB
	config       *config.Config
	auditService *audit.Service

	// now is injectable for deterministic window checks in tests
	now func() time.Time
}

// NewService creates a new returns service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		auditService: audit.NewService(db),
		now:          time.Now,
	}
}

// CreateReturnRequest represents return creation data
type CreateReturnRequest struct {
	SaleID         uint        `json:"sale_id" binding:"required"`
	ItemsReturned  ReturnItems `json:"items_returned" binding:"required,min=1"`
	ItemsExchanged ReturnItems `json:"items_exchanged"`
	Action         string      `json:"action" binding:"required,returnaction"`
	RefundMethod   string      `json:"refund_method" binding:"omitempty,paymentmethod"`
	Reason         string      `json:"reason" binding:"max=120"`
}

// ReturnListRequest represents return list query parameters
type ReturnListRequest struct {
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=50"`
	SaleID       uint   `form:"sale_id"`
	DateFrom     string `form:"date_from"` // YYYY-MM-DD or RFC3339
	DateTo       string `form:"date_to"`
	Action       string `form:"action"`
	RefundMethod string `form:"refund_method"`
	Status       string `form:"status"`
}

// ReturnListResponse represents a paginated return list
type ReturnListResponse struct {
	Items []Return `json:"items"`
	Total int64    `json:"total"`
}

// Validation is the result of a read-only return eligibility check
type Validation struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ValidateReturn checks whether a sale is still eligible for a return: the
// sale must exist, be within the configured window and have completed status.
// Read-only; CreateReturn re-applies the same checks.
func (s *Service) ValidateReturn(saleID uint, now *time.Time) (*Validation, error) {
	var sl sale.Sale
	if err := s.db.First(&sl, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Validation{OK: false, Reason: "sale not found"}, nil
		}
		return nil, apperror.Internal(err, "failed to load sale")
	}

	at := s.now()
	if now != nil {
		at = *now
	}

	if !withinReturnWindow(sl.CreatedAt, at, s.config.Returns.WindowDays) {
		return &Validation{
			OK:     false,
			Reason: fmt.Sprintf("outside the %d day return window", s.config.Returns.WindowDays),
		}, nil
	}

	if sl.Status != sale.SaleStatusCompleted {
		return &Validation{OK: false, Reason: "sale status does not allow returns"}, nil
	}

	return &Validation{OK: true}, nil
}

// CreateReturn validates and executes a return against a sale: it re-checks
// window and status, enforces the over-return guard against all prior
// returns, computes the tax-proportional refund from the sale's recorded
// prices, and applies all stock deltas atomically. The sale row is locked
// for the duration of the transaction so concurrent returns against the same
// sale serialize on the over-return check.
func (s *Service) CreateReturn(req *CreateReturnRequest, actorUserID uint) (*Return, error) {
	action := ReturnAction(req.Action)
	var created Return

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sl sale.Sale
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sl, req.SaleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("sale not found")
			}
			return apperror.Internal(err, "failed to load sale")
		}

		// Same checks as ValidateReturn so this is safe to call directly.
		if !withinReturnWindow(sl.CreatedAt, s.now(), s.config.Returns.WindowDays) {
			return apperror.InvalidState("outside the %d day return window", s.config.Returns.WindowDays)
		}
		if sl.Status != sale.SaleStatusCompleted {
			return apperror.InvalidState("sale status does not allow returns")
		}

		sold, err := indexSaleItems(sl.Items)
		if err != nil {
			return err
		}

		var prior []Return
		if err := tx.Where("sale_id = ?", sl.ID).Find(&prior).Error; err != nil {
			return apperror.Internal(err, "failed to load prior returns")
		}

		subtotalRefund, err := validateReturnedItems(req.ItemsReturned, sold, sumPriorReturns(prior))
		if err != nil {
			return err
		}

		if action == ActionRefund {
			if req.RefundMethod == "" {
				return apperror.InvalidRequest("refund_method is required for refunds")
			}
			if req.RefundMethod != sl.PaymentMethod {
				return apperror.InvalidRequest("refund must use the sale's original payment method")
			}
		}
		if action != ActionExchange && len(req.ItemsExchanged) > 0 {
			return apperror.InvalidRequest("items_exchanged is only valid for exchanges")
		}

		subRef, taxRef, totalRef := refundTotals(subtotalRefund, sl.Tax, sl.Subtotal, action)

		// Stock moves both directions atomically: returned items come back
		// in, exchange replacements go out.
		for _, it := range req.ItemsReturned {
			if err := adjustStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		for _, it := range req.ItemsExchanged {
			if it.Quantity <= 0 {
				return apperror.InvalidRequest("invalid exchange quantity for product %d", it.ProductID)
			}
			if err := adjustStock(tx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}

		created = Return{
			SaleID:         sl.ID,
			UserID:         actorUserID,
			ItemsReturned:  req.ItemsReturned,
			ItemsExchanged: req.ItemsExchanged,
			SubtotalRefund: subRef,
			TaxRefund:      taxRef,
			TotalRefund:    totalRef,
			Action:         action,
			RefundMethod:   req.RefundMethod,
			Reason:         req.Reason,
			Status:         StatusCompleted,
		}

		if err := tx.Create(&created).Error; err != nil {
			return apperror.Internal(err, "failed to create return")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record("return_create", actorUserID, "success",
		fmt.Sprintf("ReturnID=%d, SaleID=%d, action=%s, total_refund=%.2f",
			created.ID, created.SaleID, created.Action, created.TotalRefund))

	return &created, nil
}

// adjustStock applies a stock delta to one product inside the transaction.
// Negative deltas (the exchange leg) require sufficient stock.
func adjustStock(tx *gorm.DB, productID uint, delta int) error {
	var p product.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product %d not found", productID)
		}
		return apperror.Internal(err, "failed to load product %d", productID)
	}

	if delta < 0 && p.Stock < -delta {
		return apperror.InsufficientStock("insufficient stock for exchange of %s", p.Name)
	}

	if err := tx.Model(&p).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		return apperror.Internal(err, "failed to update stock for product %d", productID)
	}
	return nil
}

// GetReturn retrieves a single return by ID
func (s *Service) GetReturn(id uint) (*Return, error) {
	var r Return
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("return not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve return")
	}
	return &r, nil
}

// GetReturns retrieves returns with filtering and pagination, most recent first
func (s *Service) GetReturns(req *ReturnListRequest) (*ReturnListResponse, error) {
	query, err := s.filteredQuery(req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count returns")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 500 {
		req.Limit = 50
	}
	offset := (req.Page - 1) * req.Limit

	var items []Return
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&items).Error; err != nil {
		return nil, apperror.Internal(err, "failed to retrieve returns")
	}

	return &ReturnListResponse{Items: items, Total: total}, nil
}

// ExportCSV writes all returns matching the filters as CSV. The output is
// prefixed with a UTF-8 BOM so spreadsheet tools detect the encoding.
func (s *Service) ExportCSV(req *ReturnListRequest, w io.Writer) error {
	query, err := s.filteredQuery(req)
	if err != nil {
		return err
	}

	var items []Return
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return apperror.Internal(err, "failed to retrieve returns")
	}

	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return apperror.Internal(err, "failed to write export")
	}

	writer := csv.NewWriter(w)
	header := []string{
		"id", "sale_id", "created_at", "action", "refund_method",
		"subtotal_refund", "tax_refund", "total_refund", "status", "items_returned_count",
	}
	if err := writer.Write(header); err != nil {
		return apperror.Internal(err, "failed to write export")
	}

	for _, r := range items {
		itemCount := 0
		for _, it := range r.ItemsReturned {
			itemCount += it.Quantity
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatUint(uint64(r.SaleID), 10),
			r.CreatedAt.Format(time.RFC3339),
			string(r.Action),
			r.RefundMethod,
			fmt.Sprintf("%.2f", r.SubtotalRefund),
			fmt.Sprintf("%.2f", r.TaxRefund),
			fmt.Sprintf("%.2f", r.TotalRefund),
			string(r.Status),
			strconv.Itoa(itemCount),
		}
		if err := writer.Write(record); err != nil {
			return apperror.Internal(err, "failed to write export")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperror.Internal(err, "failed to write export")
	}
	return nil
}

func (s *Service) filteredQuery(req *ReturnListRequest) (*gorm.DB, error) {
	query := s.db.Model(&Return{})

	if req.SaleID > 0 {
		query = query.Where("sale_id = ?", req.SaleID)
	}
	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.RefundMethod != "" {
		query = query.Where("refund_method = ?", req.RefundMethod)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if req.DateFrom != "" {
		from, err := parseDateBound(req.DateFrom, false)
		if err != nil {
			return nil, apperror.InvalidRequest("invalid date_from: %s", req.DateFrom)
		}
		query = query.Where("created_at >= ?", from)
	}
	if req.DateTo != "" {
		to, err := parseDateBound(req.DateTo, true)
		if err != nil {
			return nil, apperror.InvalidRequest("invalid date_to: %s", req.DateTo)
		}
		query = query.Where("created_at <= ?", to)
	}

	return query, nil
}

// parseDateBound accepts YYYY-MM-DD (expanded to start or end of day) or a
// full RFC3339 timestamp.
func parseDateBound(value string, endOfDay bool) (time.Time, error) {
	if len(value) <= 10 {
		d, err := time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, err
		}
		if endOfDay {
			return d.Add(24*time.Hour - time.Nanosecond), nil
		}
		return d, nil
	}
	return time.Parse(time.RFC3339, value)
}
