// internal/domain/sale/service.go
package sale

import (
	"errors"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles sale business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sale service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSaleRequest represents sale creation data
type CreateSaleRequest struct {
	Items         []SaleItem `json:"items" binding:"required,min=1"`
	Subtotal      float64    `json:"subtotal" binding:"gte=0"`
	Tax           float64    `json:"tax" binding:"gte=0"`
	Discount      float64    `json:"discount" binding:"gte=0"`
	Total         float64    `json:"total" binding:"gte=0"`
	PaymentMethod string     `json:"payment_method" binding:"required,paymentmethod"`
	CustomerID    *uint      `json:"customer_id"`
}

// SaleListRequest represents sale list query parameters
type SaleListRequest struct {
	Page   int        `form:"page,default=1"`
	Limit  int        `form:"limit,default=100"`
	Status SaleStatus `form:"status"`
}

// SaleListResponse represents a paginated sale list
type SaleListResponse struct {
	Items []Sale `json:"items"`
	Total int64  `json:"total"`
}

// CreateSale creates a sale and decrements stock for every line item inside
// one transaction. Insufficient stock on any line aborts the whole sale.
func (s *Service) CreateSale(req *CreateSaleRequest, userID uint) (*Sale, error) {
	var created Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			if item.Quantity <= 0 {
				return apperror.InvalidRequest("invalid quantity for product %d", item.ProductID)
			}

			var p product.Product
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.NotFound("product %d not found", item.ProductID)
				}
				return apperror.Internal(err, "failed to load product %d", item.ProductID)
			}

			if p.Stock < item.Quantity {
				return apperror.InsufficientStock(
					"insufficient stock for %s: available %d, requested %d",
					p.Name, p.Stock, item.Quantity)
			}

			if err := tx.Model(&p).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return apperror.Internal(err, "failed to update stock for product %d", p.ID)
			}
		}

		created = Sale{
			Items:         req.Items,
			Subtotal:      req.Subtotal,
			Tax:           req.Tax,
			Discount:      req.Discount,
			Total:         req.Total,
			PaymentMethod: req.PaymentMethod,
			Status:        SaleStatusCompleted,
			CustomerID:    req.CustomerID,
			UserID:        userID,
		}

		if err := tx.Create(&created).Error; err != nil {
			return apperror.Internal(err, "failed to create sale")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// GetSales retrieves sales ordered by most recent first
func (s *Service) GetSales(req *SaleListRequest) (*SaleListResponse, error) {
	var sales []Sale
	var total int64

	query := s.db.Model(&Sale{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count sales")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 500 {
		req.Limit = 100
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&sales).Error; err != nil {
		return nil, apperror.Internal(err, "failed to retrieve sales")
	}

	return &SaleListResponse{Items: sales, Total: total}, nil
}

// GetSale retrieves a single sale by ID
func (s *Service) GetSale(id uint) (*Sale, error) {
	var sl Sale
	if err := s.db.First(&sl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("sale not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve sale")
	}
	return &sl, nil
}

// UpdateSaleStatus updates the status of a sale
func (s *Service) UpdateSaleStatus(id uint, status SaleStatus) (*Sale, error) {
	switch status {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
	default:
		return nil, apperror.InvalidRequest("unknown sale status %q", status)
	}

	sl, err := s.GetSale(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(sl).Update("status", status).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update sale status")
	}

	return sl, nil
}
