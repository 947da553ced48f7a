// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles product catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=500"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category" binding:"required,max=100"`
	SKU         string  `json:"sku" binding:"max=50"`
	Barcode     string  `json:"barcode" binding:"max=50"`
	ImageURL    string  `json:"image_url" binding:"max=500"`
}

// UpdateProductRequest represents product update data; nil fields are kept
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
	Barcode     *string  `json:"barcode"`
	ImageURL    *string  `json:"image_url"`
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=50"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ProductListResponse represents a paginated product list
type ProductListResponse struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{})

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", req.Search)
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count products")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 500 {
		req.Limit = 50
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Order("name asc").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, apperror.Internal(err, "failed to retrieve products")
	}

	return &ProductListResponse{Items: products, Total: total}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var p Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve product")
	}
	return &p, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	if req.SKU != "" {
		var existing Product
		if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
			return nil, apperror.Conflict("product with SKU %q already exists", req.SKU)
		}
	}
	if req.Barcode != "" {
		var existing Product
		if err := s.db.Where("barcode = ?", req.Barcode).First(&existing).Error; err == nil {
			return nil, apperror.Conflict("product with barcode %q already exists", req.Barcode)
		}
	}

	p := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		ImageURL:    req.ImageURL,
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, apperror.Internal(err, "failed to create product")
	}

	return &p, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *UpdateProductRequest) (*Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperror.InvalidRequest("price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperror.InvalidRequest("stock must not be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return p, nil
	}

	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update product")
	}

	return p, nil
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	p, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(p).Error; err != nil {
		return apperror.Internal(err, "failed to delete product")
	}
	return nil
}
