// internal/domain/customer/service.go
package customer

import (
	"errors"
	"strings"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles customer business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

// CreateCustomerRequest represents customer creation data
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Address string `json:"address" binding:"omitempty,max=255"`
	Notes   string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateCustomerRequest represents customer update data
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=120"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Notes   *string `json:"notes" binding:"omitempty,max=500"`
}

// CustomerListRequest represents customer list query parameters
type CustomerListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

// GetCustomers retrieves customers with optional name/phone search
func (s *Service) GetCustomers(req *CustomerListRequest) ([]Customer, int64, error) {
	query := s.db.Model(&Customer{})

	if req.Search != "" {
		pattern := "%" + strings.TrimSpace(req.Search) + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to count customers")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit

	var customers []Customer
	if err := query.Order("name ASC").Offset(offset).Limit(req.Limit).Find(&customers).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to retrieve customers")
	}

	return customers, total, nil
}

// GetCustomer retrieves a customer by ID
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	var c Customer
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve customer")
	}
	return &c, nil
}

// CreateCustomer creates a new customer
func (s *Service) CreateCustomer(req *CreateCustomerRequest) (*Customer, error) {
	c := Customer{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Address: req.Address,
		Notes:   req.Notes,
	}

	if err := s.db.Create(&c).Error; err != nil {
		return nil, apperror.Internal(err, "failed to create customer")
	}
	return &c, nil
}

// UpdateCustomer updates customer information
func (s *Service) UpdateCustomer(id uint, req *UpdateCustomerRequest) (*Customer, error) {
	c, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return c, nil
	}

	if err := s.db.Model(c).Updates(updates).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update customer")
	}
	return c, nil
}

// DeleteCustomer soft deletes a customer
func (s *Service) DeleteCustomer(id uint) error {
	c, err := s.GetCustomer(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(c).Error; err != nil {
		return apperror.Internal(err, "failed to delete customer")
	}
	return nil
}
