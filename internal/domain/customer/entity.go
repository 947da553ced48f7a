// internal/domain/customer/entity.go
package customer

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a store customer the POS can attach sales to
type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;size:120"`
	Email     string         `json:"email" gorm:"size:255;index"`
	Phone     string         `json:"phone" gorm:"size:30"`
	Address   string         `json:"address" gorm:"size:255"`
	Notes     string         `json:"notes" gorm:"size:500"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}
