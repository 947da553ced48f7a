// internal/domain/sale/entity.go
package sale

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SaleStatus represents the sale status
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Payment methods accepted at the register.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// SaleItem is one line of a sale. Once the sale completes the line is an
// immutable snapshot: returns always price against its recorded unit_price,
// never the product's current price.
type SaleItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// SaleItems is stored as a single JSONB column rather than a child table;
// acceptable because items never change after the sale completes.
type SaleItems []SaleItem

// Value implements driver.Valuer for JSONB storage
func (si SaleItems) Value() (driver.Value, error) {
	return json.Marshal(si)
}

// Scan implements sql.Scanner for JSONB storage
func (si *SaleItems) Scan(value interface{}) error {
	if value == nil {
		*si = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, si)
	case string:
		return json.Unmarshal([]byte(v), si)
	default:
		return fmt.Errorf("unsupported type for sale items: %T", value)
	}
}

// Sale represents a completed point-of-sale transaction
type Sale struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Items         SaleItems      `gorm:"type:jsonb;not null" json:"items"`
	Subtotal      float64        `gorm:"not null" json:"subtotal"`
	Tax           float64        `gorm:"not null" json:"tax"`
	Discount      float64        `gorm:"default:0" json:"discount"`
	Total         float64        `gorm:"not null" json:"total"`
	PaymentMethod string         `gorm:"not null;size:20" json:"payment_method"` // cash, card, transfer
	Status        SaleStatus     `gorm:"not null;size:20;default:'completed'" json:"status"`
	CustomerID    *uint          `gorm:"index" json:"customer_id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Sale
func (Sale) TableName() string {
	return "sales"
}
