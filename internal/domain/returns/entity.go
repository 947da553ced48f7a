// internal/domain/returns/entity.go
package returns

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ReturnAction represents what the customer gets back
type ReturnAction string

const (
	ActionRefund     ReturnAction = "refund"
	ActionCreditNote ReturnAction = "credit_note"
	ActionExchange   ReturnAction = "exchange"
)

// ReturnStatus represents the processing state of a return
type ReturnStatus string

const (
	StatusPending   ReturnStatus = "pending"
	StatusCompleted ReturnStatus = "completed"
	StatusFailed    ReturnStatus = "failed"
)

// ReturnItem is one line of a return or exchange. Quantity is validated
// against the originating sale's snapshot; unit price and subtotal from the
// client are informational only and never used for refund computation.
type ReturnItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// ReturnItems is stored as a JSONB column, mirroring the sale item snapshot.
type ReturnItems []ReturnItem

// Value implements driver.Valuer for JSONB storage
func (ri ReturnItems) Value() (driver.Value, error) {
	if ri == nil {
		return nil, nil
	}
	return json.Marshal(ri)
}

// Scan implements sql.Scanner for JSONB storage
func (ri *ReturnItems) Scan(value interface{}) error {
	if value == nil {
		*ri = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ri)
	case string:
		return json.Unmarshal([]byte(v), ri)
	default:
		return fmt.Errorf("unsupported type for return items: %T", value)
	}
}

// Return records a processed return or exchange against exactly one sale.
// Invariant: for a given (sale_id, product_id) pair, the sum of quantities
// across all returns never exceeds the quantity sold.
type Return struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"not null;index" json:"sale_id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ItemsReturned  ReturnItems `gorm:"type:jsonb;not null" json:"items_returned"`
	ItemsExchanged ReturnItems `gorm:"type:jsonb" json:"items_exchanged,omitempty"`

	SubtotalRefund float64 `gorm:"not null;default:0" json:"subtotal_refund"`
	TaxRefund      float64 `gorm:"not null;default:0" json:"tax_refund"`
	TotalRefund    float64 `gorm:"not null;default:0" json:"total_refund"`

	Action       ReturnAction `gorm:"not null;size:20" json:"action"`
	RefundMethod string       `gorm:"size:20" json:"refund_method,omitempty"`

	Reason string       `gorm:"size:120" json:"reason,omitempty"`
	Status ReturnStatus `gorm:"not null;size:20;default:'completed'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Return
func (Return) TableName() string {
	return "returns"
}
