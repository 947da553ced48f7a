// internal/domain/alert/entity.go
package alert

import (
	"time"

	"github.com/your-org/pos-backend/internal/domain/product"
)

// AlertType classifies what condition an alert reports
type AlertType string

const (
	TypeNoStock    AlertType = "no_stock"
	TypeLowStock   AlertType = "low_stock"
	TypeNoMovement AlertType = "no_movement"
)

// Severity orders alerts for display, critical first
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// InventoryAlert is one alert emitted by the sweep. A sweep deactivates every
// active alert for a product before conditionally creating new ones, so the
// active set after a sweep exactly reflects the product's current condition.
type InventoryAlert struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ProductID  uint       `gorm:"not null;index" json:"product_id"`
	AlertType  AlertType  `gorm:"not null;size:50;index" json:"alert_type"`
	Severity   Severity   `gorm:"not null;size:20" json:"severity"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	IsActive   bool       `gorm:"not null;default:true;index" json:"is_active"`
	IsRead     bool       `gorm:"not null;default:false" json:"is_read"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CurrentStock        *int `json:"current_stock,omitempty"`
	Threshold           *int `json:"threshold,omitempty"`
	DaysWithoutMovement *int `json:"days_without_movement,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName overrides the table name for InventoryAlert
func (InventoryAlert) TableName() string {
	return "inventory_alerts"
}

// AlertWithProduct is the read projection returned by list/get endpoints.
// Product fields are populated at query time; the persisted entity is never
// mutated with derived values.
type AlertWithProduct struct {
	InventoryAlert
	ProductName     string `json:"product_name"`
	ProductSKU      string `json:"product_sku,omitempty"`
	ProductCategory string `json:"product_category"`
}
