// internal/domain/alert/rules.go
package alert

import "fmt"

// SweepConfig holds the thresholds one sweep evaluates products against.
type SweepConfig struct {
	LowStockThreshold      int `json:"low_stock_threshold"`
	CriticalStockThreshold int `json:"critical_stock_threshold"`
	NoMovementDays         int `json:"no_movement_days"`
}

// alertsFor decides what a sweep creates for one product. The sweep
// deactivates every previously active alert for the product before creating
// these, so the returned set is exactly the product's active alerts after the
// sweep: at most one stock-level alert plus an independent no_movement one.
func alertsFor(productName string, stock int, hadRecentSale bool, cfg SweepConfig) []*InventoryAlert {
	var alerts []*InventoryAlert
	if a := stockAlertFor(productName, stock, cfg); a != nil {
		alerts = append(alerts, a)
	}
	if a := noMovementAlertFor(productName, stock, hadRecentSale, cfg); a != nil {
		alerts = append(alerts, a)
	}
	return alerts
}

// stockAlertFor evaluates the mutually-exclusive stock-level branches in
// priority order and returns the alert the first matching branch produces, or
// nil when stock is above the low threshold. At most one stock-level alert
// per product per sweep.
func stockAlertFor(productName string, stock int, cfg SweepConfig) *InventoryAlert {
	switch {
	case stock == 0:
		threshold := cfg.LowStockThreshold
		zero := 0
		return &InventoryAlert{
			AlertType: TypeNoStock,
			Severity:  SeverityCritical,
			Message: fmt.Sprintf(
				"Product '%s' is out of stock. Urgent restocking required.", productName),
			CurrentStock: &zero,
			Threshold:    &threshold,
			IsActive:     true,
		}
	case stock <= cfg.CriticalStockThreshold:
		threshold := cfg.CriticalStockThreshold
		current := stock
		return &InventoryAlert{
			AlertType: TypeLowStock,
			Severity:  SeverityCritical,
			Message: fmt.Sprintf(
				"Product '%s' has critical stock (%d units). Restock immediately.", productName, stock),
			CurrentStock: &current,
			Threshold:    &threshold,
			IsActive:     true,
		}
	case stock <= cfg.LowStockThreshold:
		threshold := cfg.LowStockThreshold
		current := stock
		return &InventoryAlert{
			AlertType: TypeLowStock,
			Severity:  SeverityHigh,
			Message: fmt.Sprintf(
				"Product '%s' has low stock (%d units). Consider restocking soon.", productName, stock),
			CurrentStock: &current,
			Threshold:    &threshold,
			IsActive:     true,
		}
	default:
		return nil
	}
}

// noMovementAlertFor returns a no_movement alert when the product had no sale
// activity inside the window and still holds stock. Evaluated independently
// of the stock branches, so a slow-moving low-stock product can carry both a
// low_stock and a no_movement alert from the same sweep.
func noMovementAlertFor(productName string, stock int, hadRecentSale bool, cfg SweepConfig) *InventoryAlert {
	if hadRecentSale || stock <= 0 {
		return nil
	}

	current := stock
	days := cfg.NoMovementDays
	return &InventoryAlert{
		AlertType: TypeNoMovement,
		Severity:  SeverityMedium,
		Message: fmt.Sprintf(
			"Product '%s' had no sales in the last %d days. Consider promotions or discounts.",
			productName, cfg.NoMovementDays),
		CurrentStock:        &current,
		DaysWithoutMovement: &days,
		IsActive:            true,
	}
}
