package alert

import "testing"

func TestStockAlertFor(t *testing.T) {
	cfg := SweepConfig{
		LowStockThreshold:      10,
		CriticalStockThreshold: 5,
		NoMovementDays:         30,
	}

	tests := []struct {
		name          string
		stock         int
		wantType      AlertType
		wantSeverity  Severity
		wantThreshold int
		wantNil       bool
	}{
		{"out of stock", 0, TypeNoStock, SeverityCritical, 10, false},
		{"critical low stock", 3, TypeLowStock, SeverityCritical, 5, false},
		{"exactly at critical threshold", 5, TypeLowStock, SeverityCritical, 5, false},
		{"low stock", 7, TypeLowStock, SeverityHigh, 10, false},
		{"exactly at low threshold", 10, TypeLowStock, SeverityHigh, 10, false},
		{"just above low threshold", 11, "", "", 0, true},
		{"healthy stock", 100, "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stockAlertFor("Chips", tt.stock, cfg)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no alert for stock %d, got %s", tt.stock, got.AlertType)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected alert for stock %d, got nil", tt.stock)
			}
			if got.AlertType != tt.wantType {
				t.Fatalf("alert type = %s, want %s", got.AlertType, tt.wantType)
			}
			if got.Severity != tt.wantSeverity {
				t.Fatalf("severity = %s, want %s", got.Severity, tt.wantSeverity)
			}
			if got.Threshold == nil || *got.Threshold != tt.wantThreshold {
				t.Fatalf("threshold = %v, want %d", got.Threshold, tt.wantThreshold)
			}
			if got.CurrentStock == nil || *got.CurrentStock != tt.stock {
				t.Fatalf("current stock = %v, want %d", got.CurrentStock, tt.stock)
			}
			if !got.IsActive {
				t.Fatal("new alert should be active")
			}
		})
	}
}

func TestStockAlertForBranchExclusivity(t *testing.T) {
	// Out-of-stock must win over the critical branch even though 0 <= critical
	cfg := SweepConfig{LowStockThreshold: 10, CriticalStockThreshold: 5}

	got := stockAlertFor("Dish Soap", 0, cfg)
	if got == nil {
		t.Fatal("expected alert, got nil")
	}
	if got.AlertType != TypeNoStock {
		t.Fatalf("stock zero must produce no_stock, got %s", got.AlertType)
	}
}

func TestNoMovementAlertFor(t *testing.T) {
	cfg := SweepConfig{LowStockThreshold: 10, CriticalStockThreshold: 5, NoMovementDays: 30}

	tests := []struct {
		name          string
		stock         int
		hadRecentSale bool
		wantNil       bool
	}{
		{"stale product with stock", 50, false, false},
		{"recently sold", 50, true, true},
		{"no stock left", 0, false, true},
		{"negative stock", -1, false, true},
		{"stale low stock product", 4, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := noMovementAlertFor("Iced Tea", tt.stock, tt.hadRecentSale, cfg)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no alert, got %s", got.AlertType)
				}
				return
			}
			if got == nil {
				t.Fatal("expected no_movement alert, got nil")
			}
			if got.AlertType != TypeNoMovement {
				t.Fatalf("alert type = %s, want %s", got.AlertType, TypeNoMovement)
			}
			if got.Severity != SeverityMedium {
				t.Fatalf("severity = %s, want %s", got.Severity, SeverityMedium)
			}
			if got.DaysWithoutMovement == nil || *got.DaysWithoutMovement != 30 {
				t.Fatalf("days without movement = %v, want 30", got.DaysWithoutMovement)
			}
		})
	}
}

func TestAlertsFor(t *testing.T) {
	cfg := SweepConfig{
		LowStockThreshold:      10,
		CriticalStockThreshold: 5,
		NoMovementDays:         30,
	}

	tests := []struct {
		name          string
		stock         int
		hadRecentSale bool
		wantTypes     []AlertType
	}{
		{"healthy and selling", 100, true, nil},
		{"healthy but stale", 100, false, []AlertType{TypeNoMovement}},
		{"out of stock", 0, false, []AlertType{TypeNoStock}},
		{"out of stock never gets no_movement", 0, true, []AlertType{TypeNoStock}},
		{"low stock but selling", 8, true, []AlertType{TypeLowStock}},
		{"low stock and stale co-fire", 8, false, []AlertType{TypeLowStock, TypeNoMovement}},
		{"critical and stale co-fire", 3, false, []AlertType{TypeLowStock, TypeNoMovement}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alertsFor("Chips", tt.stock, tt.hadRecentSale, cfg)
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("got %d alerts, want %d", len(got), len(tt.wantTypes))
			}
			for i, a := range got {
				if a.AlertType != tt.wantTypes[i] {
					t.Fatalf("alert %d type = %s, want %s", i, a.AlertType, tt.wantTypes[i])
				}
				if !a.IsActive {
					t.Fatalf("alert %d should be active", i)
				}
			}
		})
	}
}

// A sweep deactivates a product's previous alerts before creating new ones,
// so the active set after any number of sweeps over the same state must be
// exactly one decision's worth: no duplicates accumulate and never more than
// one stock-level alert.
func TestAlertsForRepeatedSweepsStayBounded(t *testing.T) {
	cfg := SweepConfig{
		LowStockThreshold:      10,
		CriticalStockThreshold: 5,
		NoMovementDays:         30,
	}

	for stock := 0; stock <= 15; stock++ {
		for _, hadRecentSale := range []bool{true, false} {
			first := alertsFor("Chips", stock, hadRecentSale, cfg)
			second := alertsFor("Chips", stock, hadRecentSale, cfg)

			if len(first) != len(second) {
				t.Fatalf("stock %d: repeated sweep changed alert count %d -> %d",
					stock, len(first), len(second))
			}
			for i := range first {
				if first[i].AlertType != second[i].AlertType {
					t.Fatalf("stock %d: repeated sweep changed alert %d type", stock, i)
				}
			}

			stockAlerts := 0
			for _, a := range first {
				if a.AlertType == TypeNoStock || a.AlertType == TypeLowStock {
					stockAlerts++
				}
			}
			if stockAlerts > 1 {
				t.Fatalf("stock %d: %d stock-level alerts in one sweep", stock, stockAlerts)
			}
		}
	}
}
