package auth

import "testing"

func TestRoleCan(t *testing.T) {
	tests := []struct {
		role string
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapManageUsers, true},
		{RoleAdmin, CapGenerateAlerts, true},
		{RoleAdmin, CapDeleteAlerts, true},
		{RoleManager, CapGenerateAlerts, true},
		{RoleManager, CapDeleteAlerts, false},
		{RoleManager, CapManageUsers, false},
		{RoleManager, CapCreateReturns, true},
		{RoleCashier, CapCreateSales, true},
		{RoleCashier, CapCreateReturns, true},
		{RoleCashier, CapGenerateAlerts, false},
		{RoleCashier, CapManageProducts, false},
		{"intern", CapCreateSales, false},
		{"", CapCreateSales, false},
	}

	for _, tt := range tests {
		if got := RoleCan(tt.role, tt.cap); got != tt.want {
			t.Errorf("RoleCan(%q, %q) = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleCashier} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}

	for _, role := range []string{"", "root", "Admin", "CASHIER"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}
