// internal/pkg/auth/rbac.go
package auth

// Role names recognized by the system.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// Capability is a named permission checked at the start of gated operations.
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManageProducts Capability = "manage_products"
	CapCreateSales    Capability = "create_sales"
	CapCreateReturns  Capability = "create_returns"
	CapGenerateAlerts Capability = "generate_alerts"
	CapDeleteAlerts   Capability = "delete_alerts"
)

// roleCapabilities maps roles to their capability set. Built once at package
// init and never mutated afterwards.
var roleCapabilities = map[string]map[Capability]bool{
	RoleAdmin: capSet(
		CapManageUsers,
		CapManageProducts,
		CapCreateSales,
		CapCreateReturns,
		CapGenerateAlerts,
		CapDeleteAlerts,
	),
	RoleManager: capSet(
		CapManageProducts,
		CapCreateSales,
		CapCreateReturns,
		CapGenerateAlerts,
	),
	RoleCashier: capSet(
		CapCreateSales,
		CapCreateReturns,
	),
}

func capSet(caps ...Capability) map[Capability]bool {
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// RoleCan reports whether the given role holds a capability. Unknown roles
// hold nothing.
func RoleCan(role string, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// IsValidRole reports whether the role name is one the system recognizes.
func IsValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
