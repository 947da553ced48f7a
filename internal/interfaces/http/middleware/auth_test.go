package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/pkg/auth"
)

func capabilityRouter(role string, cap auth.Capability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if role != "" {
				c.Set("user_role", role)
			}
			c.Next()
		},
		RequireCapability(cap),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	return router
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		cap        auth.Capability
		wantStatus int
	}{
		{"admin manages users", auth.RoleAdmin, auth.CapManageUsers, http.StatusOK},
		{"manager cannot manage users", auth.RoleManager, auth.CapManageUsers, http.StatusForbidden},
		{"cashier cannot manage users", auth.RoleCashier, auth.CapManageUsers, http.StatusForbidden},
		{"manager generates alerts", auth.RoleManager, auth.CapGenerateAlerts, http.StatusOK},
		{"manager cannot delete alerts", auth.RoleManager, auth.CapDeleteAlerts, http.StatusForbidden},
		{"unknown role holds nothing", "intern", auth.CapCreateSales, http.StatusForbidden},
		{"missing role is unauthorized", "", auth.CapCreateSales, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			capabilityRouter(tt.role, tt.cap).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
