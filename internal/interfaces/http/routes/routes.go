// internal/interfaces/http/routes/routes.go
package routes

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/returns"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

var registerValidatorsOnce sync.Once

// registerValidators installs the custom binding tags used by request structs
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case sale.PaymentMethodCash, sale.PaymentMethodCard, sale.PaymentMethodTransfer:
				return true
			}
			return false
		})

		v.RegisterValidation("returnaction", func(fl validator.FieldLevel) bool {
			switch returns.ReturnAction(fl.Field().String()) {
			case returns.ActionRefund, returns.ActionCreditNote, returns.ActionExchange:
				return true
			}
			return false
		})
	})
}

// SetupRoutes wires every API route group under the given router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	registerValidators()

	SetupAuthRoutes(rg, db, cfg)
	SetupUserAdminRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupSaleRoutes(rg, db, cfg)
	SetupCustomerRoutes(rg, db, cfg)
	SetupReturnRoutes(rg, db, cfg)
	SetupAlertRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	authGroup := rg.Group("/auth")
	{
		// Public auth endpoints
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupUserAdminRoutes sets up administrator user management routes
func SetupUserAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	users.Use(middleware.RequireCapability(auth.CapManageUsers))
	{
		users.GET("", userAdminHandler.ListUsers)
		users.GET("/:id", userAdminHandler.GetUser)
		users.POST("", userAdminHandler.CreateUser)
		users.PUT("/:id", userAdminHandler.UpdateUser)
		users.DELETE("/:id", userAdminHandler.DeleteUser)
	}
}

// SetupProductRoutes sets up product catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		manage := products.Group("")
		manage.Use(middleware.RequireCapability(auth.CapManageProducts))
		{
			manage.POST("", productHandler.CreateProduct)
			manage.PUT("/:id", productHandler.UpdateProduct)
			manage.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupSaleRoutes sets up point of sale routes
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, cfg)

	sales := rg.Group("/sales")
	sales.Use(middleware.AuthMiddleware(cfg))
	{
		sales.GET("", saleHandler.GetSales)
		sales.GET("/:id", saleHandler.GetSale)
		sales.POST("", middleware.RequireCapability(auth.CapCreateSales), saleHandler.CreateSale)
		sales.PUT("/:id/status", middleware.RequireCapability(auth.CapManageProducts), saleHandler.UpdateSaleStatus)
	}
}

// SetupCustomerRoutes sets up customer routes
func SetupCustomerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	customerHandler := handlers.NewCustomerHandler(db, cfg)

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("", customerHandler.GetCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.POST("", customerHandler.CreateCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}
}

// SetupReturnRoutes sets up return and refund routes
func SetupReturnRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	returnHandler := handlers.NewReturnHandler(db, cfg)

	returnsGroup := rg.Group("/returns")
	returnsGroup.Use(middleware.AuthMiddleware(cfg))
	{
		returnsGroup.GET("", returnHandler.GetReturns)
		returnsGroup.GET("/export", returnHandler.ExportReturns)
		returnsGroup.GET("/validate/:sale_id", returnHandler.ValidateReturn)
		returnsGroup.GET("/:id", returnHandler.GetReturn)
		returnsGroup.GET("/:id/receipt", returnHandler.GetReturnReceipt)
		returnsGroup.POST("", middleware.RequireCapability(auth.CapCreateReturns), returnHandler.CreateReturn)
	}
}

// SetupAlertRoutes sets up inventory alert routes
func SetupAlertRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	alertHandler := handlers.NewAlertHandler(db, cfg, redisClient)

	alerts := rg.Group("/inventory-alerts")
	alerts.Use(middleware.AuthMiddleware(cfg))
	{
		alerts.GET("", alertHandler.GetAlerts)
		alerts.GET("/stats", alertHandler.GetAlertStats)
		alerts.GET("/:id", alertHandler.GetAlert)
		alerts.POST("/generate", middleware.RequireCapability(auth.CapGenerateAlerts), alertHandler.GenerateAlerts)
		alerts.PATCH("/:id", alertHandler.UpdateAlert)
		alerts.PUT("/:id/read", alertHandler.MarkAlertRead)
		alerts.PUT("/read-all", alertHandler.MarkAllAlertsRead)
		alerts.PUT("/:id/resolve", alertHandler.ResolveAlert)
		alerts.DELETE("/:id", middleware.RequireCapability(auth.CapDeleteAlerts), alertHandler.DeleteAlert)
	}
}
