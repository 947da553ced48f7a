// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/pos-backend/internal/domain/alert"
	"github.com/your-org/pos-backend/internal/domain/audit"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/returns"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&customer.Customer{},
		&product.Product{},
		&sale.Sale{},
		&returns.Return{},
		&alert.InventoryAlert{},
		&audit.Log{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_stock ON products(category, stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_stock ON products(stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Sale indexes
		"CREATE INDEX IF NOT EXISTS idx_sales_status_created ON sales(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_user ON sales(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_items_gin ON sales USING GIN (items)",

		// Return indexes
		"CREATE INDEX IF NOT EXISTS idx_returns_sale ON returns(sale_id)",
		"CREATE INDEX IF NOT EXISTS idx_returns_action ON returns(action)",
		"CREATE INDEX IF NOT EXISTS idx_returns_created_at ON returns(created_at DESC)",

		// Alert indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_alerts_product_active ON inventory_alerts(product_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_alerts_active_read ON inventory_alerts(is_active, is_read)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_alerts_severity ON inventory_alerts(severity)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_action_created ON audit_logs(action, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_actor ON audit_logs(actor_user_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedCashierUser(); err != nil {
		return fmt.Errorf("failed to seed cashier user: %w", err)
	}

	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed sample products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Username: "admin",
			Email:    "admin@example.com",
			Password: string(hashedPassword),
			FullName: "Administrator",
			Role:     auth.RoleAdmin,
			IsActive: true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin (password: Admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}

func (m *Migration) seedCashierUser() error {
	log.Println("👤 Seeding cashier user...")

	var existing user.User
	result := m.db.Where("username = ?", "cashier").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Cashier123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		cashierUser := user.User{
			Username: "cashier",
			Email:    "cashier@example.com",
			Password: string(hashedPassword),
			FullName: "Demo Cashier",
			Role:     auth.RoleCashier,
			IsActive: true,
		}

		if err := m.db.Create(&cashierUser).Error; err != nil {
			return err
		}

		log.Println("✅ Created cashier user: cashier (password: Cashier123)")
	} else {
		log.Println("⏭️ Cashier user already exists")
	}

	return nil
}

// seedSampleProducts creates a small catalog for development
func (m *Migration) seedSampleProducts() error {
	log.Println("🛍️ Seeding sample products...")

	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)

	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	sampleProducts := []product.Product{
		{
			SKU:      "BEV-001",
			Barcode:  "8991001001001",
			Name:     "Mineral Water 600ml",
			Price:    0.80,
			Stock:    120,
			Category: "Beverages",
		},
		{
			SKU:      "BEV-002",
			Barcode:  "8991001001002",
			Name:     "Iced Tea Bottle 450ml",
			Price:    1.20,
			Stock:    60,
			Category: "Beverages",
		},
		{
			SKU:      "SNK-001",
			Barcode:  "8991002001001",
			Name:     "Potato Chips 68g",
			Price:    1.50,
			Stock:    8,
			Category: "Snacks",
		},
		{
			SKU:      "SNK-002",
			Barcode:  "8991002001002",
			Name:     "Chocolate Bar 45g",
			Price:    1.10,
			Stock:    3,
			Category: "Snacks",
		},
		{
			SKU:      "HSH-001",
			Barcode:  "8991003001001",
			Name:     "Dish Soap 500ml",
			Price:    2.30,
			Stock:    0,
			Category: "Household",
		},
	}

	for _, p := range sampleProducts {
		if err := m.db.Create(&p).Error; err != nil {
			return err
		}
		log.Printf("✅ Created product: %s (%s)", p.Name, p.SKU)
	}

	return nil
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "customers", "products", "sales", "returns", "inventory_alerts", "audit_logs"}

	log.Println("📊 Table information:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error counting rows: %v", table, err)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}
}
