// internal/domain/alert/service.go
package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

const statsCacheKey = "inventory_alerts:stats"
const statsCacheTTL = 30 * time.Second

// Service handles inventory alert business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	redisClient *redis.Client

	// now is injectable for deterministic sweeps in tests
	now func() time.Time
}

// NewService creates a new alert service. redisClient may be nil; stats are
// then computed on every call.
func NewService(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// SweepResult reports what one alert sweep produced
type SweepResult struct {
	Count  int      `json:"count"`
	Alerts []string `json:"alerts"`
}

// AlertListRequest represents alert list query parameters
type AlertListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=100"`
	ActiveOnly bool   `form:"active_only,default=true"`
	UnreadOnly bool   `form:"unread_only"`
	AlertType  string `form:"alert_type"`
	Severity   string `form:"severity"`
}

// Stats aggregates active alert counts for dashboards
type Stats struct {
	TotalAlerts    int64            `json:"total_alerts"`
	ActiveAlerts   int64            `json:"active_alerts"`
	UnreadAlerts   int64            `json:"unread_alerts"`
	CriticalAlerts int64            `json:"critical_alerts"`
	ByType         map[string]int64 `json:"by_type"`
	BySeverity     map[string]int64 `json:"by_severity"`
}

// defaults fills unset sweep thresholds from configuration
func (s *Service) defaults(cfg *SweepConfig) SweepConfig {
	out := SweepConfig{
		LowStockThreshold:      s.config.Alerts.LowStockThreshold,
		CriticalStockThreshold: s.config.Alerts.CriticalStockThreshold,
		NoMovementDays:         s.config.Alerts.NoMovementDays,
	}
	if cfg == nil {
		return out
	}
	if cfg.LowStockThreshold > 0 {
		out.LowStockThreshold = cfg.LowStockThreshold
	}
	if cfg.CriticalStockThreshold > 0 {
		out.CriticalStockThreshold = cfg.CriticalStockThreshold
	}
	if cfg.NoMovementDays > 0 {
		out.NoMovementDays = cfg.NoMovementDays
	}
	return out
}

// Generate runs one alert sweep over every product inside a single
// transaction: all active alerts for a product are deactivated first, then
// the stock-level branches and the no-movement check conditionally create new
// ones. All alerts from one sweep become visible together; a failure partway
// aborts the whole sweep.
func (s *Service) Generate(cfg *SweepConfig, actorRole string) (*SweepResult, error) {
	if !auth.RoleCan(actorRole, auth.CapGenerateAlerts) {
		return nil, apperror.Forbidden("not allowed to generate alerts")
	}

	sweep := s.defaults(cfg)
	now := s.now()
	cutoff := now.Add(-time.Duration(sweep.NoMovementDays) * 24 * time.Hour)

	result := &SweepResult{Alerts: []string{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var products []product.Product
		if err := tx.Find(&products).Error; err != nil {
			return apperror.Internal(err, "failed to load products")
		}

		for _, p := range products {
			if err := tx.Model(&InventoryAlert{}).
				Where("product_id = ? AND is_active = ?", p.ID, true).
				Updates(map[string]interface{}{
					"is_active":   false,
					"resolved_at": now,
				}).Error; err != nil {
				return apperror.Internal(err, "failed to deactivate alerts for product %d", p.ID)
			}

			// One containment lookup per product; the GIN index on
			// sales.items keeps this cheap at expected catalog sizes.
			hadRecentSale, err := productSoldSince(tx, p.ID, cutoff)
			if err != nil {
				return err
			}

			for _, a := range alertsFor(p.Name, p.Stock, hadRecentSale, sweep) {
				a.ProductID = p.ID
				if err := tx.Create(a).Error; err != nil {
					return apperror.Internal(err, "failed to create alert for product %d", p.ID)
				}
				if a.AlertType == TypeNoMovement {
					result.Alerts = append(result.Alerts,
						fmt.Sprintf("%s: %s", a.AlertType, p.Name))
				} else {
					result.Alerts = append(result.Alerts,
						fmt.Sprintf("%s: %s (%d)", a.AlertType, p.Name, p.Stock))
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Count = len(result.Alerts)
	s.invalidateStatsCache()

	logrus.WithField("count", result.Count).Info("inventory alert sweep completed")
	return result, nil
}

// productSoldSince reports whether any sale since the cutoff contains the
// product in its item snapshot. Matching uses jsonb containment, which keys
// on the stored "product_id" value regardless of how Postgres renders or
// orders the snapshot, and can use the GIN index on sales.items.
func productSoldSince(tx *gorm.DB, productID uint, cutoff time.Time) (bool, error) {
	var count int64
	err := tx.Model(&sale.Sale{}).
		Where("created_at >= ?", cutoff).
		Where("items @> ?", itemsContainingProduct(productID)).
		Count(&count).Error
	if err != nil {
		return false, apperror.Internal(err, "failed to check sale activity for product %d", productID)
	}
	return count > 0, nil
}

// itemsContainingProduct builds the jsonb containment document that matches
// any item snapshot including the product.
func itemsContainingProduct(productID uint) string {
	return fmt.Sprintf(`[{"product_id": %d}]`, productID)
}

// GetAlerts retrieves alerts with product info, ordered by severity rank then
// recency
func (s *Service) GetAlerts(req *AlertListRequest) ([]AlertWithProduct, error) {
	query := s.db.Model(&InventoryAlert{}).Preload("Product")

	if req.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if req.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if req.AlertType != "" {
		query = query.Where("alert_type = ?", req.AlertType)
	}
	if req.Severity != "" {
		query = query.Where("severity = ?", req.Severity)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 500 {
		req.Limit = 100
	}
	offset := (req.Page - 1) * req.Limit

	severityOrder := `CASE severity
		WHEN 'critical' THEN 1
		WHEN 'high' THEN 2
		WHEN 'medium' THEN 3
		WHEN 'low' THEN 4
		ELSE 5 END`

	var alerts []InventoryAlert
	if err := query.
		Order(severityOrder).
		Order("created_at DESC").
		Offset(offset).
		Limit(req.Limit).
		Find(&alerts).Error; err != nil {
		return nil, apperror.Internal(err, "failed to retrieve alerts")
	}

	out := make([]AlertWithProduct, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, withProduct(a))
	}
	return out, nil
}

// GetAlert retrieves a single alert with product info
func (s *Service) GetAlert(id uint) (*AlertWithProduct, error) {
	var a InventoryAlert
	if err := s.db.Preload("Product").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("alert not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve alert")
	}
	result := withProduct(a)
	return &result, nil
}

func withProduct(a InventoryAlert) AlertWithProduct {
	return AlertWithProduct{
		InventoryAlert:  a,
		ProductName:     a.Product.Name,
		ProductSKU:      a.Product.SKU,
		ProductCategory: a.Product.Category,
	}
}

// UpdateAlertRequest represents alert update data
type UpdateAlertRequest struct {
	IsRead   *bool `json:"is_read"`
	IsActive *bool `json:"is_active"`
}

// UpdateAlert updates read/active state; deactivating sets resolved_at
func (s *Service) UpdateAlert(id uint, req *UpdateAlertRequest) (*InventoryAlert, error) {
	a, err := s.loadAlert(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.IsRead != nil {
		updates["is_read"] = *req.IsRead
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
		if !*req.IsActive {
			updates["resolved_at"] = s.now()
		}
	}
	if len(updates) == 0 {
		return a, nil
	}

	if err := s.db.Model(a).Updates(updates).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update alert")
	}

	s.invalidateStatsCache()
	return a, nil
}

// MarkRead marks one alert as read
func (s *Service) MarkRead(id uint) error {
	a, err := s.loadAlert(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(a).Update("is_read", true).Error; err != nil {
		return apperror.Internal(err, "failed to mark alert as read")
	}

	s.invalidateStatsCache()
	return nil
}

// MarkAllRead marks every active unread alert as read and reports how many
func (s *Service) MarkAllRead() (int64, error) {
	result := s.db.Model(&InventoryAlert{}).
		Where("is_active = ? AND is_read = ?", true, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperror.Internal(result.Error, "failed to mark alerts as read")
	}

	s.invalidateStatsCache()
	return result.RowsAffected, nil
}

// Resolve deactivates an alert and marks it read
func (s *Service) Resolve(id uint) error {
	a, err := s.loadAlert(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(a).Updates(map[string]interface{}{
		"is_active":   false,
		"is_read":     true,
		"resolved_at": s.now(),
	}).Error; err != nil {
		return apperror.Internal(err, "failed to resolve alert")
	}

	s.invalidateStatsCache()
	return nil
}

// Delete removes an alert permanently. Admin only.
func (s *Service) Delete(id uint, actorRole string) error {
	if !auth.RoleCan(actorRole, auth.CapDeleteAlerts) {
		return apperror.Forbidden("not allowed to delete alerts")
	}

	a, err := s.loadAlert(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(a).Error; err != nil {
		return apperror.Internal(err, "failed to delete alert")
	}

	s.invalidateStatsCache()
	return nil
}

// GetStats aggregates alert counts, served from a short-lived Redis cache
// when available.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats := &Stats{
		ByType:     map[string]int64{},
		BySeverity: map[string]int64{},
	}

	if err := s.db.Model(&InventoryAlert{}).Count(&stats.TotalAlerts).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count alerts")
	}
	if err := s.db.Model(&InventoryAlert{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveAlerts).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count active alerts")
	}
	if err := s.db.Model(&InventoryAlert{}).
		Where("is_active = ? AND is_read = ?", true, false).
		Count(&stats.UnreadAlerts).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count unread alerts")
	}
	if err := s.db.Model(&InventoryAlert{}).
		Where("is_active = ? AND severity = ?", true, SeverityCritical).
		Count(&stats.CriticalAlerts).Error; err != nil {
		return nil, apperror.Internal(err, "failed to count critical alerts")
	}

	type grouped struct {
		Key   string
		Count int64
	}

	var byType []grouped
	if err := s.db.Model(&InventoryAlert{}).
		Select("alert_type AS key, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("alert_type").
		Scan(&byType).Error; err != nil {
		return nil, apperror.Internal(err, "failed to group alerts by type")
	}
	for _, g := range byType {
		stats.ByType[g.Key] = g.Count
	}

	var bySeverity []grouped
	if err := s.db.Model(&InventoryAlert{}).
		Select("severity AS key, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("severity").
		Scan(&bySeverity).Error; err != nil {
		return nil, apperror.Internal(err, "failed to group alerts by severity")
	}
	for _, g := range bySeverity {
		stats.BySeverity[g.Key] = g.Count
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.redisClient.Set(ctx, statsCacheKey, payload, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *Service) loadAlert(id uint) (*InventoryAlert, error) {
	var a InventoryAlert
	if err := s.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("alert not found")
		}
		return nil, apperror.Internal(err, "failed to retrieve alert")
	}
	return &a, nil
}

func (s *Service) invalidateStatsCache() {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.redisClient.Del(ctx, statsCacheKey)
}
