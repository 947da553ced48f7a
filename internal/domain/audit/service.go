// internal/domain/audit/service.go
package audit

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service appends audit trail entries. Writes are best-effort: they run in
// their own transaction and a failure here must never roll back or fail the
// operation being audited.
type Service struct {
	db *gorm.DB
}

// NewService creates a new audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record appends an audit entry. Errors are logged and swallowed.
func (s *Service) Record(action string, actorUserID uint, result, detail string) {
	entry := Log{
		Action:      action,
		ActorUserID: actorUserID,
		Result:      result,
		Detail:      detail,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"action":   action,
			"actor_id": actorUserID,
		}).WithError(err).Warn("audit log write failed")
	}
}
