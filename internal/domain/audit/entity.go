// internal/domain/audit/entity.go
package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Log is one append-only audit trail entry.
type Log struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Action      string    `gorm:"not null;size:50;index" json:"action"`
	ActorUserID uint      `gorm:"not null;index" json:"actor_user_id"`
	Result      string    `gorm:"not null;size:20" json:"result"` // success / failure
	Detail      string    `gorm:"size:255" json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name for Log
func (Log) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns a UUID primary key
func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
