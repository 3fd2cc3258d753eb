package models

import (
	"time"

	"github.com/lib/pq"
)

// AuditTemplate stores a reusable question set.
type AuditTemplate struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	TenantID  int64          `gorm:"column:tenant_id;not null;index"`
	Name      string         `gorm:"type:text;not null"`
	Note      *string        `gorm:"type:text"`
	Tags      pq.StringArray `gorm:"type:text[];not null;default:ARRAY[]::text[]"`
	Questions pq.StringArray `gorm:"type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
