package models

import (
	"time"

	"github.com/lib/pq"
)

// ResponseType names an ordered set of answer options for audit questions.
type ResponseType struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	TenantID  int64          `gorm:"column:tenant_id;not null;index"`
	Name      string         `gorm:"type:text;not null"`
	Types     pq.StringArray `gorm:"type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
