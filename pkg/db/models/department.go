package models

import "time"

// Department is a tenant-scoped lookup entity.
type Department struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TenantID  int64     `gorm:"column:tenant_id;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
