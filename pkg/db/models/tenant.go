package models

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/enums"
)

// Tenant is the root of isolation; every other entity carries its id.
type Tenant struct {
	ID        int64              `gorm:"primaryKey;autoIncrement"`
	Name      string             `gorm:"type:text;not null"`
	Status    enums.TenantStatus `gorm:"type:text;not null;default:active"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
}
