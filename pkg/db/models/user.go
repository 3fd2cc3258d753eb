package models

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/enums"
)

// User represents the canonical identity entity. Email is stored lowercase and
// unique within its tenant.
type User struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	TenantID     int64            `gorm:"column:tenant_id;not null;uniqueIndex:idx_users_tenant_email,priority:1;index"`
	Email        string           `gorm:"type:text;not null;uniqueIndex:idx_users_tenant_email,priority:2"`
	PasswordHash string           `gorm:"column:password_hash;type:text;not null"`
	FirstName    *string          `gorm:"column:first_name"`
	LastName     *string          `gorm:"column:last_name"`
	Phone        *string          `gorm:"column:phone"`
	Department   *string          `gorm:"column:department"`
	Role         enums.Role       `gorm:"type:text;not null"`
	Status       enums.UserStatus `gorm:"type:text;not null;default:active"`
	LastActive   *time.Time       `gorm:"column:last_active"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// IsActive reports whether the user may authenticate and act.
func (u User) IsActive() bool {
	return u.Status == enums.UserStatusActive
}
