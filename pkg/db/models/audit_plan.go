package models

import "time"

// AuditPlan is a scheduled audit. Code is a generated human-readable label,
// not guaranteed unique.
type AuditPlan struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	TenantID     int64     `gorm:"column:tenant_id;not null;index"`
	Code         string    `gorm:"type:text;not null"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null"`
	AuditType    string    `gorm:"column:audit_type;type:text;not null"`
	AuditSubtype *string   `gorm:"column:audit_subtype"`
	AuditorName  *string   `gorm:"column:auditor_name"`
	Department   *string   `gorm:"column:department"`
	LocationCity *string   `gorm:"column:location_city"`
	Site         *string   `gorm:"column:site"`
	Country      *string   `gorm:"column:country"`
	Region       *string   `gorm:"column:region"`
	AuditNote    *string   `gorm:"column:audit_note;type:text"`
	ResponseType *string   `gorm:"column:response_type"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
