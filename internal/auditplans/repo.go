package auditplans

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists audit plans.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit plans repo.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the tenant's plans, most recent first.
func (r *Repository) List(ctx context.Context, tenantID int64) ([]models.AuditPlan, error) {
	var rows []models.AuditPlan
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a plan for the tenant.
func (r *Repository) Create(ctx context.Context, row *models.AuditPlan) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByIDForTenant loads a plan by (id, tenant_id) jointly.
func (r *Repository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.AuditPlan, error) {
	var row models.AuditPlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the full plan row, refreshing updated_at.
func (r *Repository) Save(ctx context.Context, row *models.AuditPlan) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes the already-tenant-resolved row.
func (r *Repository) Delete(ctx context.Context, row *models.AuditPlan) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
