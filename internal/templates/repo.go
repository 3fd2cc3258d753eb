package templates

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists audit templates.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a templates repo.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the tenant's templates, most recent first.
func (r *Repository) List(ctx context.Context, tenantID int64) ([]models.AuditTemplate, error) {
	var rows []models.AuditTemplate
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a template for the tenant.
func (r *Repository) Create(ctx context.Context, row *models.AuditTemplate) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByIDForTenant loads a template by (id, tenant_id) jointly.
func (r *Repository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.AuditTemplate, error) {
	var row models.AuditTemplate
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the full template row.
func (r *Repository) Save(ctx context.Context, row *models.AuditTemplate) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes the already-tenant-resolved row.
func (r *Repository) Delete(ctx context.Context, row *models.AuditTemplate) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
