package reference

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/gorm"
)

// SiteRepository persists site lookup rows.
type SiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository constructs a site repo.
func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// List returns the tenant's sites, most recent first.
func (r *SiteRepository) List(ctx context.Context, tenantID int64) ([]models.Site, error) {
	var rows []models.Site
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a site for the tenant.
func (r *SiteRepository) Create(ctx context.Context, tenantID int64, name string) (*models.Site, error) {
	row := &models.Site{TenantID: tenantID, Name: name}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByIDForTenant loads a site by (id, tenant_id) jointly.
func (r *SiteRepository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Site, error) {
	var row models.Site
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the already-tenant-resolved row.
func (r *SiteRepository) Delete(ctx context.Context, row *models.Site) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
