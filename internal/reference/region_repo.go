package reference

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/gorm"
)

// RegionRepository persists region lookup rows.
type RegionRepository struct {
	db *gorm.DB
}

// NewRegionRepository constructs a region repo.
func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

// List returns the tenant's regions, most recent first.
func (r *RegionRepository) List(ctx context.Context, tenantID int64) ([]models.Region, error) {
	var rows []models.Region
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a region for the tenant.
func (r *RegionRepository) Create(ctx context.Context, tenantID int64, name string) (*models.Region, error) {
	row := &models.Region{TenantID: tenantID, Name: name}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByIDForTenant loads a region by (id, tenant_id) jointly.
func (r *RegionRepository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Region, error) {
	var row models.Region
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the already-tenant-resolved row.
func (r *RegionRepository) Delete(ctx context.Context, row *models.Region) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
