package responsetypes

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository persists response types.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a response types repo.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the tenant's response types, most recent first.
func (r *Repository) List(ctx context.Context, tenantID int64) ([]models.ResponseType, error) {
	var rows []models.ResponseType
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a response type for the tenant.
func (r *Repository) Create(ctx context.Context, tenantID int64, name string, types []string) (*models.ResponseType, error) {
	row := &models.ResponseType{
		TenantID: tenantID,
		Name:     name,
		Types:    pq.StringArray(types),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByIDForTenant loads a response type by (id, tenant_id) jointly.
func (r *Repository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ResponseType, error) {
	var row models.ResponseType
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the already-tenant-resolved row.
func (r *Repository) Delete(ctx context.Context, row *models.ResponseType) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
