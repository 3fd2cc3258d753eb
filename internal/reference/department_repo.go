package reference

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/gorm"
)

// DepartmentRepository persists department lookup rows.
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository constructs a department repo.
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns the tenant's departments, most recent first.
func (r *DepartmentRepository) List(ctx context.Context, tenantID int64) ([]models.Department, error) {
	var rows []models.Department
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a department for the tenant.
func (r *DepartmentRepository) Create(ctx context.Context, tenantID int64, name string) (*models.Department, error) {
	row := &models.Department{TenantID: tenantID, Name: name}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByIDForTenant loads a department by (id, tenant_id) jointly.
func (r *DepartmentRepository) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Department, error) {
	var row models.Department
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the already-tenant-resolved row.
func (r *DepartmentRepository) Delete(ctx context.Context, row *models.Department) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
