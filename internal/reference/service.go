package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"gorm.io/gorm"
)

type departmentRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.Department, error)
	Create(ctx context.Context, tenantID int64, name string) (*models.Department, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Department, error)
	Delete(ctx context.Context, row *models.Department) error
}

type siteRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.Site, error)
	Create(ctx context.Context, tenantID int64, name string) (*models.Site, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Site, error)
	Delete(ctx context.Context, row *models.Site) error
}

type regionRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.Region, error)
	Create(ctx context.Context, tenantID int64, name string) (*models.Region, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.Region, error)
	Delete(ctx context.Context, row *models.Region) error
}

// Service exposes CRUD over the three lookup entities.
type Service interface {
	ListDepartments(ctx context.Context, tenantID int64) ([]RefDTO, error)
	CreateDepartment(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error)
	DeleteDepartment(ctx context.Context, tenantID, id int64) error

	ListSites(ctx context.Context, tenantID int64) ([]RefDTO, error)
	CreateSite(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error)
	DeleteSite(ctx context.Context, tenantID, id int64) error

	ListRegions(ctx context.Context, tenantID int64) ([]RefDTO, error)
	CreateRegion(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error)
	DeleteRegion(ctx context.Context, tenantID, id int64) error
}

type service struct {
	departments departmentRepository
	sites       siteRepository
	regions     regionRepository
}

// NewService builds the reference service over the three repositories.
func NewService(departments departmentRepository, sites siteRepository, regions regionRepository) (Service, error) {
	if departments == nil {
		return nil, fmt.Errorf("departments repository required")
	}
	if sites == nil {
		return nil, fmt.Errorf("sites repository required")
	}
	if regions == nil {
		return nil, fmt.Errorf("regions repository required")
	}
	return &service{departments: departments, sites: sites, regions: regions}, nil
}

func validateName(input CreateRefInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return name, nil
}

func (s *service) ListDepartments(ctx context.Context, tenantID int64) ([]RefDTO, error) {
	rows, err := s.departments.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list departments")
	}
	out := make([]RefDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (s *service) CreateDepartment(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error) {
	name, err := validateName(input)
	if err != nil {
		return nil, err
	}
	row, err := s.departments.Create(ctx, tenantID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create department")
	}
	return &RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

func (s *service) DeleteDepartment(ctx context.Context, tenantID, id int64) error {
	row, err := s.departments.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "department not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load department")
	}
	if err := s.departments.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete department")
	}
	return nil
}

func (s *service) ListSites(ctx context.Context, tenantID int64) ([]RefDTO, error) {
	rows, err := s.sites.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sites")
	}
	out := make([]RefDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (s *service) CreateSite(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error) {
	name, err := validateName(input)
	if err != nil {
		return nil, err
	}
	row, err := s.sites.Create(ctx, tenantID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create site")
	}
	return &RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

func (s *service) DeleteSite(ctx context.Context, tenantID, id int64) error {
	row, err := s.sites.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "site not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load site")
	}
	if err := s.sites.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete site")
	}
	return nil
}

func (s *service) ListRegions(ctx context.Context, tenantID int64) ([]RefDTO, error) {
	rows, err := s.regions.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	out := make([]RefDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (s *service) CreateRegion(ctx context.Context, tenantID int64, input CreateRefInput) (*RefDTO, error) {
	name, err := validateName(input)
	if err != nil {
		return nil, err
	}
	row, err := s.regions.Create(ctx, tenantID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create region")
	}
	return &RefDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

func (s *service) DeleteRegion(ctx context.Context, tenantID, id int64) error {
	row, err := s.regions.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}
	if err := s.regions.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete region")
	}
	return nil
}
