package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type templatesRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.AuditTemplate, error)
	Create(ctx context.Context, row *models.AuditTemplate) error
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.AuditTemplate, error)
	Save(ctx context.Context, row *models.AuditTemplate) error
	Delete(ctx context.Context, row *models.AuditTemplate) error
}

// Service exposes tenant-scoped audit template operations.
type Service interface {
	List(ctx context.Context, tenantID int64) ([]TemplateDTO, error)
	Create(ctx context.Context, tenantID int64, input CreateTemplateInput) (*TemplateDTO, error)
	Update(ctx context.Context, tenantID, id int64, input UpdateTemplateInput) (*TemplateDTO, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

type service struct {
	repo templatesRepository
}

// NewService builds an audit templates service.
func NewService(repo templatesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("templates repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, tenantID int64) ([]TemplateDTO, error) {
	rows, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, tenantID int64, input CreateTemplateInput) (*TemplateDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	row := &models.AuditTemplate{
		TenantID:  tenantID,
		Name:      name,
		Note:      input.Note,
		Tags:      toArray(input.Tags),
		Questions: toArray(input.Questions),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create template")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, tenantID, id int64, input UpdateTemplateInput) (*TemplateDTO, error) {
	row, err := s.loadForTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if input.Name.Set {
		if !input.Name.Valid || strings.TrimSpace(input.Name.Value) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		row.Name = strings.TrimSpace(input.Name.Value)
	}
	if input.Note.Set {
		row.Note = input.Note.Ptr()
	}
	if input.Tags.Set {
		if !input.Tags.Valid {
			row.Tags = toArray(nil)
		} else {
			row.Tags = toArray(input.Tags.Value)
		}
	}
	if input.Questions.Set {
		if !input.Questions.Valid {
			row.Questions = toArray(nil)
		} else {
			row.Questions = toArray(input.Questions.Value)
		}
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update template")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id int64) error {
	row, err := s.loadForTenant(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete template")
	}
	return nil
}

func (s *service) loadForTenant(ctx context.Context, id, tenantID int64) (*models.AuditTemplate, error) {
	row, err := s.repo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return row, nil
}

func toArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	out := make(pq.StringArray, len(values))
	copy(out, values)
	return out
}
