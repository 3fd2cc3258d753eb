package responsetypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"gorm.io/gorm"
)

type responseTypesRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.ResponseType, error)
	Create(ctx context.Context, tenantID int64, name string, types []string) (*models.ResponseType, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ResponseType, error)
	Delete(ctx context.Context, row *models.ResponseType) error
}

// Service exposes tenant-scoped response type operations.
type Service interface {
	List(ctx context.Context, tenantID int64) ([]ResponseTypeDTO, error)
	Create(ctx context.Context, tenantID int64, input CreateResponseTypeInput) (*ResponseTypeDTO, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

type service struct {
	repo responseTypesRepository
}

// NewService builds a response types service.
func NewService(repo responseTypesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("response types repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, tenantID int64) ([]ResponseTypeDTO, error) {
	rows, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list response types")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, tenantID int64, input CreateResponseTypeInput) (*ResponseTypeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(input.Types) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one type option is required")
	}

	row, err := s.repo.Create(ctx, tenantID, name, input.Types)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create response type")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id int64) error {
	row, err := s.repo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "response type not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load response type")
	}
	if err := s.repo.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete response type")
	}
	return nil
}
