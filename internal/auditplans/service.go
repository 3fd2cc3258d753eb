package auditplans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/audirhq/audir-backend/pkg/plancode"
	"gorm.io/gorm"
)

type plansRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.AuditPlan, error)
	Create(ctx context.Context, row *models.AuditPlan) error
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.AuditPlan, error)
	Save(ctx context.Context, row *models.AuditPlan) error
	Delete(ctx context.Context, row *models.AuditPlan) error
}

// Service exposes tenant-scoped audit plan operations.
type Service interface {
	List(ctx context.Context, tenantID int64) ([]PlanDTO, error)
	Create(ctx context.Context, tenantID int64, input CreatePlanInput) (*PlanDTO, error)
	Update(ctx context.Context, tenantID, id int64, input UpdatePlanInput) (*PlanDTO, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

type service struct {
	repo    plansRepository
	newCode func() (string, error)
}

// NewService builds an audit plans service.
func NewService(repo plansRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit plans repository required")
	}
	return &service{repo: repo, newCode: plancode.New}, nil
}

func (s *service) List(ctx context.Context, tenantID int64) ([]PlanDTO, error) {
	rows, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit plans")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, tenantID int64, input CreatePlanInput) (*PlanDTO, error) {
	start, err := parseDate(input.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(input.EndDate, "end_date")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date must not precede start_date")
	}
	auditType := strings.TrimSpace(input.AuditType)
	if auditType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "audit_type is required")
	}

	code, err := s.newCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate plan code")
	}

	row := &models.AuditPlan{
		TenantID:     tenantID,
		Code:         code,
		StartDate:    start,
		EndDate:      end,
		AuditType:    auditType,
		AuditSubtype: input.AuditSubtype,
		AuditorName:  input.AuditorName,
		Department:   input.Department,
		LocationCity: input.LocationCity,
		Site:         input.Site,
		Country:      input.Country,
		Region:       input.Region,
		AuditNote:    input.AuditNote,
		ResponseType: input.ResponseType,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create audit plan")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, tenantID, id int64, input UpdatePlanInput) (*PlanDTO, error) {
	row, err := s.loadForTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if input.StartDate.Set {
		if !input.StartDate.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "start_date cannot be null")
		}
		start, err := parseDate(input.StartDate.Value, "start_date")
		if err != nil {
			return nil, err
		}
		row.StartDate = start
	}
	if input.EndDate.Set {
		if !input.EndDate.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date cannot be null")
		}
		end, err := parseDate(input.EndDate.Value, "end_date")
		if err != nil {
			return nil, err
		}
		row.EndDate = end
	}
	if row.EndDate.Before(row.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date must not precede start_date")
	}

	if input.AuditorName.Set {
		row.AuditorName = input.AuditorName.Ptr()
	}
	if input.Department.Set {
		row.Department = input.Department.Ptr()
	}
	if input.LocationCity.Set {
		row.LocationCity = input.LocationCity.Ptr()
	}
	if input.Site.Set {
		row.Site = input.Site.Ptr()
	}
	if input.Country.Set {
		row.Country = input.Country.Ptr()
	}
	if input.Region.Set {
		row.Region = input.Region.Ptr()
	}
	if input.AuditNote.Set {
		row.AuditNote = input.AuditNote.Ptr()
	}
	if input.ResponseType.Set {
		row.ResponseType = input.ResponseType.Ptr()
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update audit plan")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id int64) error {
	row, err := s.loadForTenant(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete audit plan")
	}
	return nil
}

func (s *service) loadForTenant(ctx context.Context, id, tenantID int64) (*models.AuditPlan, error) {
	row, err := s.repo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "audit plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load audit plan")
	}
	return row, nil
}

func parseDate(value, field string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be formatted as %s", field, DateLayout))
	}
	return parsed, nil
}
