package templates

import (
	"context"
	"testing"
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/audirhq/audir-backend/pkg/types"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type stubRepo struct {
	rows    []models.AuditTemplate
	saved   *models.AuditTemplate
	deleted *models.AuditTemplate
}

func (s *stubRepo) List(ctx context.Context, tenantID int64) ([]models.AuditTemplate, error) {
	return s.rows, nil
}

func (s *stubRepo) Create(ctx context.Context, row *models.AuditTemplate) error {
	row.ID = 1
	row.CreatedAt = time.Now()
	return nil
}

func (s *stubRepo) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.AuditTemplate, error) {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].TenantID == tenantID {
			cpy := s.rows[i]
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Save(ctx context.Context, row *models.AuditTemplate) error {
	s.saved = row
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, row *models.AuditTemplate) error {
	s.deleted = row
	return nil
}

func strPtr(s string) *string { return &s }

func baseTemplate() models.AuditTemplate {
	return models.AuditTemplate{
		ID:        4,
		TenantID:  1,
		Name:      "Fire safety",
		Note:      strPtr("quarterly"),
		Tags:      pq.StringArray{"safety"},
		Questions: pq.StringArray{"Are exits clear?", "Are extinguishers serviced?"},
		CreatedAt: time.Now(),
	}
}

func TestCreateDefaultsEmptyLists(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), 1, CreateTemplateInput{Name: "Walkthrough"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Tags == nil || dto.Questions == nil {
		t.Fatalf("expected empty slices, got tags=%v questions=%v", dto.Tags, dto.Questions)
	}
	if len(dto.Tags) != 0 || len(dto.Questions) != 0 {
		t.Fatalf("expected no entries, got %+v", dto)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := &stubRepo{rows: []models.AuditTemplate{baseTemplate()}}
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), 1, 4, UpdateTemplateInput{
		Name: types.NewOptional("Fire safety v2"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != "Fire safety v2" {
		t.Fatalf("expected renamed template, got %q", dto.Name)
	}
	if len(dto.Questions) != 2 {
		t.Fatalf("expected questions untouched, got %v", dto.Questions)
	}
	if dto.Note == nil || *dto.Note != "quarterly" {
		t.Fatalf("expected note untouched, got %v", dto.Note)
	}
}

func TestUpdateClearsNoteOnExplicitNull(t *testing.T) {
	repo := &stubRepo{rows: []models.AuditTemplate{baseTemplate()}}
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), 1, 4, UpdateTemplateInput{
		Note: types.NullOptional[string](),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Note != nil {
		t.Fatalf("expected note cleared, got %v", *dto.Note)
	}
}

func TestUpdateRejectsEmptyName(t *testing.T) {
	repo := &stubRepo{rows: []models.AuditTemplate{baseTemplate()}}
	svc, _ := NewService(repo)

	_, err := svc.Update(context.Background(), 1, 4, UpdateTemplateInput{
		Name: types.NewOptional("   "),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCrossTenantIsNotFound(t *testing.T) {
	repo := &stubRepo{rows: []models.AuditTemplate{baseTemplate()}}
	svc, _ := NewService(repo)

	_, err := svc.Update(context.Background(), 9, 4, UpdateTemplateInput{
		Name: types.NewOptional("hijack"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteOwnedTemplate(t *testing.T) {
	repo := &stubRepo{rows: []models.AuditTemplate{baseTemplate()}}
	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), 1, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deleted == nil || repo.deleted.ID != 4 {
		t.Fatalf("expected row 4 deleted, got %+v", repo.deleted)
	}
}
