package responsetypes

import (
	"context"
	"testing"
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type stubRepo struct {
	rows    []models.ResponseType
	deleted *models.ResponseType
}

func (s *stubRepo) List(ctx context.Context, tenantID int64) ([]models.ResponseType, error) {
	return s.rows, nil
}

func (s *stubRepo) Create(ctx context.Context, tenantID int64, name string, types []string) (*models.ResponseType, error) {
	return &models.ResponseType{
		ID:        1,
		TenantID:  tenantID,
		Name:      name,
		Types:     pq.StringArray(types),
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubRepo) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ResponseType, error) {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].TenantID == tenantID {
			return &s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Delete(ctx context.Context, row *models.ResponseType) error {
	s.deleted = row
	return nil
}

func TestCreatePreservesOptionOrder(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), 1, CreateResponseTypeInput{
		Name:  "Compliance scale",
		Types: []string{"Compliant", "Partially compliant", "Non-compliant"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []string{"Compliant", "Partially compliant", "Non-compliant"}
	if len(dto.Types) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(dto.Types))
	}
	for i, option := range want {
		if dto.Types[i] != option {
			t.Fatalf("expected option %d to be %q, got %q", i, option, dto.Types[i])
		}
	}
}

func TestCreateRequiresOptions(t *testing.T) {
	svc, _ := NewService(&stubRepo{})

	_, err := svc.Create(context.Background(), 1, CreateResponseTypeInput{Name: "Empty"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteCrossTenantIsNotFound(t *testing.T) {
	repo := &stubRepo{rows: []models.ResponseType{{ID: 3, TenantID: 2, Name: "Scale"}}}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), 1, 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.deleted != nil {
		t.Fatal("expected no delete issued")
	}
}

func TestDeleteOwnedRow(t *testing.T) {
	repo := &stubRepo{rows: []models.ResponseType{{ID: 3, TenantID: 1, Name: "Scale"}}}
	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), 1, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deleted == nil || repo.deleted.ID != 3 {
		t.Fatalf("expected row 3 deleted, got %+v", repo.deleted)
	}
}
