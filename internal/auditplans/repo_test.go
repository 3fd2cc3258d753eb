package auditplans

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.AuditPlan{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedPlan(t *testing.T, repo *Repository, tenantID int64, code string) *models.AuditPlan {
	t.Helper()
	row := &models.AuditPlan{
		TenantID:  tenantID,
		Code:      code,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		AuditType: "internal",
	}
	if err := repo.Create(context.Background(), row); err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return row
}

func TestFindByIDForTenantEnforcesBoundary(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	owned := seedPlan(t, repo, 1, "AAAAAA")
	foreign := seedPlan(t, repo, 2, "BBBBBB")

	got, err := repo.FindByIDForTenant(context.Background(), owned.ID, 1)
	if err != nil {
		t.Fatalf("find owned plan: %v", err)
	}
	if got.Code != "AAAAAA" {
		t.Fatalf("unexpected plan: %+v", got)
	}

	_, err = repo.FindByIDForTenant(context.Background(), foreign.ID, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected cross-tenant lookup to be not found, got %v", err)
	}
}

func TestSaveRefreshesUpdatedAtButNotCreatedAt(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	row := seedPlan(t, repo, 1, "CCCCCC")
	createdAt := row.CreatedAt
	firstUpdate := row.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	row.AuditorName = func() *string { s := "Jane"; return &s }()
	if err := repo.Save(context.Background(), row); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.FindByIDForTenant(context.Background(), row.ID, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.UpdatedAt.After(firstUpdate) {
		t.Fatalf("expected updated_at to advance: %v -> %v", firstUpdate, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected created_at unchanged: %v -> %v", createdAt, got.CreatedAt)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	row := seedPlan(t, repo, 1, "DDDDDD")

	if err := repo.Delete(context.Background(), row); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByIDForTenant(context.Background(), row.ID, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected plan gone, got %v", err)
	}
}
