package tenants

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Tenant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestTenantCreateAndFindByID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	tenant := &models.Tenant{Name: "acme", Status: enums.TenantStatusActive}
	if err := repo.Create(ctx, tenant); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tenant.ID == 0 {
		t.Fatal("expected assigned id")
	}

	loaded, err := repo.FindByID(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if loaded.Name != "acme" || loaded.Status != enums.TenantStatusActive {
		t.Fatalf("unexpected tenant: %+v", loaded)
	}
}

func TestTenantFindByName(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Tenant{Name: "acme", Status: enums.TenantStatusActive}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.FindByName(ctx, "acme"); err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if _, err := repo.FindByName(ctx, "globex"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for unknown name, got %v", err)
	}
}

func TestTenantFindByIDUnknown(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
