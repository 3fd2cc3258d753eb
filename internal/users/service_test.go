package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/audirhq/audir-backend/pkg/security"
	"github.com/audirhq/audir-backend/pkg/types"
	"gorm.io/gorm"
)

type stubUsersRepo struct {
	rows       []models.User
	user       *models.User
	created    *CreateUserDTO
	saved      *models.User
	newHash    string
	err        error
	findErr    error
	saveErr    error
	passwdErr  error
	passwdUser int64
}

func (s *stubUsersRepo) List(ctx context.Context, tenantID int64) ([]models.User, error) {
	return s.rows, s.err
}

func (s *stubUsersRepo) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &dto
	user := dto.ToModel()
	user.ID = 1
	user.CreatedAt = time.Now()
	return user, nil
}

func (s *stubUsersRepo) FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.ID != id || s.user.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.user
	return &cpy, nil
}

func (s *stubUsersRepo) Save(ctx context.Context, user *models.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = user
	return nil
}

func (s *stubUsersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	if s.passwdErr != nil {
		return s.passwdErr
	}
	s.passwdUser = id
	s.newHash = hash
	return nil
}

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func strPtr(s string) *string { return &s }

func baseUser() *models.User {
	return &models.User{
		ID:         7,
		TenantID:   3,
		Email:      "jane@acme.test",
		Role:       enums.RoleAuditor,
		Status:     enums.UserStatusActive,
		FirstName:  strPtr("Jane"),
		Department: strPtr("Ops"),
		CreatedAt:  time.Now(),
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, testPasswordCfg()); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateLowercasesEmailAndHashesPassword(t *testing.T) {
	repo := &stubUsersRepo{}
	svc, err := NewService(repo, testPasswordCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), 3, CreateUserInput{
		Email:    "Jane@ACME.Test",
		Password: "super-secret",
		Role:     enums.RoleAdmin,
		Status:   enums.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Email != "jane@acme.test" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
	if repo.created.TenantID != 3 {
		t.Fatalf("expected tenant id from caller, got %d", repo.created.TenantID)
	}
	if repo.created.PasswordHash == "super-secret" || repo.created.PasswordHash == "" {
		t.Fatalf("expected hashed credential, got %q", repo.created.PasswordHash)
	}
	ok, err := security.VerifyPassword("super-secret", repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify: ok=%v err=%v", ok, err)
	}
}

func TestCreateRejectsInvalidRole(t *testing.T) {
	svc, _ := NewService(&stubUsersRepo{}, testPasswordCfg())

	_, err := svc.Create(context.Background(), 3, CreateUserInput{
		Email:    "x@y.test",
		Password: "super-secret",
		Role:     enums.Role("root"),
		Status:   enums.UserStatusActive,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateMapsDuplicateEmailToConflict(t *testing.T) {
	repo := &stubUsersRepo{err: errors.New(`duplicate key value violates unique constraint "idx_users_tenant_email"`)}
	svc, _ := NewService(repo, testPasswordCfg())

	_, err := svc.Create(context.Background(), 3, CreateUserInput{
		Email:    "x@y.test",
		Password: "super-secret",
		Role:     enums.RoleAdmin,
		Status:   enums.UserStatusActive,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := &stubUsersRepo{user: baseUser()}
	svc, _ := NewService(repo, testPasswordCfg())

	dto, err := svc.Update(context.Background(), 3, 7, UpdateUserInput{
		Role: types.NewOptional(enums.RoleViewer),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Role != enums.RoleViewer {
		t.Fatalf("expected role updated, got %s", dto.Role)
	}
	if dto.Department == nil || *dto.Department != "Ops" {
		t.Fatalf("expected department untouched, got %v", dto.Department)
	}
	if dto.FirstName == nil || *dto.FirstName != "Jane" {
		t.Fatalf("expected first name untouched, got %v", dto.FirstName)
	}
}

func TestUpdateClearsFieldOnExplicitNull(t *testing.T) {
	repo := &stubUsersRepo{user: baseUser()}
	svc, _ := NewService(repo, testPasswordCfg())

	dto, err := svc.Update(context.Background(), 3, 7, UpdateUserInput{
		Department: types.NullOptional[string](),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Department != nil {
		t.Fatalf("expected department cleared, got %v", *dto.Department)
	}
}

func TestUpdateOtherTenantIsNotFound(t *testing.T) {
	repo := &stubUsersRepo{user: baseUser()}
	svc, _ := NewService(repo, testPasswordCfg())

	_, err := svc.Update(context.Background(), 99, 7, UpdateUserInput{
		Role: types.NewOptional(enums.RoleViewer),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResetPasswordStoresNewHash(t *testing.T) {
	repo := &stubUsersRepo{user: baseUser()}
	svc, _ := NewService(repo, testPasswordCfg())

	dto, err := svc.ResetPassword(context.Background(), 3, 7, ResetPasswordInput{NewPassword: "fresh-password"})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if dto.ID != 7 {
		t.Fatalf("expected user 7, got %d", dto.ID)
	}
	if repo.passwdUser != 7 {
		t.Fatalf("expected hash persisted for user 7, got %d", repo.passwdUser)
	}
	ok, err := security.VerifyPassword("fresh-password", repo.newHash)
	if err != nil || !ok {
		t.Fatalf("expected new hash to verify: ok=%v err=%v", ok, err)
	}
}

func TestResetPasswordOtherTenantIsNotFound(t *testing.T) {
	repo := &stubUsersRepo{user: baseUser()}
	svc, _ := NewService(repo, testPasswordCfg())

	_, err := svc.ResetPassword(context.Background(), 99, 7, ResetPasswordInput{NewPassword: "fresh-password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
