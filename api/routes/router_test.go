package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/audirhq/audir-backend/internal/auditplans"
	"github.com/audirhq/audir-backend/internal/auth"
	"github.com/audirhq/audir-backend/internal/reference"
	"github.com/audirhq/audir-backend/internal/responsetypes"
	"github.com/audirhq/audir-backend/internal/templates"
	"github.com/audirhq/audir-backend/internal/users"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	"github.com/audirhq/audir-backend/pkg/logger"
	"github.com/audirhq/audir-backend/pkg/metrics"
	"github.com/audirhq/audir-backend/pkg/security"
	"github.com/rs/zerolog"
)

type testEnv struct {
	conn    *gorm.DB
	handler http.Handler
	cfg     *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "audir",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:4200"}},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Department{},
		&models.Site{},
		&models.Region{},
		&models.AuditPlan{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	usersRepo := users.NewRepository(conn)
	usersSvc, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		t.Fatalf("users service: %v", err)
	}
	authSvc, err := auth.NewService(usersRepo, cfg.JWT)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	resolver, err := auth.NewResolver(usersRepo, cfg.JWT)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	refSvc, err := reference.NewService(
		reference.NewDepartmentRepository(conn),
		reference.NewSiteRepository(conn),
		reference.NewRegionRepository(conn),
	)
	if err != nil {
		t.Fatalf("reference service: %v", err)
	}
	rtSvc, err := responsetypes.NewService(responsetypes.NewRepository(conn))
	if err != nil {
		t.Fatalf("response types service: %v", err)
	}
	tmplSvc, err := templates.NewService(templates.NewRepository(conn))
	if err != nil {
		t.Fatalf("templates service: %v", err)
	}
	planSvc, err := auditplans.NewService(auditplans.NewRepository(conn))
	if err != nil {
		t.Fatalf("audit plans service: %v", err)
	}

	handler := NewRouter(
		cfg,
		logg,
		nil,
		nil,
		metrics.NewHTTPMetrics(),
		resolver,
		authSvc,
		usersSvc,
		refSvc,
		rtSvc,
		tmplSvc,
		planSvc,
	)

	return &testEnv{conn: conn, handler: handler, cfg: cfg}
}

func (e *testEnv) seedTenant(t *testing.T, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{Name: name, Status: enums.TenantStatusActive}
	if err := e.conn.Create(tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return tenant
}

func (e *testEnv) seedUser(t *testing.T, tenantID int64, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, e.cfg.Password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		Role:         enums.RoleAdmin,
		Status:       enums.UserStatusActive,
	}
	if err := e.conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if envelope.Data.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", envelope.Data.TokenType)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}
	return envelope.Data.AccessToken
}

func TestLoginAndListUsers(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.seedTenant(t, "acme")
	env.seedUser(t, tenant.ID, "admin@acme.test", "correct-horse-battery")

	token := env.login(t, "admin@acme.test", "correct-horse-battery")

	rec := env.do(t, http.MethodGet, "/api/v1/users", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 user, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Email != "admin@acme.test" {
		t.Fatalf("email = %q", envelope.Data[0].Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.seedTenant(t, "acme")
	env.seedUser(t, tenant.ID, "admin@acme.test", "correct-horse-battery")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@acme.test",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequestWithoutTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateDepartment(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.seedTenant(t, "acme")
	env.seedUser(t, tenant.ID, "admin@acme.test", "correct-horse-battery")
	token := env.login(t, "admin@acme.test", "correct-horse-battery")

	rec := env.do(t, http.MethodPost, "/api/v1/departments", token, map[string]string{"name": "Quality"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data reference.RefDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode department: %v", err)
	}
	if envelope.Data.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if envelope.Data.Name != "Quality" {
		t.Fatalf("name = %q", envelope.Data.Name)
	}
	if envelope.Data.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCrossTenantDeleteIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	tenantA := env.seedTenant(t, "acme")
	tenantB := env.seedTenant(t, "globex")
	env.seedUser(t, tenantA.ID, "admin@acme.test", "correct-horse-battery")
	env.seedUser(t, tenantB.ID, "admin@globex.test", "correct-horse-battery")

	tokenA := env.login(t, "admin@acme.test", "correct-horse-battery")
	tokenB := env.login(t, "admin@globex.test", "correct-horse-battery")

	rec := env.do(t, http.MethodPost, "/api/v1/departments", tokenA, map[string]string{"name": "Quality"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var envelope struct {
		Data reference.RefDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode department: %v", err)
	}

	path := fmt.Sprintf("/api/v1/departments/%d", envelope.Data.ID)
	rec = env.do(t, http.MethodDelete, path, tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant delete status = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, path, tokenA, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete status = %d, want 204", rec.Code)
	}
}

func TestPartialUserUpdatePreservesOtherFields(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.seedTenant(t, "acme")
	env.seedUser(t, tenant.ID, "admin@acme.test", "correct-horse-battery")
	token := env.login(t, "admin@acme.test", "correct-horse-battery")

	created := env.do(t, http.MethodPost, "/api/v1/users", token, map[string]any{
		"email":      "auditor@acme.test",
		"password":   "auditor-password",
		"first_name": "Jamie",
		"last_name":  "Reyes",
		"role":       "auditor",
		"status":     "active",
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", created.Code, created.Body.String())
	}
	var createdEnvelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &createdEnvelope); err != nil {
		t.Fatalf("decode created user: %v", err)
	}

	path := fmt.Sprintf("/api/v1/users/%d", createdEnvelope.Data.ID)
	rec := env.do(t, http.MethodPut, path, token, map[string]any{"phone": "+34600111222"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updatedEnvelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updatedEnvelope); err != nil {
		t.Fatalf("decode updated user: %v", err)
	}
	if updatedEnvelope.Data.Phone == nil || *updatedEnvelope.Data.Phone != "+34600111222" {
		t.Fatalf("phone = %v", updatedEnvelope.Data.Phone)
	}
	if updatedEnvelope.Data.FirstName == nil || *updatedEnvelope.Data.FirstName != "Jamie" {
		t.Fatalf("first_name = %v, want preserved", updatedEnvelope.Data.FirstName)
	}
	if updatedEnvelope.Data.Role != enums.RoleAuditor {
		t.Fatalf("role = %q, want preserved", updatedEnvelope.Data.Role)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("live status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d", rec.Code)
	}
}
