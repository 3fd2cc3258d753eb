package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/audirhq/audir-backend/api/controllers"
	"github.com/audirhq/audir-backend/api/middleware"
	"github.com/audirhq/audir-backend/internal/auditplans"
	"github.com/audirhq/audir-backend/internal/auth"
	"github.com/audirhq/audir-backend/internal/reference"
	"github.com/audirhq/audir-backend/internal/responsetypes"
	"github.com/audirhq/audir-backend/internal/templates"
	"github.com/audirhq/audir-backend/internal/users"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db"
	"github.com/audirhq/audir-backend/pkg/logger"
	"github.com/audirhq/audir-backend/pkg/metrics"
	"github.com/audirhq/audir-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface. redisClient may be nil, in which case
// login rate limiting and the redis readiness probe are skipped.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	resolver middleware.IdentityResolver,
	authService auth.Service,
	usersService users.Service,
	referenceService reference.Service,
	responseTypesService responsetypes.Service,
	templatesService templates.Service,
	auditPlansService auditplans.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		var cachePinger redis.Pinger
		if redisClient != nil {
			cachePinger = redisClient
		}
		r.Get("/ready", controllers.HealthReady(dbP, cachePinger, logg))
	})

	if httpMetrics != nil {
		r.Handle("/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		var store middleware.RateLimiterStore
		if redisClient != nil {
			store = redisClient
		}
		r.With(middleware.AuthRateLimit(loginPolicy, store, logg)).Post("/login", controllers.Login(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(resolver, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UsersList(usersService, logg))
			r.Post("/", controllers.UsersCreate(usersService, logg))
			r.Put("/{userID}", controllers.UsersUpdate(usersService, logg))
			r.Post("/{userID}/reset-password", controllers.UsersResetPassword(usersService, logg))
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", controllers.DepartmentsList(referenceService, logg))
			r.Post("/", controllers.DepartmentsCreate(referenceService, logg))
			r.Delete("/{departmentID}", controllers.DepartmentsDelete(referenceService, logg))
		})
		r.Route("/sites", func(r chi.Router) {
			r.Get("/", controllers.SitesList(referenceService, logg))
			r.Post("/", controllers.SitesCreate(referenceService, logg))
			r.Delete("/{siteID}", controllers.SitesDelete(referenceService, logg))
		})
		r.Route("/regions", func(r chi.Router) {
			r.Get("/", controllers.RegionsList(referenceService, logg))
			r.Post("/", controllers.RegionsCreate(referenceService, logg))
			r.Delete("/{regionID}", controllers.RegionsDelete(referenceService, logg))
		})

		r.Route("/response-types", func(r chi.Router) {
			r.Get("/", controllers.ResponseTypesList(responseTypesService, logg))
			r.Post("/", controllers.ResponseTypesCreate(responseTypesService, logg))
			r.Delete("/{responseTypeID}", controllers.ResponseTypesDelete(responseTypesService, logg))
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", controllers.TemplatesList(templatesService, logg))
			r.Post("/", controllers.TemplatesCreate(templatesService, logg))
			r.Put("/{templateID}", controllers.TemplatesUpdate(templatesService, logg))
			r.Delete("/{templateID}", controllers.TemplatesDelete(templatesService, logg))
		})

		r.Route("/audit-plans", func(r chi.Router) {
			r.Get("/", controllers.AuditPlansList(auditPlansService, logg))
			r.Post("/", controllers.AuditPlansCreate(auditPlansService, logg))
			r.Put("/{planID}", controllers.AuditPlansUpdate(auditPlansService, logg))
			r.Delete("/{planID}", controllers.AuditPlansDelete(auditPlansService, logg))
		})
	})

	return r
}
