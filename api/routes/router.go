package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baabuu/storefront-web/api/controllers"
	"github.com/baabuu/storefront-web/api/middleware"
	"github.com/baabuu/storefront-web/internal/admin"
	"github.com/baabuu/storefront-web/internal/export"
	"github.com/baabuu/storefront-web/internal/storefront"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/redis"
)

func passthrough(next http.Handler) http.Handler { return next }

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	redisClient *redis.Client,
	catalogAPI controllers.Pinger,
	sessions controllers.SessionBackend,
	storefrontService storefront.Service,
	adminService admin.Service,
	exportService export.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginLimits := middleware.LoginLimits{
		Window:      cfg.AuthRateLimit.LoginWindow,
		PerIP:       cfg.AuthRateLimit.LoginIPLimit,
		PerUsername: cfg.AuthRateLimit.LoginUserLimit,
	}

	// Without redis there is nowhere to keep counters or replay records.
	loginLimit := passthrough
	idempotency := passthrough
	readiness := map[string]controllers.Pinger{"catalog_api": catalogAPI, "redis": nil}
	if redisClient != nil {
		loginLimit = middleware.LoginThrottle(loginLimits, redisClient, logg)
		idempotency = middleware.Idempotency(redisClient, logg)
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/storefront", func(r chi.Router) {
		r.Get("/home", controllers.StorefrontHome(storefrontService, logg))
		r.Get("/products", controllers.StorefrontProducts(storefrontService, cfg.Catalog.StorefrontPageSize, logg))
		r.Get("/products/{productId}", controllers.StorefrontProduct(storefrontService, logg))
		r.Get("/categories", controllers.StorefrontCategories(storefrontService, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.AuthLogin(sessions, logg))
		r.With(middleware.RequireToken(logg)).Post("/logout", controllers.AuthLogout(sessions, logg))
		r.With(middleware.ForwardToken()).Get("/check", controllers.AuthCheck(sessions, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireToken(logg))
		r.Use(idempotency)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(adminService, cfg.Catalog.AdminPageSize, logg))
			r.Post("/", controllers.AdminCreateProduct(adminService, logg))
			r.Post("/bulk-delete", controllers.AdminBulkDeleteProducts(adminService, logg))
			r.Post("/bulk-update", controllers.AdminBulkUpdateProducts(adminService, logg))
			r.Get("/{productId}", controllers.AdminGetProduct(adminService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(adminService, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(adminService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(adminService, logg))
			r.Post("/{productId}/images", controllers.AdminUploadProductImage(adminService, logg))
			r.Delete("/{productId}/images/{imageId}", controllers.AdminDeleteProductImage(adminService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(adminService, logg))
			r.Post("/", controllers.AdminCreateCategory(adminService, logg))
			r.Patch("/{slug}", controllers.AdminUpdateCategory(adminService, logg))
			r.Put("/{slug}", controllers.AdminUpdateCategory(adminService, logg))
			r.Delete("/{slug}", controllers.AdminDeleteCategory(adminService, logg))
		})

		r.Get("/dashboard", controllers.AdminDashboard(adminService, logg))
		r.Get("/analytics", controllers.AdminAnalytics(adminService, logg))
		r.Get("/settings", controllers.AdminSettings(adminService))
		r.Get("/export", controllers.AdminExport(exportService, logg))
	})

	return r
}
