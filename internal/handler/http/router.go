package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TubaAnsari/vendor-management-portal/internal/auth"
	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/pkg/health"
	"github.com/TubaAnsari/vendor-management-portal/pkg/middleware"
)

// ServiceName labels metrics and spans emitted by the HTTP layer.
const ServiceName = "vendor-portal"

// Services groups the application services exposed over HTTP.
type Services struct {
	Auth    *service.AuthService
	Vendors *service.VendorService
	Reviews *service.ReviewService
	Product *service.ProductService
	Admin   *service.AdminService
}

// RouterConfig holds the cross-cutting settings of the router.
type RouterConfig struct {
	CORS       middleware.CORSConfig
	AdminToken string
	PprofCIDRs []string
	// RateLimitRPS and RateLimitBurst bound anonymous writes per client IP.
	// A zero RPS disables the limit.
	RateLimitRPS   float64
	RateLimitBurst int
	// Registry receives the HTTP collectors and is served on /metrics.
	Registry *prometheus.Registry
}

// NewRouter creates a chi router with all portal routes registered.
func NewRouter(
	services Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))
	if cfg.Registry != nil {
		r.Use(middleware.NewHTTPMetrics(cfg.Registry, ServiceName).Middleware)
	}

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry}))
	}
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Token validator that bridges to the JWT manager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{VendorID: claims.VendorID, Email: claims.Email}, nil
	}
	requireVendor := chi.Chain(middleware.Auth(tokenValidator), middleware.WithVendor)
	limitWrites := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	authHandler := NewAuthHandler(services.Auth, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(limitWrites).Post("/register", authHandler.Register)
		r.With(limitWrites).Post("/login", authHandler.Login)

		r.With(requireVendor...).Get("/profile", authHandler.GetProfile)
		r.With(requireVendor...).Put("/profile", authHandler.UpdateProfile)
		r.With(requireVendor...).Delete("/profile", authHandler.DeleteProfile)
	})

	vendorHandler := NewVendorHandler(services.Vendors, logger)
	r.Route("/api/v1/vendors", func(r chi.Router) {
		r.Get("/", vendorHandler.List)
		r.Get("/{id}", vendorHandler.Get)
		r.Get("/{id}/products", vendorHandler.ListProducts)
	})

	reviewHandler := NewReviewHandler(services.Reviews, logger)
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(limitWrites).Post("/{vendorId}", reviewHandler.Submit)
		r.Get("/{vendorId}", reviewHandler.List)
	})

	productHandler := NewProductHandler(services.Product, logger)
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(requireVendor...)

		r.Post("/", productHandler.Create)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	adminHandler := NewAdminHandler(services.Admin, logger)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.StaticToken(cfg.AdminToken))

		r.Get("/vendors", adminHandler.ListVendors)
		r.Get("/vendors/{id}", adminHandler.GetVendor)
		r.Get("/stats", adminHandler.Stats)
	})

	return r
}
