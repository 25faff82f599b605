package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glambook/glambook-backend/api/controllers"
	"github.com/glambook/glambook-backend/api/middleware"
	"github.com/glambook/glambook-backend/internal/audit"
	"github.com/glambook/glambook-backend/internal/bookings"
	"github.com/glambook/glambook-backend/internal/catalog"
	"github.com/glambook/glambook-backend/internal/combos"
	"github.com/glambook/glambook-backend/internal/gallery"
	"github.com/glambook/glambook-backend/internal/guard"
	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/internal/packages"
	"github.com/glambook/glambook-backend/internal/staff"
	"github.com/glambook/glambook-backend/internal/transformations"
	"github.com/glambook/glambook-backend/internal/vendors"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	chain *identity.Chain,
	isolationGuard *guard.Guard,
	vendorService *vendors.Service,
	catalogService *catalog.Service,
	catalogSource catalog.Source,
	packageService *packages.Service,
	comboService *combos.Service,
	galleryService *gallery.Service,
	staffService *staff.Service,
	bookingService *bookings.Service,
	transformationService *transformations.Service,
	auditor *audit.Auditor,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	scope := controllers.NewVendorScope(isolationGuard, vendorService)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	readyDeps := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	// Rate limiting drops out when redis is absent rather than panicking
	// on a nil client.
	authLimiter := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(authLimiter(loginPolicy)).Post("/login", controllers.AuthLogin(vendorService, logg))
		r.With(authLimiter(registerPolicy)).Post("/register", controllers.AuthRegister(vendorService, logg))
	})

	// Customer-facing reads. No token required; a bearer token, when
	// present, still flows through the resolver for request logging.
	r.Route("/api/public/v1/vendors/{vendorId}", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(chain, logg))
		r.Get("/", controllers.PublicVendorProfile(vendorService, logg))
		r.Get("/services", controllers.PublicVendorServices(catalogSource, logg))
		r.Get("/packages", controllers.PublicVendorPackages(packageService, logg))
		r.Get("/combos", controllers.PublicVendorCombos(comboService, logg))
		r.Get("/gallery", controllers.PublicVendorGallery(galleryService, logg))
		r.Get("/transformations", controllers.PublicVendorTransformations(transformationService, logg))
		r.Post("/bookings", controllers.PublicBookingCreate(bookingService, logg))
	})

	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(middleware.Auth(chain, logg))

		r.Get("/me", controllers.VendorProfile(vendorService, logg))
		r.Put("/me", controllers.VendorUpdateProfile(vendorService, logg))

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.VendorServiceList(scope, catalogService, logg))
			r.Post("/", controllers.VendorServiceCreate(scope, catalogService, logg))
			r.Delete("/{serviceId}", controllers.VendorServiceDelete(scope, catalogService, logg))
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", controllers.VendorPackageList(scope, packageService, logg))
			r.Post("/", controllers.VendorPackageCreate(scope, packageService, logg))
			r.Put("/{packageId}", controllers.VendorPackageUpdate(scope, packageService, logg))
			r.Delete("/{packageId}", controllers.VendorPackageDelete(scope, packageService, logg))
		})

		r.Route("/combos", func(r chi.Router) {
			r.Get("/", controllers.VendorComboList(scope, comboService, logg))
			r.Post("/", controllers.VendorComboCreate(scope, comboService, logg))
			r.Put("/{comboId}", controllers.VendorComboUpdate(scope, comboService, logg))
			r.Delete("/{comboId}", controllers.VendorComboDelete(scope, comboService, logg))
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", controllers.VendorGalleryList(scope, galleryService, logg))
			r.Post("/", controllers.VendorGalleryAdd(scope, galleryService, logg))
			r.Delete("/{imageId}", controllers.VendorGalleryDelete(scope, galleryService, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", controllers.VendorStaffList(scope, staffService, logg))
			r.Post("/", controllers.VendorStaffAdd(scope, staffService, logg))
			r.Put("/{memberId}", controllers.VendorStaffUpdate(scope, staffService, logg))
			r.Delete("/{memberId}", controllers.VendorStaffDelete(scope, staffService, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.VendorBookingList(scope, bookingService, logg))
			r.Post("/{bookingId}/status", controllers.VendorBookingUpdateStatus(scope, bookingService, logg))
		})

		r.Route("/transformations", func(r chi.Router) {
			r.Get("/", controllers.VendorTransformationList(scope, transformationService, logg))
			r.Post("/", controllers.VendorTransformationAdd(scope, transformationService, logg))
			r.Delete("/{transformationId}", controllers.VendorTransformationDelete(scope, transformationService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(chain, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Post("/audit/run", controllers.AdminAuditRun(auditor, logg))
	})

	return r
}
