package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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
	pkgauth "github.com/glambook/glambook-backend/pkg/auth"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/db/models"
	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/redis"
	"github.com/glambook/glambook-backend/pkg/retry"
	"github.com/glambook/glambook-backend/pkg/types"
)

const routerDDL = `
CREATE TABLE vendors (
	sr_no INTEGER PRIMARY KEY AUTOINCREMENT,
	business_name TEXT NOT NULL,
	business_email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	phone TEXT,
	city TEXT,
	about TEXT,
	categories TEXT,
	role TEXT NOT NULL DEFAULT 'vendor',
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	price TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	description TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE vendor_packages_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	description TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE package_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	package_id INTEGER NOT NULL,
	vendor_id INTEGER,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE vendor_combo_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	duration_minutes INTEGER NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE combo_services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	combo_id INTEGER NOT NULL,
	vendor_id INTEGER,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE gallery_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	url TEXT NOT NULL,
	caption TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE staff_members (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	role TEXT NOT NULL,
	phone TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	customer_name TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	service_name TEXT NOT NULL,
	scheduled_at DATETIME NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE transformations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id INTEGER NOT NULL,
	before_url TEXT NOT NULL,
	after_url TEXT NOT NULL,
	caption TEXT,
	created_at DATETIME,
	updated_at DATETIME
);`

var routerJWTConfig = config.JWTConfig{
	Secret:            "router-test-secret",
	Issuer:            "glambook-test",
	ExpirationMinutes: 30,
}

type routerHarness struct {
	handler http.Handler
	conn    *gorm.DB
}

func setupRouter(t *testing.T) *routerHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range strings.Split(routerDDL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, conn.Exec(stmt).Error)
	}

	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled, Output: io.Discard})
	client := db.NewWithConn(conn)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Port = "0"
	cfg.JWT = routerJWTConfig
	cfg.Catalog.Source = config.CatalogSourceLive

	vendorRepo := vendors.NewRepository(client)
	vendorService := vendors.NewService(
		vendorRepo,
		routerJWTConfig,
		config.PasswordConfig{},
		retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond},
		logg,
	)
	chain := identity.NewChain(logg, identity.NewLocalStrategy(routerJWTConfig, vendorRepo))

	catalogRepo := catalog.NewRepository(client)
	catalogSource, err := catalog.NewSource(cfg.Catalog, catalogRepo)
	require.NoError(t, err)

	handler := NewRouter(
		cfg,
		logg,
		client,
		(*redis.Client)(nil),
		chain,
		guard.New(logg),
		vendorService,
		catalog.NewService(catalogRepo, logg),
		catalogSource,
		packages.NewService(packages.NewRepository(client), logg),
		combos.NewService(combos.NewRepository(client), logg),
		gallery.NewService(client),
		staff.NewService(client),
		bookings.NewService(client),
		transformations.NewService(client),
		audit.NewAuditor(client, logg, nil),
	)

	return &routerHarness{handler: handler, conn: conn}
}

func (h *routerHarness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *routerHarness) register(t *testing.T, email string) string {
	t.Helper()

	rec := h.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"business_name":  "Glow Studio",
		"business_email": email,
		"password":       "sup3r-secret-pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRouterHealthLive(t *testing.T) {
	h := setupRouter(t)

	rec := h.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Glambook-Env"))
}

func TestRouterRejectsAnonymousVendorRoutes(t *testing.T) {
	h := setupRouter(t)

	rec := h.do(t, http.MethodGet, "/api/v1/vendor/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeNoToken), decodeError(t, rec).Code)
}

func TestRouterVendorIsolation(t *testing.T) {
	h := setupRouter(t)
	tokenA := h.register(t, "a@example.com")
	h.register(t, "b@example.com")

	rec := h.do(t, http.MethodPost, "/api/v1/vendor/services", tokenA, map[string]any{
		"name":     "Bridal Makeup",
		"category": "makeup",
		"price":    "₹8,000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/v1/vendor/services", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []catalog.ServiceDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)

	// Vendor A asking for vendor B's rows gets the fixed refusal body.
	rec = h.do(t, http.MethodGet, "/api/v1/vendor/services?business_email=b@example.com", tokenA, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, string(pkgerrors.CodeForbidden), envelope.Code)
	assert.Equal(t, "Unauthorized access to vendor data", envelope.Error)
}

func TestRouterPublicCatalogAndBookings(t *testing.T) {
	h := setupRouter(t)
	token := h.register(t, "salon@example.com")

	rec := h.do(t, http.MethodPost, "/api/v1/vendor/services", token, map[string]any{
		"name":     "Hair Spa",
		"category": "hair",
		"price":    "1200",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/public/v1/vendors/1/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []catalog.ServiceDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)

	rec = h.do(t, http.MethodPost, "/api/public/v1/vendors/1/bookings", "", map[string]any{
		"customer_name":  "Asha",
		"customer_email": "asha@example.com",
		"service_name":   "Hair Spa",
		"scheduled_at":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/v1/vendor/bookings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookingList struct {
		Data []bookings.BookingDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookingList))
	require.Len(t, bookingList.Data, 1)
	assert.Equal(t, bookings.StatusPending, bookingList.Data[0].Status)
}

func TestRouterAdminAuditEndpoint(t *testing.T) {
	h := setupRouter(t)
	vendorToken := h.register(t, "plain@example.com")

	admin := &models.Vendor{
		BusinessName:  "Ops",
		BusinessEmail: "ops@example.com",
		PasswordHash:  "x",
		Role:          pkgauth.RoleAdmin,
	}
	require.NoError(t, h.conn.Create(admin).Error)
	adminToken, err := pkgauth.MintAccessToken(routerJWTConfig, time.Now(), pkgauth.AccessTokenPayload{
		VendorID: admin.SrNo,
		Email:    admin.BusinessEmail,
		Role:     pkgauth.RoleAdmin,
	})
	require.NoError(t, err)

	rec := h.do(t, http.MethodPost, "/api/admin/v1/audit/run", vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/admin/v1/audit/run", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		Data audit.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Data.Pairs, 2)
}
