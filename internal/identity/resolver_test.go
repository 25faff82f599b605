package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glambook/glambook-backend/pkg/auth"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db/models"
	"github.com/glambook/glambook-backend/pkg/errors"
	"github.com/glambook/glambook-backend/pkg/logger"
)

type stubVendorReader struct {
	bySrNo  map[uint64]*models.Vendor
	byEmail map[string]*models.Vendor
}

func newStubVendorReader(vendors ...*models.Vendor) *stubVendorReader {
	s := &stubVendorReader{
		bySrNo:  map[uint64]*models.Vendor{},
		byEmail: map[string]*models.Vendor{},
	}
	for _, v := range vendors {
		s.bySrNo[v.SrNo] = v
		s.byEmail[NormalizeEmail(v.BusinessEmail)] = v
	}
	return s
}

func (s *stubVendorReader) FindBySrNo(_ context.Context, srNo uint64) (*models.Vendor, error) {
	if v, ok := s.bySrNo[srNo]; ok {
		return v, nil
	}
	return nil, errors.New(errors.CodeNotFound, "vendor not found")
}

func (s *stubVendorReader) FindByEmail(_ context.Context, email string) (*models.Vendor, error) {
	if v, ok := s.byEmail[NormalizeEmail(email)]; ok {
		return v, nil
	}
	return nil, errors.New(errors.CodeNotFound, "vendor not found")
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "resolver-test-secret",
		Issuer:            "glambook-test",
		ExpirationMinutes: 30,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "identity-test", Level: zerolog.Disabled, Output: io.Discard})
}

func testVendor() *models.Vendor {
	return &models.Vendor{
		SrNo:          42,
		BusinessName:  "Velvet Lounge",
		BusinessEmail: "velvet@example.com",
		Role:          auth.RoleVendor,
	}
}

func TestChainResolveLocalToken(t *testing.T) {
	cfg := testJWTConfig()
	vendors := newStubVendorReader(testVendor())
	chain := NewChain(testLogger(), NewLocalStrategy(cfg, vendors))

	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		VendorID: 42,
		Email:    "Velvet@Example.com",
		Role:     auth.RoleVendor,
	})
	require.NoError(t, err)

	id, err := chain.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.VendorID)
	assert.Equal(t, "velvet@example.com", id.Email)
	assert.Equal(t, auth.RoleVendor, id.Role)
}

func TestChainResolveEmptyToken(t *testing.T) {
	chain := NewChain(testLogger(), NewLocalStrategy(testJWTConfig(), newStubVendorReader()))

	_, err := chain.Resolve(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNoToken, errors.As(err).Code())
}

func TestChainResolveExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	vendors := newStubVendorReader(testVendor())
	chain := NewChain(testLogger(), NewLocalStrategy(cfg, vendors))

	token, err := auth.MintAccessToken(cfg, time.Now().Add(-2*time.Hour), auth.AccessTokenPayload{
		VendorID: 42,
		Email:    "velvet@example.com",
		Role:     auth.RoleVendor,
	})
	require.NoError(t, err)

	_, err = chain.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, errors.CodeTokenExpired, errors.As(err).Code())
}

func TestChainResolveDeletedVendor(t *testing.T) {
	cfg := testJWTConfig()
	chain := NewChain(testLogger(), NewLocalStrategy(cfg, newStubVendorReader()))

	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		VendorID: 42,
		Email:    "velvet@example.com",
		Role:     auth.RoleVendor,
	})
	require.NoError(t, err)

	_, err = chain.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUserNotFound, errors.As(err).Code())
}

func TestChainResolveGarbageToken(t *testing.T) {
	chain := NewChain(testLogger(), NewLocalStrategy(testJWTConfig(), newStubVendorReader(testVendor())))

	_, err := chain.Resolve(context.Background(), "not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidToken, errors.As(err).Code())
}

func TestChainFallsBackToIntrospection(t *testing.T) {
	vendor := testVendor()
	vendors := newStubVendorReader(vendor)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req introspectionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "opaque-provider-token", req.Token)
		assert.Equal(t, "gb-client", req.ClientID)

		_ = json.NewEncoder(w).Encode(introspectionResponse{
			Active: true,
			Email:  "velvet@example.com",
			Exp:    time.Now().Add(time.Hour).Unix(),
		})
	}))
	defer srv.Close()

	introspection := NewIntrospectionStrategy(config.IntrospectionConfig{
		URL:      srv.URL,
		ClientID: "gb-client",
		Timeout:  2 * time.Second,
	}, vendors)

	chain := NewChain(testLogger(), NewLocalStrategy(testJWTConfig(), vendors), introspection)

	id, err := chain.Resolve(context.Background(), "opaque-provider-token")
	require.NoError(t, err)
	assert.Equal(t, vendor.SrNo, id.VendorID)
	assert.Equal(t, "velvet@example.com", id.Email)
}

func TestChainIntrospectionInactiveToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(introspectionResponse{Active: false})
	}))
	defer srv.Close()

	vendors := newStubVendorReader(testVendor())
	chain := NewChain(
		testLogger(),
		NewLocalStrategy(testJWTConfig(), vendors),
		NewIntrospectionStrategy(config.IntrospectionConfig{URL: srv.URL, Timeout: 2 * time.Second}, vendors),
	)

	_, err := chain.Resolve(context.Background(), "opaque-provider-token")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidToken, errors.As(err).Code())
}

func TestResolveOptional(t *testing.T) {
	cfg := testJWTConfig()
	vendors := newStubVendorReader(testVendor())
	chain := NewChain(testLogger(), NewLocalStrategy(cfg, vendors))

	assert.Nil(t, chain.ResolveOptional(context.Background(), ""))
	assert.Nil(t, chain.ResolveOptional(context.Background(), "junk"))

	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		VendorID: 42,
		Email:    "velvet@example.com",
	})
	require.NoError(t, err)

	id := chain.ResolveOptional(context.Background(), token)
	require.NotNil(t, id)
	assert.Equal(t, uint64(42), id.VendorID)
}
