package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/errors"
)

// introspectionStrategy asks an external identity provider whether a token
// it did not mint is valid. It runs after the local strategy, so it only
// ever sees tokens the local verifier could not parse.
type introspectionStrategy struct {
	cfg     config.IntrospectionConfig
	client  *http.Client
	vendors VendorReader
}

func NewIntrospectionStrategy(cfg config.IntrospectionConfig, vendors VendorReader) Strategy {
	return &introspectionStrategy{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		vendors: vendors,
	}
}

func (s *introspectionStrategy) Name() string { return "introspection" }

type introspectionRequest struct {
	Token        string `json:"token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type introspectionResponse struct {
	Active bool   `json:"active"`
	Email  string `json:"email"`
	Exp    int64  `json:"exp"`
}

func (s *introspectionStrategy) Resolve(ctx context.Context, token string) (*Identity, error) {
	body, err := json.Marshal(introspectionRequest{
		Token:        token,
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "encoding introspection request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "building introspection request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "identity provider unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeDependency, fmt.Sprintf("identity provider returned %d", res.StatusCode))
	}

	var out introspectionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "decoding introspection response")
	}
	if !out.Active {
		return nil, errors.New(errors.CodeInvalidToken, "identity provider rejected token")
	}
	if out.Exp > 0 && time.Now().Unix() >= out.Exp {
		return nil, errors.New(errors.CodeTokenExpired, "introspected token expired")
	}
	if out.Email == "" {
		return nil, errors.New(errors.CodeInvalidToken, "introspection response has no email")
	}

	vendor, err := s.vendors.FindByEmail(ctx, NormalizeEmail(out.Email))
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeNotFound {
			return nil, errors.New(errors.CodeUserNotFound, "no vendor for introspected email")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up introspected vendor")
	}

	return &Identity{
		VendorID: vendor.SrNo,
		Email:    NormalizeEmail(vendor.BusinessEmail),
		Role:     vendor.Role,
	}, nil
}
