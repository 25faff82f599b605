package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
	"github.com/sethvargo/go-retry"
)

// Policy bounds how persistently an operation class is retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy matches the platform default for transient storage failures.
var DefaultPolicy = Policy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond}

// Do runs op, retrying only errors classified as transient. Validation,
// authorization, and not-found failures surface immediately.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultPolicy.MaxAttempts
	}
	base := policy.BaseDelay
	if base <= 0 {
		base = DefaultPolicy.BaseDelay
	}

	backoff := retry.NewExponential(base)
	backoff = retry.WithJitter(base/2, backoff)
	backoff = retry.WithMaxRetries(uint64(attempts-1), backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// IsTransient reports whether the error belongs to the connection-level
// failure class (refused/reset/timeout). Typed platform errors are never
// transient unless their metadata says so.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if typed := pkgerrors.As(err); typed != nil {
		return pkgerrors.MetadataFor(typed.Code()).Retryable
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	for _, needle := range []string{"connection refused", "connection reset", "broken pipe", "i/o timeout"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
