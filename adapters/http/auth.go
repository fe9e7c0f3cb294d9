package reporthttp

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/goliatone/go-router"

	"github.com/goliatone/go-report/report"
)

// HeaderAPIKey carries the caller's API key.
const HeaderAPIKey = "X-API-Key"

// Authenticator accepts or rejects a request credential before the
// report pipeline runs.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) error
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, credential string) error

func (f AuthenticatorFunc) Authenticate(ctx context.Context, credential string) error {
	return f(ctx, credential)
}

// StaticKeys accepts any of a fixed set of API keys.
type StaticKeys []string

func (k StaticKeys) Authenticate(_ context.Context, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return report.NewError(report.KindUnauthorized, "missing API key", nil)
	}
	for _, key := range k {
		if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(credential)) == 1 {
			return nil
		}
	}
	return report.NewError(report.KindUnauthorized, "invalid API key", nil)
}

func (h *Handler) authenticate(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		if h.auth == nil {
			return next(c)
		}
		if err := h.auth.Authenticate(c.Context(), credentialFrom(c)); err != nil {
			if report.KindFromError(err) != report.KindUnauthorized {
				err = report.NewError(report.KindUnauthorized, "authentication failed", err)
			}
			return h.writeError(c, err)
		}
		return next(c)
	}
}

func credentialFrom(c router.Context) string {
	if key := strings.TrimSpace(c.Header(HeaderAPIKey)); key != "" {
		return key
	}
	authz := strings.TrimSpace(c.Header("Authorization"))
	const prefix = "bearer "
	if len(authz) > len(prefix) && strings.EqualFold(authz[:len(prefix)], prefix) {
		return strings.TrimSpace(authz[len(prefix):])
	}
	return ""
}
