package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

// Authenticator resolves the caller of r. ok is false when the request
// carries no usable credentials.
type Authenticator func(r *http.Request) (p Principal, ok bool)

// AuthnMiddleware attaches the resolved principal to the request context.
// Requests without one are handed to unauthenticated instead of next.
func AuthnMiddleware(authn Authenticator, unauthenticated http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := authn(r)
			if !ok {
				slogx.FromContext(r.Context()).Debug("no authenticated session", "path", r.URL.Path)
				unauthenticated.ServeHTTP(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), p)
			ctx = slogx.WithAttrs(ctx, "user", p.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
