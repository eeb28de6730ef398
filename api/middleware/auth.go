package middleware

import (
	"net/http"

	"github.com/baabuu/storefront-web/api/responses"
	pkgAuth "github.com/baabuu/storefront-web/pkg/auth"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

// RequireToken rejects requests without a catalog API token and seeds the
// request context with it. The token is not inspected; the catalog API
// decides whether it grants access.
func RequireToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := pkgAuth.ParseAuthorization(r.Header.Get("Authorization"))
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			ctx := pkgAuth.WithToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithField(ctx, "authenticated", true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ForwardToken carries a token through when one is present. Malformed
// headers are ignored.
func ForwardToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := pkgAuth.ParseAuthorization(r.Header.Get("Authorization")); ok {
				r = r.WithContext(pkgAuth.WithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}
