package controllers

import (
	"context"
	"net/http"

	"github.com/baabuu/storefront-web/api/responses"
	"github.com/baabuu/storefront-web/api/validators"
	"github.com/baabuu/storefront-web/internal/backend"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

// TokenHeader carries the issued token back to the client on login.
const TokenHeader = "X-Baabuu-Token"

// SessionBackend is the catalog API's session surface. *backend.Client
// implements it.
type SessionBackend interface {
	Login(ctx context.Context, username, password string) (backend.LoginResult, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (backend.AuthStatus, error)
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=128"`
}

// AuthLogin exchanges credentials for a catalog API token.
func AuthLogin(svc SessionBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(TokenHeader, result.Token)
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the presented token upstream.
func AuthLogout(svc SessionBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthCheck reports whether the presented token is still accepted. A token
// the catalog API rejects is reported as unauthenticated, not as an error.
func AuthCheck(svc SessionBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		status, err := svc.CheckAuth(r.Context())
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) || pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
				responses.WriteSuccess(w, backend.AuthStatus{Authenticated: false})
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
