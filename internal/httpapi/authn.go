package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidScheme    = "Invalid authentication scheme"
	msgPermissionDenied = "Permission denied"
)

// requireAuth resolves the bearer token into a principal on the context.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, err)
			return
		}
		principal, err := a.auth.Authenticate(r.Context(), token)
		if err != nil {
			obs.RecordAuthEvent("token", "failure")
			writeError(w, r, err)
			return
		}
		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission gates a route on a permission code.
func (a *API) requirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.checkPermission(r.Context(), perm); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkPermission is a no-op while RBAC enforcement is disabled.
func (a *API) checkPermission(ctx context.Context, perm string) error {
	if !a.enforceRBAC {
		return nil
	}
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return apperr.Unauthorized(msgNotAuthenticated)
	}
	if !principal.HasPermission(perm) {
		return apperr.Forbidden(msgPermissionDenied, apperr.Detail{Field: "permission", Message: perm})
	}
	return nil
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperr.Unauthorized(msgNotAuthenticated)
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearer) {
		return "", apperr.Unauthorized(msgInvalidScheme)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.Unauthorized(msgNotAuthenticated)
	}
	return token, nil
}
