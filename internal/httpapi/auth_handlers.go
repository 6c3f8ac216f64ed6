package httpapi

import (
	"errors"
	"net/http"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/obs"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,hrms_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	email := auth.NormalizeEmail(req.Email)
	user, pair, err := a.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		obs.RecordAuthEvent("login", authResult(err))
		_ = audit.LogEvent(r.Context(), "auth.login.failure", map[string]any{"email": email})
		writeError(w, r, err)
		return
	}
	obs.RecordAuthEvent("login", "success")
	_ = audit.LogEvent(r.Context(), "auth.login.success", map[string]any{"user_id": user.ID})
	writeData(w, http.StatusOK, pair, "Login successful")
}

func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, pair, err := a.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		obs.RecordAuthEvent("refresh", authResult(err))
		_ = audit.LogEvent(r.Context(), "auth.refresh.failure", nil)
		writeError(w, r, err)
		return
	}
	obs.RecordAuthEvent("refresh", "success")
	_ = audit.LogEvent(r.Context(), "auth.refresh.success", map[string]any{"user_id": user.ID})
	writeData(w, http.StatusOK, pair, "Tokens refreshed")
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Unauthorized(msgNotAuthenticated))
		return
	}
	writeData(w, http.StatusOK, principal.User.Public(), "")
}

func (a *API) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	if err := a.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.password.change", map[string]any{"user_id": userID})
	writeData(w, http.StatusOK, nil, "Password changed")
}

// authResult labels a failed auth attempt for metrics.
func authResult(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Code {
		case apperr.CodeTooManyRequests:
			return "throttled"
		case apperr.CodeUnauthorized:
			return "failure"
		}
	}
	return "error"
}
