package auth

import "errors"

var errMissingSecret = errors.New("auth: secret key is not configured")

// Client-facing failure messages.
const (
	msgInvalidCredentials  = "Invalid email or password"
	msgAccountDisabled     = "Account is disabled"
	msgInvalidRefresh      = "Invalid or expired refresh token"
	msgInvalidAccess       = "Invalid or expired token"
	msgUserInactive        = "User not found or inactive"
	msgWrongPassword       = "Current password is incorrect"
	msgTooManyAttempts     = "Too many login attempts, try again later"
	msgRoleNotFound        = "Role not found"
	msgRoleCodeExists      = "Role code already exists"
	msgPermissionCodeTaken = "Permission code already exists"
)
