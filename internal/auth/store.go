package auth

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
)

// UserStore persists accounts. Lookups return apperr.ErrNotFound on a miss.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, in NewUser) (User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	// PermissionCodes returns the codes granted by the user's role.
	PermissionCodes(ctx context.Context, userID int64) ([]string, error)
}

// RBACStore persists roles, permissions and their links.
type RBACStore interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
	CreatePermission(ctx context.Context, in PermissionInput) (Permission, error)
	PermissionCodeExists(ctx context.Context, code string) (bool, error)
	// CountPermissions returns how many of ids exist.
	CountPermissions(ctx context.Context, ids []int64) (int, error)

	ListRoles(ctx context.Context, page envelope.Page) ([]Role, int, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	GetRoleByCode(ctx context.Context, code string) (Role, error)
	RoleCodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	CreateRole(ctx context.Context, in RoleInput) (Role, error)
	UpdateRole(ctx context.Context, id int64, upd RoleUpdate) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
	SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
}
