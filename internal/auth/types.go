package auth

import (
	"time"

	"github.com/hrmslite/hrms/internal/patch"
)

// User is an account able to authenticate against the API.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	FullName       string    `db:"full_name" json:"full_name"`
	RoleID         *int64    `db:"role_id" json:"role_id"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	IsSuperuser    bool      `db:"is_superuser" json:"is_superuser"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Permission is an immutable catalog entry.
type Permission struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Code        string  `db:"code" json:"code"`
	Description *string `db:"description" json:"description"`
}

// Role groups permissions. Permissions is resolved by explicit lookup.
type Role struct {
	ID          int64        `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Code        string       `db:"code" json:"code"`
	Description *string      `db:"description" json:"description"`
	Permissions []Permission `db:"-" json:"permissions"`
}

// NewUser carries the fields needed to insert a user.
type NewUser struct {
	Email          string
	HashedPassword string
	FullName       string
	RoleID         *int64
	IsActive       bool
	IsSuperuser    bool
}

// PermissionInput creates a permission.
type PermissionInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Code        string  `json:"code" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// RoleInput creates a role together with its permission set.
type RoleInput struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Code          string  `json:"code" validate:"required,min=1,max=50"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// RoleUpdate is a partial update. A present PermissionIDs replaces the whole set.
type RoleUpdate struct {
	Name          patch.Field[string]  `json:"name"`
	Code          patch.Field[string]  `json:"code"`
	Description   patch.Field[string]  `json:"description"`
	PermissionIDs patch.Field[[]int64] `json:"permission_ids"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CurrentUser is the public view of the authenticated account.
type CurrentUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

// Public strips credentials from a user.
func (u User) Public() CurrentUser {
	return CurrentUser{ID: u.ID, Email: u.Email, FullName: u.FullName, IsActive: u.IsActive}
}
