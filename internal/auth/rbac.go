package auth

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/patch"
)

// RBACService manages roles and the permission catalog.
type RBACService struct {
	store RBACStore
}

func NewRBACService(store RBACStore) *RBACService {
	return &RBACService{store: store}
}

func (s *RBACService) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

func (s *RBACService) CreatePermission(ctx context.Context, in PermissionInput) (Permission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" {
		return Permission{}, apperr.FieldInvalid("name", "must not be empty")
	}
	if in.Code == "" {
		return Permission{}, apperr.FieldInvalid("code", "must not be empty")
	}
	exists, err := s.store.PermissionCodeExists(ctx, in.Code)
	if err != nil {
		return Permission{}, err
	}
	if exists {
		return Permission{}, apperr.Conflict(msgPermissionCodeTaken, "code")
	}
	return s.store.CreatePermission(ctx, in)
}

func (s *RBACService) ListRoles(ctx context.Context, page envelope.Page) ([]Role, int, error) {
	return s.store.ListRoles(ctx, page)
}

func (s *RBACService) GetRole(ctx context.Context, id int64) (Role, error) {
	role, err := s.store.GetRole(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return Role{}, apperr.NotFound(msgRoleNotFound, "role_id")
	}
	return role, err
}

func (s *RBACService) CreateRole(ctx context.Context, in RoleInput) (Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" {
		return Role{}, apperr.FieldInvalid("name", "must not be empty")
	}
	if in.Code == "" {
		return Role{}, apperr.FieldInvalid("code", "must not be empty")
	}
	exists, err := s.store.RoleCodeExists(ctx, in.Code, 0)
	if err != nil {
		return Role{}, err
	}
	if exists {
		return Role{}, apperr.Conflict(msgRoleCodeExists, "code")
	}
	ids, err := s.checkPermissionIDs(ctx, in.PermissionIDs)
	if err != nil {
		return Role{}, err
	}
	in.PermissionIDs = ids
	return s.store.CreateRole(ctx, in)
}

// UpdateRole applies a partial update. Absent permission_ids keeps the current
// set; present permission_ids replaces it.
func (s *RBACService) UpdateRole(ctx context.Context, id int64, upd RoleUpdate) (Role, error) {
	if _, err := s.GetRole(ctx, id); err != nil {
		return Role{}, err
	}
	if upd.Name.Present {
		if upd.Name.Null || strings.TrimSpace(upd.Name.Value) == "" {
			return Role{}, apperr.FieldInvalid("name", "must not be empty")
		}
		upd.Name = patch.Set(strings.TrimSpace(upd.Name.Value))
	}
	if upd.Code.Present {
		code := strings.TrimSpace(upd.Code.Value)
		if upd.Code.Null || code == "" {
			return Role{}, apperr.FieldInvalid("code", "must not be empty")
		}
		exists, err := s.store.RoleCodeExists(ctx, code, id)
		if err != nil {
			return Role{}, err
		}
		if exists {
			return Role{}, apperr.Conflict(msgRoleCodeExists, "code")
		}
		upd.Code = patch.Set(code)
	}
	if upd.PermissionIDs.Present {
		ids, err := s.checkPermissionIDs(ctx, upd.PermissionIDs.Value)
		if err != nil {
			return Role{}, err
		}
		upd.PermissionIDs = patch.Set(ids)
	}
	role, err := s.store.UpdateRole(ctx, id, upd)
	if errors.Is(err, apperr.ErrNotFound) {
		return Role{}, apperr.NotFound(msgRoleNotFound, "role_id")
	}
	return role, err
}

func (s *RBACService) DeleteRole(ctx context.Context, id int64) error {
	err := s.store.DeleteRole(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(msgRoleNotFound, "role_id")
	}
	return err
}

// SetRolePermissions replaces the role's permission set.
func (s *RBACService) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) (Role, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return Role{}, err
	}
	ids, err := s.checkPermissionIDs(ctx, permissionIDs)
	if err != nil {
		return Role{}, err
	}
	if err := s.store.SetRolePermissions(ctx, roleID, ids); err != nil {
		return Role{}, err
	}
	return s.GetRole(ctx, roleID)
}

func (s *RBACService) checkPermissionIDs(ctx context.Context, ids []int64) ([]int64, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, apperr.FieldInvalid("permission_ids", "ids must be positive")
		}
	}
	n, err := s.store.CountPermissions(ctx, ids)
	if err != nil {
		return nil, err
	}
	if n != len(ids) {
		return nil, apperr.FieldInvalid("permission_ids", "one or more permissions do not exist")
	}
	return ids, nil
}

func dedupeIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
