package httpapi

import (
	"net/http"

	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/auth"
)

type rolePermissionsRequest struct {
	PermissionIDs []int64 `json:"permission_ids" validate:"required"`
}

func (a *API) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := a.rbac.ListPermissions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, perms, "")
}

func (a *API) createPermission(w http.ResponseWriter, r *http.Request) {
	var req auth.PermissionInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	perm, err := a.rbac.CreatePermission(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "permission", "create", perm.ID)
	writeData(w, http.StatusCreated, perm, "Permission created")
}

func (a *API) listRoles(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(catalogPages)
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	roles, total, err := a.rbac.ListRoles(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, roles, page, total)
}

func (a *API) getRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "role_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	role, err := a.rbac.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, role, "")
}

func (a *API) createRole(w http.ResponseWriter, r *http.Request) {
	var req auth.RoleInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	role, err := a.rbac.CreateRole(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "role", "create", role.ID)
	writeData(w, http.StatusCreated, role, "Role created")
}

func (a *API) updateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "role_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req auth.RoleUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	role, err := a.rbac.UpdateRole(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "role", "update", role.ID)
	writeData(w, http.StatusOK, role, "Role updated")
}

func (a *API) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "role_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.rbac.DeleteRole(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "role", "delete", id)
	writeNoContent(w)
}

func (a *API) setRolePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "role_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req rolePermissionsRequest
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	role, err := a.rbac.SetRolePermissions(r.Context(), id, req.PermissionIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "role", "set_permissions", role.ID)
	writeData(w, http.StatusOK, role, "Role permissions updated")
}
