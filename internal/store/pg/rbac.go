package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/envelope"
)

const (
	permissionColumns = `id, name, code, description`
	roleColumns       = `id, name, code, description`
)

func (s *Store) ListPermissions(ctx context.Context) ([]auth.Permission, error) {
	perms := []auth.Permission{}
	if err := s.db.SelectContext(ctx, &perms, `select `+permissionColumns+` from permissions order by code`); err != nil {
		return nil, err
	}
	return perms, nil
}

func (s *Store) CreatePermission(ctx context.Context, in auth.PermissionInput) (auth.Permission, error) {
	var p auth.Permission
	err := s.db.GetContext(ctx, &p, `
		insert into permissions (name, code, description)
		values ($1, $2, $3)
		returning `+permissionColumns,
		in.Name, in.Code, in.Description)
	if err != nil {
		return auth.Permission{}, mapWriteError(err)
	}
	return p, nil
}

func (s *Store) PermissionCodeExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `select 1 from permissions where code = ?`, code)
}

func (s *Store) CountPermissions(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`select count(*) from permissions where id in (?)`, ids)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) ListRoles(ctx context.Context, page envelope.Page) ([]auth.Role, int, error) {
	roles := []auth.Role{}
	total, err := s.selectPage(ctx, &roles,
		`select `+roleColumns+` from roles`,
		`select count(*) from roles`,
		"name, id", filter{}, page)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachPermissions(ctx, roles); err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (s *Store) GetRole(ctx context.Context, id int64) (auth.Role, error) {
	return s.getRole(ctx, `select `+roleColumns+` from roles where id = $1`, id)
}

func (s *Store) GetRoleByCode(ctx context.Context, code string) (auth.Role, error) {
	return s.getRole(ctx, `select `+roleColumns+` from roles where code = $1`, code)
}

func (s *Store) getRole(ctx context.Context, query string, arg any) (auth.Role, error) {
	var role auth.Role
	if err := s.db.GetContext(ctx, &role, query, arg); err != nil {
		return auth.Role{}, mapReadError(err)
	}
	roles := []auth.Role{role}
	if err := s.attachPermissions(ctx, roles); err != nil {
		return auth.Role{}, err
	}
	return roles[0], nil
}

type rolePermissionRow struct {
	RoleID int64 `db:"role_id"`
	auth.Permission
}

// attachPermissions loads the permission sets of roles in one query.
func (s *Store) attachPermissions(ctx context.Context, roles []auth.Role) error {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]int64, len(roles))
	index := make(map[int64]int, len(roles))
	for i := range roles {
		ids[i] = roles[i].ID
		index[roles[i].ID] = i
		roles[i].Permissions = []auth.Permission{}
	}
	query, args, err := sqlx.In(`
		select rp.role_id, p.id, p.name, p.code, p.description
		from role_permissions rp
		join permissions p on p.id = rp.permission_id
		where rp.role_id in (?)
		order by p.code
	`, ids)
	if err != nil {
		return err
	}
	var rows []rolePermissionRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		if i, ok := index[row.RoleID]; ok {
			roles[i].Permissions = append(roles[i].Permissions, row.Permission)
		}
	}
	return nil
}

func (s *Store) RoleCodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	return s.exists(ctx, `select 1 from roles where code = ? and id <> ?`, code, excludeID)
}

func (s *Store) CreateRole(ctx context.Context, in auth.RoleInput) (auth.Role, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return auth.Role{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.GetContext(ctx, &id, `
		insert into roles (name, code, description)
		values ($1, $2, $3)
		returning id
	`, in.Name, in.Code, in.Description)
	if err != nil {
		return auth.Role{}, mapWriteError(err)
	}
	if err := replaceRolePermissions(ctx, tx, id, in.PermissionIDs); err != nil {
		return auth.Role{}, err
	}
	if err := tx.Commit(); err != nil {
		return auth.Role{}, err
	}
	return s.GetRole(ctx, id)
}

func (s *Store) UpdateRole(ctx context.Context, id int64, upd auth.RoleUpdate) (auth.Role, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return auth.Role{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		sets []string
		args []any
		idx  = 1
	)
	if upd.Name.HasValue() {
		sets = append(sets, fmt.Sprintf("name = $%d", idx))
		args = append(args, upd.Name.Value)
		idx++
	}
	if upd.Code.HasValue() {
		sets = append(sets, fmt.Sprintf("code = $%d", idx))
		args = append(args, upd.Code.Value)
		idx++
	}
	if upd.Description.Present {
		if upd.Description.Null {
			sets = append(sets, "description = NULL")
		} else {
			sets = append(sets, fmt.Sprintf("description = $%d", idx))
			args = append(args, upd.Description.Value)
			idx++
		}
	}

	if len(sets) > 0 {
		query := fmt.Sprintf(`update roles set %s where id = $%d`, strings.Join(sets, ", "), idx)
		args = append(args, id)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return auth.Role{}, mapWriteError(err)
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return auth.Role{}, err
		}
		if aff == 0 {
			return auth.Role{}, errNotFound()
		}
	} else if err := lockRole(ctx, tx, id); err != nil {
		return auth.Role{}, err
	}

	if upd.PermissionIDs.Present {
		if err := replaceRolePermissions(ctx, tx, id, upd.PermissionIDs.Value); err != nil {
			return auth.Role{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return auth.Role{}, err
	}
	return s.GetRole(ctx, id)
}

func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from roles where id = ?`, id)
}

func (s *Store) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockRole(ctx, tx, roleID); err != nil {
		return err
	}
	if err := replaceRolePermissions(ctx, tx, roleID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func lockRole(ctx context.Context, tx *sqlx.Tx, id int64) error {
	var one int
	err := tx.QueryRowxContext(ctx, `select 1 from roles where id = $1 for update`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound()
	}
	return err
}

func replaceRolePermissions(ctx context.Context, tx *sqlx.Tx, roleID int64, permissionIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `delete from role_permissions where role_id = $1`, roleID); err != nil {
		return err
	}
	for _, pid := range permissionIDs {
		if _, err := tx.ExecContext(ctx, `
			insert into role_permissions (role_id, permission_id)
			values ($1, $2)
			on conflict do nothing
		`, roleID, pid); err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}
