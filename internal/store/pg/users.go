package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/auth"
)

const userColumns = `id, email, hashed_password, full_name, role_id, is_active, is_superuser, created_at, updated_at`

func (s *Store) GetUser(ctx context.Context, id int64) (auth.User, error) {
	var u auth.User
	err := s.db.GetContext(ctx, &u, `select `+userColumns+` from users where id = $1`, id)
	if err != nil {
		return auth.User{}, mapReadError(err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	var u auth.User
	err := s.db.GetContext(ctx, &u, `select `+userColumns+` from users where lower(email) = lower($1)`, email)
	if err != nil {
		return auth.User{}, mapReadError(err)
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, in auth.NewUser) (auth.User, error) {
	var u auth.User
	err := s.db.GetContext(ctx, &u, `
		insert into users (email, hashed_password, full_name, role_id, is_active, is_superuser)
		values ($1, $2, $3, $4, $5, $6)
		returning `+userColumns,
		in.Email, in.HashedPassword, in.FullName, in.RoleID, in.IsActive, in.IsSuperuser)
	if err != nil {
		return auth.User{}, mapWriteError(err)
	}
	return u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return s.execAffected(ctx, `update users set hashed_password = ?, updated_at = now() where id = ?`, hash, id)
}

func (s *Store) PermissionCodes(ctx context.Context, userID int64) ([]string, error) {
	codes := []string{}
	err := s.db.SelectContext(ctx, &codes, `
		select p.code
		from users u
		join role_permissions rp on rp.role_id = u.role_id
		join permissions p on p.id = rp.permission_id
		where u.id = $1
		order by p.code
	`, userID)
	if err != nil {
		return nil, err
	}
	return codes, nil
}
