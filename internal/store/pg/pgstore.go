// Package pg implements every repository interface on PostgreSQL through
// sqlx over the pgx stdlib driver.
package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

type Store struct {
	db *sqlx.DB
}

var (
	_ hrm.Store      = (*Store)(nil)
	_ auth.UserStore = (*Store)(nil)
	_ auth.RBACStore = (*Store)(nil)
)

// PoolOptions tunes the connection pool.
type PoolOptions struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// Open parses dsn, opens a pool and pings the server.
func Open(ctx context.Context, dsn string, pool PoolOptions) (*Store, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}
	cfg.ConnectTimeout = 5 * time.Second

	db := sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx")
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	if pool.MaxIdle > 0 {
		db.SetMaxIdleConns(pool.MaxIdle)
	}
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: failed to connect to Postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an existing handle. The driver name must bind $n placeholders.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sqlx.DB { return s.db }

// Ping reports database reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// filter accumulates "?" placeholders; queries are rebound to $n before use.
type filter struct {
	clauses []string
	args    []any
}

func (f *filter) add(clause string, args ...any) {
	f.clauses = append(f.clauses, clause)
	f.args = append(f.args, args...)
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " where " + strings.Join(f.clauses, " and ")
}

// selectPage counts matching rows and loads one ordered page into dest.
func (s *Store) selectPage(ctx context.Context, dest any, selectSQL, countSQL, orderBy string, f filter, page envelope.Page) (int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(countSQL+f.where()), f.args...); err != nil {
		return 0, err
	}
	args := make([]any, 0, len(f.args)+2)
	args = append(args, f.args...)
	args = append(args, page.PerPage, page.Offset())
	query := s.db.Rebind(selectSQL + f.where() + " order by " + orderBy + " limit ? offset ?")
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// exists runs a select-1 style query and reports whether it matched.
func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.db.GetContext(ctx, &ok, s.db.Rebind("select exists("+query+")"), args...); err != nil {
		return false, err
	}
	return ok, nil
}

// execAffected runs a write and maps zero affected rows to not found.
func (s *Store) execAffected(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return mapDeleteError(err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return errNotFound()
	}
	return nil
}
