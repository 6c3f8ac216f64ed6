package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hrmslite/hrms/internal/apperr"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

var localEmail = regexp.MustCompile(`^[^@]+@[^@\s]+\.local$`)

// IsLocalEmail reports addresses on the reserved development suffix, which
// skip RFC format validation.
func IsLocalEmail(email string) bool {
	return localEmail.MatchString(email)
}

// NormalizeEmail trims and lowercases an address before lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// RoleLookup resolves a role by code.
type RoleLookup interface {
	GetRoleByCode(ctx context.Context, code string) (Role, error)
}

// Service authenticates users and issues token pairs.
type Service struct {
	users      UserStore
	roles      RoleLookup
	codec      *TokenCodec
	limiter    LoginLimiter
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithAccessTTL configures access token lifetime.
func WithAccessTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// WithRefreshTTL configures refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.refreshTTL = ttl
		}
	}
}

// WithLoginLimiter enables login throttling.
func WithLoginLimiter(l LoginLimiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithRoles lets EnsureAdmin attach the admin role.
func WithRoles(r RoleLookup) ServiceOption {
	return func(s *Service) {
		s.roles = r
	}
}

// NewService constructs Service with optional configuration.
func NewService(users UserStore, codec *TokenCodec, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: token codec is required")
	}
	svc := &Service{
		users:      users,
		codec:      codec,
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Login verifies credentials and returns the user with a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (User, TokenPair, error) {
	email = NormalizeEmail(email)
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			return User{}, TokenPair{}, fmt.Errorf("login limiter: %w", err)
		}
		if !ok {
			return User{}, TokenPair{}, apperr.TooManyRequests(msgTooManyAttempts)
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, TokenPair{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return User{}, TokenPair{}, err
	}
	if err := VerifyPassword(user.HashedPassword, password); err != nil {
		return User{}, TokenPair{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		return User{}, TokenPair{}, apperr.Unauthorized(msgAccountDisabled)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return User{}, TokenPair{}, err
	}
	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, email)
	}
	return user, pair, nil
}

// Refresh exchanges a refresh token for a brand-new pair. The old refresh
// token stays valid until it expires.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (User, TokenPair, error) {
	claims, ok := s.codec.VerifyType(refreshToken, TokenRefresh)
	if !ok {
		return User{}, TokenPair{}, apperr.Unauthorized(msgInvalidRefresh)
	}
	user, err := s.activeUser(ctx, claims)
	if err != nil {
		return User{}, TokenPair{}, err
	}
	pair, err := s.issuePair(user.ID)
	if err != nil {
		return User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// ResolveUser maps an access token to its active user.
func (s *Service) ResolveUser(ctx context.Context, accessToken string) (User, error) {
	claims, ok := s.codec.VerifyType(accessToken, TokenAccess)
	if !ok {
		return User{}, apperr.Unauthorized(msgInvalidAccess)
	}
	return s.activeUser(ctx, claims)
}

// Authenticate resolves the user and loads the permission codes of its role.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (Principal, error) {
	user, err := s.ResolveUser(ctx, accessToken)
	if err != nil {
		return Principal{}, err
	}
	codes, err := s.users.PermissionCodes(ctx, user.ID)
	if err != nil {
		return Principal{}, fmt.Errorf("load permissions: %w", err)
	}
	return NewPrincipal(user, codes), nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Unauthorized(msgUserInactive)
		}
		return err
	}
	if err := VerifyPassword(user.HashedPassword, current); err != nil {
		return apperr.Unauthorized(msgWrongPassword)
	}
	if len(next) < MinPasswordLength {
		return apperr.FieldInvalid("new_password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// AdminSeed describes the bootstrap account.
type AdminSeed struct {
	Email    string
	Password string
	FullName string
}

// EnsureAdmin creates the bootstrap superuser when the email is unused.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	email := NormalizeEmail(seed.Email)
	if email == "" {
		return false, errors.New("auth: admin email is required")
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}

	hash, err := HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	var roleID *int64
	if s.roles != nil {
		role, err := s.roles.GetRoleByCode(ctx, AdminRoleCode)
		switch {
		case err == nil:
			roleID = &role.ID
		case !errors.Is(err, apperr.ErrNotFound):
			return false, err
		}
	}
	name := strings.TrimSpace(seed.FullName)
	if name == "" {
		name = "HRMS Admin"
	}
	_, err = s.users.CreateUser(ctx, NewUser{
		Email:          email,
		HashedPassword: hash,
		FullName:       name,
		RoleID:         roleID,
		IsActive:       true,
		IsSuperuser:    true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// AccessTTL exposes the configured access lifetime.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

func (s *Service) activeUser(ctx context.Context, claims *Claims) (User, error) {
	id, _ := claims.UserID()
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, apperr.Unauthorized(msgUserInactive)
		}
		return User{}, err
	}
	if !user.IsActive {
		return User{}, apperr.Unauthorized(msgUserInactive)
	}
	return user, nil
}

func (s *Service) issuePair(userID int64) (TokenPair, error) {
	access, _, err := s.codec.Issue(userID, TokenAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.codec.Issue(userID, TokenRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.accessTTL / time.Second),
	}, nil
}
