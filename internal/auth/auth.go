package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType separates access from refresh credentials.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// iat may run ahead of the verifier's clock by this much.
const issuedAtSkew = 5 * time.Second

// Claims represents JWT claims carried by access and refresh tokens.
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (int64, bool) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// TokenCodec signs and verifies HS256 tokens with a single process-wide secret.
type TokenCodec struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// CodecOption configures TokenCodec behavior.
type CodecOption func(*TokenCodec)

// WithCodecIssuer sets the iss claim written and required on verify.
func WithCodecIssuer(issuer string) CodecOption {
	return func(c *TokenCodec) {
		c.issuer = strings.TrimSpace(issuer)
	}
}

// WithLeeway tolerates clock skew on exp/iat checks. Zero by default.
func WithLeeway(d time.Duration) CodecOption {
	return func(c *TokenCodec) {
		if d > 0 {
			c.leeway = d
		}
	}
}

// WithCodecClock overrides time source (useful for tests).
func WithCodecClock(fn func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewTokenCodec constructs a codec. The secret must be non-empty.
func NewTokenCodec(secret string, opts ...CodecOption) (*TokenCodec, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errMissingSecret
	}
	c := &TokenCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject with the given type and lifetime.
func (c *TokenCodec) Issue(subject int64, typ TokenType, ttl time.Duration) (string, time.Time, error) {
	if subject <= 0 {
		return "", time.Time{}, errors.New("subject is required")
	}
	if typ != TokenAccess && typ != TokenRefresh {
		return "", time.Time{}, fmt.Errorf("unsupported token type %q", typ)
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("ttl must be greater than zero")
	}

	now := c.now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, structure and expiry. It never panics on
// malformed input; ok=false is the only failure signal.
func (c *TokenCodec) Verify(token string) (*Claims, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(c.leeway))
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims Claims
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if err := c.validateClaims(&claims); err != nil {
		return nil, false
	}
	return &claims, true
}

// VerifyType is Verify plus a token type check.
func (c *TokenCodec) VerifyType(token string, want TokenType) (*Claims, bool) {
	claims, ok := c.Verify(token)
	if !ok || claims.Type != want {
		return nil, false
	}
	return claims, true
}

func (c *TokenCodec) validateClaims(claims *Claims) error {
	if _, ok := claims.UserID(); !ok {
		return errors.New("subject missing")
	}
	if claims.Type != TokenAccess && claims.Type != TokenRefresh {
		return fmt.Errorf("unexpected token type: %s", claims.Type)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	now := c.now().UTC()
	// expired once now >= exp
	if !now.Before(claims.ExpiresAt.Time.Add(c.leeway)) {
		return errors.New("token expired")
	}
	if claims.IssuedAt.Time.After(now.Add(issuedAtSkew + c.leeway)) {
		return errors.New("token issued in the future")
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}
	return nil
}
