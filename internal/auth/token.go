package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/campus-union/cms-service/internal/config"
	"github.com/campus-union/cms-service/internal/domain"
)

// Sentinel errors returned by Verify. Callers match with errors.Is and
// translate to a uniform outward failure; the distinction only matters
// for logging.
var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenWrongType = errors.New("token principal type mismatch")
)

// TokenClaims is the JWT payload. The subject registered claim carries
// the username; the type claim distinguishes user tokens from admin
// tokens so one cannot be replayed against the other surface.
type TokenClaims struct {
	PrincipalType domain.PrincipalType `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed access tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenManager builds a manager from auth config. An empty secret or
// an unknown algorithm is a configuration error; callers should treat it
// as fatal at startup.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	ttlMinutes := cfg.AccessTokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func signingMethod(name string) (jwt.SigningMethod, error) {
	switch name {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", name)
	}
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for the subject valid from now until now+TTL.
func (tm *TokenManager) Issue(subject string, ptype domain.PrincipalType, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tm.ttl)
	claims := &TokenClaims{
		PrincipalType: ptype,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token against the given instant. It
// returns ErrTokenExpired for expired tokens, ErrTokenWrongType when the
// type claim is missing or unknown, and ErrTokenInvalid for everything
// else (bad signature, malformed payload, wrong signing method).
func (tm *TokenManager) Verify(tokenStr string, now time.Time) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != tm.method {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	switch claims.PrincipalType {
	case domain.PrincipalTypeUser, domain.PrincipalTypeAdmin:
		return claims, nil
	default:
		return nil, ErrTokenWrongType
	}
}
