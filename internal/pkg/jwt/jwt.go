package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongTokenUse is returned when a token's token_use claim does not match
	// the expected value (e.g. an access token presented for refresh).
	ErrWrongTokenUse = errors.New("wrong token use")
)

// TokenUse tags a token as access or refresh via the token_use claim.
type TokenUse string

const (
	// TokenUseAccess marks short-lived tokens accepted by the auth middleware.
	TokenUseAccess TokenUse = "access"
	// TokenUseRefresh marks long-lived tokens accepted only by the refresh endpoint.
	TokenUseRefresh TokenUse = "refresh"
)

// Pair is an access/refresh token pair issued together.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// JWT defines the operations needed by the app: issue a token pair and verify
// a token for a given use.
type JWT interface {
	// GeneratePair creates signed access and refresh tokens for the user.
	GeneratePair(uid int64, email string, staff bool) (Pair, error)
	// Verify parses and validates the token, requiring the given token use.
	Verify(tokenStr string, use TokenUse) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type jwtContextKey struct{}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// AccessTTL is the access token time-to-live.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token time-to-live.
	RefreshTTL time.Duration
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims is a helper for wrapping registered claims with a payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims.
	jwt.RegisteredClaims
	// UserID is the authenticated user identifier.
	UserID int64 `json:"user_id,string"`
	// UserEmail is the authenticated user email.
	UserEmail string `json:"user_email"`
	// IsStaff marks accounts with administrative privileges.
	IsStaff bool `json:"is_staff"`
	// Use distinguishes access tokens from refresh tokens.
	Use TokenUse `json:"token_use"`
}

// GetAuth returns the JWT claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores JWT claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
