package blog

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() Role
	Enabled() bool
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
}

// TokenService signs and validates access tokens
type TokenService interface {
	IssuePair(identity Identity) (*TokenPair, error)
	Validate(tokenString string) (AuthClaims, error)
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, username, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, username string) (Identity, error)
}

// Config holds auth options. The signing key is a base64 encoded string
// decoded once at startup; both expirations are in milliseconds.
type Config interface {
	GetSigningKeyBase64() string
	GetAccessTokenExpiration() int64
	GetRefreshTokenExpiration() int64
	GetContextKey() string
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
}

// TokenPair is the login response. Field names are part of the wire
// contract, keep them verbatim.
type TokenPair struct {
	AccessToken        string `json:"access_token"`
	ExpiresInMl        int64  `json:"expires_in_ml"`
	RefreshToken       string `json:"refresh_token"`
	RefreshExpiresInMl int64  `json:"refresh_expires_token_ml"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] BLOG "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] BLOG "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] BLOG "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] BLOG "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
