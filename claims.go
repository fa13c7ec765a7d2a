package blog

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims with role checking
type AuthClaims interface {
	Subject() string
	Role() Role
	HasRole(role Role) bool
	HasAuthority(authority string) bool
	IsAtLeast(minRole Role) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UserRole Role `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim, the username the token was minted for
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the global role
func (c *JWTClaims) Role() Role {
	return c.UserRole
}

// HasRole checks if the claims carry a specific role
func (c *JWTClaims) HasRole(role Role) bool {
	return c.UserRole == role
}

// HasAuthority checks if the claims' role grants an authority
func (c *JWTClaims) HasAuthority(authority string) bool {
	for _, a := range Authorities(c.UserRole) {
		if a == authority {
			return true
		}
	}
	return false
}

// IsAtLeast checks if the claims' role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole Role) bool {
	return IsAtLeast(c.UserRole, minRole)
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
