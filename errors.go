package blog

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeTokenExpired identifies expired tokens
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed identifies tokens we could not parse
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeTokenBadSignature identifies tokens whose signature did not verify
	TextCodeTokenBadSignature = "TOKEN_BAD_SIGNATURE"
	// TextCodeBusinessRule identifies domain rule violations
	TextCodeBusinessRule = "BUSINESS_RULE"
	// TextCodeNotFound identifies missing resources
	TextCodeNotFound = "RESOURCE_NOT_FOUND"
)

// ErrTokenExpired is returned for tokens past their expiry
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens we cannot parse
var ErrTokenMalformed = goerrors.New("missing or malformed token", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenBadSignature is returned when the signature does not verify
// against the process signing key, or when the token was signed with an
// unexpected algorithm.
var ErrTokenBadSignature = goerrors.New("token signature verification failed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenBadSignature).
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for not found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityDisabled is returned when a known identity has been disabled
var ErrIdentityDisabled = goerrors.New("identity is disabled", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned on bad credentials
var ErrMismatchedHashAndPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrForbidden is the route level denial. No details beyond a generic message.
var ErrForbidden = goerrors.New("access denied", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden)

// NewBusinessError creates a domain rule violation error
func NewBusinessError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithTextCode(TextCodeBusinessRule).
		WithCode(goerrors.CodeBadRequest)
}

// NewResourceNotFound reports a missing entity by id
func NewResourceNotFound(kind string, id any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("%s with id %v does not exist.", kind, id), goerrors.CategoryNotFound).
		WithTextCode(TextCodeNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{"kind": kind, "id": fmt.Sprint(id)})
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}

	return richErr.TextCode == code
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return hasTextCode(err, TextCodeTokenExpired)
}

// IsMalformedError will check for unparseable tokens
func IsMalformedError(err error) bool {
	return hasTextCode(err, TextCodeTokenMalformed)
}

// IsBadSignatureError will check for signature failures
func IsBadSignatureError(err error) bool {
	return hasTextCode(err, TextCodeTokenBadSignature)
}

// IsBusinessError will check for domain rule violations
func IsBusinessError(err error) bool {
	return hasTextCode(err, TextCodeBusinessRule)
}

// IsResourceNotFound will check for missing entities
func IsResourceNotFound(err error) bool {
	return hasTextCode(err, TextCodeNotFound) || goerrors.IsNotFound(err)
}
