package blog

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
}

// NewTokenService creates a new TokenService instance. The signing key
// is base64 decoded once here, a bad key fails fast instead of at the
// first login.
func NewTokenService(cfg Config, logger Logger) (TokenService, error) {
	if logger == nil {
		logger = defLogger{}
	}

	key, err := base64.StdEncoding.DecodeString(cfg.GetSigningKeyBase64())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "signing key is not valid base64")
	}

	if len(key) == 0 {
		return nil, goerrors.New("signing key must not be empty", goerrors.CategoryInternal)
	}

	return &TokenServiceImpl{
		signingKey: key,
		accessTTL:  time.Duration(cfg.GetAccessTokenExpiration()) * time.Millisecond,
		refreshTTL: time.Duration(cfg.GetRefreshTokenExpiration()) * time.Millisecond,
		issuer:     cfg.GetIssuer(),
		logger:     logger,
	}, nil
}

// IssuePair mints an access and refresh token for the identity. Both
// carry the username as subject and the role claim; the refresh token
// only differs in expiration.
func (ts *TokenServiceImpl) IssuePair(identity Identity) (*TokenPair, error) {
	now := time.Now()

	access, err := ts.sign(identity, now, ts.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := ts.sign(identity, now, ts.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:        access,
		ExpiresInMl:        ts.accessTTL.Milliseconds(),
		RefreshToken:       refresh,
		RefreshExpiresInMl: ts.refreshTTL.Milliseconds(),
	}, nil
}

func (ts *TokenServiceImpl) sign(identity Identity, now time.Time, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.Username(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserRole: identity.Role(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if goerrors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, goerrors.Wrap(err, ErrTokenBadSignature.Category, ErrTokenBadSignature.Message).WithTextCode(ErrTokenBadSignature.TextCode)
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode claims")
	return nil, ErrTokenMalformed
}
