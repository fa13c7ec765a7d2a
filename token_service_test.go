package blog_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blog "github.com/projectblog/go-blog"
)

type testConfig struct {
	signingKey string
	accessMs   int64
	refreshMs  int64
	contextKey string
	lookup     string
	scheme     string
	issuer     string
}

func (c testConfig) GetSigningKeyBase64() string      { return c.signingKey }
func (c testConfig) GetAccessTokenExpiration() int64  { return c.accessMs }
func (c testConfig) GetRefreshTokenExpiration() int64 { return c.refreshMs }
func (c testConfig) GetContextKey() string            { return c.contextKey }
func (c testConfig) GetTokenLookup() string           { return c.lookup }
func (c testConfig) GetAuthScheme() string            { return c.scheme }
func (c testConfig) GetIssuer() string                { return c.issuer }

func newTestConfig() testConfig {
	return testConfig{
		signingKey: base64.StdEncoding.EncodeToString([]byte("test-signing-key-0123456789")),
		accessMs:   3_600_000,
		refreshMs:  86_400_000,
		contextKey: "identity",
		lookup:     "header:Authorization",
		scheme:     "Bearer",
		issuer:     "go-blog",
	}
}

func TestNewTokenServiceRejectsBadKeys(t *testing.T) {
	cfg := newTestConfig()
	cfg.signingKey = "%%% not base64 %%%"

	_, err := blog.NewTokenService(cfg, nil)
	assert.Error(t, err)

	cfg.signingKey = ""
	_, err = blog.NewTokenService(cfg, nil)
	assert.Error(t, err)
}

func TestIssuePairRoundTrip(t *testing.T) {
	svc, err := blog.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	identity := testIdentity{
		id:       "0195a7e2-0000-7000-8000-000000000001",
		username: "marcos",
		email:    "marcos@example.com",
		role:     blog.RoleManager,
		enabled:  true,
	}

	pair, err := svc.IssuePair(identity)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3_600_000), pair.ExpiresInMl)
	assert.Equal(t, int64(86_400_000), pair.RefreshExpiresInMl)

	claims, err := svc.Validate(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "marcos", claims.Subject())
	assert.Equal(t, blog.RoleManager, claims.Role())
	assert.True(t, claims.HasRole(blog.RoleManager))
	assert.True(t, claims.IsAtLeast(blog.RoleUser))
	assert.False(t, claims.IsAtLeast(blog.RoleAdmin))
	assert.True(t, claims.Expires().After(time.Now()))

	refreshClaims, err := svc.Validate(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "marcos", refreshClaims.Subject())
	assert.True(t, refreshClaims.Expires().After(claims.Expires()))
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := newTestConfig()
	cfg.accessMs = -1000

	svc, err := blog.NewTokenService(cfg, nil)
	require.NoError(t, err)

	pair, err := svc.IssuePair(testIdentity{username: "marcos", role: blog.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(pair.AccessToken)
	require.Error(t, err)
	assert.True(t, blog.IsTokenExpiredError(err))
}

func TestValidateBadSignature(t *testing.T) {
	svc, err := blog.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	other := newTestConfig()
	other.signingKey = base64.StdEncoding.EncodeToString([]byte("a-different-signing-key"))

	otherSvc, err := blog.NewTokenService(other, nil)
	require.NoError(t, err)

	pair, err := otherSvc.IssuePair(testIdentity{username: "marcos", role: blog.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(pair.AccessToken)
	require.Error(t, err)
	assert.True(t, blog.IsBadSignatureError(err))
}

func TestValidateMalformedToken(t *testing.T) {
	svc, err := blog.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(tokenString)
		require.Error(t, err)
		assert.True(t, blog.IsMalformedError(err), "token %q", tokenString)
	}
}

func TestValidateIssuerMismatch(t *testing.T) {
	svc, err := blog.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	other := newTestConfig()
	other.issuer = "someone-else"

	otherSvc, err := blog.NewTokenService(other, nil)
	require.NoError(t, err)

	pair, err := otherSvc.IssuePair(testIdentity{username: "marcos", role: blog.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(pair.AccessToken)
	assert.Error(t, err)
}
