package blog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blog "github.com/projectblog/go-blog"
)

func TestIdentityContextRoundTrip(t *testing.T) {
	identity := testIdentity{
		id:       "abc",
		username: "marcos",
		role:     blog.RoleUser,
		enabled:  true,
	}

	ctx := blog.WithIdentity(context.Background(), identity)

	got, ok := blog.IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "marcos", got.Username())
	assert.Equal(t, blog.RoleUser, got.Role())
}

func TestIdentityFromContextMissing(t *testing.T) {
	_, ok := blog.IdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &blog.JWTClaims{UserRole: blog.RoleAdmin}

	ctx := blog.WithClaims(context.Background(), claims)

	got, ok := blog.ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.True(t, got.HasRole(blog.RoleAdmin))

	_, ok = blog.ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
