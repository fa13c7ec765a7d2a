package blog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blog "github.com/projectblog/go-blog"
)

func TestHashPassword(t *testing.T) {
	hash, err := blog.HashPassword("sup3r-secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "sup3r-secret", hash)

	assert.NoError(t, blog.ComparePasswordAndHash("sup3r-secret", hash))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := blog.HashPassword("")
	assert.ErrorIs(t, err, blog.ErrNoEmptyString)
}

func TestComparePasswordAndHashMismatch(t *testing.T) {
	hash, err := blog.HashPassword("sup3r-secret")
	require.NoError(t, err)

	err = blog.ComparePasswordAndHash("wrong-password", hash)
	assert.ErrorIs(t, err, blog.ErrMismatchedHashAndPassword)

	err = blog.ComparePasswordAndHash("sup3r-secret", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
