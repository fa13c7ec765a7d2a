package blog_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blog "github.com/projectblog/go-blog"
)

func TestAPITimeFormat(t *testing.T) {
	ts := time.Date(2024, 5, 17, 13, 45, 9, 0, time.UTC)

	body, err := json.Marshal(blog.APITime(ts))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-17 13:45:09"`, string(body))
}

func TestAPIErrorWireShape(t *testing.T) {
	ts := time.Date(2024, 5, 17, 13, 45, 9, 0, time.UTC)

	body, err := json.Marshal(blog.APIError{
		Title:      "Bad Request",
		Message:    "cannot update post of another user",
		HTTPStatus: 400,
		Timestamp:  blog.APITime(ts),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"title": "Bad Request",
		"message": "cannot update post of another user",
		"httpStatus": 400,
		"timestamp": "2024-05-17 13:45:09"
	}`, string(body))
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		title   string
		message string
	}{
		{
			name:    "business rule",
			err:     blog.NewBusinessError("cannot update post of another user"),
			status:  router.StatusBadRequest,
			title:   "Bad Request",
			message: "cannot update post of another user",
		},
		{
			name:    "not found",
			err:     blog.NewResourceNotFound("Post", "123"),
			status:  router.StatusNotFound,
			title:   "Not Found",
			message: "Post with id 123 does not exist.",
		},
		{
			name:    "auth",
			err:     blog.ErrTokenExpired,
			status:  router.StatusUnauthorized,
			title:   "Unauthorized",
			message: "authentication token expired",
		},
		{
			name:    "authz",
			err:     blog.ErrForbidden,
			status:  router.StatusForbidden,
			title:   "Forbidden",
			message: "access denied",
		},
		{
			name:    "internal errors never leak details",
			err:     errors.New("pq: connection refused"),
			status:  router.StatusInternalServerError,
			title:   "Internal Server Error",
			message: "unexpected error, try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := router.NewMockContext()
			ctx.On("JSON", tt.status, mock.MatchedBy(func(body blog.APIError) bool {
				return body.Title == tt.title &&
					body.Message == tt.message &&
					body.HTTPStatus == tt.status
			})).Return(nil)

			err := blog.RespondError(ctx, tt.err)
			require.NoError(t, err)
			ctx.AssertExpectations(t)
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	handler := blog.RequireAuthenticated("identity")(func(ctx router.Context) error {
		return nil
	})

	ctx := router.NewMockContext()
	ctx.LocalsMock["identity"] = testIdentity{
		id:      "abc",
		role:    blog.RoleUser,
		enabled: true,
	}

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}

func TestRequireAuthenticatedAnonymous(t *testing.T) {
	handler := blog.RequireAuthenticated("identity")(func(ctx router.Context) error {
		return nil
	})

	ctx := router.NewMockContext()
	ctx.On("JSON", router.StatusUnauthorized, mock.MatchedBy(func(body blog.APIError) bool {
		return body.Message == "full authentication is required to access this resource"
	})).Return(nil)

	require.NoError(t, handler(ctx))
	assert.False(t, ctx.NextCalled)
	ctx.AssertExpectations(t)
}

func TestRequireRole(t *testing.T) {
	handler := blog.RequireRole("identity", blog.RoleAdmin)(func(ctx router.Context) error {
		return nil
	})

	ctx := router.NewMockContext()
	ctx.LocalsMock["identity"] = testIdentity{id: "abc", role: blog.RoleAdmin, enabled: true}

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}

func TestRequireRoleInsufficient(t *testing.T) {
	handler := blog.RequireRole("identity", blog.RoleAdmin)(func(ctx router.Context) error {
		return nil
	})

	ctx := router.NewMockContext()
	ctx.LocalsMock["identity"] = testIdentity{id: "abc", role: blog.RoleManager, enabled: true}
	ctx.On("JSON", router.StatusForbidden, mock.Anything).Return(nil)

	require.NoError(t, handler(ctx))
	assert.False(t, ctx.NextCalled)
	ctx.AssertExpectations(t)
}

// Deleting your own account only needs authentication, the service
// settles ownership.
func TestUserDeleteSelf(t *testing.T) {
	actorID := uuid.New()

	repos := NewMockRepos()
	repos.users.On("Get", mock.Anything, actorID).
		Return(&blog.User{ID: actorID, Username: "actor", Role: blog.RoleUser}, nil)
	repos.users.On("Delete", mock.Anything, actorID).Return(nil)

	controller := &blog.APIController{Users: blog.NewUserService(repos)}

	ctx := router.NewMockContext()
	ctx.LocalsMock["identity"] = testIdentity{id: actorID.String(), role: blog.RoleUser, enabled: true}
	ctx.ParamsM["id"] = actorID.String()
	ctx.On("Context").Return(identityContext(actorID, blog.RoleUser))
	ctx.On("Status", router.StatusNoContent).Return(ctx)
	ctx.On("SendString", "").Return(nil)

	guard := blog.RequireAuthenticated("identity")(controller.UserDelete)
	require.NoError(t, guard(ctx))
	require.True(t, ctx.NextCalled)

	require.NoError(t, controller.UserDelete(ctx))
	assert.Equal(t, router.StatusNoContent, ctx.StatusCodeM)
	repos.users.AssertExpectations(t)
}

func TestAuthMiddlewareSkipsPublicRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "login", method: "POST", path: "/v1/auth/login"},
		{name: "health", method: "GET", path: "/healthz"},
		{name: "registration", method: "POST", path: "/v1/users/register"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &MockTokenService{}
			provider := &MockIdentityProvider{}

			handler := blog.NewAuthMiddleware(newTestConfig(), tokens, provider)(func(ctx router.Context) error {
				return nil
			})

			ctx := router.NewMockContext()
			ctx.HeadersM["Authorization"] = "Bearer tok-123"
			ctx.On("Method").Return(tt.method)
			ctx.On("Path").Return(tt.path)

			require.NoError(t, handler(ctx))
			assert.True(t, ctx.NextCalled)
			assert.Nil(t, ctx.LocalsMock["identity"])
			tokens.AssertNotCalled(t, "Validate", mock.Anything)
		})
	}
}

func TestAuthMiddlewareValidatesProtectedRoutes(t *testing.T) {
	tokens := &MockTokenService{}
	tokens.On("Validate", "tok-123").Return(nil, errors.New("token signature verification failed"))
	provider := &MockIdentityProvider{}

	handler := blog.NewAuthMiddleware(newTestConfig(), tokens, provider)(func(ctx router.Context) error {
		return nil
	})

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer tok-123"
	ctx.On("Method").Return("GET")
	ctx.On("Path").Return("/v1/posts/")

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
	assert.Nil(t, ctx.LocalsMock["identity"])
	tokens.AssertExpectations(t)
}
