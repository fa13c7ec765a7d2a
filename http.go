package blog

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"

	"github.com/projectblog/go-blog/middleware/jwtware"
)

// APITimeFormat is the timestamp layout used in error bodies
const APITimeFormat = "2006-01-02 15:04:05"

// APITime marshals as "yyyy-MM-dd HH:mm:ss"
type APITime time.Time

func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(APITimeFormat) + `"`), nil
}

// APIError is the body every failed request gets
type APIError struct {
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	HTTPStatus int     `json:"httpStatus"`
	Timestamp  APITime `json:"timestamp"`
}

var errAuthenticationRequired = goerrors.New(
	"full authentication is required to access this resource",
	goerrors.CategoryAuth,
).WithCode(goerrors.CodeUnauthorized)

// RespondError renders any error as an APIError body. Internal
// failures get a generic message, everything else surfaces its own.
func RespondError(ctx router.Context, err error) error {
	status, title := statusForError(err)

	message := err.Error()
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		message = rich.Message
	}

	if status == router.StatusInternalServerError {
		message = "unexpected error, try again later"
	}

	return ctx.JSON(status, APIError{
		Title:      title,
		Message:    message,
		HTTPStatus: status,
		Timestamp:  APITime(time.Now()),
	})
}

func statusForError(err error) (int, string) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryAuth:
			return router.StatusUnauthorized, "Unauthorized"
		case goerrors.CategoryAuthz:
			return router.StatusForbidden, "Forbidden"
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return router.StatusBadRequest, "Bad Request"
		case goerrors.CategoryNotFound:
			return router.StatusNotFound, "Not Found"
		case goerrors.CategoryConflict:
			return router.StatusConflict, "Conflict"
		}
		return router.StatusInternalServerError, "Internal Server Error"
	}

	if repository.IsRecordNotFound(err) {
		return router.StatusNotFound, "Not Found"
	}

	return router.StatusInternalServerError, "Internal Server Error"
}

// RequireAuthenticated rejects anonymous requests. The auth middleware
// lets them through, guards decide what they may reach.
func RequireAuthenticated(contextKey string) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if _, ok := RouterIdentity(ctx, contextKey); !ok {
				return RespondError(ctx, errAuthenticationRequired)
			}
			return ctx.Next()
		}
	}
}

// RequireRole rejects requests below the minimum role
func RequireRole(contextKey string, minRole Role) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			identity, ok := RouterIdentity(ctx, contextKey)
			if !ok {
				return RespondError(ctx, errAuthenticationRequired)
			}
			if !IsAtLeast(identity.Role(), minRole) {
				return RespondError(ctx, ErrForbidden)
			}
			return ctx.Next()
		}
	}
}

// tokenValidatorAdapter bridges the root TokenService into the
// middleware's local mirror interface.
type tokenValidatorAdapter struct {
	svc TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := a.svc.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// publicRoute reports whether the request targets a route that never
// carries an identity, so the middleware can skip token extraction.
func publicRoute(ctx router.Context) bool {
	path := ctx.Path()

	if path == "/healthz" || strings.HasPrefix(path, "/v1/auth") {
		return true
	}

	return ctx.Method() == string(router.POST) && path == "/v1/users/register"
}

// NewAuthMiddleware builds the passthrough authentication middleware.
// It hydrates the request identity from a valid bearer token and
// leaves everything else anonymous.
func NewAuthMiddleware(cfg Config, tokens TokenService, provider IdentityProvider) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		Filter:      publicRoute,
		ContextKey:  cfg.GetContextKey(),
		TokenLookup: cfg.GetTokenLookup(),
		AuthScheme:  cfg.GetAuthScheme(),

		TokenValidator: tokenValidatorAdapter{svc: tokens},

		IdentityResolver: func(ctx context.Context, subject string) (jwtware.Identity, error) {
			return provider.FindIdentityByIdentifier(ctx, subject)
		},

		ContextEnricher: func(c context.Context, identity jwtware.Identity) context.Context {
			if id, ok := identity.(Identity); ok {
				return WithIdentity(c, id)
			}
			return c
		},
	})
}
