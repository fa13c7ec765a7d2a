package blog

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// requireIdentity pulls the authenticated identity from the context.
// Route guards reject anonymous requests before a service runs, a
// missing identity here means the handler was wired without one.
func requireIdentity(ctx context.Context) (Identity, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity == nil {
		return nil, ErrForbidden
	}
	return identity, nil
}

// canModify reports whether the actor owns the record or is an admin
func canModify(actor Identity, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.Role() == RoleAdmin {
		return true
	}
	return actor.ID() == ownerID.String()
}

// isSelf reports whether the actor is the given user
func isSelf(actor Identity, userID uuid.UUID) bool {
	return actor != nil && actor.ID() == userID.String()
}

func parseUUID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryBadInput, kind+" id must be a valid UUID").
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}

func invalidPayload(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request payload").
		WithCode(goerrors.CodeBadRequest)
}
