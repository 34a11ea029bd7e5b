// Package service orchestrates every read and mutation behind a fixed guard
// sequence: resolve identity, confirm the caller still exists, gate on role,
// confirm the target exists, confirm ownership, then check domain invariants.
// Guards short-circuit; nothing is written before all of them pass.
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

type guards struct {
	tokens *auth.Manager
	users  repository.UserRepository
}

// Identity is a verified caller: claims from the token plus the parsed
// subject id, re-checked against the users collection so a deleted account
// holding a live token is rejected.
type Identity struct {
	UserID primitive.ObjectID
	Role   domain.Role
}

func (g *guards) ResolveIdentity(ctx context.Context, token string) (*Identity, error) {
	claims, err := g.tokens.VerifyAccess(token)
	if err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.SubjectID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid subject in token")
	}

	ok, err := g.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to look up caller", err)
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}

	return &Identity{UserID: userID, Role: claims.Role}, nil
}

func (g *guards) RequireRole(identity *Identity, roles ...domain.Role) error {
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}
	return apperr.New(apperr.Forbidden, "insufficient permissions")
}

// parseID converts a client-supplied hex id, failing as bad input rather than
// an identity error.
func parseID(value, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.BadInput, "invalid %s", label)
	}
	return id, nil
}
