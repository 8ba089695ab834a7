package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoClaims      = errors.New("no user claims in context")
	ErrInvalidUserID = errors.New("invalid user id in claims")
)

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// CurrentUserID returns the authenticated user's id parsed from the claims subject.
func CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidUserID
	}
	return id, nil
}
