package api

import (
	"context"

	"github.com/rpupo63/portfolio-site/models"
)

type keyType string

const (
	userKey    keyType = "user"
	authErrKey keyType = "authErr"
)

// ctxWithUser adds the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser returns the authenticated user, if any
func ctxGetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// ctxWithAuthError remembers why a presented token was rejected so that
// routes requiring a user can report it.
func ctxWithAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, authErrKey, err)
}

func ctxGetAuthError(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}
