package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/auth"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/types"
)

// AuthenticateMiddleware requires a valid bearer token and sets the user in
// the request context for downstream handlers
func AuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, ierr.NewError("missing authorization header").
				WithHint("Please log in to continue").
				Mark(ierr.ErrUnauthorized))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			abortUnauthorized(c, ierr.NewError("invalid authorization header format").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrUnauthorized))
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			abortUnauthorized(c, err)
			return
		}

		c.Request = c.Request.WithContext(withClaims(c.Request.Context(), claims, tokenString))
		c.Next()
	}
}

// OptionalAuthenticateMiddleware sets the user when a valid bearer token is
// present. Requests without one, or with an invalid one, continue as guests.
func OptionalAuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader(types.HeaderAuthorization), "Bearer ")
		if !ok || tokenString == "" {
			c.Next()
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("ignoring invalid token on optional route", "error", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(withClaims(c.Request.Context(), claims, tokenString))
		c.Next()
	}
}

func withClaims(ctx context.Context, claims *auth.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
	ctx = context.WithValue(ctx, types.CtxUserEmail, claims.Email)
	ctx = context.WithValue(ctx, types.CtxJWT, token)
	return ctx
}

// abortUnauthorized hands the error to ErrorHandler and stops the chain
func abortUnauthorized(c *gin.Context, err error) {
	if !ierr.IsUnauthorized(err) {
		err = ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}
	_ = c.Error(err)
	c.Abort()
}
