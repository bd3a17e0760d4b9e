package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

// ErrorHandler renders the last handler error as an ErrorResponse. Server
// side failures are reported to sentry with the requesting user attached.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			reportError(c, err)
		}

		c.JSON(status, ierr.NewErrorResponse(err, gin.IsDebugging()))
	}
}

func reportError(c *gin.Context, err error) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}

	ctx := c.Request.Context()
	hub.WithScope(func(scope *sentry.Scope) {
		if userID := types.GetUserID(ctx); userID != "" {
			scope.SetUser(sentry.User{ID: userID, Email: types.GetUserEmail(ctx)})
		}
		scope.SetTag("route", c.FullPath())
		hub.CaptureException(err)
	})
}
