package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/types"
)

// SentryMiddleware attaches a sentry hub to each request. When sentry is
// disabled it only passes the request on.
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware tags the request hub with the request id and client
// address. It must come after the request id middleware.
func SentryScopeMiddleware(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		ctx := c.Request.Context()
		hub.Scope().SetTag("request_id", types.GetRequestID(ctx))
		hub.Scope().SetTag("client_ip", types.GetClientIP(ctx))
	}
	c.Next()
}
