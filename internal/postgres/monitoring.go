package postgres

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/paperstack/paperstack/internal/logger"
	sentryService "github.com/paperstack/paperstack/internal/sentry"
	"github.com/paperstack/paperstack/internal/types"
)

// SentryClient traces every transaction as a sentry span tagged with the
// request and user it ran for
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

func NewSentryClient(client IClient, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		client: client,
		sentry: sentry,
		logger: logger,
	}
}

func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"request_id": types.GetRequestID(ctx),
		"user_id":    types.GetUserID(ctx),
	})

	err := c.client.WithTx(spanCtx, fn)
	if err != nil {
		c.logger.Debugw("transaction rolled back", "request_id", types.GetRequestID(ctx), "error", err)
	}

	if span != nil {
		span.Status = sentry.SpanStatusOK
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
		}
		span.Finish()
	}
	return err
}
