package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	"go.uber.org/fx"
)

type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}


// RegisterHooks initializes the sentry client on start and flushes it on stop
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Init()
		},
		OnStop: func(ctx context.Context) error {
			if svc.cfg.Sentry.Enabled {
				svc.logger.Info("flushing sentry events before shutdown")
				sentry.Flush(2 * time.Second)
			}
			return nil
		},
	})
}

// NewSentryService creates a new Sentry service
func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether events are being sent
func (s *Service) Enabled() bool {
	return s.cfg.Sentry.Enabled
}

// Init configures the global sentry hub. It is a no-op when sentry is disabled.
func (s *Service) Init() error {
	if !s.cfg.Sentry.Enabled {
		s.logger.Info("sentry is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              s.cfg.Sentry.DSN,
		Environment:      s.cfg.Sentry.Environment,
		EnableTracing:    true,
		TracesSampleRate: s.cfg.Sentry.SampleRate,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET /health" {
				return 0.0
			}
			return s.cfg.Sentry.SampleRate
		}),
	})
	if err != nil {
		s.logger.Errorw("failed to initialize sentry", "error", err)
		return err
	}
	s.logger.Infow("sentry initialized",
		"environment", s.cfg.Sentry.Environment,
		"sample_rate", s.cfg.Sentry.SampleRate,
	)
	return nil
}




// StartDBSpan starts a new database span in the current transaction
func (s *Service) StartDBSpan(ctx context.Context, operation string, params map[string]interface{}) (*sentry.Span, context.Context) {
	return s.startSpan(ctx, "db.postgres", operation, params)
}



func (s *Service) startSpan(ctx context.Context, op, description string, params map[string]interface{}) (*sentry.Span, context.Context) {
	if !s.cfg.Sentry.Enabled {
		return nil, ctx
	}

	span := sentry.StartSpan(ctx, op)
	span.Description = description
	for k, v := range params {
		span.SetData(k, v)
	}

	return span, span.Context()
}

