package testutil

import (
	"context"

	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

type mockTx struct{}

// MockPostgresClient emulates transactions over in-memory stores: every
// participating store is snapshotted on begin and restored when fn fails
type MockPostgresClient struct {
	stores []Snapshotter
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		stores: stores,
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) (err error) {
	// If we're already in a transaction, reuse it
	if _, ok := ctx.Value(types.CtxDBTransaction).(*mockTx); ok {
		return fn(ctx)
	}

	restores := make([]func(), 0, len(c.stores))
	for _, s := range c.stores {
		restores = append(restores, s.Snapshot())
	}

	rollback := func() {
		for _, restore := range restores {
			restore()
		}
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, types.CtxDBTransaction, &mockTx{})); err != nil {
		c.logger.Debugw("rolling back mock transaction", "error", err)
		rollback()
	}
	return err
}
