package testutil

import (
	"context"

	"github.com/paperstack/paperstack/internal/types"
)

const DefaultClientIP = "203.0.113.10"

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = context.WithValue(ctx, types.CtxClientIP, DefaultClientIP)
	return ctx
}

// GuestContext is a request context without an authenticated user
func GuestContext(ip string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = context.WithValue(ctx, types.CtxClientIP, ip)
	return ctx
}

// UserContext is a request context authenticated as userID
func UserContext(userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = context.WithValue(ctx, types.CtxClientIP, DefaultClientIP)
	return ctx
}
