package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxUserEmail     ContextKey = "ctx_user_email"
	CtxJWT           ContextKey = "ctx_jwt"
	CtxClientIP      ContextKey = "ctx_client_ip"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	// DefaultUserID is used by scripts and tests that need a stable owner
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(CtxUserEmail).(string); ok {
		return email
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// GetClientIP returns the network address the request originated from
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(CtxClientIP).(string); ok {
		return ip
	}
	return ""
}

// IsAuthenticated reports whether the context carries a user id
func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetClientIP sets the originating network address in the context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, CtxClientIP, ip)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}
