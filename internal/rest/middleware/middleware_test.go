package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler())
	r.GET("/", append(handlers, func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id":   types.GetUserID(ctx),
			"client_ip": types.GetClientIP(ctx),
		})
	})...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(ierr.NewError("document doc_1 not found").
			WithHint("Document not found").
			WithReportableDetails(map[string]any{"document_id": "doc_1"}).
			Mark(ierr.ErrNotFound))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(ierr.NewError("connection refused").Mark(ierr.ErrDatabase))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Document not found", resp.Error.Display)
	assert.Equal(t, "doc_1", resp.Error.Details["document_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp = decodeError(t, w)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Display)
	assert.Empty(t, resp.Error.Details)
}

func TestAuthenticateMiddleware(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "middleware-test-secret"
	provider := auth.NewProvider(cfg)
	log := logger.NewNoopLogger()

	token, err := provider.GenerateToken(t.Context(), "user_1", "jane@example.com")
	require.NoError(t, err)

	r := newTestRouter(AuthenticateMiddleware(provider, log))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(types.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "user_1", body["user_id"])
			} else {
				assert.False(t, decodeError(t, w).Success)
			}
		})
	}
}

func TestOptionalAuthenticateMiddleware(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "middleware-test-secret"
	provider := auth.NewProvider(cfg)

	token, err := provider.GenerateToken(t.Context(), "user_1", "jane@example.com")
	require.NoError(t, err)

	r := newTestRouter(OptionalAuthenticateMiddleware(provider, logger.NewNoopLogger()))

	for header, wantUser := range map[string]string{
		"Bearer " + token:  "user_1",
		"":                 "",
		"Bearer not-a-jwt": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(types.HeaderAuthorization, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, wantUser, body["user_id"])
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	req.RemoteAddr = "198.51.100.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(types.HeaderRequestID))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "198.51.100.7", body["client_ip"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.RateLimit.RequestsPerSecond = 0.001
	cfg.RateLimit.Burst = 2

	r := newTestRouter(RateLimitMiddleware(cfg))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.7:1000"))
	assert.Equal(t, http.StatusOK, send("198.51.100.7:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.7:1002"))
	assert.Equal(t, http.StatusOK, send("192.0.2.1:1000"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
