package localsync

import (
	"context"
	"net/http"
	"testing"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(mock *testutil.MockHTTPClient) *Client {
	cfg := config.GetDefaultConfig()
	cfg.Client.ServerURL = "http://api.paperstack.test"
	return NewClient(cfg, mock, logger.NewNoopLogger())
}

func TestAuthenticate(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.RegisterResponse(http.MethodPost, authPath, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"token":"jwt","user":{"id":"user_1","email":"jane@example.com"},"isNewUser":true}`),
	})

	resp, err := newTestClient(mock).Authenticate(context.Background(), &dto.AuthRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "user_1", resp.User.ID)

	sent := mock.Requests()[0]
	assert.Equal(t, "http://api.paperstack.test/v1/auth", sent.URL)
	assert.NotContains(t, sent.Headers, "Authorization")
}

func TestAuthenticateTranslatesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"validation", http.StatusBadRequest, ierr.IsValidation},
		{"unauthorized", http.StatusUnauthorized, ierr.IsUnauthorized},
		{"forbidden", http.StatusForbidden, ierr.IsPermissionDenied},
		{"server error", http.StatusInternalServerError, ierr.IsHTTPClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockHTTPClient()
			mock.RegisterResponse(http.MethodPost, authPath, testutil.MockResponse{
				StatusCode: tt.status,
				Body:       []byte(`{"success":false,"error":{"message":"Invalid credentials"}}`),
			})

			_, err := newTestClient(mock).Authenticate(context.Background(), &dto.AuthRequest{Email: "jane@example.com", Password: "x"})
			require.Error(t, err)
			assert.True(t, tt.check(err))
			assert.Equal(t, "Invalid credentials", ierr.GetDisplayMessage(err))
		})
	}
}
