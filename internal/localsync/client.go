package localsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/httpclient"
	"github.com/paperstack/paperstack/internal/logger"
)

const (
	authPath = "/v1/auth"
	syncPath = "/v1/documents/sync-local"
)

// Client talks to the paperstack API on behalf of the offline client
type Client struct {
	http      httpclient.Client
	serverURL string
	logger    *logger.Logger
}

func NewClient(cfg *config.Configuration, httpClient httpclient.Client, logger *logger.Logger) *Client {
	return &Client{
		http:      httpClient,
		serverURL: strings.TrimRight(cfg.Client.ServerURL, "/"),
		logger:    logger,
	}
}

// Authenticate logs in, registering the account when it does not exist yet
func (c *Client) Authenticate(ctx context.Context, req *dto.AuthRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.post(ctx, authPath, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncLocal submits a batch of local documents
func (c *Client) SyncLocal(ctx context.Context, token string, req *dto.SyncLocalRequest) (*dto.SyncLocalResponse, error) {
	var resp dto.SyncLocalResponse
	if err := c.post(ctx, syncPath, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode the request").
			Mark(ierr.ErrSystem)
	}

	headers := map[string]string{"Accept": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.serverURL + path,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return translateError(err)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHintf("Unexpected response from %s", path).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// translateError maps an API error response back onto the local error markers
func translateError(err error) error {
	httpErr, ok := httpclient.IsHTTPError(err)
	if !ok {
		return err
	}

	message := httpErr.ServerMessage()
	marker := ierr.ErrHTTPClient
	switch httpErr.StatusCode {
	case http.StatusBadRequest:
		marker = ierr.ErrValidation
	case http.StatusUnauthorized:
		marker = ierr.ErrUnauthorized
	case http.StatusForbidden:
		marker = ierr.ErrPermissionDenied
	case http.StatusNotFound:
		marker = ierr.ErrNotFound
	}

	return ierr.WithError(err).
		WithMessage(fmt.Sprintf("server returned %d", httpErr.StatusCode)).
		WithHint(message).
		Mark(marker)
}
