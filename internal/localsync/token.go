package localsync

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
)

// TokenStore keeps the session token of the CLI between invocations
type TokenStore struct {
	path string
}

// NewTokenStore resolves a relative token path against the home directory
func NewTokenStore(cfg *config.Configuration) (*TokenStore, error) {
	path := cfg.Client.TokenPath
	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Could not locate the home directory").
				Mark(ierr.ErrSystem)
		}
		path = filepath.Join(home, path)
	}
	return &TokenStore{path: path}, nil
}

func (t *TokenStore) Path() string {
	return t.path
}

func (t *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	if err := os.WriteFile(t.path, []byte(token), 0o600); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return nil
}

// Load returns the saved token, or an unauthorized error when logged out
func (t *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(t.path)
	if err != nil || strings.TrimSpace(string(raw)) == "" {
		return "", ierr.NewError("no saved session").
			WithHint("Please run `paperstack login` first").
			Mark(ierr.ErrUnauthorized)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (t *TokenStore) Clear() error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return nil
}
