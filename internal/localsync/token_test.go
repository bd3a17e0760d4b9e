package localsync

import (
	"path/filepath"
	"testing"

	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Client.TokenPath = filepath.Join(t.TempDir(), "nested", "token")

	tokens, err := NewTokenStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Client.TokenPath, tokens.Path())

	_, err = tokens.Load()
	assert.True(t, ierr.IsUnauthorized(err))

	require.NoError(t, tokens.Save("jwt-token"))
	token, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	require.NoError(t, tokens.Clear())
	require.NoError(t, tokens.Clear())
	_, err = tokens.Load()
	assert.True(t, ierr.IsUnauthorized(err))
}
