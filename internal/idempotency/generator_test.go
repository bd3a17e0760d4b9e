package idempotency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIsOrderIndependent(t *testing.T) {
	a := Key(ScopeLocalSync, map[string]string{"owner": "user_1", "local_ids": "a,b"})
	b := Key(ScopeLocalSync, map[string]string{"local_ids": "a,b", "owner": "user_1"})

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "local_sync-"))
}

func TestKeyDoesNotMergeParts(t *testing.T) {
	a := Key(ScopeLocalSync, map[string]string{"owner": "user_1", "x": ""})
	b := Key(ScopeLocalSync, map[string]string{"owner": "user_1x"})

	assert.NotEqual(t, a, b)
}

func TestLocalSyncKey(t *testing.T) {
	base := LocalSyncKey("user_1", []string{"b", "a"}, 1)

	assert.Equal(t, base, LocalSyncKey("user_1", []string{"a", "b"}, 1))
	assert.NotEqual(t, base, LocalSyncKey("user_2", []string{"a", "b"}, 1))
	assert.NotEqual(t, base, LocalSyncKey("user_1", []string{"a"}, 1))
	assert.NotEqual(t, base, LocalSyncKey("user_1", []string{"a", "b"}, 0))
}

func TestLocalSyncKeyKeepsCallerSlice(t *testing.T) {
	ids := []string{"b", "a"}
	LocalSyncKey("user_1", ids, 0)
	assert.Equal(t, []string{"b", "a"}, ids)
}
