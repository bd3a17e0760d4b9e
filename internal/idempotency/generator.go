// Package idempotency derives stable keys for requests that clients may
// retry, such as a batch of offline documents pushed after every login.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

type Scope string

const (
	ScopeLocalSync Scope = "local_sync"
)

// Key hashes the scope and the parts. Part order does not matter.
func Key(scope Scope, parts map[string]string) string {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(scope))
	for _, name := range names {
		h.Write([]byte{0})
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(parts[name]))
	}
	return string(scope) + "-" + hex.EncodeToString(h.Sum(nil)[:12])
}

// LocalSyncKey identifies one sync batch of an owner. The same set of local
// ids in any order yields the same key.
func LocalSyncKey(ownerID string, localIDs []string, logos int) string {
	ids := append([]string(nil), localIDs...)
	sort.Strings(ids)

	return Key(ScopeLocalSync, map[string]string{
		"owner":     ownerID,
		"local_ids": strings.Join(ids, ","),
		"logos":     strconv.Itoa(logos),
	})
}
