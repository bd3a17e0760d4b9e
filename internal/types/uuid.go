package types

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex doc_01HQ8Z0X6T3G4V5W6X7Y8Z9A0B
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

// GenerateLocalID returns the random identifier used for documents that only
// exist in the local store. It doubles as the idempotency key during sync.
func GenerateLocalID() string {
	return uuid.NewString()
}

// GenerateToken returns an opaque random token for email verification and
// password reset links
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// GenerateDocumentNumber returns a human readable reference such as INV-48213.
// Numbers are unique by convention only.
func GenerateDocumentNumber(t DocumentType) string {
	return fmt.Sprintf("%s-%d", t.NumberPrefix(), 10000+rand.IntN(90000))
}

const (
	UUID_PREFIX_DOCUMENT = "doc"
	UUID_PREFIX_ASSET    = "asset"
	UUID_PREFIX_USER     = "user"
)
