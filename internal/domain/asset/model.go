package asset

import (
	"github.com/paperstack/paperstack/internal/types"
)

// Asset is a binary attachment owned by a document, such as its logo
type Asset struct {
	ID          string          `db:"id" json:"id"`
	DocumentID  string          `db:"document_id" json:"documentId"`
	OwnerID     *string         `db:"owner_id" json:"userId,omitempty"`
	Type        types.AssetType `db:"type" json:"type"`
	ContentType string          `db:"content_type" json:"contentType"`
	Data        []byte          `db:"data" json:"-"`
	StorageKey  *string         `db:"storage_key" json:"storageKey,omitempty"`
	types.BaseModel
}
