package s3

import (
	"fmt"
	"strings"

	"github.com/paperstack/paperstack/internal/types"
)

// Document is a rendered PDF destined for the archive bucket
type Document struct {
	ID     string             `json:"id"`
	Type   types.DocumentType `json:"type"`
	Number string             `json:"number"`
	Data   []byte             `json:"data"`
}

func NewPdfDocument(id string, docType types.DocumentType, number string, data []byte) *Document {
	return &Document{
		ID:     id,
		Type:   docType,
		Number: number,
		Data:   data,
	}
}

// ObjectKey lays archived PDFs out as {prefix}/documents/{id}/{type}_{number}.pdf
func ObjectKey(prefix, id string, docType types.DocumentType, number string) string {
	number = strings.NewReplacer("/", "-", " ", "_").Replace(number)
	if number == "" {
		number = id
	}
	key := fmt.Sprintf("documents/%s/%s_%s.pdf", id, docType, number)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		return prefix + "/" + key
	}
	return key
}
