package s3

import (
	"testing"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		number string
		want   string
	}{
		{"no prefix", "", "INV-0042", "documents/doc_1/invoice_INV-0042.pdf"},
		{"prefix trimmed", "/archive/", "INV-0042", "archive/documents/doc_1/invoice_INV-0042.pdf"},
		{"unsafe number", "", "INV 1/2", "documents/doc_1/invoice_INV_1-2.pdf"},
		{"empty number", "", "", "documents/doc_1/invoice_doc_1.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey(tt.prefix, "doc_1", types.DocumentTypeInvoice, tt.number))
		})
	}
}

func TestNewServiceDisabled(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.S3.Enabled = false

	svc, err := NewService(cfg)
	assert.NoError(t, err)
	assert.Nil(t, svc)
}
