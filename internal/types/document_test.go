package types

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentTypeNumberPrefix(t *testing.T) {
	tests := []struct {
		docType DocumentType
		want    string
	}{
		{DocumentTypeQuotation, "QUO"},
		{DocumentTypeInvoice, "INV"},
		{DocumentTypeReceipt, "REC"},
		{DocumentTypeCreditNote, "CN"},
		{DocumentTypePurchaseOrder, "PO"},
		{DocumentType("estimate"), "DOC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.docType.NumberPrefix())
		})
	}
}

func TestGenerateDocumentNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-[1-9][0-9]{4}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateDocumentNumber(DocumentTypeInvoice))
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	assert.Equal(t, "Quotation", DocumentTypeQuotation.Label())
	assert.Equal(t, "Credit Note", DocumentTypeCreditNote.Label())
	assert.Equal(t, "Purchase Order", DocumentTypePurchaseOrder.Label())
}

func TestParseDocumentType(t *testing.T) {
	got, err := ParseDocumentType("INVOICE")
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeInvoice, got)

	_, err = ParseDocumentType("estimate")
	assert.Error(t, err)
}

func TestGetCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", GetCurrencySymbol("USD ($)"))
	assert.Equal(t, "€", GetCurrencySymbol("EUR (€)"))
	assert.Equal(t, "£", GetCurrencySymbol("gbp"))
	assert.Equal(t, "$", GetCurrencySymbol(""))
	assert.Equal(t, "XYZ", GetCurrencySymbol("XYZ"))
}
