package document

import (
	"testing"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name           string
		items          Items
		tax            string
		discount       string
		shipping       string
		amountPaid     string
		wantSubtotal   string
		wantTaxAmount  string
		wantTotal      string
		wantBalanceDue string
	}{
		{
			name:           "single line with tax",
			items:          Items{{Name: "Consulting", Quantity: d("2"), Price: d("50")}},
			tax:            "10",
			wantSubtotal:   "100",
			wantTaxAmount:  "10",
			wantTotal:      "110",
			wantBalanceDue: "110",
		},
		{
			name: "discount shipping and partial payment",
			items: Items{
				{Name: "Widget", Quantity: d("3"), Price: d("19.99")},
				{Name: "Setup", Quantity: d("1"), Price: d("40")},
			},
			tax:            "8.5",
			discount:       "10",
			shipping:       "7.25",
			amountPaid:     "50",
			wantSubtotal:   "99.97",
			wantTaxAmount:  "8.5",
			wantTotal:      "105.72",
			wantBalanceDue: "55.72",
		},
		{
			name:           "line subtotal rounds to cents",
			items:          Items{{Name: "Fraction", Quantity: d("0.333"), Price: d("10")}},
			tax:            "0",
			wantSubtotal:   "3.33",
			wantTaxAmount:  "0",
			wantTotal:      "3.33",
			wantBalanceDue: "3.33",
		},
		{
			name:           "negative discount and shipping are ignored",
			items:          Items{{Name: "Item", Quantity: d("1"), Price: d("100")}},
			tax:            "0",
			discount:       "-20",
			shipping:       "-5",
			amountPaid:     "-1",
			wantSubtotal:   "100",
			wantTaxAmount:  "0",
			wantTotal:      "100",
			wantBalanceDue: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{
				Items:      tt.items,
				Tax:        d(tt.tax),
				Discount:   decimalOrZero(tt.discount),
				Shipping:   decimalOrZero(tt.shipping),
				AmountPaid: decimalOrZero(tt.amountPaid),
			}
			doc.Recalculate()

			sum := decimal.Zero
			for _, item := range doc.Items {
				assert.True(t, item.Quantity.Mul(item.Price).Round(2).Equal(item.Subtotal))
				sum = sum.Add(item.Subtotal)
			}
			assert.True(t, sum.Equal(doc.Subtotal))
			assert.Equal(t, tt.wantSubtotal, doc.Subtotal.String())
			assert.Equal(t, tt.wantTaxAmount, doc.TaxAmount.String())
			assert.Equal(t, tt.wantTotal, doc.Total.String())
			assert.Equal(t, tt.wantBalanceDue, doc.BalanceDue.String())
			assert.True(t, doc.Total.Sub(doc.AmountPaid).Equal(doc.BalanceDue))
		})
	}
}

func decimalOrZero(v string) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	return d(v)
}

func TestValidate(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Type:   types.DocumentTypeQuotation,
			Client: Client{Name: "Acme Ltd"},
			Items:  Items{{Name: "Design", Quantity: d("1"), Price: d("10")}},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(doc *Document)
	}{
		{"unknown type", func(doc *Document) { doc.Type = "estimate" }},
		{"missing client name", func(doc *Document) { doc.Client.Name = "  " }},
		{"bad client email", func(doc *Document) { doc.Client.Email = "not-an-email" }},
		{"no items", func(doc *Document) { doc.Items = nil }},
		{"unnamed item", func(doc *Document) { doc.Items[0].Name = "" }},
		{"negative quantity", func(doc *Document) { doc.Items[0].Quantity = d("-1") }},
		{"negative tax", func(doc *Document) { doc.Tax = d("-5") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid()
			tt.mutate(doc)
			err := doc.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &Document{
		ID:    "doc_1",
		Items: Items{{Name: "A", Quantity: d("1"), Price: d("1")}},
		RelatedDocuments: RelatedDocuments{
			OriginalQuotation: strPtr("doc_0"),
		},
	}

	clone := original.Clone()
	clone.Items[0].Name = "B"
	*clone.RelatedDocuments.OriginalQuotation = "doc_x"

	assert.Equal(t, "A", original.Items[0].Name)
	assert.Equal(t, "doc_0", *original.RelatedDocuments.OriginalQuotation)
}

func TestFilenames(t *testing.T) {
	doc := &Document{Type: types.DocumentTypeInvoice, Number: "INV-12345"}
	assert.Equal(t, "invoice_INV-12345.pdf", doc.PDFFilename())
	assert.Equal(t, "invoice-INV-12345.pdf", doc.AttachmentFilename())
}

func strPtr(s string) *string {
	return &s
}
