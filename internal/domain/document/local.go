package document

import (
	"strings"
	"time"

	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FallbackClientName names the recipient of a local document whose billTo is blank
const FallbackClientName = "Client"

// LocalDocument is the shape documents take in the offline key-value store.
// It predates the server schema and keeps the sender and recipient as free text.
type LocalDocument struct {
	ID            string             `json:"id"`
	Type          types.DocumentType `json:"type"`
	InvoiceNumber string             `json:"invoiceNumber"`
	IssueDate     string             `json:"issueDate"`
	DueDate       string             `json:"dueDate,omitempty"`
	BillTo        string             `json:"billTo"`
	Items         []LocalItem        `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	Shipping      decimal.Decimal    `json:"shipping"`
	Total         decimal.Decimal    `json:"total"`
	AmountPaid    decimal.Decimal    `json:"amountPaid"`
	BalanceDue    decimal.Decimal    `json:"balanceDue"`
	Notes         string             `json:"notes,omitempty"`
	Terms         string             `json:"terms,omitempty"`
	Currency      string             `json:"currency"`
	FromInfo      string             `json:"fromInfo,omitempty"`
	CompanyName   string             `json:"companyName,omitempty"`
	Synced        bool               `json:"synced,omitempty"`
	CreatedAt     *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

// LocalItem is a line in the offline form
type LocalItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLocalDocument returns an empty offline form with one line, a fresh client
// id and a generated number
func NewLocalDocument(docType types.DocumentType) *LocalDocument {
	if docType == "" {
		docType = types.DocumentTypeInvoice
	}
	now := time.Now().UTC()
	return &LocalDocument{
		ID:            types.GenerateLocalID(),
		Type:          docType,
		InvoiceNumber: types.GenerateDocumentNumber(docType),
		IssueDate:     now.Format(time.DateOnly),
		Items:         []LocalItem{{Quantity: decimal.NewFromInt(1)}},
		Currency:      types.DefaultCurrency,
		CreatedAt:     &now,
	}
}

// Recalculate applies the same totals rules as Document.Recalculate
func (l *LocalDocument) Recalculate() {
	subtotal := decimal.Zero
	for idx := range l.Items {
		l.Items[idx].Amount = l.Items[idx].Quantity.Mul(l.Items[idx].Rate).Round(2)
		subtotal = subtotal.Add(l.Items[idx].Amount)
	}
	l.Discount = nonNegative(l.Discount)
	l.Shipping = nonNegative(l.Shipping)
	l.AmountPaid = nonNegative(l.AmountPaid)

	l.Subtotal = subtotal
	taxAmount := subtotal.Mul(l.Tax).Div(hundred).Round(2)
	l.Total = subtotal.Add(taxAmount).Sub(l.Discount).Add(l.Shipping)
	l.BalanceDue = l.Total.Sub(l.AmountPaid)
}

// LastModified is the retention sort key: updatedAt, else createdAt
func (l *LocalDocument) LastModified() time.Time {
	if l.UpdatedAt != nil {
		return *l.UpdatedAt
	}
	if l.CreatedAt != nil {
		return *l.CreatedAt
	}
	return time.Time{}
}

// ToDocument maps the offline schema into the server schema. The first line of
// billTo becomes the client name and the remainder the address; email and phone
// cannot be recovered from free text and stay empty.
func (l *LocalDocument) ToDocument() *Document {
	name, address := SplitBillTo(l.BillTo)
	name = lo.Ternary(name != "", name, FallbackClientName)

	items := lo.Map(l.Items, func(item LocalItem, _ int) Item {
		return Item{
			Name:     item.Description,
			Quantity: item.Quantity,
			Price:    item.Rate,
			Subtotal: item.Amount,
		}
	})

	doc := &Document{
		Type:        lo.Ternary(l.Type != "", l.Type, types.DocumentTypeInvoice),
		Number:      l.InvoiceNumber,
		Date:        parseLocalDate(l.IssueDate, time.Now().UTC()),
		Client:      Client{Name: name, Address: address},
		Items:       items,
		Tax:         l.Tax,
		Discount:    l.Discount,
		Shipping:    l.Shipping,
		AmountPaid:  l.AmountPaid,
		Currency:    l.Currency,
		Notes:       l.Notes,
		Terms:       l.Terms,
		CompanyName: l.CompanyName,
		FromInfo:    l.FromInfo,
		LocalID:     lo.ToPtr(l.ID),
	}
	if l.DueDate != "" {
		due := parseLocalDate(l.DueDate, time.Time{})
		if !due.IsZero() {
			doc.DueDate = &due
		}
	}
	if l.CreatedAt != nil {
		doc.CreatedAt = *l.CreatedAt
	}
	if l.UpdatedAt != nil {
		doc.UpdatedAt = *l.UpdatedAt
	}

	doc.ApplyDefaults()
	doc.Recalculate()
	return doc
}

// SplitBillTo separates the first line of a free text recipient block
func SplitBillTo(billTo string) (name, address string) {
	lines := strings.SplitN(strings.TrimSpace(billTo), "\n", 2)
	name = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		address = strings.TrimSpace(lines[1])
	}
	return name, address
}

func parseLocalDate(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return fallback
}
