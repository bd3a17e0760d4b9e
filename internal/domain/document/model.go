package document

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Document is a quotation, invoice, receipt, credit note or purchase order
type Document struct {
	ID               string             `db:"id" json:"id"`
	Type             types.DocumentType `db:"type" json:"type"`
	Number           string             `db:"number" json:"number"`
	Date             time.Time          `db:"date" json:"date"`
	DueDate          *time.Time         `db:"due_date" json:"dueDate,omitempty"`
	Client           Client             `db:"client" json:"client"`
	Items            Items              `db:"items" json:"items"`
	Subtotal         decimal.Decimal    `db:"subtotal" json:"subtotal"`
	Tax              decimal.Decimal    `db:"tax" json:"tax"`
	TaxAmount        decimal.Decimal    `db:"tax_amount" json:"taxAmount"`
	Discount         decimal.Decimal    `db:"discount" json:"discount"`
	Shipping         decimal.Decimal    `db:"shipping" json:"shipping"`
	Total            decimal.Decimal    `db:"total" json:"total"`
	AmountPaid       decimal.Decimal    `db:"amount_paid" json:"amountPaid"`
	BalanceDue       decimal.Decimal    `db:"balance_due" json:"balanceDue"`
	Currency         string             `db:"currency" json:"currency"`
	Notes            string             `db:"notes" json:"notes"`
	Terms            string             `db:"terms" json:"termsAndConditions"`
	Footer           string             `db:"footer" json:"footer"`
	CompanyName      string             `db:"company_name" json:"companyName"`
	FromInfo         string             `db:"from_info" json:"fromInfo"`
	RelatedDocuments RelatedDocuments   `db:"related_documents" json:"relatedDocuments"`
	OwnerID          *string            `db:"owner_id" json:"userId,omitempty"`
	IsGuest          bool               `db:"is_guest" json:"isGuest"`
	IPAddress        string             `db:"ip_address" json:"-"`
	LocalID          *string            `db:"local_id" json:"localId,omitempty"`
	types.BaseModel
}

// Client is the recipient block of a document
type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Item is a single billed line
type Item struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Tax         decimal.Decimal `json:"tax"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Items is the ordered list of lines, stored as a JSONB column
type Items []Item

// RelatedDocuments links a document into the quotation -> invoice -> receipt chain.
// Ids may dangle when a linked document was deleted.
type RelatedDocuments struct {
	OriginalQuotation *string `json:"originalQuotation,omitempty"`
	ResultingInvoice  *string `json:"resultingInvoice,omitempty"`
	ResultingReceipt  *string `json:"resultingReceipt,omitempty"`
}

// Recalculate recomputes the line subtotal from quantity and price
func (i *Item) Recalculate() {
	i.Subtotal = i.Quantity.Mul(i.Price).Round(2)
}

// DisplayName returns the name of the line, falling back to its description
func (i Item) DisplayName() string {
	return lo.Ternary(strings.TrimSpace(i.Name) != "", i.Name, i.Description)
}

// Recalculate refreshes every derived amount. It must run after any change to
// items or to the tax, discount, shipping or amount paid fields.
func (d *Document) Recalculate() {
	subtotal := decimal.Zero
	for idx := range d.Items {
		d.Items[idx].Recalculate()
		subtotal = subtotal.Add(d.Items[idx].Subtotal)
	}

	d.Discount = nonNegative(d.Discount)
	d.Shipping = nonNegative(d.Shipping)
	d.AmountPaid = nonNegative(d.AmountPaid)

	d.Subtotal = subtotal
	d.TaxAmount = subtotal.Mul(d.Tax).Div(hundred).Round(2)
	d.Total = subtotal.Add(d.TaxAmount).Sub(d.Discount).Add(d.Shipping)
	d.BalanceDue = d.Total.Sub(d.AmountPaid)
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Validate checks the fields a document cannot be stored without
func (d *Document) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(d.Client.Name) == "" {
		return NewValidationError("client.name", "client name is required")
	}

	if d.Client.Email != "" && !types.IsValidEmail(d.Client.Email) {
		return NewValidationError("client.email", "client email is not a valid address")
	}

	if len(d.Items) == 0 {
		return NewValidationError("items", "at least one item is required")
	}

	for idx, item := range d.Items {
		field := fmt.Sprintf("items[%d]", idx)
		if strings.TrimSpace(item.DisplayName()) == "" {
			return NewValidationError(field+".name", "item name is required")
		}
		if item.Quantity.IsNegative() {
			return NewValidationError(field+".quantity", "quantity cannot be negative")
		}
		if item.Price.IsNegative() {
			return NewValidationError(field+".price", "price cannot be negative")
		}
	}

	if d.Tax.IsNegative() {
		return NewValidationError("tax", "tax rate cannot be negative")
	}

	return nil
}

// IsOwnedBy reports whether the user id owns the document
func (d *Document) IsOwnedBy(userID string) bool {
	return d.OwnerID != nil && userID != "" && *d.OwnerID == userID
}

// HasOwner reports whether the document belongs to an authenticated account
func (d *Document) HasOwner() bool {
	return d.OwnerID != nil && *d.OwnerID != ""
}

// ApplyDefaults fills values the original form always sends
func (d *Document) ApplyDefaults() {
	if d.Currency == "" {
		d.Currency = types.DefaultCurrency
	}
	if d.Date.IsZero() {
		d.Date = time.Now().UTC()
	}
	if d.Number == "" {
		d.Number = types.GenerateDocumentNumber(d.Type)
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = append(Items(nil), d.Items...)
	c.DueDate = clonePtr(d.DueDate)
	c.OwnerID = clonePtr(d.OwnerID)
	c.LocalID = clonePtr(d.LocalID)
	c.RelatedDocuments = RelatedDocuments{
		OriginalQuotation: clonePtr(d.RelatedDocuments.OriginalQuotation),
		ResultingInvoice:  clonePtr(d.RelatedDocuments.ResultingInvoice),
		ResultingReceipt:  clonePtr(d.RelatedDocuments.ResultingReceipt),
	}
	return &c
}

// PDFFilename is the download name used by the pdf endpoint
func (d *Document) PDFFilename() string {
	return fmt.Sprintf("%s_%s.pdf", d.Type, d.Number)
}

// AttachmentFilename is the name used when the pdf is emailed
func (d *Document) AttachmentFilename() string {
	return fmt.Sprintf("%s-%s.pdf", d.Type, d.Number)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Scan implements the sql.Scanner interface for Client
func (c *Client) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Value implements the driver.Valuer interface for Client
func (c Client) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for Items
func (i *Items) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// Value implements the driver.Valuer interface for Items
func (i Items) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal([]Item{})
	}
	return json.Marshal([]Item(i))
}

// Scan implements the sql.Scanner interface for RelatedDocuments
func (r *RelatedDocuments) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// Value implements the driver.Valuer interface for RelatedDocuments
func (r RelatedDocuments) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
}

// ValidationError carries the field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error marked for the api layer
func NewValidationError(field, message string) error {
	return ierr.WithError(&ValidationError{Field: field, Message: message}).
		WithHint(message).
		WithReportableDetails(map[string]any{"field": field}).
		Mark(ierr.ErrValidation)
}
