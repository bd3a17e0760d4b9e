package dto

import (
	"context"
	"time"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/paperstack/paperstack/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ItemRequest is one billed line in a create or update payload
type ItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
}

func (r ItemRequest) toItem() document.Item {
	item := document.Item{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    lo.FromPtrOr(r.Quantity, decimal.NewFromInt(1)),
		Price:       r.Price,
		Tax:         lo.FromPtrOr(r.Tax, decimal.Zero),
	}
	item.Recalculate()
	return item
}

// DocumentRequest carries the editable fields of a document. Totals are
// always recomputed server-side and any submitted values are ignored.
// @Description Request object for creating or replacing a document
type DocumentRequest struct {
	Type        types.DocumentType `json:"type" validate:"required"`
	Number      string             `json:"number,omitempty"`
	Date        *time.Time         `json:"date,omitempty"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Client      document.Client    `json:"client"`
	Items       []ItemRequest      `json:"items" validate:"required,min=1"`
	Tax         decimal.Decimal    `json:"tax"`
	Discount    decimal.Decimal    `json:"discount"`
	Shipping    decimal.Decimal    `json:"shipping"`
	AmountPaid  decimal.Decimal    `json:"amountPaid"`
	Currency    string             `json:"currency,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Terms       string             `json:"termsAndConditions,omitempty"`
	Footer      string             `json:"footer,omitempty"`
	CompanyName string             `json:"companyName,omitempty"`
	FromInfo    string             `json:"fromInfo,omitempty"`
}

type CreateDocumentRequest = DocumentRequest

type UpdateDocumentRequest = DocumentRequest

func (r *DocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// ToDocument builds a validated, recalculated document without identity or
// ownership, which the caller assigns
func (r *DocumentRequest) ToDocument(ctx context.Context) (*document.Document, error) {
	doc := &document.Document{
		Type:        r.Type,
		Number:      r.Number,
		DueDate:     r.DueDate,
		Client:      r.Client,
		Items:       lo.Map(r.Items, func(item ItemRequest, _ int) document.Item { return item.toItem() }),
		Tax:         r.Tax,
		Discount:    r.Discount,
		Shipping:    r.Shipping,
		AmountPaid:  r.AmountPaid,
		Currency:    r.Currency,
		Notes:       r.Notes,
		Terms:       r.Terms,
		Footer:      r.Footer,
		CompanyName: r.CompanyName,
		FromInfo:    r.FromInfo,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if r.Date != nil {
		doc.Date = r.Date.UTC()
	}

	doc.ApplyDefaults()
	doc.Recalculate()

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// DocumentResponse represents a stored document
type DocumentResponse struct {
	*document.Document `json:",inline"`
}

func NewDocumentResponse(doc *document.Document) *DocumentResponse {
	return &DocumentResponse{Document: doc}
}

// ListDocumentsResponse is a page of documents ordered newest first
type ListDocumentsResponse = types.ListResponse[*DocumentResponse]

// ConvertDocumentRequest moves a document one step along the conversion chain
type ConvertDocumentRequest struct {
	DocumentID string             `json:"documentId" validate:"required"`
	TargetType types.DocumentType `json:"targetType" validate:"required"`
}

func (r *ConvertDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.TargetType.Validate()
}

// EmailDocumentRequest sends the rendered PDF to a recipient
type EmailDocumentRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r *EmailDocumentRequest) Validate() error {
	if r.To == "" {
		return ierr.NewError("to is required").
			WithHint("Please provide an email address").
			Mark(ierr.ErrValidation)
	}
	if !types.IsValidEmail(r.To) {
		return ierr.NewErrorf("invalid recipient %q", r.To).
			WithHint("Please provide a valid email address").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type EmailDocumentResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

type DeleteDocumentResponse struct {
	Message string `json:"message"`
}
