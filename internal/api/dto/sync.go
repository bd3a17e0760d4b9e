package dto

import (
	"context"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/validator"
	"github.com/samber/lo"
)

// SyncDocumentRequest is a locally created document mapped into the server
// schema. LocalID is the client id and acts as the idempotency key.
type SyncDocumentRequest struct {
	LocalID string `json:"localId" validate:"required"`
	DocumentRequest
}

func (r *SyncDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// SyncLocalRequest is the batch pushed by a client after authentication.
// Logos are base64 payloads keyed by local id. Entries are validated one by
// one while syncing so a bad entry only fails itself.
type SyncLocalRequest struct {
	Documents []SyncDocumentRequest `json:"documents"`
	Logos     map[string]string     `json:"logos,omitempty"`
}

func (r *SyncLocalRequest) Validate() error {
	seen := make(map[string]struct{}, len(r.Documents))
	for _, d := range r.Documents {
		if d.LocalID == "" {
			continue
		}
		if _, ok := seen[d.LocalID]; ok {
			return ierr.NewErrorf("duplicate local id %s", d.LocalID).
				WithHint("Each local document may appear only once per batch").
				Mark(ierr.ErrValidation)
		}
		seen[d.LocalID] = struct{}{}
	}
	return nil
}

// LocalIDs returns the batch's local ids in request order
func (r *SyncLocalRequest) LocalIDs() []string {
	return lo.Map(r.Documents, func(d SyncDocumentRequest, _ int) string { return d.LocalID })
}

// ToDocument maps one synced entry, carrying its local id
func (r *SyncDocumentRequest) ToDocument(ctx context.Context) (*document.Document, error) {
	doc, err := r.DocumentRequest.ToDocument(ctx)
	if err != nil {
		return nil, err
	}
	doc.LocalID = lo.ToPtr(r.LocalID)
	return doc, nil
}

// NewSyncDocumentRequest maps a local cache entry onto the sync payload
func NewSyncDocumentRequest(local *document.LocalDocument) SyncDocumentRequest {
	doc := local.ToDocument()
	return SyncDocumentRequest{
		LocalID: local.ID,
		DocumentRequest: DocumentRequest{
			Type:    doc.Type,
			Number:  doc.Number,
			Date:    lo.ToPtr(doc.Date),
			DueDate: doc.DueDate,
			Client:  doc.Client,
			Items: lo.Map(doc.Items, func(item document.Item, _ int) ItemRequest {
				return ItemRequest{
					Name:        item.Name,
					Description: item.Description,
					Quantity:    lo.ToPtr(item.Quantity),
					Price:       item.Price,
					Tax:         lo.ToPtr(item.Tax),
				}
			}),
			Tax:         doc.Tax,
			Discount:    doc.Discount,
			Shipping:    doc.Shipping,
			AmountPaid:  doc.AmountPaid,
			Currency:    doc.Currency,
			Notes:       doc.Notes,
			Terms:       doc.Terms,
			CompanyName: doc.CompanyName,
			FromInfo:    doc.FromInfo,
		},
	}
}

// SyncFailure reports a document the server could not persist
type SyncFailure struct {
	LocalID string `json:"localId"`
	Error   string `json:"error"`
}

// SyncLocalResponse acknowledges persisted local ids, including ones stored by
// an earlier sync
type SyncLocalResponse struct {
	Success   bool          `json:"success"`
	SyncedIDs []string      `json:"syncedIds"`
	Failed    []SyncFailure `json:"failed,omitempty"`
}
