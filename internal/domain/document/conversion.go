package document

import (
	"time"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
)

// conversions is the provenance chain. Only forward links in this order exist.
var conversions = map[types.DocumentType]types.DocumentType{
	types.DocumentTypeQuotation: types.DocumentTypeInvoice,
	types.DocumentTypeInvoice:   types.DocumentTypeReceipt,
}

// CanConvert reports whether a document of type from may be converted to type to
func CanConvert(from, to types.DocumentType) bool {
	next, ok := conversions[from]
	return ok && next == to
}

// NextType returns the type a document converts into, if any
func NextType(from types.DocumentType) (types.DocumentType, bool) {
	next, ok := conversions[from]
	return next, ok
}

// ValidateConversion fails with ErrInvalidConversion for any pair outside the chain
func ValidateConversion(from, to types.DocumentType) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !CanConvert(from, to) {
		allowed := lo.Ternary(lo.HasKey(conversions, from), string(conversions[from]), "none")
		return ierr.NewErrorf("cannot convert %s to %s", from, to).
			WithHintf("A %s cannot be converted to a %s", from.Label(), to.Label()).
			WithReportableDetails(map[string]any{
				"from":    from,
				"to":      to,
				"allowed": allowed,
			}).
			Mark(ierr.ErrInvalidConversion)
	}
	return nil
}

// Convert clones source into a new document of the target type and links both
// records. The source is modified in place to carry the forward link; nothing is
// modified when the conversion is rejected.
func Convert(source *Document, target types.DocumentType, newID string, now time.Time) (*Document, error) {
	if err := ValidateConversion(source.Type, target); err != nil {
		return nil, err
	}

	converted := source.Clone()
	converted.ID = newID
	converted.Type = target
	converted.Number = types.GenerateDocumentNumber(target)
	converted.Date = now
	converted.LocalID = nil
	converted.CreatedAt = now
	converted.UpdatedAt = now
	converted.RelatedDocuments = RelatedDocuments{}

	switch target {
	case types.DocumentTypeInvoice:
		converted.RelatedDocuments.OriginalQuotation = lo.ToPtr(source.ID)
		source.RelatedDocuments.ResultingInvoice = lo.ToPtr(newID)
	case types.DocumentTypeReceipt:
		converted.RelatedDocuments.OriginalQuotation = clonePtr(source.RelatedDocuments.OriginalQuotation)
		source.RelatedDocuments.ResultingReceipt = lo.ToPtr(newID)
	}

	source.UpdatedAt = now
	converted.Recalculate()
	return converted, nil
}
