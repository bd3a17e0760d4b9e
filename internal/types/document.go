package types

import (
	"fmt"
	"strings"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/samber/lo"
)

// DocumentType is the kind of billing document
type DocumentType string

const (
	DocumentTypeQuotation     DocumentType = "quotation"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypeReceipt       DocumentType = "receipt"
	DocumentTypeCreditNote    DocumentType = "creditNote"
	DocumentTypePurchaseOrder DocumentType = "purchaseOrder"
)

var documentTypes = []DocumentType{
	DocumentTypeQuotation,
	DocumentTypeInvoice,
	DocumentTypeReceipt,
	DocumentTypeCreditNote,
	DocumentTypePurchaseOrder,
}

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) Validate() error {
	if !lo.Contains(documentTypes, t) {
		return ierr.NewErrorf("invalid document type %q", t).
			WithHintf("Document type must be one of %s", strings.Join(lo.Map(documentTypes, func(d DocumentType, _ int) string { return string(d) }), ", ")).
			WithReportableDetails(map[string]any{
				"type":    t,
				"allowed": documentTypes,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// NumberPrefix returns the prefix used for human readable document numbers
func (t DocumentType) NumberPrefix() string {
	switch t {
	case DocumentTypeQuotation:
		return "QUO"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeReceipt:
		return "REC"
	case DocumentTypeCreditNote:
		return "CN"
	case DocumentTypePurchaseOrder:
		return "PO"
	default:
		return "DOC"
	}
}

// Label returns the title shown on rendered documents, e.g. "Credit Note"
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeCreditNote:
		return "Credit Note"
	case DocumentTypePurchaseOrder:
		return "Purchase Order"
	case "":
		return "Document"
	default:
		s := string(t)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseDocumentType parses a document type, accepting any letter case
func ParseDocumentType(s string) (DocumentType, error) {
	for _, t := range documentTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", DocumentType(s).Validate()
}

// AssetType is the role of a binary asset attached to a document
type AssetType string

const (
	AssetTypeLogo      AssetType = "logo"
	AssetTypeSignature AssetType = "signature"
	AssetTypeStamp     AssetType = "stamp"
	AssetTypeOther     AssetType = "other"
)

var AssetTypes = []AssetType{AssetTypeLogo, AssetTypeSignature, AssetTypeStamp, AssetTypeOther}

func (t AssetType) Validate() error {
	if !lo.Contains(AssetTypes, t) {
		return ierr.NewError(fmt.Sprintf("invalid asset type %q", t)).
			WithHint("Asset type must be one of logo, signature, stamp, other").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LocalNamespace separates the two local form variants in the key-value store
type LocalNamespace string

const (
	LocalNamespaceHome    LocalNamespace = "home"
	LocalNamespaceInvoice LocalNamespace = "invoice"
)

// LocalNamespaces lists every namespace in a stable order
var LocalNamespaces = []LocalNamespace{LocalNamespaceHome, LocalNamespaceInvoice}

func (n LocalNamespace) Validate() error {
	if !lo.Contains(LocalNamespaces, n) {
		return ierr.NewErrorf("invalid local namespace %q", n).
			WithHint("Local namespace must be home or invoice").
			Mark(ierr.ErrValidation)
	}
	return nil
}
