package service

import (
	"context"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

// authorizeDocument applies the document access policy for the requester in ctx.
// Owned documents are private to their owner. Guest documents are readable by
// anyone while guestPublic is set, otherwise only from the creating address.
func authorizeDocument(ctx context.Context, doc *document.Document, guestPublic bool) error {
	if doc.IsOwnedBy(types.GetUserID(ctx)) {
		return nil
	}

	if !doc.HasOwner() {
		if guestPublic {
			return nil
		}
		if ip := types.GetClientIP(ctx); ip != "" && ip == doc.IPAddress {
			return nil
		}
	}

	return ierr.NewError("document access denied").
		WithHint("You are not authorized to access this document").
		WithReportableDetails(map[string]any{"document_id": doc.ID}).
		Mark(ierr.ErrPermissionDenied)
}

// getAuthorizedDocument loads a document and checks the requester may use it
func getAuthorizedDocument(ctx context.Context, sp ServiceParams, id string) (*document.Document, error) {
	if id == "" {
		return nil, ierr.NewError("document_id is required").
			WithHint("Document ID is required").
			Mark(ierr.ErrValidation)
	}

	doc, err := sp.DocumentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeDocument(ctx, doc, sp.Config.Documents.GuestDocumentsArePublic); err != nil {
		return nil, err
	}
	return doc, nil
}
