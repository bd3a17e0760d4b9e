package service

import (
	"context"
	"time"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	UpdateDocument(ctx context.Context, id string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id string) error
	ListUserDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
	ListGuestDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{
		ServiceParams: params,
	}
}

// CreateDocument stores a document for the authenticated user, or as a guest
// document tied to the caller's address
func (s *documentService) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := req.ToDocument(ctx)
	if err != nil {
		return nil, err
	}

	doc.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	doc.IPAddress = types.GetClientIP(ctx)
	if userID := types.GetUserID(ctx); userID != "" {
		doc.OwnerID = lo.ToPtr(userID)
	} else {
		doc.IsGuest = true
	}

	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.Logger.Infow("document created",
		"document_id", doc.ID,
		"type", doc.Type,
		"guest", doc.IsGuest,
	)
	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := getAuthorizedDocument(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(doc), nil
}

// UpdateDocument replaces the editable fields. Identity, ownership, the local
// id and conversion links are kept from the stored record. The type only
// changes through ConvertDocument.
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := getAuthorizedDocument(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}

	if req.Type != existing.Type {
		return nil, ierr.NewErrorf("cannot change document type from %s to %s", existing.Type, req.Type).
			WithHint("Use conversion to change the document type").
			WithReportableDetails(map[string]any{
				"document_id": existing.ID,
				"type":        existing.Type,
				"target_type": req.Type,
			}).
			Mark(ierr.ErrInvalidConversion)
	}

	updated, err := req.ToDocument(ctx)
	if err != nil {
		return nil, err
	}

	if req.Number == "" {
		updated.Number = existing.Number
	}
	if req.Date == nil {
		updated.Date = existing.Date
	}
	updated.ID = existing.ID
	updated.OwnerID = existing.OwnerID
	updated.IsGuest = existing.IsGuest
	updated.IPAddress = existing.IPAddress
	updated.LocalID = existing.LocalID
	updated.RelatedDocuments = existing.RelatedDocuments
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy
	updated.UpdatedAt = time.Now().UTC()
	updated.UpdatedBy = types.GetUserID(ctx)
	updated.Recalculate()

	if err := s.DocumentRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(updated), nil
}

// DeleteDocument removes the document and its assets. Related documents keep
// their now dangling links.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := getAuthorizedDocument(ctx, s.ServiceParams, id)
	if err != nil {
		return err
	}

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.AssetRepo.DeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		return s.DocumentRepo.Delete(ctx, doc.ID)
	})
}

func (s *documentService) ListUserDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter = normalizeDocumentFilter(filter)
	filter.OwnerID = userID
	filter.GuestIP = ""
	return s.list(ctx, filter)
}

// ListGuestDocuments lists unowned documents created from the caller's address
func (s *documentService) ListGuestDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	ip := types.GetClientIP(ctx)
	if ip == "" {
		return nil, ierr.NewError("client address unknown").
			WithHint("Could not determine the client address").
			Mark(ierr.ErrValidation)
	}

	filter = normalizeDocumentFilter(filter)
	filter.OwnerID = ""
	filter.GuestIP = ip
	return s.list(ctx, filter)
}

func (s *documentService) list(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	docs, err := s.DocumentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.DocumentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(docs, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})

	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func normalizeDocumentFilter(filter *types.DocumentFilter) *types.DocumentFilter {
	if filter == nil {
		return types.NewDocumentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	return filter
}
