package service

import (
	"context"
	"encoding/base64"

	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/pdf"
	"github.com/paperstack/paperstack/internal/s3"
	"github.com/paperstack/paperstack/internal/types"
)

// RenderedPdf is a rendered document ready to be downloaded or attached
type RenderedPdf struct {
	Document *document.Document
	Filename string
	Content  []byte
	// ArchiveKey is set when the pdf was archived to object storage
	ArchiveKey string
}

type PdfService interface {
	RenderDocument(ctx context.Context, id string) (*RenderedPdf, error)
}

type pdfService struct {
	ServiceParams
	users UserService
}

func NewPdfService(params ServiceParams, users UserService) PdfService {
	return &pdfService{
		ServiceParams: params,
		users:         users,
	}
}

// RenderDocument renders with the requester's business profile, falling back
// to the document owner's profile for unauthenticated requests
func (s *pdfService) RenderDocument(ctx context.Context, id string) (*RenderedPdf, error) {
	doc, err := getAuthorizedDocument(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}

	profile := s.resolveProfile(ctx, doc)
	data := pdf.BuildDocumentData(doc, profile)
	if data.LogoBase64 == "" {
		data.LogoBase64 = s.documentLogo(ctx, doc.ID)
	}

	content, err := s.PDFGenerator.RenderDocumentPdf(ctx, data)
	if err != nil {
		return nil, err
	}

	rendered := &RenderedPdf{
		Document: doc,
		Filename: doc.PDFFilename(),
		Content:  content,
	}

	if s.S3 != nil {
		key, err := s.S3.UploadDocument(ctx, s3.NewPdfDocument(doc.ID, doc.Type, doc.Number, content))
		if err != nil {
			// archiving never fails the download
			s.Logger.Errorw("failed to archive document pdf", "document_id", doc.ID, "error", err)
		} else {
			rendered.ArchiveKey = key
		}
	}

	return rendered, nil
}

func (s *pdfService) resolveProfile(ctx context.Context, doc *document.Document) *user.Profile {
	ownerID := types.GetUserID(ctx)
	if ownerID == "" && doc.HasOwner() {
		ownerID = *doc.OwnerID
	}
	if ownerID == "" {
		return nil
	}

	profile, err := s.users.GetProfileByID(ctx, ownerID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			s.Logger.Warnw("failed to load business profile for pdf", "user_id", ownerID, "error", err)
		}
		return nil
	}
	return profile
}

// documentLogo returns the logo synced with the document, if any
func (s *pdfService) documentLogo(ctx context.Context, documentID string) string {
	logo, err := s.AssetRepo.GetByDocument(ctx, documentID, types.AssetTypeLogo)
	if err != nil || len(logo.Data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(logo.Data)
}
