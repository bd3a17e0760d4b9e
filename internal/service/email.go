package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/email"
	ierr "github.com/paperstack/paperstack/internal/errors"
)

type EmailService interface {
	// SendDocument renders a document and emails it as a pdf attachment
	SendDocument(ctx context.Context, id string, req *dto.EmailDocumentRequest) (*dto.EmailDocumentResponse, error)
}

type emailService struct {
	ServiceParams
	pdfs PdfService
}

func NewEmailService(params ServiceParams, pdfs PdfService) EmailService {
	return &emailService{
		ServiceParams: params,
		pdfs:          pdfs,
	}
}

func (s *emailService) SendDocument(ctx context.Context, id string, req *dto.EmailDocumentRequest) (*dto.EmailDocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !s.Email.IsEnabled() {
		return nil, ierr.NewError("email delivery is disabled").
			WithHint("Email service is not configured").
			Mark(ierr.ErrEmailDelivery)
	}

	rendered, err := s.pdfs.RenderDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := rendered.Document

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("%s #%s", strings.ToUpper(string(doc.Type)), doc.Number)
	}
	text := req.Message
	if text == "" {
		text = fmt.Sprintf("Please find attached %s #%s.", doc.Type, doc.Number)
	}

	resp, err := s.Email.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: req.To,
		Subject:   subject,
		Text:      text,
		Attachments: []email.Attachment{{
			Filename: doc.AttachmentFilename(),
			Content:  rendered.Content,
		}},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to send email").
			Mark(ierr.ErrEmailDelivery)
	}

	return &dto.EmailDocumentResponse{
		Message:   "Email sent successfully",
		MessageID: resp.MessageID,
	}, nil
}
