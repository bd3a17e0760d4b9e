package service

import (
	"testing"

	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/stretchr/testify/suite"
)

type EmailServiceSuite struct {
	testutil.BaseServiceTestSuite
	documents DocumentService
	service   EmailService
}

func TestEmailService(t *testing.T) {
	suite.Run(t, new(EmailServiceSuite))
}

func (s *EmailServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.documents = NewDocumentService(params)
	s.service = NewEmailService(params, NewPdfService(params, NewUserService(params)))
}

func (s *EmailServiceSuite) TestSendDocumentWithDefaults() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeInvoice))
	s.Require().NoError(err)

	resp, err := s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{To: "client@example.com"})
	s.NoError(err)
	s.Equal("Email sent successfully", resp.Message)
	s.NotEmpty(resp.MessageID)

	messages := s.GetEmailSender().Messages()
	s.Require().Len(messages, 1)
	msg := messages[0]
	s.Equal("client@example.com", msg.To)
	s.Equal("INVOICE #"+doc.Number, msg.Subject)
	s.Equal("Please find attached invoice #"+doc.Number+".", msg.Text)
	s.Require().Len(msg.Attachments, 1)
	s.Equal("invoice-"+doc.Number+".pdf", msg.Attachments[0].Filename)
	s.Equal(testutil.MinimalPDF(), msg.Attachments[0].Content)
}

func (s *EmailServiceSuite) TestSendDocumentWithCustomSubject() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeQuotation))
	s.Require().NoError(err)

	_, err = s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{
		To:      "client@example.com",
		Subject: "Your quote",
		Message: "Thanks for asking",
	})
	s.NoError(err)

	msg := s.GetEmailSender().Messages()[0]
	s.Equal("Your quote", msg.Subject)
	s.Equal("Thanks for asking", msg.Text)
}

func (s *EmailServiceSuite) TestSendDocumentValidation() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeInvoice))
	s.Require().NoError(err)

	_, err = s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{})
	s.True(ierr.IsValidation(err))

	_, err = s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{To: "nope"})
	s.True(ierr.IsValidation(err))
	s.Empty(s.GetEmailSender().Messages())
}

func (s *EmailServiceSuite) TestSendDocumentWhenDisabled() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeInvoice))
	s.Require().NoError(err)
	s.GetEmailSender().SetEnabled(false)

	_, err = s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{To: "client@example.com"})
	s.True(ierr.IsEmailDelivery(err))
	s.Empty(s.GetPDFGenerator().Rendered())
}

func (s *EmailServiceSuite) TestSendDocumentDeliveryFailure() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeInvoice))
	s.Require().NoError(err)
	s.GetEmailSender().FailWith(ierr.NewError("rejected").Mark(ierr.ErrHTTPClient))

	_, err = s.service.SendDocument(s.GetContext(), doc.ID, &dto.EmailDocumentRequest{To: "client@example.com"})
	s.True(ierr.IsEmailDelivery(err))
	s.Equal("Failed to send email", ierr.GetDisplayMessage(err))
}

func (s *EmailServiceSuite) TestSendDocumentDeniedForOtherUser() {
	doc, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeInvoice))
	s.Require().NoError(err)

	_, err = s.service.SendDocument(testutil.UserContext("user_other"), doc.ID, &dto.EmailDocumentRequest{To: "client@example.com"})
	s.True(ierr.IsPermissionDenied(err))
}
