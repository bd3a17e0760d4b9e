package service

import (
	"testing"

	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceSuite struct {
	testutil.BaseServiceTestSuite
	documents   DocumentService
	conversions ConversionService
}

func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceSuite))
}

func (s *ConversionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.documents = NewDocumentService(params)
	s.conversions = NewConversionService(params)
}

func (s *ConversionServiceSuite) convert(id string, target types.DocumentType) (*dto.DocumentResponse, error) {
	return s.conversions.ConvertDocument(s.GetContext(), &dto.ConvertDocumentRequest{
		DocumentID: id,
		TargetType: target,
	})
}

func (s *ConversionServiceSuite) TestQuotationToInvoiceToReceipt() {
	ctx := s.GetContext()

	quotation, err := s.documents.CreateDocument(ctx, sampleDocumentRequest(types.DocumentTypeQuotation))
	s.NoError(err)
	s.Equal("110", quotation.Total.String())

	invoice, err := s.convert(quotation.ID, types.DocumentTypeInvoice)
	s.NoError(err)
	s.Equal(types.DocumentTypeInvoice, invoice.Type)
	s.NotEqual(quotation.ID, invoice.ID)
	s.NotEqual(quotation.Number, invoice.Number)
	s.Equal("110", invoice.Total.String())
	s.Equal(quotation.ID, lo.FromPtr(invoice.RelatedDocuments.OriginalQuotation))
	s.Equal(quotation.Client, invoice.Client)
	s.Equal(quotation.OwnerID, invoice.OwnerID)

	storedQuotation, err := s.documents.GetDocument(ctx, quotation.ID)
	s.NoError(err)
	s.Equal(invoice.ID, lo.FromPtr(storedQuotation.RelatedDocuments.ResultingInvoice))

	receipt, err := s.convert(invoice.ID, types.DocumentTypeReceipt)
	s.NoError(err)
	s.Equal(types.DocumentTypeReceipt, receipt.Type)
	s.Equal("110", receipt.Total.String())
	s.Equal(quotation.ID, lo.FromPtr(receipt.RelatedDocuments.OriginalQuotation))

	storedInvoice, err := s.documents.GetDocument(ctx, invoice.ID)
	s.NoError(err)
	s.Equal(receipt.ID, lo.FromPtr(storedInvoice.RelatedDocuments.ResultingReceipt))
	s.Equal(quotation.ID, lo.FromPtr(storedInvoice.RelatedDocuments.OriginalQuotation))

	s.Equal(3, s.store().Len())
}

func (s *ConversionServiceSuite) TestInvalidConversions() {
	ctx := s.GetContext()

	quotation, err := s.documents.CreateDocument(ctx, sampleDocumentRequest(types.DocumentTypeQuotation))
	s.NoError(err)
	receipt, err := s.documents.CreateDocument(ctx, sampleDocumentRequest(types.DocumentTypeReceipt))
	s.NoError(err)
	creditNote, err := s.documents.CreateDocument(ctx, sampleDocumentRequest(types.DocumentTypeCreditNote))
	s.NoError(err)

	tests := []struct {
		name   string
		id     string
		target types.DocumentType
	}{
		{"quotation to receipt", quotation.ID, types.DocumentTypeReceipt},
		{"quotation to quotation", quotation.ID, types.DocumentTypeQuotation},
		{"receipt to invoice", receipt.ID, types.DocumentTypeInvoice},
		{"credit note to receipt", creditNote.ID, types.DocumentTypeReceipt},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.convert(tt.id, tt.target)
			s.Error(err)
			s.True(ierr.IsInvalidConversion(err), "expected invalid conversion, got %v", err)
		})
	}

	s.Equal(3, s.store().Len())
	stored, err := s.documents.GetDocument(ctx, quotation.ID)
	s.NoError(err)
	s.Nil(stored.RelatedDocuments.ResultingInvoice)
}

func (s *ConversionServiceSuite) TestConvertRejectsUnknownTarget() {
	quotation, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeQuotation))
	s.NoError(err)

	_, err = s.convert(quotation.ID, "estimate")
	s.True(ierr.IsValidation(err))
}

func (s *ConversionServiceSuite) TestConvertIsAtomic() {
	quotation, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeQuotation))
	s.NoError(err)

	s.store().FailOn["update"] = ierr.NewError("connection reset").Mark(ierr.ErrDatabase)

	_, err = s.convert(quotation.ID, types.DocumentTypeInvoice)
	s.Error(err)

	delete(s.store().FailOn, "update")
	s.Equal(1, s.store().Len())

	stored, err := s.documents.GetDocument(s.GetContext(), quotation.ID)
	s.NoError(err)
	s.Nil(stored.RelatedDocuments.ResultingInvoice)
}

func (s *ConversionServiceSuite) TestConvertDeniedForOtherUser() {
	quotation, err := s.documents.CreateDocument(s.GetContext(), sampleDocumentRequest(types.DocumentTypeQuotation))
	s.NoError(err)

	_, err = s.conversions.ConvertDocument(testutil.UserContext("user_other"), &dto.ConvertDocumentRequest{
		DocumentID: quotation.ID,
		TargetType: types.DocumentTypeInvoice,
	})
	s.True(ierr.IsPermissionDenied(err))
	s.Equal(1, s.store().Len())
}

func (s *ConversionServiceSuite) store() *testutil.InMemoryDocumentStore {
	return s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
}
