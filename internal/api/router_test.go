package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/api/dto"
	v1 "github.com/paperstack/paperstack/internal/api/v1"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/service"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.BaseServiceTestSuite.SetupSuite()
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetAuthProvider(),
		s.GetEmail(),
		s.GetPDFGenerator(),
		nil,
		stores.DocumentRepo,
		stores.UserRepo,
		stores.AssetRepo,
	)

	users := service.NewUserService(params)
	pdfs := service.NewPdfService(params, users)

	s.router = NewRouter(Handlers{
		Health: v1.NewHealthHandler(s.GetLogger()),
		Auth:   v1.NewAuthHandler(service.NewAuthService(params), s.GetLogger()),
		Document: v1.NewDocumentHandler(
			service.NewDocumentService(params),
			service.NewConversionService(params),
			pdfs,
			service.NewEmailService(params, pdfs),
			service.NewSyncService(params),
			s.GetLogger(),
		),
		User: v1.NewUserHandler(users),
	}, s.GetConfig(), s.GetLogger(), s.GetAuthProvider())
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *RouterSuite) login(email string) string {
	w := s.do(http.MethodPost, "/v1/auth", "", dto.AuthRequest{Email: email, Password: "secret123"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func quotationPayload() map[string]any {
	return map[string]any{
		"type":   "quotation",
		"client": map[string]any{"name": "Acme Corp", "email": "billing@acme.test"},
		"items":  []map[string]any{{"name": "Consulting", "quantity": "2", "price": "50"}},
		"tax":    "10",
	}
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *RouterSuite) TestQuotationToReceiptFlow() {
	token := s.login("owner@paper.test")

	w := s.do(http.MethodPost, "/v1/documents", token, quotationPayload())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var quotation dto.DocumentResponse
	s.decode(w, &quotation)
	s.True(decimal.NewFromInt(100).Equal(quotation.Subtotal))
	s.True(decimal.NewFromInt(10).Equal(quotation.TaxAmount))
	s.True(decimal.NewFromInt(110).Equal(quotation.Total))

	w = s.do(http.MethodPost, "/v1/documents/convert", token, dto.ConvertDocumentRequest{
		DocumentID: quotation.ID,
		TargetType: types.DocumentTypeInvoice,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var invoice dto.DocumentResponse
	s.decode(w, &invoice)
	s.Equal(types.DocumentTypeInvoice, invoice.Type)

	w = s.do(http.MethodPost, "/v1/documents/convert", token, dto.ConvertDocumentRequest{
		DocumentID: invoice.ID,
		TargetType: types.DocumentTypeReceipt,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var receipt dto.DocumentResponse
	s.decode(w, &receipt)
	s.Require().NotNil(receipt.RelatedDocuments.OriginalQuotation)
	s.Equal(quotation.ID, *receipt.RelatedDocuments.OriginalQuotation)
	s.True(decimal.NewFromInt(110).Equal(receipt.Total))

	w = s.do(http.MethodGet, "/v1/documents/user", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list dto.ListDocumentsResponse
	s.decode(w, &list)
	s.Len(list.Items, 3)
}

func (s *RouterSuite) TestInvalidConversionIsBadRequest() {
	token := s.login("owner@paper.test")

	w := s.do(http.MethodPost, "/v1/documents", token, quotationPayload())
	s.Require().Equal(http.StatusCreated, w.Code)

	var quotation dto.DocumentResponse
	s.decode(w, &quotation)

	w = s.do(http.MethodPost, "/v1/documents/convert", token, dto.ConvertDocumentRequest{
		DocumentID: quotation.ID,
		TargetType: types.DocumentTypeReceipt,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.False(resp.Success)
	s.NotEmpty(resp.Error.Display)
}

func (s *RouterSuite) TestOtherUserIsForbidden() {
	owner := s.login("owner@paper.test")
	other := s.login("other@paper.test")

	w := s.do(http.MethodPost, "/v1/documents", owner, quotationPayload())
	s.Require().Equal(http.StatusCreated, w.Code)

	var doc dto.DocumentResponse
	s.decode(w, &doc)

	w = s.do(http.MethodGet, "/v1/documents/"+doc.ID, other, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/v1/documents/"+doc.ID, other, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/v1/documents/"+doc.ID, owner, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/documents/"+doc.ID, owner, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestGuestDocuments() {
	w := s.do(http.MethodPost, "/v1/documents", "", quotationPayload())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var doc dto.DocumentResponse
	s.decode(w, &doc)
	s.True(doc.IsGuest)
	s.Nil(doc.OwnerID)

	w = s.do(http.MethodGet, "/v1/documents/guest?type=quotation", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list dto.ListDocumentsResponse
	s.decode(w, &list)
	s.Require().Len(list.Items, 1)
	s.Equal(doc.ID, list.Items[0].ID)
}

func (s *RouterSuite) TestRequiredAuthRoutes() {
	for _, path := range []string{"/v1/documents/user", "/v1/users/profile"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(http.MethodPost, "/v1/documents/sync-local", "", dto.SyncLocalRequest{})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestInvalidPayload() {
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)

	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invalid request format", resp.Error.Display)
}

func (s *RouterSuite) TestDocumentPdf() {
	token := s.login("owner@paper.test")

	payload := quotationPayload()
	payload["type"] = "invoice"
	payload["number"] = "INV-00042"
	w := s.do(http.MethodPost, "/v1/documents", token, payload)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var doc dto.DocumentResponse
	s.decode(w, &doc)

	w = s.do(http.MethodGet, "/v1/documents/"+doc.ID+"/pdf", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="invoice_INV-00042.pdf"`, w.Header().Get("Content-Disposition"))
	s.Equal("no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	s.Len(s.GetPDFGenerator().Rendered(), 1)
}

func (s *RouterSuite) TestEmailDocument() {
	token := s.login("owner@paper.test")
	s.GetEmailSender().Clear()

	w := s.do(http.MethodPost, "/v1/documents", token, quotationPayload())
	s.Require().Equal(http.StatusCreated, w.Code)

	var doc dto.DocumentResponse
	s.decode(w, &doc)

	w = s.do(http.MethodPost, "/v1/documents/"+doc.ID+"/email", token, dto.EmailDocumentRequest{To: "not-an-email"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/documents/"+doc.ID+"/email", token, dto.EmailDocumentRequest{To: "client@acme.test"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Len(s.GetEmailSender().Messages(), 1)
}

func (s *RouterSuite) TestProfileUpdates() {
	token := s.login("owner@paper.test")

	w := s.do(http.MethodPut, "/v1/users/business-info", token, map[string]any{"name": "Paper Co"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/users/profile", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var profile map[string]any
	s.decode(w, &profile)
	s.Equal("owner@paper.test", profile["email"])
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal("req-123", w.Header().Get(types.HeaderRequestID))
}
