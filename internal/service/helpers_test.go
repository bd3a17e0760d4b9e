package service

import (
	"context"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// newTestServiceParams wires services over the suite's in-memory stores
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
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
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleDocumentRequest(docType types.DocumentType) *dto.CreateDocumentRequest {
	return &dto.CreateDocumentRequest{
		Type:   docType,
		Client: document.Client{Name: "Acme Corp", Email: "billing@acme.test"},
		Items: []dto.ItemRequest{{
			Name:     "Consulting",
			Quantity: lo.ToPtr(dec("2")),
			Price:    dec("50"),
		}},
		Tax: dec("10"),
	}
}

func withUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, types.CtxUserID, userID)
}
