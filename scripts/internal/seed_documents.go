package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/repository"
	"github.com/paperstack/paperstack/internal/service"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SeedDocuments creates SEED_COUNT quotations for USER_ID and converts each
// into an invoice and then a receipt
func SeedDocuments() error {
	userID := os.Getenv("USER_ID")
	if userID == "" {
		return fmt.Errorf("USER_ID is required")
	}
	count, err := strconv.Atoi(os.Getenv("SEED_COUNT"))
	if err != nil || count < 1 {
		count = 1
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	ctx := context.WithValue(context.Background(), types.CtxUserID, userID)
	if _, err := repository.NewUserRepository(env.db, env.log).GetByID(ctx, userID); err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}

	params := service.NewServiceParams(
		env.log,
		env.cfg,
		postgres.NewClient(env.db),
		nil,
		nil,
		nil,
		nil,
		nil,
		repository.NewDocumentRepository(env.db, env.log),
		repository.NewUserRepository(env.db, env.log),
		repository.NewAssetRepository(env.db, env.log),
	)
	documents := service.NewDocumentService(params)
	conversions := service.NewConversionService(params)

	for i := 1; i <= count; i++ {
		quotation, err := documents.CreateDocument(ctx, &dto.CreateDocumentRequest{
			Type:   types.DocumentTypeQuotation,
			Client: document.Client{Name: fmt.Sprintf("Sample Client %d", i), Email: fmt.Sprintf("client%d@example.com", i)},
			Items: []dto.ItemRequest{
				{Name: "Consulting", Quantity: lo.ToPtr(decimal.NewFromInt(2)), Price: decimal.NewFromInt(50)},
				{Name: "Setup", Price: decimal.NewFromInt(25)},
			},
			Tax: decimal.NewFromInt(10),
		})
		if err != nil {
			return err
		}

		invoice, err := conversions.ConvertDocument(ctx, &dto.ConvertDocumentRequest{
			DocumentID: quotation.ID,
			TargetType: types.DocumentTypeInvoice,
		})
		if err != nil {
			return err
		}

		receipt, err := conversions.ConvertDocument(ctx, &dto.ConvertDocumentRequest{
			DocumentID: invoice.ID,
			TargetType: types.DocumentTypeReceipt,
		})
		if err != nil {
			return err
		}

		env.log.Infow("seeded document chain",
			"quotation_id", quotation.ID,
			"invoice_id", invoice.ID,
			"receipt_id", receipt.ID,
			"total", receipt.Total.StringFixed(2),
		)
	}
	return nil
}
