package service

import (
	"context"
	"time"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/types"
)

type ConversionService interface {
	// ConvertDocument creates the next document in the chain and links both
	// records in a single transaction
	ConvertDocument(ctx context.Context, req *dto.ConvertDocumentRequest) (*dto.DocumentResponse, error)
}

type conversionService struct {
	ServiceParams
}

func NewConversionService(params ServiceParams) ConversionService {
	return &conversionService{
		ServiceParams: params,
	}
}

func (s *conversionService) ConvertDocument(ctx context.Context, req *dto.ConvertDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var converted *document.Document
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		source, err := getAuthorizedDocument(ctx, s.ServiceParams, req.DocumentID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		converted, err = document.Convert(source, req.TargetType, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT), now)
		if err != nil {
			return err
		}
		converted.CreatedBy = types.GetUserID(ctx)
		converted.UpdatedBy = converted.CreatedBy
		source.UpdatedBy = converted.CreatedBy

		if err := s.DocumentRepo.Create(ctx, converted); err != nil {
			return err
		}
		return s.DocumentRepo.Update(ctx, source)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("document converted",
		"source_id", req.DocumentID,
		"document_id", converted.ID,
		"type", converted.Type,
	)
	return dto.NewDocumentResponse(converted), nil
}
