package service

import (
	"context"

	"github.com/h2non/filetype"
	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/cache"
	"github.com/paperstack/paperstack/internal/domain/asset"
	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/idempotency"
	"github.com/paperstack/paperstack/internal/imaging"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

const syncConcurrency = 4

type SyncService interface {
	// SyncLocal persists a batch of locally created documents for the
	// authenticated user. Documents already stored under the same local id are
	// acknowledged without being inserted again.
	SyncLocal(ctx context.Context, req *dto.SyncLocalRequest) (*dto.SyncLocalResponse, error)
}

type syncService struct {
	ServiceParams
}

func NewSyncService(params ServiceParams) SyncService {
	return &syncService{ServiceParams: params}
}

type syncOutcome struct {
	localID string
	err     error
}

func (s *syncService) SyncLocal(ctx context.Context, req *dto.SyncLocalRequest) (*dto.SyncLocalResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if len(req.Documents) == 0 {
		return &dto.SyncLocalResponse{Success: true, SyncedIDs: []string{}}, nil
	}

	key := s.batchKey(userID, req)
	if resp, ok := cache.GetAs[*dto.SyncLocalResponse](ctx, s.Cache, key); ok {
		s.Logger.Debugw("replaying local sync", "user_id", userID, "idempotency_key", key)
		return resp, nil
	}

	p := pool.NewWithResults[syncOutcome]().WithMaxGoroutines(syncConcurrency)
	for i := range req.Documents {
		entry := &req.Documents[i]
		p.Go(func() syncOutcome {
			return syncOutcome{
				localID: entry.LocalID,
				err:     s.syncOne(ctx, userID, entry, req.Logos[entry.LocalID]),
			}
		})
	}
	outcomes := lo.SliceToMap(p.Wait(), func(o syncOutcome) (string, error) {
		return o.localID, o.err
	})

	resp := &dto.SyncLocalResponse{SyncedIDs: []string{}}
	for _, localID := range req.LocalIDs() {
		if err := outcomes[localID]; err != nil {
			s.Logger.Errorw("failed to sync local document",
				"user_id", userID,
				"local_id", localID,
				"error", err,
			)
			resp.Failed = append(resp.Failed, dto.SyncFailure{
				LocalID: localID,
				Error:   ierr.GetDisplayMessage(err),
			})
			continue
		}
		resp.SyncedIDs = append(resp.SyncedIDs, localID)
	}
	resp.Success = len(resp.Failed) == 0

	if resp.Success {
		s.Cache.Set(ctx, key, resp, s.Config.Cache.DefaultExpiration)
	}

	s.Logger.Infow("local documents synced",
		"user_id", userID,
		"synced", len(resp.SyncedIDs),
		"failed", len(resp.Failed),
	)
	return resp, nil
}

// syncOne stores a single entry unless it was synced before
func (s *syncService) syncOne(ctx context.Context, userID string, entry *dto.SyncDocumentRequest, logo string) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	existing, err := s.DocumentRepo.GetByLocalID(ctx, userID, entry.LocalID)
	if err != nil && !ierr.IsNotFound(err) {
		return err
	}

	if existing == nil {
		doc, err := entry.ToDocument(ctx)
		if err != nil {
			return err
		}
		doc.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
		doc.OwnerID = lo.ToPtr(userID)
		doc.IsGuest = false
		doc.IPAddress = types.GetClientIP(ctx)
		doc.CreatedBy = userID
		doc.UpdatedBy = userID

		if err := s.DocumentRepo.Create(ctx, doc); err != nil {
			if !ierr.IsAlreadyExists(err) {
				return err
			}
			// a concurrent sync stored it first
			if existing, err = s.DocumentRepo.GetByLocalID(ctx, userID, entry.LocalID); err != nil {
				return err
			}
		} else {
			existing = doc
		}
	}

	if logo != "" {
		s.storeLogo(ctx, userID, existing, logo)
	}
	return nil
}

// storeLogo keeps the synced logo as a document asset; failures only warn
func (s *syncService) storeLogo(ctx context.Context, userID string, doc *document.Document, encoded string) {
	raw, err := imaging.DecodeDataURL(encoded)
	if err != nil || !filetype.IsImage(raw) {
		s.Logger.Warnw("skipping invalid synced logo", "document_id", doc.ID, "error", err)
		return
	}

	contentType := "application/octet-stream"
	if kind, err := filetype.Match(raw); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	a := &asset.Asset{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ASSET),
		DocumentID:  doc.ID,
		OwnerID:     lo.ToPtr(userID),
		Type:        types.AssetTypeLogo,
		ContentType: contentType,
		Data:        raw,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := s.AssetRepo.Upsert(ctx, a); err != nil {
		s.Logger.Warnw("failed to store synced logo", "document_id", doc.ID, "error", err)
	}
}

func (s *syncService) batchKey(userID string, req *dto.SyncLocalRequest) string {
	return cache.GenerateKey(cache.PrefixSyncBatch, idempotency.LocalSyncKey(userID, req.LocalIDs(), len(req.Logos)))
}
