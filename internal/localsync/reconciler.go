package localsync

import (
	"context"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/imaging"
	"github.com/paperstack/paperstack/internal/localstore"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/samber/lo"
)

// Result summarizes one reconciliation run
type Result struct {
	Submitted int
	SyncedIDs []string
	Failed    []dto.SyncFailure
}

// Reconciler pushes unsynced local documents to the server after login and
// marks the acknowledged ones. Unacknowledged documents stay pending and are
// retried on the next run.
type Reconciler struct {
	store  *localstore.Store
	client *Client
	logger *logger.Logger
}

func NewReconciler(store *localstore.Store, client *Client, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		client: client,
		logger: logger,
	}
}

func (r *Reconciler) Run(ctx context.Context, token string) (*Result, error) {
	pending, err := r.store.Pending()
	if err != nil {
		return nil, err
	}

	result := &Result{Submitted: len(pending), SyncedIDs: []string{}}
	if len(pending) == 0 {
		r.logger.Debugw("no local documents to sync")
		return result, nil
	}

	req := BuildRequest(pending)
	resp, err := r.client.SyncLocal(ctx, token, req)
	if err != nil {
		r.logger.Errorw("local sync request failed", "pending", len(pending), "error", err)
		return nil, err
	}

	if err := r.store.MarkSynced(resp.SyncedIDs); err != nil {
		return nil, err
	}

	result.SyncedIDs = resp.SyncedIDs
	result.Failed = resp.Failed
	for _, failure := range resp.Failed {
		r.logger.Warnw("local document was not synced",
			"local_id", failure.LocalID,
			"error", failure.Error,
		)
	}

	r.logger.Infow("local documents synced",
		"submitted", result.Submitted,
		"synced", len(result.SyncedIDs),
		"failed", len(result.Failed),
	)
	return result, nil
}

// BuildRequest maps pending local documents into one sync batch. Logos travel
// as data urls keyed by local id.
func BuildRequest(pending []localstore.PendingDocument) *dto.SyncLocalRequest {
	req := &dto.SyncLocalRequest{
		Documents: lo.Map(pending, func(p localstore.PendingDocument, _ int) dto.SyncDocumentRequest {
			return dto.NewSyncDocumentRequest(p.Document)
		}),
	}

	for _, p := range pending {
		if len(p.Logo) == 0 {
			continue
		}
		if req.Logos == nil {
			req.Logos = make(map[string]string)
		}
		req.Logos[p.Document.ID] = imaging.EncodeDataURL(p.Logo)
	}
	return req
}
