package postgres

import (
	"context"

	"github.com/paperstack/paperstack/internal/domain/asset"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/types"
)

type assetRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAssetRepository(db *postgres.DB, logger *logger.Logger) asset.Repository {
	return &assetRepository{db: db, logger: logger}
}

func (r *assetRepository) Upsert(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO document_assets (
			id, document_id, owner_id, type, content_type, data, storage_key, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :document_id, :owner_id, :type, :content_type, :data, :storage_key, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (document_id, type) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			data = EXCLUDED.data,
			storage_key = EXCLUDED.storage_key,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("storing document asset",
		"document_id", a.DocumentID,
		"type", a.Type,
		"bytes", len(a.Data),
	)

	_, err := r.db.NamedExecContext(ctx, query, a)
	return translate(err, "asset", map[string]any{"document_id": a.DocumentID})
}

func (r *assetRepository) GetByDocument(ctx context.Context, documentID string, assetType types.AssetType) (*asset.Asset, error) {
	var a asset.Asset
	err := r.db.GetContext(ctx, &a, `
		SELECT id, document_id, owner_id, type, content_type, data, storage_key, created_at, updated_at, created_by, updated_by
		FROM document_assets WHERE document_id = ? AND type = ?`,
		documentID, string(assetType),
	)
	if err != nil {
		return nil, translate(err, "asset", map[string]any{"document_id": documentID, "type": assetType})
	}
	return &a, nil
}

func (r *assetRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	r.logger.Debugw("deleting document assets", "document_id", documentID)

	_, err := r.db.ExecContext(ctx, "DELETE FROM document_assets WHERE document_id = ?", documentID)
	return translate(err, "asset", map[string]any{"document_id": documentID})
}
