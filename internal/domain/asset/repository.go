package asset

import (
	"context"

	"github.com/paperstack/paperstack/internal/types"
)

type Repository interface {
	// Upsert replaces any asset of the same type on the document
	Upsert(ctx context.Context, a *Asset) error
	GetByDocument(ctx context.Context, documentID string, assetType types.AssetType) (*Asset, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}
