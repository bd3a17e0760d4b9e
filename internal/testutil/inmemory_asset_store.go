package testutil

import (
	"context"
	"fmt"

	"github.com/paperstack/paperstack/internal/domain/asset"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

var _ asset.Repository = (*InMemoryAssetStore)(nil)

// InMemoryAssetStore keys assets by document and type, matching the unique index
type InMemoryAssetStore struct {
	*InMemoryStore[*asset.Asset]
}

func NewInMemoryAssetStore() *InMemoryAssetStore {
	return &InMemoryAssetStore{
		InMemoryStore: NewInMemoryStore[*asset.Asset](),
	}
}

func assetKey(documentID string, assetType types.AssetType) string {
	return fmt.Sprintf("%s/%s", documentID, assetType)
}

func (s *InMemoryAssetStore) Upsert(ctx context.Context, a *asset.Asset) error {
	c := *a
	c.Data = append([]byte(nil), a.Data...)
	s.Put(assetKey(a.DocumentID, a.Type), &c)
	return nil
}

func (s *InMemoryAssetStore) GetByDocument(ctx context.Context, documentID string, assetType types.AssetType) (*asset.Asset, error) {
	a, err := s.InMemoryStore.Get(ctx, assetKey(documentID, assetType))
	if err != nil {
		return nil, ierr.NewError("asset not found").
			WithHintf("No %s found for document %s", assetType, documentID).
			Mark(ierr.ErrNotFound)
	}
	c := *a
	return &c, nil
}

func (s *InMemoryAssetStore) DeleteByDocument(ctx context.Context, documentID string) error {
	for _, t := range types.AssetTypes {
		_ = s.InMemoryStore.Delete(ctx, assetKey(documentID, t))
	}
	return nil
}
