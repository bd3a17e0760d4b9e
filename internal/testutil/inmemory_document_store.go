package testutil

import (
	"context"
	"strings"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
)

var _ document.Repository = (*InMemoryDocumentStore)(nil)

// InMemoryDocumentStore stores clones so callers can never mutate stored rows
type InMemoryDocumentStore struct {
	*InMemoryStore[*document.Document]

	// FailOn makes the matching operation fail, keyed by "create", "update" or "delete"
	FailOn map[string]error
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		InMemoryStore: NewInMemoryStore[*document.Document](),
		FailOn:        make(map[string]error),
	}
}

func documentFilterFn(ctx context.Context, d *document.Document, filter interface{}) bool {
	f, ok := filter.(*types.DocumentFilter)
	if !ok || f == nil {
		return true
	}

	switch {
	case f.OwnerID != "":
		if !d.IsOwnedBy(f.OwnerID) {
			return false
		}
	case f.GuestIP != "":
		if d.HasOwner() || d.IPAddress != f.GuestIP {
			return false
		}
	}

	if f.Type != "" && d.Type != f.Type {
		return false
	}

	if len(f.LocalIDs) > 0 && (d.LocalID == nil || !lo.Contains(f.LocalIDs, *d.LocalID)) {
		return false
	}

	return true
}

func documentSortFn(i, j *document.Document) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return strings.Compare(i.ID, j.ID) > 0
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryDocumentStore) Create(ctx context.Context, doc *document.Document) error {
	if err := s.FailOn["create"]; err != nil {
		return err
	}
	if doc.LocalID != nil && doc.OwnerID != nil {
		if _, err := s.GetByLocalID(ctx, *doc.OwnerID, *doc.LocalID); err == nil {
			return ierr.NewError("document already synced").
				WithHint("A document with this local id already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Create(ctx, doc.ID, doc.Clone())
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*document.Document, error) {
	doc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

func (s *InMemoryDocumentStore) GetByLocalID(ctx context.Context, ownerID, localID string) (*document.Document, error) {
	doc, ok := s.InMemoryStore.Find(func(d *document.Document) bool {
		return d.IsOwnedBy(ownerID) && d.LocalID != nil && *d.LocalID == localID
	})
	if !ok {
		return nil, ierr.NewError("document not found").
			WithHintf("Document with local id %s not found", localID).
			Mark(ierr.ErrNotFound)
	}
	return doc.Clone(), nil
}

func (s *InMemoryDocumentStore) Update(ctx context.Context, doc *document.Document) error {
	if err := s.FailOn["update"]; err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, doc.ID, doc.Clone())
}

func (s *InMemoryDocumentStore) Delete(ctx context.Context, id string) error {
	if err := s.FailOn["delete"]; err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryDocumentStore) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	docs, err := s.InMemoryStore.List(ctx, filter, documentFilterFn, documentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d *document.Document, _ int) *document.Document { return d.Clone() }), nil
}

func (s *InMemoryDocumentStore) Count(ctx context.Context, filter *types.DocumentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, documentFilterFn)
}

// Clear removes all documents and injected failures
func (s *InMemoryDocumentStore) Clear() {
	s.InMemoryStore.Clear()
	s.FailOn = make(map[string]error)
}
