// Package localstore keeps documents on the user's machine until they can be
// synced. Documents live in two namespaces, each holding a document list, a
// form draft and one logo per document.
package localstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/imaging"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
)

const DefaultRetentionLimit = 20

// Warning reports a non fatal problem, such as a logo that could not be kept
type Warning struct {
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

// UpsertResult describes the outcome of saving a document
type UpsertResult struct {
	Document *document.LocalDocument
	Evicted  []string
	Warnings []Warning
}

// PendingDocument is an unsynced document and the namespace it lives in
type PendingDocument struct {
	Namespace types.LocalNamespace
	Document  *document.LocalDocument
	Logo      []byte
}

type Options struct {
	Path           string
	QuotaBytes     int64
	RetentionLimit int
	Logo           imaging.Options
}

type Store struct {
	mu        sync.Mutex
	kv        *kv
	retention int
	logo      imaging.Options
	logger    *logger.Logger
	now       func() time.Time
}

// NewStore opens the store described by the local config section
func NewStore(cfg *config.Configuration, logger *logger.Logger) (*Store, error) {
	return Open(Options{
		Path:           cfg.Local.Path,
		QuotaBytes:     cfg.Local.QuotaBytes,
		RetentionLimit: cfg.Local.RetentionLimit,
		Logo: imaging.Options{
			MaxWidth: cfg.Local.LogoMaxWidth,
			Quality:  cfg.Local.LogoQuality,
		},
	}, logger)
}

// Open loads the store file, or starts empty when it does not exist yet.
// An empty path keeps everything in memory.
func Open(opts Options, logger *logger.Logger) (*Store, error) {
	backend, err := openKV(opts.Path, opts.QuotaBytes)
	if err != nil {
		return nil, err
	}
	return &Store{
		kv:        backend,
		retention: lo.Ternary(opts.RetentionLimit > 0, opts.RetentionLimit, DefaultRetentionLimit),
		logo:      opts.Logo,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func documentsKey(ns types.LocalNamespace) string { return string(ns) + "Documents" }
func draftKey(ns types.LocalNamespace) string     { return string(ns) + "FormData" }
func logoKey(ns types.LocalNamespace, id string) string {
	return fmt.Sprintf("%sLogoPreview_%s", ns, id)
}

// List returns the documents of a namespace, most recently modified first
func (s *Store) List(ns types.LocalNamespace) ([]*document.LocalDocument, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readDocuments(ns)
	if err != nil {
		return nil, err
	}
	sortByLastModified(docs)
	return docs, nil
}

// Get finds a document by its client id
func (s *Store) Get(ns types.LocalNamespace, id string) (*document.LocalDocument, error) {
	docs, err := s.List(ns)
	if err != nil {
		return nil, err
	}
	doc, ok := lo.Find(docs, func(d *document.LocalDocument) bool { return d.ID == id })
	if !ok {
		return nil, ierr.NewErrorf("local document %s not found", id).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	return doc, nil
}

// Upsert inserts or replaces a document by client id and applies the
// retention cap. Evicted documents lose their logo in the same write. When
// logo is non-nil it is compressed and stored; logo problems are returned as
// warnings and never fail the document save.
func (s *Store) Upsert(ns types.LocalNamespace, doc *document.LocalDocument, logo []byte) (*UpsertResult, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ierr.NewError("document is required").
			WithHint("Document is required").
			Mark(ierr.ErrValidation)
	}
	if len(doc.Items) == 0 {
		return nil, ierr.NewError("local document has no items").
			WithHint("Add at least one item to the document").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readDocuments(ns)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if doc.ID == "" {
		doc.ID = types.GenerateLocalID()
	}
	if doc.CreatedAt == nil {
		doc.CreatedAt = &now
	}
	doc.UpdatedAt = &now
	doc.Recalculate()

	// edits after a sync are not pushed again
	idx := lo.IndexOf(lo.Map(docs, func(d *document.LocalDocument, _ int) string { return d.ID }), doc.ID)
	if idx >= 0 {
		doc.Synced = docs[idx].Synced
		docs[idx] = doc
	} else {
		doc.Synced = false
		docs = append(docs, doc)
	}

	sortByLastModified(docs)
	var evicted []string
	if len(docs) > s.retention {
		evicted = lo.Map(docs[s.retention:], func(d *document.LocalDocument, _ int) string { return d.ID })
		docs = docs[:s.retention]
	}

	if err := s.writeDocuments(ns, docs); err != nil {
		return nil, err
	}
	s.kv.delete(lo.Map(evicted, func(id string, _ int) string { return logoKey(ns, id) })...)

	result := &UpsertResult{Document: doc, Evicted: evicted}
	if logo != nil {
		if warning := s.storeLogo(ns, doc.ID, logo); warning != nil {
			result.Warnings = append(result.Warnings, *warning)
		}
	}

	if err := s.kv.persist(); err != nil {
		return nil, err
	}

	if len(evicted) > 0 {
		s.logger.Infow("evicted local documents over retention limit",
			"namespace", ns,
			"evicted", evicted,
			"limit", s.retention,
		)
	}
	return result, nil
}

// Delete removes a document and its logo
func (s *Store) Delete(ns types.LocalNamespace, id string) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readDocuments(ns)
	if err != nil {
		return err
	}
	remaining := lo.Reject(docs, func(d *document.LocalDocument, _ int) bool { return d.ID == id })
	if len(remaining) == len(docs) {
		return ierr.NewErrorf("local document %s not found", id).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}

	if err := s.writeDocuments(ns, remaining); err != nil {
		return err
	}
	s.kv.delete(logoKey(ns, id))
	return s.kv.persist()
}

// SaveLogo compresses and stores the logo of a document
func (s *Store) SaveLogo(ns types.LocalNamespace, id string, raw []byte) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	compressed, err := imaging.CompressLogo(raw, s.logo)
	if err != nil {
		return err
	}
	if err := s.kv.set(logoKey(ns, id), []byte(imaging.EncodeDataURL(compressed))); err != nil {
		return err
	}
	return s.kv.persist()
}

// LoadLogo returns the compressed JPEG logo of a document
func (s *Store) LoadLogo(ns types.LocalNamespace, id string) ([]byte, bool, error) {
	if err := ns.Validate(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLogo(ns, id)
}

func (s *Store) loadLogo(ns types.LocalNamespace, id string) ([]byte, bool, error) {
	value, ok := s.kv.get(logoKey(ns, id))
	if !ok {
		return nil, false, nil
	}
	raw, err := imaging.DecodeDataURL(string(value))
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// SaveDraft keeps the unsaved form of a namespace
func (s *Store) SaveDraft(ns types.LocalNamespace, draft *document.LocalDocument) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(draft)
	if err != nil {
		return ierr.WithError(err).WithMessage("failed to encode draft").Mark(ierr.ErrSystem)
	}
	if err := s.kv.set(draftKey(ns), data); err != nil {
		return err
	}
	return s.kv.persist()
}

// LoadDraft returns the saved form of a namespace, or nil
func (s *Store) LoadDraft(ns types.LocalNamespace) (*document.LocalDocument, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.kv.get(draftKey(ns))
	if !ok {
		return nil, nil
	}
	var draft document.LocalDocument
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, ierr.WithError(err).WithMessage("failed to decode draft").Mark(ierr.ErrSystem)
	}
	return &draft, nil
}

// ClearAll removes every document, draft and logo
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kv.flush()
	return s.kv.persist()
}

// Pending returns every unsynced document across namespaces with its logo
func (s *Store) Pending() ([]PendingDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []PendingDocument
	for _, ns := range types.LocalNamespaces {
		docs, err := s.readDocuments(ns)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if doc.Synced {
				continue
			}
			logo, _, err := s.loadLogo(ns, doc.ID)
			if err != nil {
				s.logger.Warnw("ignoring unreadable local logo", "document_id", doc.ID, "error", err)
			}
			pending = append(pending, PendingDocument{Namespace: ns, Document: doc, Logo: logo})
		}
	}
	return pending, nil
}

// MarkSynced flags the given client ids as acknowledged by the server
func (s *Store) MarkSynced(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ns := range types.LocalNamespaces {
		docs, err := s.readDocuments(ns)
		if err != nil {
			return err
		}
		changed := false
		for _, doc := range docs {
			if lo.Contains(ids, doc.ID) && !doc.Synced {
				doc.Synced = true
				changed = true
			}
		}
		if changed {
			if err := s.writeDocuments(ns, docs); err != nil {
				return err
			}
		}
	}
	return s.kv.persist()
}

// Size reports the bytes held by the store
func (s *Store) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.size()
}

// storeLogo compresses and writes a logo, converting failures into a warning
func (s *Store) storeLogo(ns types.LocalNamespace, id string, raw []byte) *Warning {
	compressed, err := imaging.CompressLogo(raw, s.logo)
	if err != nil {
		s.logger.Warnw("logo compression failed, document saved without logo", "document_id", id, "error", err)
		return &Warning{DocumentID: id, Message: "Logo could not be processed and was not saved"}
	}
	if err := s.kv.set(logoKey(ns, id), []byte(imaging.EncodeDataURL(compressed))); err != nil {
		s.logger.Warnw("logo exceeds local quota, document saved without logo", "document_id", id, "error", err)
		return &Warning{DocumentID: id, Message: "Local storage is full, the logo was not saved"}
	}
	return nil
}

func (s *Store) readDocuments(ns types.LocalNamespace) ([]*document.LocalDocument, error) {
	data, ok := s.kv.get(documentsKey(ns))
	if !ok {
		return []*document.LocalDocument{}, nil
	}
	var docs []*document.LocalDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to decode %s", documentsKey(ns)).
			WithHint("The local document store is corrupted").
			Mark(ierr.ErrSystem)
	}
	return docs, nil
}

func (s *Store) writeDocuments(ns types.LocalNamespace, docs []*document.LocalDocument) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return ierr.WithError(err).WithMessage("failed to encode local documents").Mark(ierr.ErrSystem)
	}
	return s.kv.set(documentsKey(ns), data)
}

func sortByLastModified(docs []*document.LocalDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].LastModified().After(docs[j].LastModified())
	})
}
