package localstore

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	path  string
	clock time.Time
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "local.db")
	s.store = s.open(Options{Path: s.path, QuotaBytes: 5 << 20})
}

func (s *StoreSuite) open(opts Options) *Store {
	store, err := Open(opts, logger.NewNoopLogger())
	s.Require().NoError(err)
	s.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}
	return store
}

func (s *StoreSuite) newDoc(billTo string) *document.LocalDocument {
	doc := document.NewLocalDocument(types.DocumentTypeInvoice)
	doc.CreatedAt = nil
	doc.BillTo = billTo
	doc.Items = []document.LocalItem{{
		Description: "Work",
		Quantity:    decimal.NewFromInt(2),
		Rate:        decimal.NewFromInt(50),
	}}
	doc.Tax = decimal.NewFromInt(10)
	return doc
}

func (s *StoreSuite) logo() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 5, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *StoreSuite) TestUpsertRecalculatesAndStamps() {
	res, err := s.store.Upsert(types.LocalNamespaceInvoice, s.newDoc("Acme"), nil)
	s.Require().NoError(err)

	s.Equal("110", res.Document.Total.String())
	s.NotNil(res.Document.CreatedAt)
	s.NotNil(res.Document.UpdatedAt)
	s.Empty(res.Evicted)

	docs, err := s.store.List(types.LocalNamespaceInvoice)
	s.Require().NoError(err)
	s.Len(docs, 1)

	other, err := s.store.List(types.LocalNamespaceHome)
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *StoreSuite) TestUpsertReplacesByClientID() {
	doc := s.newDoc("Acme")
	_, err := s.store.Upsert(types.LocalNamespaceHome, doc, nil)
	s.Require().NoError(err)

	doc.BillTo = "Acme Corp"
	_, err = s.store.Upsert(types.LocalNamespaceHome, doc, nil)
	s.Require().NoError(err)

	docs, err := s.store.List(types.LocalNamespaceHome)
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("Acme Corp", docs[0].BillTo)
}

func (s *StoreSuite) TestUpsertRejectsDocumentWithoutItems() {
	doc := s.newDoc("Acme")
	doc.Items = nil

	_, err := s.store.Upsert(types.LocalNamespaceInvoice, doc, nil)
	s.True(ierr.IsValidation(err))

	docs, err := s.store.List(types.LocalNamespaceInvoice)
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *StoreSuite) TestUpsertKeepsSyncedFlagOnEdit() {
	res, err := s.store.Upsert(types.LocalNamespaceHome, s.newDoc("Acme"), nil)
	s.Require().NoError(err)
	s.Require().NoError(s.store.MarkSynced([]string{res.Document.ID}))

	edited, err := s.store.Get(types.LocalNamespaceHome, res.Document.ID)
	s.Require().NoError(err)
	edited.BillTo = "Acme Corp"
	edited.Synced = false
	_, err = s.store.Upsert(types.LocalNamespaceHome, edited, nil)
	s.Require().NoError(err)

	pending, err := s.store.Pending()
	s.Require().NoError(err)
	s.Empty(pending)

	doc, err := s.store.Get(types.LocalNamespaceHome, res.Document.ID)
	s.Require().NoError(err)
	s.True(doc.Synced)
	s.Equal("Acme Corp", doc.BillTo)
}

func (s *StoreSuite) TestRetentionEvictsOldestWithLogo() {
	var first *document.LocalDocument
	for i := 0; i < DefaultRetentionLimit; i++ {
		doc := s.newDoc(fmt.Sprintf("Client %d", i))
		res, err := s.store.Upsert(types.LocalNamespaceInvoice, doc, s.logo())
		s.Require().NoError(err)
		s.Empty(res.Warnings)
		if i == 0 {
			first = res.Document
		}
	}

	_, ok, err := s.store.LoadLogo(types.LocalNamespaceInvoice, first.ID)
	s.Require().NoError(err)
	s.True(ok)

	res, err := s.store.Upsert(types.LocalNamespaceInvoice, s.newDoc("Client 21"), nil)
	s.Require().NoError(err)
	s.Equal([]string{first.ID}, res.Evicted)

	docs, err := s.store.List(types.LocalNamespaceInvoice)
	s.Require().NoError(err)
	s.Len(docs, DefaultRetentionLimit)
	for _, d := range docs {
		s.NotEqual(first.ID, d.ID)
	}

	_, ok, err = s.store.LoadLogo(types.LocalNamespaceInvoice, first.ID)
	s.Require().NoError(err)
	s.False(ok, "evicted document's logo must be removed")
}

func (s *StoreSuite) TestDeleteRemovesLogo() {
	res, err := s.store.Upsert(types.LocalNamespaceHome, s.newDoc("Acme"), s.logo())
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(types.LocalNamespaceHome, res.Document.ID))

	_, ok, err := s.store.LoadLogo(types.LocalNamespaceHome, res.Document.ID)
	s.Require().NoError(err)
	s.False(ok)

	err = s.store.Delete(types.LocalNamespaceHome, res.Document.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *StoreSuite) TestInvalidLogoIsAWarning() {
	res, err := s.store.Upsert(types.LocalNamespaceHome, s.newDoc("Acme"), []byte("not an image"))
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Equal(res.Document.ID, res.Warnings[0].DocumentID)

	_, err = s.store.Get(types.LocalNamespaceHome, res.Document.ID)
	s.NoError(err)
}

func (s *StoreSuite) TestQuotaExceeded() {
	store := s.open(Options{QuotaBytes: 600})

	_, err := store.Upsert(types.LocalNamespaceHome, s.newDoc("Acme"), nil)
	s.Require().NoError(err)

	_, err = store.Upsert(types.LocalNamespaceHome, s.newDoc("Another client"), nil)
	s.Require().Error(err)
	s.True(ierr.IsStorageQuotaExceeded(err))

	docs, err := store.List(types.LocalNamespaceHome)
	s.Require().NoError(err)
	s.Len(docs, 1)
}

func (s *StoreSuite) TestLogoOverQuotaIsAWarning() {
	store := s.open(Options{QuotaBytes: 700})

	res, err := store.Upsert(types.LocalNamespaceHome, s.newDoc("Acme"), s.logo())
	s.Require().NoError(err)
	s.Len(res.Warnings, 1)
}

func (s *StoreSuite) TestPendingAndMarkSynced() {
	a, err := s.store.Upsert(types.LocalNamespaceHome, s.newDoc("A"), s.logo())
	s.Require().NoError(err)
	b, err := s.store.Upsert(types.LocalNamespaceInvoice, s.newDoc("B"), nil)
	s.Require().NoError(err)

	pending, err := s.store.Pending()
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(types.LocalNamespaceHome, pending[0].Namespace)
	s.NotEmpty(pending[0].Logo)
	s.Nil(pending[1].Logo)

	s.Require().NoError(s.store.MarkSynced([]string{a.Document.ID}))

	pending, err = s.store.Pending()
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(b.Document.ID, pending[0].Document.ID)
}

func (s *StoreSuite) TestPersistsAcrossOpen() {
	res, err := s.store.Upsert(types.LocalNamespaceInvoice, s.newDoc("Acme"), s.logo())
	s.Require().NoError(err)
	s.Require().NoError(s.store.SaveDraft(types.LocalNamespaceInvoice, s.newDoc("Draft")))

	reopened := s.open(Options{Path: s.path})

	doc, err := reopened.Get(types.LocalNamespaceInvoice, res.Document.ID)
	s.Require().NoError(err)
	s.Equal("Acme", doc.BillTo)

	_, ok, err := reopened.LoadLogo(types.LocalNamespaceInvoice, res.Document.ID)
	s.Require().NoError(err)
	s.True(ok)

	draft, err := reopened.LoadDraft(types.LocalNamespaceInvoice)
	s.Require().NoError(err)
	s.Require().NotNil(draft)
	s.Equal("Draft", draft.BillTo)
}

func (s *StoreSuite) TestClearAll() {
	_, err := s.store.Upsert(types.LocalNamespaceInvoice, s.newDoc("Acme"), s.logo())
	s.Require().NoError(err)

	s.Require().NoError(s.store.ClearAll())
	s.Zero(s.store.Size())

	docs, err := s.store.List(types.LocalNamespaceInvoice)
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *StoreSuite) TestRejectsUnknownNamespace() {
	_, err := s.store.List(types.LocalNamespace("other"))
	s.True(ierr.IsValidation(err))
}
