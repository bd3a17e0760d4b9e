package main

import (
	"strings"
	"testing"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLocalDocument(t *testing.T) {
	t.Run("from stdin", func(t *testing.T) {
		in := strings.NewReader(`{"id":"local-1","type":"quotation","billTo":"Acme\nMain St","items":[{"description":"Design","quantity":"2","rate":"50"}]}`)

		doc, err := readLocalDocument(in, "-")
		require.NoError(t, err)
		assert.Equal(t, "local-1", doc.ID)
		assert.Equal(t, types.DocumentTypeQuotation, doc.Type)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "Design", doc.Items[0].Description)
	})

	t.Run("defaults to invoice", func(t *testing.T) {
		doc, err := readLocalDocument(strings.NewReader(`{"billTo":"Acme"}`), "-")
		require.NoError(t, err)
		assert.Equal(t, types.DocumentTypeInvoice, doc.Type)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := readLocalDocument(strings.NewReader(`{`), "-")
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readLocalDocument(strings.NewReader(""), "/nonexistent/doc.json")
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}
