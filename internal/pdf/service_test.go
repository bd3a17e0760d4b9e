package pdf_test

import (
	"context"
	"testing"

	"github.com/paperstack/paperstack/internal/config"
	domain "github.com/paperstack/paperstack/internal/domain/pdf"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/pdf"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, compiler *testutil.MockCompiler) pdf.Generator {
	cfg := config.GetDefaultConfig()
	cfg.PDF.WorkDir = t.TempDir()
	return pdf.NewGenerator(cfg, compiler, logger.NewNoopLogger())
}

func TestRenderDocumentPdf(t *testing.T) {
	compiler := new(testutil.MockCompiler)
	expected := testutil.MinimalPDF()
	compiler.On("CompileTemplate", mock.Anything, "document.typ", mock.Anything, mock.Anything).Return(expected, nil)

	out, err := newGenerator(t, compiler).RenderDocumentPdf(context.Background(), &domain.DocumentData{ID: "doc_1", Type: "invoice"})

	require.NoError(t, err)
	assert.Equal(t, expected, out)
	compiler.AssertExpectations(t)
}

func TestRenderDocumentPdfCompileError(t *testing.T) {
	compiler := new(testutil.MockCompiler)
	compiler.On("CompileTemplate", mock.Anything, "document.typ", mock.Anything, mock.Anything).
		Return([]byte(nil), ierr.NewError("compilation error").Mark(ierr.ErrSystem))

	out, err := newGenerator(t, compiler).RenderDocumentPdf(context.Background(), &domain.DocumentData{ID: "doc_1"})

	require.Error(t, err)
	assert.True(t, ierr.IsPdfRender(err))
	assert.Nil(t, out)
}

func TestRenderDocumentPdfRejectsUnreadableOutput(t *testing.T) {
	compiler := new(testutil.MockCompiler)
	compiler.On("CompileTemplate", mock.Anything, "document.typ", mock.Anything, mock.Anything).
		Return([]byte("not a pdf"), nil)

	_, err := newGenerator(t, compiler).RenderDocumentPdf(context.Background(), &domain.DocumentData{ID: "doc_1"})

	require.Error(t, err)
	assert.True(t, ierr.IsPdfRender(err))
}

func TestRenderDocumentPdfSkipsInvalidLogo(t *testing.T) {
	compiler := new(testutil.MockCompiler)
	compiler.On("CompileTemplate", mock.Anything, "document.typ", mock.Anything, mock.Anything).
		Return(testutil.MinimalPDF(), nil)

	data := &domain.DocumentData{ID: "doc_1", LogoBase64: "data:image/png;base64,!!!"}
	_, err := newGenerator(t, compiler).RenderDocumentPdf(context.Background(), data)

	require.NoError(t, err)
	assert.Empty(t, data.LogoPath)
}
