package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/domain/pdf"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/typst"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const documentTemplate = "document.typ"

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderDocumentPdf(ctx context.Context, data *pdf.DocumentData) ([]byte, error)
}

type service struct {
	typst  typst.Compiler
	logger *logger.Logger
	tmpDir string
}

// NewGenerator creates a new PDF service
func NewGenerator(cfg *config.Configuration, compiler typst.Compiler, logger *logger.Logger) Generator {
	return &service{
		typst:  compiler,
		logger: logger,
		tmpDir: cfg.PDF.WorkDir,
	}
}

// RenderDocumentPdf compiles the document template and checks the output is a
// readable PDF with at least one page
func (s *service) RenderDocumentPdf(ctx context.Context, data *pdf.DocumentData) ([]byte, error) {
	logoPath, err := s.writeLogo(data.LogoBase64)
	if err != nil {
		s.logger.Warnw("skipping logo", "document_id", data.ID, "error", err)
	}
	if logoPath != "" {
		defer s.typst.CleanupGeneratedFiles(logoPath)
		data.LogoPath = logoPath
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal document data").
			Mark(ierr.ErrPdfRender)
	}

	out, err := s.typst.CompileTemplate(
		ctx,
		documentTemplate,
		jsonData,
		typst.WithOutputFile(fmt.Sprintf("%s-%s.pdf", data.Type, data.ID)),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render the document").
			WithReportableDetails(map[string]any{"document_id": data.ID}).
			Mark(ierr.ErrPdfRender)
	}

	pages, err := api.PageCount(bytes.NewReader(out), model.NewDefaultConfiguration())
	if err != nil || pages < 1 {
		return nil, ierr.NewErrorf("rendered pdf is not readable (pages=%d): %v", pages, err).
			WithHint("Failed to render the document").
			Mark(ierr.ErrPdfRender)
	}

	s.logger.Debugw("rendered document pdf", "document_id", data.ID, "pages", pages, "bytes", len(out))
	return out, nil
}

// writeLogo decodes a base64 or data-url image into a temporary file the
// template can embed
func (s *service) writeLogo(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	if idx := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && idx > 0 {
		encoded = encoded[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Image(raw)
	if err != nil {
		return "", err
	}
	switch kind.Extension {
	case "png", "jpg", "gif":
	default:
		return "", fmt.Errorf("unsupported logo type %q", kind.MIME.Value)
	}

	f, err := os.CreateTemp(s.tmpDir, "logo-*."+kind.Extension)
	if err != nil {
		return "", err
	}
	if err := writeOrRemove(f, raw); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// writeOrRemove writes and closes f, deleting it when either step fails
func writeOrRemove(f *os.File, raw []byte) error {
	_, err := f.Write(raw)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
	}
	return err
}
