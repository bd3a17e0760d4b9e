package testutil

import (
	"context"
	"sync"

	domain "github.com/paperstack/paperstack/internal/domain/pdf"
	"github.com/paperstack/paperstack/internal/pdf"
)

var _ pdf.Generator = (*StubPdfGenerator)(nil)

// StubPdfGenerator returns a fixed one page pdf and records what it rendered
type StubPdfGenerator struct {
	mu       sync.Mutex
	rendered []*domain.DocumentData
	failWith error
}

func NewStubPdfGenerator() *StubPdfGenerator {
	return &StubPdfGenerator{}
}

// FailWith makes every following render return err
func (g *StubPdfGenerator) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failWith = err
}

func (g *StubPdfGenerator) RenderDocumentPdf(_ context.Context, data *domain.DocumentData) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failWith != nil {
		return nil, g.failWith
	}
	g.rendered = append(g.rendered, data)
	return MinimalPDF(), nil
}

// Rendered returns the data passed to every successful render
func (g *StubPdfGenerator) Rendered() []*domain.DocumentData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*domain.DocumentData(nil), g.rendered...)
}

func (g *StubPdfGenerator) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rendered = nil
	g.failWith = nil
}
