package testutil

import (
	"context"
	"os"

	"github.com/paperstack/paperstack/internal/typst"
	"github.com/stretchr/testify/mock"
)

var _ typst.Compiler = (*MockCompiler)(nil)

// MockCompiler is a mock implementation of the typst Compiler interface
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(ctx context.Context, opts typst.CompileOpts) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

func (m *MockCompiler) CompileToBytes(ctx context.Context, opts typst.CompileOpts) ([]byte, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCompiler) CompileTemplate(ctx context.Context, templateName string, data []byte, opts ...typst.CompileOptsBuilder) ([]byte, error) {
	args := m.Called(ctx, templateName, data, opts)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCompiler) CleanupGeneratedFiles(files ...string) {
	for _, f := range files {
		os.Remove(f)
	}
}
