package typst

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestUnpackTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, UnpackTemplates(dir))

	content, err := os.ReadFile(filepath.Join(dir, "document.typ"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "sys.inputs.path")
}

func TestCompileTemplateMissingTemplate(t *testing.T) {
	c := NewCompiler(logger.NewNoopLogger(), "typst", "", t.TempDir(), t.TempDir())

	_, err := c.CompileTemplate(context.Background(), "missing.typ", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, ierr.IsPdfRender(err))
}

type TypstCompilerSuite struct {
	suite.Suite
	logger      *logger.Logger
	tempDir     string
	templateDir string
	outputDir   string
	compiler    Compiler
}

func TestTypstCompiler(t *testing.T) {
	suite.Run(t, new(TypstCompilerSuite))
}

func (s *TypstCompilerSuite) SetupTest() {
	if _, err := exec.LookPath("typst"); err != nil {
		s.T().Skip("Skipping tests because typst is not available in the system")
		return
	}

	var err error
	s.logger, err = logger.NewLogger(config.GetDefaultConfig())
	s.Require().NoError(err)

	s.tempDir = s.T().TempDir()
	s.templateDir = filepath.Join(s.tempDir, "templates")
	s.outputDir = filepath.Join(s.tempDir, "output")
	s.Require().NoError(os.MkdirAll(s.outputDir, 0o755))
	s.Require().NoError(UnpackTemplates(s.templateDir))

	err = os.WriteFile(filepath.Join(s.templateDir, "sample.typ"), []byte(`#set page(width: 10cm, height: 5cm)
#let data = json(sys.inputs.path)
Hello, #data.name!`), 0o644)
	s.Require().NoError(err)

	s.compiler = NewCompiler(s.logger, "typst", "", s.templateDir, s.outputDir)
}

func (s *TypstCompilerSuite) TestCompileTemplate() {
	pdf, err := s.compiler.CompileTemplate(context.Background(), "sample.typ", []byte(`{"name":"World"}`))
	s.Require().NoError(err)
	s.True(len(pdf) > 4)
	s.Equal("%PDF", string(pdf[:4]))

	entries, err := os.ReadDir(s.outputDir)
	s.Require().NoError(err)
	s.Empty(entries, "generated files should be cleaned up")
}

func (s *TypstCompilerSuite) TestCompileInvalidSource() {
	bad := filepath.Join(s.templateDir, "bad.typ")
	s.Require().NoError(os.WriteFile(bad, []byte(`#let x = (`), 0o644))

	_, err := s.compiler.CompileToBytes(context.Background(), CompileOpts{InputFile: bad})
	s.Error(err)
	s.True(ierr.IsPdfRender(err))
}
