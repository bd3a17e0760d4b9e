package typst

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/types"
)

//go:embed templates/*.typ
var embeddedTemplates embed.FS

type Compiler interface {
	Compile(ctx context.Context, opts CompileOpts) (string, error)
	CompileToBytes(ctx context.Context, opts CompileOpts) ([]byte, error)
	CompileTemplate(ctx context.Context, templateName string, data []byte, opts ...CompileOptsBuilder) ([]byte, error)
	CleanupGeneratedFiles(files ...string)
}

// compiler represents a Typst document compiler
type compiler struct {
	logger *logger.Logger
	// Path to the typst binary
	binaryPath string
	// Directory where fonts are stored
	fontDir string
	// Directory where templates are stored
	templateDir string
	// Directory for output files
	outputDir string
}

// CompileOpts contains options for compiling a Typst document
type CompileOpts struct {
	// Input file path
	InputFile string
	// Output file name (optional, a unique name is generated when empty)
	OutputFile string
	// Font paths to include
	FontDirs []string
	// Additional command-line arguments
	ExtraArgs []string
}

type CompileOptsBuilder func(c *CompileOpts)

func WithOutputFile(outputFile string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.OutputFile = outputFile
	}
}

// WithInput passes an extra sys.inputs entry to the template
func WithInput(key, value string) CompileOptsBuilder {
	return func(c *CompileOpts) {
		c.ExtraArgs = append(c.ExtraArgs, "--input", fmt.Sprintf("%s=%s", key, value))
	}
}

// NewCompiler creates a new Typst compiler
func NewCompiler(logger *logger.Logger, binaryPath, fontDir, templateDir, outputDir string) Compiler {
	return &compiler{
		logger:      logger,
		binaryPath:  binaryPath,
		fontDir:     fontDir,
		templateDir: templateDir,
		outputDir:   outputDir,
	}
}

// NewCompilerFromConfig builds a compiler whose templates are the ones shipped
// with the binary, unpacked under the configured work directory
func NewCompilerFromConfig(cfg *config.Configuration, logger *logger.Logger) (Compiler, error) {
	workDir := cfg.PDF.WorkDir
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "paperstack-typst")
	}

	templateDir := filepath.Join(workDir, "templates")
	outputDir := filepath.Join(workDir, "output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create typst output directory").
			Mark(ierr.ErrSystem)
	}
	if err := UnpackTemplates(templateDir); err != nil {
		return nil, err
	}

	binary := cfg.PDF.TypstBinary
	if binary == "" {
		binary = "typst"
	}

	return NewCompiler(logger, binary, cfg.PDF.FontDir, templateDir, outputDir), nil
}

// UnpackTemplates writes the embedded templates into dir
func UnpackTemplates(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to create template directory").
			Mark(ierr.ErrSystem)
	}

	return fs.WalkDir(embeddedTemplates, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := embeddedTemplates.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, filepath.Base(path)), content, 0o644)
	})
}

// Compile compiles a Typst document to PDF
func (c *compiler) Compile(ctx context.Context, opts CompileOpts) (string, error) {
	outputName := opts.OutputFile
	if outputName == "" {
		outputName = fmt.Sprintf("typst-%s.pdf", types.GenerateUUID())
	}
	outputFile := filepath.Join(c.outputDir, outputName)

	var fontDirs []string
	if c.fontDir != "" {
		fontDirs = append(fontDirs, c.fontDir)
	}
	fontDirs = append(fontDirs, opts.FontDirs...)

	args := []string{"compile", "--root", "/"}
	for _, dir := range fontDirs {
		args = append(args, "--font-path", dir)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.InputFile, outputFile)

	cmd := exec.CommandContext(ctx, c.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debugw("compiling typst document", "input", opts.InputFile, "output", outputFile)

	if err := cmd.Run(); err != nil {
		return "", ierr.WithError(err).
			WithMessage("typst compilation failed").
			WithHint("Failed to render the document").
			WithReportableDetails(map[string]any{
				"stderr": stderr.String(),
			}).
			Mark(ierr.ErrPdfRender)
	}

	return outputFile, nil
}

// CompileToBytes compiles a Typst document and returns the PDF content as bytes
func (c *compiler) CompileToBytes(ctx context.Context, opts CompileOpts) ([]byte, error) {
	pdfPath, err := c.Compile(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer c.CleanupGeneratedFiles(pdfPath)

	return os.ReadFile(pdfPath)
}

// CompileTemplate compiles a Typst template with the provided data.
// The data must be a JSON document; its path is handed to the template as
// sys.inputs.path:
//
//	#let data = json(sys.inputs.path)
func (c *compiler) CompileTemplate(
	ctx context.Context,
	templateName string,
	data []byte,
	opts ...CompileOptsBuilder,
) ([]byte, error) {
	templatePath := filepath.Join(c.templateDir, templateName)
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		return nil, ierr.WithError(err).
			WithMessagef("template not found: %s", templatePath).
			WithHint("template error").
			Mark(ierr.ErrPdfRender)
	}

	jsonFile, err := os.CreateTemp(c.outputDir, "typst-*.json")
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create temporary json file").
			WithHint("template error").
			Mark(ierr.ErrSystem)
	}
	defer c.CleanupGeneratedFiles(jsonFile.Name())

	_, err = jsonFile.Write(data)
	jsonFile.Close()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to write data to json file").
			WithHint("template error").
			Mark(ierr.ErrSystem)
	}

	compileOpts := CompileOpts{InputFile: templatePath}
	WithInput("path", jsonFile.Name())(&compileOpts)
	for _, opt := range opts {
		opt(&compileOpts)
	}

	return c.CompileToBytes(ctx, compileOpts)
}

// CleanupGeneratedFiles removes temporary files created during compilation
func (c *compiler) CleanupGeneratedFiles(files ...string) {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			c.logger.Warnw("failed to remove generated file", "file", file, "error", err)
		}
	}
}
