package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethlo/jpagen/internal/classpath"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// CompileCommand returns the javac invocation that runs the metamodel
// processor over files.
func CompileCommand(cfg jpagen.ModelGenConfig, files []string) (string, []string) {
	args := []string{
		"-cp", classpath.Join(cfg.Classpath),
		"-proc:only",
		"-processor", cfg.Processor,
	}
	if cfg.NoWarn {
		args = append(args, "-nowarn")
	}
	if cfg.Verbose {
		args = append(args, "-verbose")
	}
	if cfg.Encoding != "" {
		args = append(args, "-encoding", cfg.Encoding)
	}
	args = append(args, "-d", cfg.OutputDir, "-sourcepath", cfg.SourceDir)
	args = append(args, files...)

	return cfg.JavacBin, args
}

// ModelGenerator generates JPA metamodel sources with javac.
type ModelGenerator struct {
	runner     Runner
	fsProvider filesystem.WritableFileSystem
	logger     jpagen.Logger
}

// NewModelGenerator creates a ModelGenerator.
// Panics if any argument is nil.
func NewModelGenerator(runner Runner, fsProvider filesystem.WritableFileSystem, logger jpagen.Logger) *ModelGenerator {
	if runner == nil {
		panic("runner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ModelGenerator{runner: runner, fsProvider: fsProvider, logger: logger}
}

// Generate runs the processor over the selected sources and returns the
// files it processed. No sources is not an error: nothing is run.
func (g *ModelGenerator) Generate(ctx context.Context, cfg jpagen.ModelGenConfig) ([]string, error) {
	files, err := FindSources(g.fsProvider, cfg.SourceDir, cfg.Includes)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		g.logger.Info("No files to process")
		return nil, nil
	}

	g.logger.Info("Found %d source files for potential processing", len(files))
	g.logger.Verbose("Source files: %v", files)
	g.logger.Verbose("Classpath: %s", classpath.Join(cfg.Classpath))
	g.logger.Info("Output directory: %s", cfg.OutputDir)

	if err := g.fsProvider.MkdirAll(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}

	name, args := CompileCommand(cfg, files)
	g.logger.Verbose("Running %s %s", name, strings.Join(args, " "))

	out, err := g.runner.Run(ctx, "", name, args...)
	logOutput(g.logger, out)
	if err != nil {
		return nil, fmt.Errorf("metamodel processing failed: %w", err)
	}
	return files, nil
}
