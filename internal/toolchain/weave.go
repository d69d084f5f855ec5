package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ethlo/jpagen/internal/classpath"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// WeaveRequest describes one StaticWeave run.
type WeaveRequest struct {
	JavaBin         string
	Classpath       []string
	PersistenceInfo string // Directory holding META-INF/persistence.xml
	Source          string
	Target          string
	LogLevel        string // Already validated with ParseLogLevel
}

// WeaveCommand returns the java invocation for req.
func WeaveCommand(req WeaveRequest) (string, []string) {
	cp := classpath.Join(req.Classpath)
	args := []string{
		"-cp", cp,
		jpagen.StaticWeaveMainClass,
		"-persistenceinfo", req.PersistenceInfo,
		"-classpath", cp,
		"-loglevel", req.LogLevel,
		req.Source,
		req.Target,
	}
	return req.JavaBin, args
}

// Weaver runs EclipseLink's static weaver.
type Weaver struct {
	runner     Runner
	fsProvider filesystem.FileSystemProvider
	logger     jpagen.Logger
}

// NewWeaver creates a Weaver.
// Panics if any argument is nil.
func NewWeaver(runner Runner, fsProvider filesystem.FileSystemProvider, logger jpagen.Logger) *Weaver {
	if runner == nil {
		panic("runner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Weaver{runner: runner, fsProvider: fsProvider, logger: logger}
}

// CheckSource fails with jpagen.ErrSourceMissing unless source is an
// existing directory.
func (w *Weaver) CheckSource(source string) error {
	info, err := w.fsProvider.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", jpagen.ErrSourceMissing, source)
		}
		return fmt.Errorf("cannot access weave source %s: %w", source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", jpagen.ErrSourceMissing, source)
	}
	return nil
}

// Weave weaves the classes of req.Source into req.Target.
// A missing source directory fails with jpagen.ErrSourceMissing.
func (w *Weaver) Weave(ctx context.Context, req WeaveRequest) error {
	if err := w.CheckSource(req.Source); err != nil {
		return err
	}

	w.logger.Info("Source classes dir: %s", req.Source)
	w.logger.Info("Target classes dir: %s", req.Target)

	name, args := WeaveCommand(req)
	w.logger.Verbose("Running %s %s", name, strings.Join(args, " "))

	out, err := w.runner.Run(ctx, "", name, args...)
	logOutput(w.logger, out)
	if err != nil {
		return fmt.Errorf("static weaving failed: %w", err)
	}
	return nil
}

func logOutput(logger jpagen.Logger, out []byte) {
	for _, line := range strings.Split(strings.TrimRight(string(out), "\r\n"), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			logger.Verbose("%s", line)
		}
	}
}
