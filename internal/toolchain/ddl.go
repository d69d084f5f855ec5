package toolchain

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ethlo/jpagen/internal/classpath"
	"github.com/ethlo/jpagen/internal/descriptor"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// LauncherFileName is the Java source run with the JDK single-file launcher
// to call Persistence.generateSchema.
const LauncherFileName = "GenerateSchema.java"

//go:embed launcher/GenerateSchema.java
var launcherSource []byte

// Standard schema generation properties without their jakarta./javax.
// prefix. The launcher adds the prefix of the API it finds.
const (
	propDatabaseAction       = "persistence.schema-generation.database.action"
	propScriptsAction        = "persistence.schema-generation.scripts.action"
	propCreateSource         = "persistence.schema-generation.create-source"
	propScriptsCreateTarget  = "persistence.schema-generation.scripts.create-target"
	propDatabaseProductName  = "persistence.database-product-name"
	propDatabaseMajorVersion = "persistence.database-major-version"
	propDatabaseMinorVersion = "persistence.database-minor-version"
)

// SchemaRequest describes one schema generation run.
type SchemaRequest struct {
	JavaBin   string
	Classpath []string

	// WorkDir receives META-INF/persistence.xml and the launcher source. It
	// is put first on the class path.
	WorkDir string

	// Descriptor is the rendered scratch persistence.xml declaring UnitName.
	Descriptor []byte
	UnitName   string

	TargetFile           string
	DatabaseProductName  string
	DatabaseMajorVersion string
	DatabaseMinorVersion string
}

// SchemaProperties returns the key=value arguments handed to the launcher.
// Only a creation script is produced; the database is never touched.
func SchemaProperties(req SchemaRequest) []string {
	props := []string{
		propDatabaseAction + "=none",
		propScriptsAction + "=create",
		propCreateSource + "=metadata",
		propScriptsCreateTarget + "=" + req.TargetFile,
		propDatabaseProductName + "=" + req.DatabaseProductName,
	}
	if req.DatabaseMajorVersion != "" {
		props = append(props, propDatabaseMajorVersion+"="+req.DatabaseMajorVersion)
	}
	if req.DatabaseMinorVersion != "" {
		props = append(props, propDatabaseMinorVersion+"="+req.DatabaseMinorVersion)
	}
	return props
}

// SchemaCommand returns the java invocation for req.
func SchemaCommand(req SchemaRequest) (string, []string) {
	cp := append([]string{req.WorkDir}, req.Classpath...)
	args := []string{
		"-cp", classpath.Join(cp),
		filepath.Join(req.WorkDir, LauncherFileName),
		req.UnitName,
	}
	args = append(args, SchemaProperties(req)...)
	return req.JavaBin, args
}

// SchemaGenerator has the persistence provider write a DDL script.
type SchemaGenerator struct {
	runner     Runner
	fsProvider filesystem.WritableFileSystem
	logger     jpagen.Logger
}

// NewSchemaGenerator creates a SchemaGenerator.
// Panics if any argument is nil.
func NewSchemaGenerator(runner Runner, fsProvider filesystem.WritableFileSystem, logger jpagen.Logger) *SchemaGenerator {
	if runner == nil {
		panic("runner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SchemaGenerator{runner: runner, fsProvider: fsProvider, logger: logger}
}

// Generate prepares req.WorkDir and runs the launcher.
func (g *SchemaGenerator) Generate(ctx context.Context, req SchemaRequest) error {
	if err := descriptor.Write(g.fsProvider, descriptor.Path(req.WorkDir), req.Descriptor); err != nil {
		return err
	}
	launcher := filepath.Join(req.WorkDir, LauncherFileName)
	if err := g.fsProvider.WriteFile(launcher, launcherSource, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", launcher, err)
	}

	targetDir := filepath.Dir(req.TargetFile)
	if err := g.fsProvider.MkdirAll(targetDir); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", targetDir, err)
	}

	g.logger.Info("DDL target file: %s", req.TargetFile)
	name, args := SchemaCommand(req)
	g.logger.Verbose("Running %s %s", name, strings.Join(args, " "))

	out, err := g.runner.Run(ctx, "", name, args...)
	logOutput(g.logger, out)
	if err != nil {
		return fmt.Errorf("schema generation failed: %w", err)
	}

	if _, err := g.fsProvider.Stat(req.TargetFile); errors.Is(err, fs.ErrNotExist) {
		g.logger.Warn("The provider finished without writing %s", req.TargetFile)
	}
	return nil
}
