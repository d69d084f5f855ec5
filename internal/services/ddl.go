package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethlo/jpagen/internal/descriptor"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// loggingLevelProperty is EclipseLink's log level setting.
const loggingLevelProperty = "eclipselink.logging.level"

// DDLService writes a schema creation script for the managed classes on a
// classpath. The persistence provider generates the SQL; the project's own
// persistence.xml is never modified.
type DDLService struct {
	scanner    jpagen.EntityScanner
	fsProvider filesystem.FileSystemProvider
	generator  *toolchain.SchemaGenerator
	logger     jpagen.Logger
}

// NewDDLService creates a DDLService.
// Panics on nil dependencies.
func NewDDLService(
	scanner jpagen.EntityScanner,
	fsProvider filesystem.FileSystemProvider,
	generator *toolchain.SchemaGenerator,
	logger jpagen.Logger,
) *DDLService {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &DDLService{scanner: scanner, fsProvider: fsProvider, generator: generator, logger: logger}
}

// Generate scans cfg.Classpath, declares the managed classes in a scratch
// unit below cfg.WorkDir and runs the provider. It returns the sorted
// managed class names.
func (s *DDLService) Generate(ctx context.Context, cfg jpagen.DDLConfig) ([]string, error) {
	if cfg.Skip {
		s.logger.Info("Skipping DDL generation")
		return nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ddl configuration: %w", err)
	}

	level, err := toolchain.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if len(cfg.BasePackages) > 0 {
		s.logger.Info("Using base packages %v", cfg.BasePackages)
	}
	classes, err := s.scanner.Scan(ctx, cfg.Classpath, cfg.BasePackages)
	if err != nil {
		return nil, fmt.Errorf("classpath scan failed: %w", err)
	}
	s.logger.Info("Entities found: %d", classes.Len())
	if classes.Len() == 0 {
		s.logger.Warn("No managed classes found on the classpath; the script will be empty")
	}

	scratch, err := s.scratchDescriptor(cfg, classes, level)
	if err != nil {
		return nil, err
	}
	rendered, err := descriptor.Render(scratch)
	if err != nil {
		return nil, err
	}

	err = s.generator.Generate(ctx, toolchain.SchemaRequest{
		JavaBin:              cfg.JavaBin,
		Classpath:            cfg.Classpath,
		WorkDir:              cfg.WorkDir,
		Descriptor:           rendered,
		UnitName:             scratch.Unit.Name,
		TargetFile:           cfg.TargetFile,
		DatabaseProductName:  cfg.DatabaseProductName,
		DatabaseMajorVersion: cfg.DatabaseMajorVersion,
		DatabaseMinorVersion: cfg.DatabaseMinorVersion,
	})
	if err != nil {
		return nil, err
	}
	return classes.Sorted(), nil
}

// scratchDescriptor builds the unit handed to the provider. It uses the
// namespace of the project's descriptor so the provider reads it like its
// own; a missing project descriptor means the default namespace.
func (s *DDLService) scratchDescriptor(cfg jpagen.DDLConfig, classes jpagen.ClassSet, level string) (*descriptor.Descriptor, error) {
	d := descriptor.Create(jpagen.SchemaUnitName)

	if cfg.PersistenceInfoLocation != "" {
		project, _, err := descriptor.Load(s.fsProvider, descriptor.Path(cfg.PersistenceInfoLocation))
		switch {
		case err == nil:
			d.Namespace = project.Namespace
			d.Version = project.Version
		case errors.Is(err, jpagen.ErrDescriptorNotFound):
			s.logger.Verbose("No project persistence.xml, using the %s namespace", d.Namespace)
		default:
			return nil, err
		}
	}

	exclude := true
	d.Unit.ExcludeUnlistedClasses = &exclude
	d.Unit.Classes = classes.Clone()
	d.Unit.Properties.Set(jpagen.WeavingProperty, "false")
	d.Unit.Properties.Set(loggingLevelProperty, level)
	return d, nil
}
