package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethlo/jpagen/internal/checksum"
	"github.com/ethlo/jpagen/internal/descriptor"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/reconcile"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// SyncService brings persistence.xml in line with the managed classes on a
// classpath.
// Thread-Safety: NOT safe for concurrent Sync() calls against the same
// persistence info location.
type SyncService struct {
	scanner    jpagen.EntityScanner
	fsProvider filesystem.WritableFileSystem
	calculator checksum.Calculator
	logger     jpagen.Logger
}

// NewSyncService creates a SyncService with all dependencies injected.
// Panics on nil dependencies.
func NewSyncService(
	scanner jpagen.EntityScanner,
	fsProvider filesystem.WritableFileSystem,
	calculator checksum.Calculator,
	logger jpagen.Logger,
) *SyncService {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SyncService{
		scanner:    scanner,
		fsProvider: fsProvider,
		calculator: calculator,
		logger:     logger,
	}
}

// Sync scans cfg.Classpath, reconciles the descriptor below
// cfg.PersistenceInfoLocation and writes it back unless nothing changed or
// cfg.DryRun is set. Descriptor errors abort before anything is written.
func (s *SyncService) Sync(ctx context.Context, cfg jpagen.SyncConfig) (*jpagen.SyncResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sync configuration: %w", err)
	}

	path := descriptor.Path(cfg.PersistenceInfoLocation)
	s.logger.Info("persistence.xml location: %s", path)

	discovered, err := s.scanner.Scan(ctx, cfg.Classpath, cfg.BasePackages)
	if err != nil {
		return nil, fmt.Errorf("classpath scan failed: %w", err)
	}
	s.logger.Verbose("Found %d managed classes on the classpath", discovered.Len())

	existing, raw, err := descriptor.Load(s.fsProvider, path)
	if err != nil && !errors.Is(err, jpagen.ErrDescriptorNotFound) {
		return nil, err
	}

	decision := reconcile.Reconcile(existing, discovered, reconcile.Options{
		UnitName:         cfg.UnitName,
		AppendDiscovered: cfg.AddClasses,
	})
	if decision.Created {
		s.logger.Info("Creating %s for persistence unit %q", path, cfg.UnitName)
	}

	if missing := decision.Diagnostics(); len(missing) > 0 {
		s.logger.Warn("The following classes were not defined in %s even though they are available on the class path: [%s]",
			path, strings.Join(missing, ", "))
	}

	added := reconcile.ApplyAppend(decision.Descriptor, decision.ToAppend)
	for _, name := range added {
		s.logger.Verbose("Adding class %s", name)
	}

	rendered, err := descriptor.Render(decision.Descriptor)
	if err != nil {
		return nil, err
	}

	result := &jpagen.SyncResult{
		DescriptorPath: path,
		Discovered:     discovered.Len(),
		Created:        decision.Created,
		Undefined:      decision.Undefined,
		Added:          added,
		Rendered:       rendered,
	}

	if cfg.DryRun {
		s.logger.Verbose("Dry run: %s not written", path)
		return result, nil
	}

	if raw != nil {
		if s.calculator.CalculateRaw(raw) == s.calculator.CalculateRaw(rendered) {
			s.logger.Verbose("%s is up to date", path)
			return result, nil
		}
		if s.calculator.CalculateNormalized(raw) == s.calculator.CalculateNormalized(rendered) {
			s.logger.Verbose("%s differs only in formatting, rewriting in canonical form", path)
		}
	}

	if err := descriptor.Write(s.fsProvider, path, rendered); err != nil {
		return nil, err
	}
	result.Written = true

	if len(added) > 0 {
		s.logger.Info("Added %d classes to %s", len(added), path)
	}
	return result, nil
}
