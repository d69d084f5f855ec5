package services

import (
	"context"
	"fmt"

	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// WeaveService runs static weaving, optionally syncing persistence.xml first
// so the weaver sees every managed class.
type WeaveService struct {
	sync   *SyncService
	weaver *toolchain.Weaver
	logger jpagen.Logger
}

// NewWeaveService creates a WeaveService.
// Panics on nil dependencies.
func NewWeaveService(sync *SyncService, weaver *toolchain.Weaver, logger jpagen.Logger) *WeaveService {
	if sync == nil {
		panic("sync cannot be nil")
	}
	if weaver == nil {
		panic("weaver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &WeaveService{sync: sync, weaver: weaver, logger: logger}
}

// Weave checks the source directory, runs the descriptor sync when
// cfg.UpdateDescriptor is set, then the static weaver. The sync result is nil when the sync was not run.
func (s *WeaveService) Weave(ctx context.Context, cfg jpagen.WeaveConfig) (*jpagen.SyncResult, error) {
	if cfg.Skip {
		s.logger.Info("Skipping static weaving")
		return nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weave configuration: %w", err)
	}

	level, err := toolchain.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// The sync creates the persistence info directory, which is usually the
	// source directory itself.
	if err := s.weaver.CheckSource(cfg.Source); err != nil {
		return nil, err
	}

	var result *jpagen.SyncResult
	if cfg.UpdateDescriptor {
		syncCfg := cfg.Sync
		syncCfg.DryRun = false
		if result, err = s.sync.Sync(ctx, syncCfg); err != nil {
			return nil, err
		}
	}

	err = s.weaver.Weave(ctx, toolchain.WeaveRequest{
		JavaBin:         cfg.JavaBin,
		Classpath:       cfg.Sync.Classpath,
		PersistenceInfo: cfg.Sync.PersistenceInfoLocation,
		Source:          cfg.Source,
		Target:          cfg.Target,
		LogLevel:        level,
	})
	return result, err
}
