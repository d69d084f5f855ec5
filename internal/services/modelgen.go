package services

import (
	"context"
	"fmt"

	"github.com/ethlo/jpagen/internal/toolchain"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// ModelGenService generates the JPA metamodel.
type ModelGenService struct {
	generator *toolchain.ModelGenerator
	logger    jpagen.Logger
}

// NewModelGenService creates a ModelGenService.
// Panics on nil dependencies.
func NewModelGenService(generator *toolchain.ModelGenerator, logger jpagen.Logger) *ModelGenService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ModelGenService{generator: generator, logger: logger}
}

// Generate runs the metamodel processor and returns the processed sources.
func (s *ModelGenService) Generate(ctx context.Context, cfg jpagen.ModelGenConfig) ([]string, error) {
	if cfg.Skip {
		s.logger.Info("Skipping metamodel generation")
		return nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid modelgen configuration: %w", err)
	}

	return s.generator.Generate(ctx, cfg)
}
