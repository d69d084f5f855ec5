package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// allJavaFiles matches every source file below the source root, including
// files directly inside it.
const allJavaFiles = "**.java"

// FindSources lists the .java files below sourceDir that metamodel
// generation should process, sorted. Each include names a package whose
// own sources are selected, without its sub-packages. A missing source
// directory yields no files.
func FindSources(fsProvider filesystem.FileSystemProvider, sourceDir string, includes []string) ([]string, error) {
	patterns, err := includePatterns(includes)
	if err != nil {
		return nil, err
	}

	dir, err := fsProvider.Open(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}

	var files []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}

		rel := filepath.ToSlash(file.RelativePath())
		for _, p := range patterns {
			if p.Match(rel) {
				files = append(files, file.Path())
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func includePatterns(includes []string) ([]glob.Glob, error) {
	var sources []string
	for _, inc := range includes {
		inc = strings.Trim(strings.TrimSpace(inc), ".")
		if inc == "" {
			continue
		}
		sources = append(sources, strings.ReplaceAll(inc, ".", "/")+"/*.java")
	}
	if len(sources) == 0 {
		sources = []string{allJavaFiles}
	}

	patterns := make([]glob.Glob, 0, len(sources))
	for _, src := range sources {
		g, err := glob.Compile(src, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid include %q: %w", jpagen.ErrInvalidConfig, src, err)
		}
		patterns = append(patterns, g)
	}
	return patterns, nil
}
