package scanner

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/ethlo/jpagen/internal/classfile"
	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Scanner finds managed classes in class directories and archives.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider and logger are also thread-safe.
type Scanner struct {
	fsProvider  filesystem.FileSystemProvider
	logger      jpagen.Logger
	annotations []string
	workers     int
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if logger is nil.
func NewScanner(logger jpagen.Logger) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider or logger is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, logger jpagen.Logger) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		fsProvider:  fsProvider,
		logger:      logger,
		annotations: jpagen.ManagedAnnotations,
		workers:     runtime.GOMAXPROCS(0),
	}
}

// classSource is one .class file waiting to be decoded.
type classSource struct {
	location string // For error messages: entry path or archive!entry
	read     func() ([]byte, error)
}

// Scan implements jpagen.EntityScanner.
func (s *Scanner) Scan(ctx context.Context, classpath []string, packages []string) (jpagen.ClassSet, error) {
	filter, err := compileFilter(packages)
	if err != nil {
		return nil, err
	}

	var sources []classSource
	for _, entry := range classpath {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := s.collect(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", jpagen.ErrScanFailed, entry, err)
		}
		sources = append(sources, found...)
	}

	result := jpagen.NewClassSet()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := src.read()
			if err != nil {
				return fmt.Errorf("%w: cannot read %s: %w", jpagen.ErrScanFailed, src.location, err)
			}

			info, err := classfile.Parse(data)
			if err != nil {
				s.logger.Verbose("Skipping unreadable class file %s: %v", src.location, err)
				return nil
			}

			if !filter.matches(info.Name) || !info.HasAnyAnnotation(s.annotations...) {
				return nil
			}
			if info.IsInterface() {
				s.logger.Verbose("Skipping interface %s: managed classes must be concrete or abstract classes", info.Name)
				return nil
			}

			mu.Lock()
			result.Add(info.Name)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Verbose("Scanned %d class files in %d classpath entries, found %d managed classes",
		len(sources), len(classpath), result.Len())
	return result, nil
}

// collect lists the class files of a single classpath entry.
func (s *Scanner) collect(entry string) ([]classSource, error) {
	info, err := s.fsProvider.Stat(entry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Verbose("Skipping missing classpath entry %s", entry)
			return nil, nil
		}
		return nil, err
	}

	if info.IsDir() {
		return s.collectDirectory(entry)
	}

	switch strings.ToLower(path.Ext(entry)) {
	case ".jar", ".zip", ".war":
		return s.collectArchive(entry)
	default:
		s.logger.Verbose("Skipping classpath entry %s: not a directory or archive", entry)
		return nil, nil
	}
}

func (s *Scanner) collectDirectory(root string) ([]classSource, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var sources []classSource
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() || !isCandidate(file.RelativePath()) {
			return nil
		}

		sources = append(sources, classSource{
			location: file.Path(),
			read:     file.ReadContent,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sources, nil
}

func (s *Scanner) collectArchive(archive string) ([]classSource, error) {
	data, err := s.fsProvider.ReadFile(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var sources []classSource
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isCandidate(f.Name) {
			continue
		}

		sources = append(sources, classSource{
			location: archive + "!" + f.Name,
			read: func() ([]byte, error) {
				rc, err := f.Open()
				if err != nil {
					return nil, err
				}
				defer rc.Close()
				return io.ReadAll(rc)
			},
		})
	}

	return sources, nil
}

// isCandidate reports whether an entry path names a class that could be
// managed. Module and package descriptors never are.
func isCandidate(entryPath string) bool {
	name := path.Base(strings.ReplaceAll(entryPath, "\\", "/"))
	if !strings.HasSuffix(name, ".class") {
		return false
	}
	return name != "module-info.class" && name != "package-info.class"
}

type packageFilter struct {
	globs []glob.Glob
}

func compileFilter(packages []string) (*packageFilter, error) {
	f := &packageFilter{}
	for _, pkg := range packages {
		pkg = strings.Trim(strings.TrimSpace(pkg), ".")
		if pkg == "" {
			continue
		}

		g, err := glob.Compile(pkg+".**", '.')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid package filter %q: %w", jpagen.ErrInvalidConfig, pkg, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

func (f *packageFilter) matches(className string) bool {
	if len(f.globs) == 0 {
		return true
	}
	for _, g := range f.globs {
		if g.Match(className) {
			return true
		}
	}
	return false
}

var _ jpagen.EntityScanner = (*Scanner)(nil)
