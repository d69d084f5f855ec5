// Package classpath turns classpath settings into the ordered list of
// locations that scanning and the external tools work on.
package classpath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Resolver normalises classpath entries against a filesystem.
type Resolver struct {
	fsProvider filesystem.FileSystemProvider
	logger     jpagen.Logger
}

// NewResolver creates a resolver over the OS filesystem.
// Panics if logger is nil.
func NewResolver(logger jpagen.Logger) *Resolver {
	return NewResolverWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewResolverWithFS creates a resolver with a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewResolverWithFS(fsProvider filesystem.FileSystemProvider, logger jpagen.Logger) *Resolver {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Resolver{fsProvider: fsProvider, logger: logger}
}

// Split breaks a platform classpath string (":" separated on Unix, ";" on
// Windows) into entries. Empty entries are dropped.
func Split(list string) []string {
	var out []string
	for _, entry := range filepath.SplitList(list) {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// Join is the inverse of Split.
func Join(entries []string) string {
	return strings.Join(entries, string(os.PathListSeparator))
}

// Resolve makes entries absolute against baseDir, drops entries that do not
// exist, and removes duplicates. The first occurrence of an entry keeps its
// position. An entry ending in "*" stands for every .jar file directly in
// that directory, in name order, as with the java launcher. An empty baseDir
// means the working directory.
func (r *Resolver) Resolve(baseDir string, entries []string) ([]string, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))

	add := func(abs string) {
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		if _, err := r.fsProvider.Stat(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				r.logger.Verbose("Classpath entry %s does not exist, skipping", abs)
			} else {
				r.logger.Verbose("Classpath entry %s is not readable, skipping: %v", abs, err)
			}
			return
		}
		out = append(out, abs)
	}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if dir, ok := wildcardDir(entry); ok {
			abs, err := absolute(baseDir, dir)
			if err != nil {
				return nil, fmt.Errorf("cannot resolve classpath entry %s: %w", entry, err)
			}
			for _, jar := range r.jarsIn(abs) {
				add(jar)
			}
			continue
		}

		abs, err := absolute(baseDir, entry)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve classpath entry %s: %w", entry, err)
		}
		add(abs)
	}

	return out, nil
}

// wildcardDir returns the directory of a "dir/*" entry. A lone "*" is the
// base directory.
func wildcardDir(entry string) (string, bool) {
	if entry == "*" {
		return ".", true
	}
	for _, sep := range []string{"/*", string(filepath.Separator) + "*"} {
		if strings.HasSuffix(entry, sep) {
			return strings.TrimSuffix(entry, sep), true
		}
	}
	return "", false
}

func (r *Resolver) jarsIn(dir string) []string {
	infos, err := r.fsProvider.ReadDir(dir)
	if err != nil {
		r.logger.Verbose("Classpath wildcard directory %s is not readable, skipping: %v", dir, err)
		return nil
	}

	var jars []string
	for _, info := range infos {
		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), ".jar") {
			continue
		}
		jars = append(jars, filepath.Join(dir, info.Name()))
	}
	sort.Strings(jars)
	return jars
}

// ReadClasspathFile reads a classpath written by a build tool, for example
// the output of "mvn dependency:build-classpath -Dmdep.outputFile=cp.txt".
// Entries may be separated by the platform list separator or by newlines.
func (r *Resolver) ReadClasspathFile(path string) ([]string, error) {
	data, err := r.fsProvider.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classpath file %s: %w", path, err)
	}

	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		out = append(out, Split(strings.TrimRight(line, "\r"))...)
	}
	return out, nil
}

func absolute(baseDir, entry string) (string, error) {
	if filepath.IsAbs(entry) {
		return filepath.Clean(entry), nil
	}
	if baseDir != "" {
		return filepath.Abs(filepath.Join(baseDir, entry))
	}
	return filepath.Abs(entry)
}
