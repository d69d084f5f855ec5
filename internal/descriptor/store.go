package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Path returns the descriptor location below a persistence info directory.
func Path(persistenceInfo string) string {
	return filepath.Join(persistenceInfo, filepath.FromSlash(jpagen.DescriptorRelativePath))
}

// ReadFile returns the raw descriptor bytes. A missing file yields an error
// matching jpagen.ErrDescriptorNotFound; other failures yield *IOError.
func ReadFile(fsys filesystem.FileSystemProvider, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", jpagen.ErrDescriptorNotFound, path)
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// Load reads and parses the descriptor at path.
func Load(fsys filesystem.FileSystemProvider, path string) (*Descriptor, []byte, error) {
	data, err := ReadFile(fsys, path)
	if err != nil {
		return nil, nil, err
	}

	d, err := Parse(data, path)
	if err != nil {
		return nil, nil, err
	}
	return d, data, nil
}

// Write stores data at path, creating missing parent directories.
func Write(fsys filesystem.WritableFileSystem, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Save renders d and writes it to path. It returns the rendered bytes.
func Save(fsys filesystem.WritableFileSystem, path string, d *Descriptor) ([]byte, error) {
	data, err := Render(d)
	if err != nil {
		return nil, err
	}
	if err := Write(fsys, path, data); err != nil {
		return nil, err
	}
	return data, nil
}
