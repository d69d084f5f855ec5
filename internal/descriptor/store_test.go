package descriptor

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/pkg/jpagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	got := Path(filepath.Join("target", "classes"))
	assert.Equal(t, filepath.Join("target", "classes", "META-INF", "persistence.xml"), got)
}

func TestLoad_NotFound(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")

	_, _, err := Load(mfs, "/project/META-INF/persistence.xml")
	assert.ErrorIs(t, err, jpagen.ErrDescriptorNotFound)
	assert.Contains(t, err.Error(), "/project/META-INF/persistence.xml")
}

func TestLoad_ReturnsModelAndRawBytes(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/META-INF/persistence.xml", jcpDoc)

	d, raw, err := Load(mfs, "/project/META-INF/persistence.xml")
	require.NoError(t, err)
	assert.Equal(t, "legacy", d.Unit.Name)
	assert.Equal(t, jcpDoc, string(raw))
}

func TestLoad_ParseErrorPropagates(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/META-INF/persistence.xml", "<persistence>")

	_, _, err := Load(mfs, "/project/META-INF/persistence.xml")
	assert.ErrorIs(t, err, jpagen.ErrDescriptorParse)
}

func TestReadFile_DirectoryIsIOError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	require.NoError(t, mfs.MkdirAll("/project/META-INF/persistence.xml"))

	_, err := ReadFile(mfs, "/project/META-INF/persistence.xml")

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, jpagen.ErrDescriptorIO)
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	path := "/project/target/classes/META-INF/persistence.xml"

	d := Create("shop")
	d.Unit.Classes.Add("com.acme.Order")

	written, err := Save(mfs, path, d)
	require.NoError(t, err)

	stored, err := mfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, written, stored)

	reloaded, _, err := Load(mfs, path)
	require.NoError(t, err)
	assert.Equal(t, d, reloaded)
}

func TestWrite_TargetIsDirectory(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	require.NoError(t, mfs.MkdirAll("/project/out/persistence.xml"))

	err := Write(mfs, "/project/out/persistence.xml", []byte("x"))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
	assert.ErrorIs(t, err, jpagen.ErrDescriptorIO)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}
