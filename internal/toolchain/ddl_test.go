package toolchain

import (
	"context"
	"os"
	"testing"

	"github.com/ethlo/jpagen/internal/files/filesystem"
	"github.com/ethlo/jpagen/internal/logging"
	"github.com/ethlo/jpagen/pkg/jpagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaRequest() SchemaRequest {
	return SchemaRequest{
		JavaBin:             "java",
		Classpath:           []string{"/p/classes", "/repo/eclipselink.jar"},
		WorkDir:             "/p/ddl-work",
		Descriptor:          []byte("<persistence/>"),
		UnitName:            jpagen.SchemaUnitName,
		TargetFile:          "/p/out/sql/ddl.sql",
		DatabaseProductName: "PostgreSQL",
	}
}

func TestSchemaCommand(t *testing.T) {
	sep := string(os.PathListSeparator)
	req := schemaRequest()
	req.DatabaseMajorVersion = "16"

	name, args := SchemaCommand(req)

	assert.Equal(t, "java", name)
	assert.Equal(t, []string{
		"-cp", "/p/ddl-work" + sep + "/p/classes" + sep + "/repo/eclipselink.jar",
		"/p/ddl-work/GenerateSchema.java",
		"jpagen-ddl",
		"persistence.schema-generation.database.action=none",
		"persistence.schema-generation.scripts.action=create",
		"persistence.schema-generation.create-source=metadata",
		"persistence.schema-generation.scripts.create-target=/p/out/sql/ddl.sql",
		"persistence.database-product-name=PostgreSQL",
		"persistence.database-major-version=16",
	}, args)
}

func TestSchemaCommand_DoesNotModifyClasspath(t *testing.T) {
	req := schemaRequest()
	req.Classpath = make([]string, 1, 4)
	req.Classpath[0] = "/p/classes"

	SchemaCommand(req)
	assert.Equal(t, []string{"/p/classes"}, req.Classpath)
}

func TestSchemaGenerator_Generate(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	runner := &fakeRunner{output: []byte("[EL Info]: connection: generating schema\n")}
	g := NewSchemaGenerator(runner, fs, logging.NewNullLogger())

	err := g.Generate(context.Background(), schemaRequest())
	require.NoError(t, err)

	scratch, err := fs.ReadFile("/p/ddl-work/META-INF/persistence.xml")
	require.NoError(t, err)
	assert.Equal(t, "<persistence/>", string(scratch))

	launcher, err := fs.ReadFile("/p/ddl-work/GenerateSchema.java")
	require.NoError(t, err)
	assert.Contains(t, string(launcher), "generateSchema")

	info, err := fs.Stat("/p/out/sql")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "java", runner.calls[0].Name)
	assert.Contains(t, runner.calls[0].Args, "jpagen-ddl")
}

func TestSchemaGenerator_ToolFailure(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	runner := &fakeRunner{err: &ToolError{Tool: "java", ExitCode: 1, Output: "PersistenceException"}}
	g := NewSchemaGenerator(runner, fs, logging.NewNullLogger())

	err := g.Generate(context.Background(), schemaRequest())
	assert.ErrorIs(t, err, jpagen.ErrToolFailed)
	assert.Contains(t, err.Error(), "schema generation failed")
}

func TestNewSchemaGenerator_NilArgs(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	logger := logging.NewNullLogger()

	assert.Panics(t, func() { NewSchemaGenerator(nil, fs, logger) })
	assert.Panics(t, func() { NewSchemaGenerator(&fakeRunner{}, nil, logger) })
	assert.Panics(t, func() { NewSchemaGenerator(&fakeRunner{}, fs, nil) })
}
