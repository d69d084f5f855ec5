package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

func javaProject(t *testing.T) string {
	t.Helper()
	dir := createProject(t)
	src := filepath.Join(dir, "src", "main", "java")
	writeFile(t, filepath.Join(src, "com", "acme", "model", "Order.java"), []byte("package com.acme.model;\n@jakarta.persistence.Entity\npublic class Order {}\n"))
	writeFile(t, filepath.Join(src, "com", "acme", "web", "Controller.java"), []byte("package com.acme.web;\npublic class Controller {}\n"))
	return dir
}

func TestModelGenCmd_ArgsValidation(t *testing.T) {
	cmd := newModelGenCmd()
	err := cmd.Args(cmd, []string{})
	require.Error(t, err)
	assert.Equal(t, jpagen.ExitUsageError, jpagen.ExitCodeForError(err))
}

func TestModelGen_Skip(t *testing.T) {
	dir := javaProject(t)

	_, stderr, err := executeCommand(t, "modelgen", dir, "--skip")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Skipping metamodel generation")
}

func TestModelGen_NoSources(t *testing.T) {
	dir := createProject(t)

	_, stderr, err := executeCommand(t, "modelgen", dir, "--javac", filepath.Join(t.TempDir(), "never-run"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "No files to process")
}

func TestModelGen_RunsCompiler(t *testing.T) {
	dir := javaProject(t)
	javac, argsFile := fakeTool(t, 0)

	_, stderr, err := executeCommand(t, "modelgen", dir,
		"--javac", javac,
		"--include", "com.acme.model",
		"--encoding", "UTF-8",
	)
	require.NoError(t, err)

	args := readArgs(t, argsFile)
	output := filepath.Join(dir, "target", "generated-sources", "apt")
	assert.Contains(t, args, "-proc:only")
	assert.Contains(t, args, jpagen.DefaultMetamodelProcessor)
	assert.Contains(t, args, "UTF-8")
	assert.Contains(t, args, output)
	assert.Equal(t, filepath.Join(dir, "src", "main", "java", "com", "acme", "model", "Order.java"), args[len(args)-1])
	assert.NotContains(t, args, filepath.Join(dir, "src", "main", "java", "com", "acme", "web", "Controller.java"))
	assert.DirExists(t, output)
	assert.Contains(t, stderr, "Processed 1 sources")
}

func TestModelGen_CompilerFailure(t *testing.T) {
	dir := javaProject(t)
	javac, _ := fakeTool(t, 1)

	_, _, err := executeCommand(t, "modelgen", dir, "--javac", javac)
	require.Error(t, err)
	assert.Equal(t, jpagen.ExitToolFailed, jpagen.ExitCodeForError(err))
}
