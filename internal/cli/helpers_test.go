package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/ethlo/jpagen/internal/classfile/classfiletest"
	"github.com/ethlo/jpagen/internal/config"
)

// executeCommand runs a fresh command tree with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// clearEnv hides JPAGEN_* variables of the surrounding environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.EnvUnitName, config.EnvClasspath, config.EnvLogLevel, config.EnvJava, config.EnvJavac} {
		t.Setenv(name, "")
	}
}

// createProject lays out a Maven-style project with the given compiled
// classes in target/classes.
func createProject(t *testing.T, classes ...classfiletest.Class) string {
	t.Helper()
	clearEnv(t)

	dir := t.TempDir()
	classesDir := filepath.Join(dir, "target", "classes")
	if err := os.MkdirAll(classesDir, 0755); err != nil {
		t.Fatalf("Failed to create classes dir: %v", err)
	}
	for _, c := range classes {
		writeClass(t, classesDir, c)
	}
	return dir
}

func writeClass(t *testing.T, root string, c classfiletest.Class) {
	t.Helper()
	rel := strings.ReplaceAll(c.Name, ".", "/") + ".class"
	writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), c.Bytes())
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func descriptorPath(projectDir string) string {
	return filepath.Join(projectDir, "target", "classes", "META-INF", "persistence.xml")
}

func entity(name string) classfiletest.Class {
	return classfiletest.Class{Name: name, Annotations: []string{"jakarta.persistence.Entity"}}
}

// fakeTool writes a shell script that records its arguments, one per line,
// to args.txt next to it and exits with code.
func fakeTool(t *testing.T, code int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "tool")
	argsFile := filepath.Join(dir, "args.txt")
	content := "#!/bin/sh\nprintf '%s\\n' \"$@\" > \"" + argsFile + "\"\necho tool output\nexit " + strconv.Itoa(code) + "\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return script, argsFile
}

func readArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("tool was not run: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
