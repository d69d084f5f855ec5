package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

type mockScanner struct {
	classes  jpagen.ClassSet
	err      error
	packages []string
	calls    int
}

func (m *mockScanner) Scan(_ context.Context, _ []string, packages []string) (jpagen.ClassSet, error) {
	m.calls++
	m.packages = packages
	if m.err != nil {
		return nil, m.err
	}
	return m.classes.Clone(), nil
}

type mockRunner struct {
	calls [][]string
	err   error
}

func (m *mockRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return nil, m.err
}

// recordingLogger keeps warnings and infos for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {}
