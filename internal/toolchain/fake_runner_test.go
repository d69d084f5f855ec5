package toolchain

import (
	"context"
	"sync"
)

type recordedCall struct {
	Dir  string
	Name string
	Args []string
}

// fakeRunner records calls and replays a canned result.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	output []byte
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{Dir: dir, Name: name, Args: append([]string(nil), args...)})
	return f.output, f.err
}

var _ Runner = (*fakeRunner)(nil)
