package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/ethlo/jpagen/internal/cli"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(jpagen.ExitPanic)
		}
	}()

	if os.Getenv("JPAGEN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(jpagen.ExitCodeForError(err))
	}
}
