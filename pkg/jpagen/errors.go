package jpagen

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := syncer.Sync(ctx, cfg)
//	if errors.Is(err, jpagen.ErrMalformedDescriptor) {
//	    // persistence.xml exists but has the wrong shape
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDescriptorNotFound indicates there is no persistence.xml at the expected path.
	ErrDescriptorNotFound = errors.New("persistence descriptor not found")

	// ErrMalformedDescriptor indicates well-formed XML without the expected
	// single persistence-unit shape.
	ErrMalformedDescriptor = errors.New("malformed persistence descriptor")

	// ErrDescriptorParse indicates the descriptor is not well-formed XML.
	ErrDescriptorParse = errors.New("persistence descriptor parse error")

	// ErrDescriptorIO indicates a filesystem failure reading or writing a descriptor.
	ErrDescriptorIO = errors.New("persistence descriptor I/O error")

	// ErrScanFailed indicates a classpath entry could not be scanned.
	ErrScanFailed = errors.New("classpath scan failed")

	// ErrToolFailed indicates an external tool exited unsuccessfully.
	ErrToolFailed = errors.New("external tool failed")

	// ErrSourceMissing indicates the weave source directory does not exist.
	ErrSourceMissing = errors.New("source directory does not exist")
)

// usageErrorPrefixes are the message prefixes cobra and pflag use for
// command-line misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMalformedDescriptor), errors.Is(err, ErrDescriptorParse):
		return ExitDescriptorError
	case errors.Is(err, ErrDescriptorIO), errors.Is(err, ErrDescriptorNotFound):
		return ExitIOError
	case errors.Is(err, ErrScanFailed):
		return ExitScanFailed
	case errors.Is(err, ErrToolFailed):
		return ExitToolFailed
	case errors.Is(err, ErrSourceMissing):
		return ExitSourceMissing
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
