package jpagen

import "context"

// EntityScanner discovers managed classes (entities, mapped superclasses,
// embeddables and converters) on a classpath.
// Implementations must be safe for concurrent use by multiple goroutines.
type EntityScanner interface {
	// Scan returns the fully-qualified names of all managed classes found in
	// the given classpath locations. When packages is non-empty, only classes
	// in those packages (or their sub-packages) are returned.
	Scan(ctx context.Context, classpath []string, packages []string) (ClassSet, error)
}
