package toolchain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Level names understood by java.util.logging.Level.parse.
var logLevels = []string{"OFF", "SEVERE", "WARNING", "INFO", "CONFIG", "FINE", "FINER", "FINEST", "ALL"}

// ParseLogLevel validates a java.util.logging level and returns it in the
// form passed to the tools: upper-cased names, or an integer value.
// An empty level means jpagen.DefaultLogLevel.
func ParseLogLevel(level string) (string, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return jpagen.DefaultLogLevel, nil
	}

	upper := strings.ToUpper(level)
	for _, name := range logLevels {
		if upper == name {
			return name, nil
		}
	}

	if _, err := strconv.Atoi(level); err == nil {
		return level, nil
	}

	return "", fmt.Errorf("%w: unknown log level %q (expected one of %s, or an integer)",
		jpagen.ErrInvalidConfig, level, strings.Join(logLevels, ", "))
}
