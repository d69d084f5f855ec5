// Package logging provides concrete implementations of the jpagen.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// ConsoleLogger colours its level prefixes when stderr is a terminal.
// Colour is disabled when NO_COLOR or CI is set.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
