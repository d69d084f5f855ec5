// Package checksum provides descriptor content hashing with normalization support.
//
// Two checksums are offered:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing the XML declaration, comments
//     and insignificant whitespace (detects formatting-only differences)
//
// The descriptor sync uses the raw checksum to skip rewriting an unchanged
// persistence.xml, which keeps file timestamps stable for incremental builds,
// and the normalized checksum to report when a rewrite only reformats.
//
// # Example Usage
//
//	calculator := checksum.New()
//	if calculator.CalculateRaw(existing) == calculator.CalculateRaw(rendered) {
//	    // nothing to write
//	}
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
