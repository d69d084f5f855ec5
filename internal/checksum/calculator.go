package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator is an interface for computing descriptor checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Drop the XML declaration and comments
//  2. Drop whitespace between tags
//  3. Collapse remaining whitespace runs to single spaces
//
// Case is preserved because class names are case-sensitive.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalize applies the normalization rules to content.
func (c SHA256) normalize(content string) string {
	cleaned := c.removeMarkup(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	pendingSpace := false
	var last rune
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			// whitespace adjacent to a tag boundary carries no content
			if r != '<' && last != '>' && last != 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		b.WriteRune(r)
		last = r
	}

	return b.String()
}

type markupState int

const (
	msNormal markupState = iota
	msComment
	msDeclaration
)

// removeMarkup removes XML comments and processing instructions.
func (c SHA256) removeMarkup(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := msNormal
	i := 0

	for i < len(content) {
		switch state {
		case msNormal:
			if strings.HasPrefix(content[i:], "<!--") {
				state = msComment
				i += 4
			} else if strings.HasPrefix(content[i:], "<?") {
				state = msDeclaration
				i += 2
			} else {
				b.WriteByte(content[i])
				i++
			}

		case msComment:
			if strings.HasPrefix(content[i:], "-->") {
				state = msNormal
				b.WriteByte(' ')
				i += 3
			} else {
				i++
			}

		case msDeclaration:
			if strings.HasPrefix(content[i:], "?>") {
				state = msNormal
				b.WriteByte(' ')
				i += 2
			} else {
				i++
			}
		}
	}

	return b.String()
}
