package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// ParseError reports input that is not well-formed XML.
type ParseError struct {
	Path    string // Descriptor path, may be empty
	Line    int    // Line number (0 if unknown)
	Message string
	Err     error // Underlying decoder error, if any
}

func (e *ParseError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}
	return fmt.Sprintf("cannot parse %s: %s", location, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match any ParseError with jpagen.ErrDescriptorParse.
func (e *ParseError) Is(target error) bool { return target == jpagen.ErrDescriptorParse }

// MalformedDescriptorError reports well-formed XML that does not have the
// shape of a single-unit persistence descriptor.
type MalformedDescriptorError struct {
	Path    string
	Message string
	Hint    string // Actionable suggestion for fixing
}

func (e *MalformedDescriptorError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}
	msg := fmt.Sprintf("malformed persistence descriptor %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Is lets callers match any MalformedDescriptorError with jpagen.ErrMalformedDescriptor.
func (e *MalformedDescriptorError) Is(target error) bool {
	return target == jpagen.ErrMalformedDescriptor
}

// IOError reports a filesystem failure at the descriptor boundary.
type IOError struct {
	Op   string // "read", "write" or "mkdir"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets callers match any IOError with jpagen.ErrDescriptorIO.
func (e *IOError) Is(target error) bool { return target == jpagen.ErrDescriptorIO }

// wrapXMLError converts decoder errors to ParseError with line numbers.
func wrapXMLError(err error, path string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Path:    path,
			Line:    syntaxErr.Line,
			Message: syntaxErr.Msg,
			Err:     err,
		}
	}

	return &ParseError{Path: path, Message: err.Error(), Err: err}
}

const shapeHint = "A descriptor must contain one <persistence> root element in the\n" +
	"Jakarta (" + jakartaURI + ") or\n" +
	"JCP (" + jcpURI + ") namespace,\n" +
	"holding exactly one <persistence-unit name=\"...\"> element."
