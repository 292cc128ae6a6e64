package maperr

import (
	"bytes"
	"errors"
	"fmt"
)

// Class represents the processing stage an Error originated from.
type Class int

const (
	// ClassLex is an error raised while lexing native configuration text
	ClassLex Class = iota
	// ClassExtraction is an error raised by an extraction function
	// during the mapping walk
	ClassExtraction
	// ClassValidation is an error raised by the schema authority while
	// validating an assembled document
	ClassValidation
)

func (c Class) String() string {
	switch c {
	case ClassLex:
		return "lex"
	case ClassExtraction:
		return "extraction"
	case ClassValidation:
		return "validation"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

func (c *Class) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "lex":
		*c = ClassLex
	case "extraction":
		*c = ClassExtraction
	case "validation":
		*c = ClassValidation
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Error represents a mapping error.
//
// Path, when set, is the schema path being processed when the error was
// raised. Key is the native key in effect at that path, used to locate
// the offending entry in the source configuration.
type Error struct {
	Class   Class  `json:"error-class"`
	Tag     string `json:"error-tag"`
	Path    string `json:"error-path,omitempty"`
	Key     string `json:"error-key,omitempty"`
	Message string `json:"error-message,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error tag:%s", e.Class, e.Tag)
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Key != "" {
		s += " key:" + e.Key
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// ErrAbsent is the sentinel returned by extraction functions when a
// value is legitimately missing from the native configuration. It is
// not a failure; the mapping engine omits the node and continues.
var ErrAbsent = errors.New("absent")

// IsAbsent reports whether err indicates a legitimately absent value.
func IsAbsent(err error) bool { return errors.Is(err, ErrAbsent) }

// IsError returns the *Error in err's chain, if any.
func IsError(err error) (*Error, bool) {
	var me *Error
	ok := errors.As(err, &me)
	return me, ok
}

func Lex(opts ...Option) *Error {
	e := &Error{Class: ClassLex, Tag: "malformed-indentation"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Extraction(path, key string, opts ...Option) *Error {
	e := &Error{Class: ClassExtraction, Tag: "extraction-failure", Path: path, Key: key}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func UnknownNode(path string, opts ...Option) *Error {
	e := &Error{Class: ClassValidation, Tag: "unknown-node", Path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func KindMismatch(path string, opts ...Option) *Error {
	e := &Error{Class: ClassValidation, Tag: "kind-mismatch", Path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MissingLeaf(path string, opts ...Option) *Error {
	e := &Error{Class: ClassValidation, Tag: "missing-leaf", Path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func BadValue(path string, opts ...Option) *Error {
	e := &Error{Class: ClassValidation, Tag: "bad-value", Path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MustViolation(path string, opts ...Option) *Error {
	e := &Error{Class: ClassValidation, Tag: "must-violation", Path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
