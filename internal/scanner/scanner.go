package scanner

import (
	"errors"
	"fmt"
)

// Scanner returns the dependency specifiers declared in src, in order of first
// occurrence. A specifier repeated within one source is reported once.
type Scanner interface {
	Scan(src string) ([]string, error)
}

// Kind names a Scanner implementation in configuration.
type Kind string

const (
	KindLexical Kind = "lexical"
	KindPattern Kind = "pattern"
)

// callee is the name of the import function the scanners look for.
const callee = "require"

// ErrUnsupported is matched by every error describing a require call whose
// specifier cannot be determined statically.
var ErrUnsupported = errors.New("unsupported dependency declaration")

// SyntaxError locates an unsupported require call in the scanned source.
type SyntaxError struct {
	Line   int
	Column int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrUnsupported
}

// New returns the Scanner registered under kind.
func New(kind Kind) (Scanner, error) {
	switch kind {
	case KindLexical, "":
		return NewLexical(), nil
	case KindPattern:
		return NewPattern(), nil
	default:
		return nil, fmt.Errorf("unknown scanner %q: must be %q or %q", kind, KindLexical, KindPattern)
	}
}

// appendUnique appends spec unless it was already collected.
func appendUnique(specs []string, seen map[string]struct{}, spec string) []string {
	if _, ok := seen[spec]; ok {
		return specs
	}
	seen[spec] = struct{}{}
	return append(specs, spec)
}
