// Package fsutil is the file system boundary of the bundler. The build pipeline
// only ever needs to read a source file as text and to write the finished
// artifact, so both concerns are exposed as single-method interfaces.
package fsutil

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrRead marks a source file that is missing or unreadable.
	ErrRead = errors.New("read failure")
	// ErrWrite marks an output destination that could not be written.
	ErrWrite = errors.New("write failure")
)

// Reader returns the text content of the file at path.
type Reader interface {
	ReadFile(path string) (string, error)
}

// Writer replaces the file at path with text.
type Writer interface {
	WriteFile(path string, text string) error
}

// ReadWriter is the full collaborator handed to the application.
type ReadWriter interface {
	Reader
	Writer
}

// PathError records a failed file operation. It matches ErrRead or ErrWrite
// through errors.Is depending on Op.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	kind := ErrRead
	if e.Op == "write" {
		kind = ErrWrite
	}
	return []error{kind, e.Err}
}

// OS implements ReadWriter on the local file system.
type OS struct{}

func (OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &PathError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteFile does not create missing parent directories; an absent destination
// directory is reported as a write failure.
func (OS) WriteFile(path string, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}
