package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports a destination that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Sink accepts a fully rendered document.
type Sink interface {
	Put(data []byte) error
}

// FileSink writes documents to a file on disk.
type FileSink struct {
	Path string
}

// NewFileSink returns a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Put replaces the file contents atomically: the data goes to a temporary
// file in the same directory which is then renamed over the destination.
// Failures are returned as *WriteError.
func (s *FileSink) Put(data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return &WriteError{Path: s.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return &WriteError{Path: s.Path, Err: err}
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		os.Remove(tempPath)
		return &WriteError{Path: s.Path, Err: err}
	}

	// If the process dies here the destination still holds the previous document.
	if err := os.Rename(tempPath, s.Path); err != nil {
		os.Remove(tempPath)
		return &WriteError{Path: s.Path, Err: err}
	}

	return nil
}
