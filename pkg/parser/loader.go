package parser

import (
	"errors"
	"fmt"
	"os"

	"topup/pkg/schema"
)

// Reason classifies why a source could not be loaded.
type Reason string

const (
	ReasonNotFound Reason = "not_found"
	ReasonParse    Reason = "parse_error"
)

// Sentinels matched by LoadError.Is.
var (
	ErrNotFound = errors.New("source not found")
	ErrParse    = errors.New("source could not be parsed")
)

// LoadError reports a source that is missing, unreadable or malformed.
type LoadError struct {
	Path   string
	Reason Reason
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Path, e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrNotFound and ErrParse by reason.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Reason == ReasonNotFound
	case ErrParse:
		return e.Reason == ReasonParse
	}
	return false
}

// LoadResult contains the loaded records and the detected source encoding.
type LoadResult struct {
	Path     string           `json:"path"`
	Encoding string           `json:"encoding"`
	Records  []*schema.Record `json:"records"`
}

// LoadFile reads and parses the record file at path.
// Failures are always returned as *LoadError.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Unreadable sources (permissions, directories) count as missing too.
		return nil, &LoadError{Path: path, Reason: ReasonNotFound, Err: err}
	}

	return LoadBytes(path, data)
}

// LoadBytes parses already-read source bytes. path is only used for reporting.
func LoadBytes(path string, data []byte) (*LoadResult, error) {
	decoded, encodingName, err := DetectAndDecode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: ReasonParse, Err: fmt.Errorf("encoding detection failed: %w", err)}
	}

	records, err := ParseRecords(decoded)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: ReasonParse, Err: err}
	}

	return &LoadResult{
		Path:     path,
		Encoding: encodingName,
		Records:  records,
	}, nil
}
