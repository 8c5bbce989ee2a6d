// Package docread reads whole report and config files into untyped trees.
//
// Report-producing tools are inconsistent about pairing extensions with
// content, so every read tries the format implied by the extension first and
// falls back to the other one when the first attempt fails structurally.
package docread

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/insights-build-reporter/internal/detect"
)

// Document is a parsed file.
type Document struct {
	Path   string
	Format detect.Format // format that parsed successfully
	Tree   any
	Raw    []byte
}

// ErrNotFound matches IOErrors for files that do not exist.
var ErrNotFound = fmt.Errorf("document not found: %w", fs.ErrNotExist)

// IOError reports a file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match missing files.
func (e *IOError) Is(target error) bool {
	return target == ErrNotFound && errors.Is(e.Err, fs.ErrNotExist)
}

// ParseError reports content that parsed as neither JSON nor YAML.
type ParseError struct {
	Path     string
	Primary  detect.Format
	Err      error // error from the primary format
	Fallback error // error from the fallback format
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v (fallback %s: %v)", e.Path, e.Primary, e.Err, e.Primary.Other(), e.Fallback)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Optional turns a missing file into (nil, nil). Every other error is kept.
func Optional(doc *Document, err error) (*Document, error) {
	if err != nil && IsNotFound(err) {
		return nil, nil
	}
	return doc, err
}

// ReadRaw reads a file without parsing it.
func ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - paths come from flags or fixed discovery names
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return data, nil
}

// ReadFile reads and parses a file from disk.
func ReadFile(path string) (*Document, error) {
	data, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	return ReadBytes(path, data)
}

// ReadBytes parses data; path only selects the primary format and labels errors.
func ReadBytes(path string, data []byte) (*Document, error) {
	primary, fallback := detect.Order(path, data)

	tree, perr := parse(primary, data)
	if perr == nil {
		return &Document{Path: path, Format: primary, Tree: tree, Raw: data}, nil
	}
	tree, ferr := parse(fallback, data)
	if ferr == nil {
		return &Document{Path: path, Format: fallback, Tree: tree, Raw: data}, nil
	}
	return nil, &ParseError{Path: path, Primary: primary, Err: perr, Fallback: ferr}
}

func parse(format detect.Format, data []byte) (any, error) {
	var tree any
	switch format {
	case detect.JSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	case detect.YAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	return tree, nil
}
