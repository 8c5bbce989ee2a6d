// Package detect decides which parser to try first for a report or config file.
package detect

import (
	"path/filepath"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	Unknown Format = iota
	JSON
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	default:
		return "unknown"
	}
}

// Other returns the fallback format for f.
func (f Format) Other() Format {
	switch f {
	case JSON:
		return YAML
	case YAML:
		return JSON
	default:
		return Unknown
	}
}

// ByExtension maps a file extension to a format. Extensions other than
// .json, .yaml and .yml are Unknown.
func ByExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

// Sniff examines the first bytes of input. JSON documents start with '{' or
// '['; anything else is treated as YAML.
func Sniff(data []byte) Format {
	// Trim leading whitespace and a UTF-8 BOM
	data = []byte(strings.TrimPrefix(string(data), "\ufeff"))
	for len(data) > 0 && (data[0] == ' ' || data[0] == '\t' || data[0] == '\n' || data[0] == '\r') {
		data = data[1:]
	}
	if len(data) == 0 {
		return Unknown
	}
	if data[0] == '{' || data[0] == '[' {
		return JSON
	}
	return YAML
}

// Order returns the primary and fallback formats for a file. The extension
// decides when it is known; tools that write JSON under a .yaml name (or the
// reverse) are handled by the fallback. Unknown extensions use Sniff, then
// default to JSON first.
func Order(path string, data []byte) (primary, fallback Format) {
	primary = ByExtension(path)
	if primary == Unknown {
		primary = Sniff(data)
	}
	if primary == Unknown {
		primary = JSON
	}
	return primary, primary.Other()
}
