// Package fileutil loads value trees from JSON or YAML documents for the
// CLI and MCP tools.
package fileutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// OwnerReadWrite is the file permission mode for output files derived
// from potentially sensitive input data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// Format identifies a supported input document format.
type Format int

const (
	// FormatAuto sniffs the format from the document content
	FormatAuto Format = iota
	// FormatJSON decodes with encoding/json, numbers as json.Number
	FormatJSON
	// FormatYAML decodes with yaml
	FormatYAML
)

// Load reads a document from path and decodes it into a value tree.
// The format is chosen by file extension, falling back to content
// sniffing for unknown extensions.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := FormatAuto
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	}
	tree, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return tree, nil
}

// Decode parses data into a value tree of maps, slices, and scalars.
// JSON numbers are preserved as json.Number so large integers survive
// a decode/encode round trip.
func Decode(data []byte, format Format) (any, error) {
	if format == FormatAuto {
		format = sniff(data)
	}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var tree any
		if err := dec.Decode(&tree); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return tree, nil
	case FormatYAML:
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("unsupported format %d", format)
	}
}

// sniff guesses the format from the first non-space byte. YAML is the
// fallback: it is a superset of JSON for scalar documents, so only
// unambiguous JSON openers pick the JSON decoder.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatYAML
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return FormatJSON
	}
	return FormatYAML
}
