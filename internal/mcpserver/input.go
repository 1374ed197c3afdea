package mcpserver

import (
	"fmt"

	"github.com/jsontools/fastpath/internal/fileutil"
	"github.com/jsontools/fastpath/internal/options"
)

// treeInput represents the two ways a value tree can be provided to a
// tool. Exactly one of File or Content must be set.
type treeInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// resolve decodes the tree from whichever input was provided.
func (in treeInput) resolve() (any, error) {
	if err := options.SingleSource(
		"one of file or content must be provided",
		"only one of file or content may be provided",
		in.File != "", in.Content != "",
	); err != nil {
		return nil, err
	}

	if in.File != "" {
		return fileutil.Load(in.File)
	}

	if int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set FASTPATH_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}
	return fileutil.Decode([]byte(in.Content), fileutil.FormatAuto)
}
