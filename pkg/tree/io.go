package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a JSON tree from r and validates it.
//
// The input must be a JSON object describing the root node:
//
//	{
//	  "name": "repo",
//	  "type": "folder",
//	  "children": [
//	    {"name": "main.go", "type": "file", "loc": 120}
//	  ]
//	}
//
// Each node must have "name" and "type" fields. Optional fields:
//   - children: array of child nodes (folders only)
//   - loc: integer lines-of-code sizing hint
//   - content: opaque payload passed through to the layout output consumer
//   - url: opaque reference passed through unchanged
//
// ReadJSON returns an error if the JSON is malformed, a node is missing a
// name or has an unknown type, or a file node carries children. Errors are
// wrapped with the path of the offending node. Use errors.Is to check for
// [ErrEmptyName], [ErrInvalidType], or [ErrFileWithChildren].
//
// The returned tree is independent of r and can be modified safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return &root, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context,
// and include the same validation errors as [ReadJSON].
func ImportJSON(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}
