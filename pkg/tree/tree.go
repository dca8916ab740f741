package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned by [Node.Validate] when a node has no name.
	// Every node must carry a non-empty name since IDs are derived from names.
	ErrEmptyName = errors.New("node name must not be empty")

	// ErrInvalidType is returned by [Node.Validate] when a node's type is
	// missing or not one of "file" or "folder".
	ErrInvalidType = errors.New(`node type must be "file" or "folder"`)

	// ErrFileWithChildren is returned by [Node.Validate] when a file node
	// carries children. Only folders can contain other nodes.
	ErrFileWithChildren = errors.New("file nodes cannot have children")
)

// NodeType distinguishes files from folders in the input hierarchy.
type NodeType string

const (
	// TypeFile marks a leaf node representing a source file.
	TypeFile NodeType = "file"
	// TypeFolder marks an interior node representing a directory.
	TypeFolder NodeType = "folder"
)

// Node is one entry in the input hierarchy handed to the layout solver.
// The tree is read-only to the solver: names and child order drive ID
// assignment and traversal order, LOC drives building height, and Content
// and URL are passed through untouched for downstream consumers.
//
// The zero value is not usable - Name and Type must be set.
type Node struct {
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	Children []*Node  `json:"children,omitempty"`
	LOC      int      `json:"loc,omitempty"`
	Content  string   `json:"content,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// IsFile reports whether the node represents a source file.
func (n *Node) IsFile() bool { return n.Type == TypeFile }

// IsFolder reports whether the node represents a directory.
func (n *Node) IsFolder() bool { return n.Type == TypeFolder }

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself. A nil node counts as zero.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Validate walks the subtree and checks structural invariants:
// every node has a name, a valid type, and only folders carry children.
// Errors are wrapped with the slash-joined path of the offending node.
//
// Validate is intended for trees arriving over a serialization boundary.
// In-process callers that construct trees programmatically are trusted;
// the solver's node cap bounds the damage of a malformed walk.
func (n *Node) Validate() error {
	if n == nil {
		return nil
	}
	return n.validate(n.Name)
}

func (n *Node) validate(path string) error {
	if n.Name == "" {
		return fmt.Errorf("node at %q: %w", path, ErrEmptyName)
	}
	if n.Type != TypeFile && n.Type != TypeFolder {
		return fmt.Errorf("node %q: %w", path, ErrInvalidType)
	}
	if n.Type == TypeFile && len(n.Children) > 0 {
		return fmt.Errorf("node %q: %w", path, ErrFileWithChildren)
	}
	for _, c := range n.Children {
		childPath := path
		if c != nil {
			childPath = path + "/" + c.Name
		}
		if c == nil {
			return fmt.Errorf("node %q: nil child", path)
		}
		if err := c.validate(childPath); err != nil {
			return err
		}
	}
	return nil
}
