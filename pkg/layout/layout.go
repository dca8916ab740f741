package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// =============================================================================
// Layout - City Layout Serialization Format
// =============================================================================

// Layout is the canonical serialization format for a solved city layout.
// Used for API responses, storage, caching, and file output.
//
// Blocks hold the final placement of every node retained by the solver.
// The remaining fields record how the layout was produced so a consumer
// (or a cache key) can distinguish runs:
//   - Seed: RNG seed used for jitter and tie-breaks (0 if a caller-supplied
//     random source was injected instead of a seed)
//   - Iterations: number of force-simulation iterations
//   - NodeCount: number of blocks actually placed
//   - Truncated: whether the input tree exceeded the node cap and was cut off
type Layout struct {
	Blocks     []Block `json:"blocks" bson:"blocks"`
	Seed       uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Iterations int     `json:"iterations" bson:"iterations"`
	NodeCount  int     `json:"node_count" bson:"node_count"`
	Truncated  bool    `json:"truncated,omitempty" bson:"truncated,omitempty"`
}

// =============================================================================
// Block - Positioned City Element
// =============================================================================

// Vec3 is a position or extent in the layout's 3D space.
// The ground plane is XZ; Y is the vertical axis.
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Block is the final placement and footprint for one input node.
// Position is the block's center: X/Z from the force simulation, Y at half
// the block height so the base sits on the ground plane. Size is
// (width, height, depth) of the block's bounding box.
type Block struct {
	ID       string `json:"id" bson:"id"`
	Position Vec3   `json:"position" bson:"position"`
	Size     Vec3   `json:"size" bson:"size"`
	Type     string `json:"type" bson:"type"`
	ParentID string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	LOC      int    `json:"loc,omitempty" bson:"loc,omitempty"`

	// LastModified is a synthesized placeholder. Real modification times
	// live with whatever produced the input tree, not with the solver.
	LastModified time.Time `json:"last_modified" bson:"last_modified"`

	// Extension is the trailing ID segment after the last dot for files,
	// the literal "folder" for folders, and "txt" when a file has no dot.
	Extension string `json:"extension" bson:"extension"`

	URL string `json:"url,omitempty" bson:"url,omitempty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
