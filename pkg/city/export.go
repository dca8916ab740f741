package city

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/tree"
)

const (
	// footprintScale widens the rendered footprint beyond the collision
	// radius so neighboring blocks keep a visible gap.
	footprintScale = 1.5

	// maxModifiedAge bounds the synthesized LastModified placeholder.
	maxModifiedAge = 30 * 24 * time.Hour
)

// export maps final body state into the externally consumed blocks.
// It is a pure projection of simulation state plus two synthesized fields:
// LastModified (now minus a random offset up to maxModifiedAge) and
// Extension (derived from the ID).
func export(bodies []*body, rng *rand.Rand, now time.Time) []layout.Block {
	blocks := make([]layout.Block, len(bodies))
	for i, b := range bodies {
		blocks[i] = layout.Block{
			ID: b.id,
			Position: layout.Vec3{
				X: b.pos.X,
				Y: b.targetHeight / 2,
				Z: b.pos.Z,
			},
			Size: layout.Vec3{
				X: b.radius * footprintScale,
				Y: b.targetHeight,
				Z: b.radius * footprintScale,
			},
			Type:         string(b.kind),
			ParentID:     b.parentID,
			LOC:          b.loc,
			LastModified: now.Add(-time.Duration(rng.Float64() * float64(maxModifiedAge))),
			Extension:    extensionOf(b.id, b.kind),
			URL:          b.url,
		}
	}
	return blocks
}

// extensionOf derives the Extension field: "folder" for folders, the ID
// segment after the last dot for files, and "txt" for dotless files.
func extensionOf(id string, kind tree.NodeType) string {
	if kind == tree.TypeFolder {
		return "folder"
	}
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return "txt"
}
