package city

import (
	"math/rand/v2"

	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/tree"
)

// Footprint and height constants of the city model. These are fixed model
// parameters, not tunables: downstream consumers and the collision math
// both assume them.
const (
	fileRadius   = 5.0
	folderRadius = 10.0

	folderHeight   = 1.0
	locHeightScale = 0.5
	minFileHeight  = 2.0
	maxFileHeight  = 100.0

	// jitterRange bounds the one-time lateral offset applied when a body
	// is first placed near its parent. It breaks the initial pile-up; it
	// is not a physical quantity.
	jitterRange = 50.0
)

// body is the per-node simulation state. Bodies are created once per
// solver invocation by flatten, mutated only by simulate and
// resolveCollisions, and read once by export. Linkage is by ID: parentID
// points up, childIDs is derived in a second pass once all bodies exist.
type body struct {
	id   string
	kind tree.NodeType

	pos layout.Vec3 // Y stays 0 throughout simulation
	vel layout.Vec3

	radius       float64
	targetHeight float64

	parentID string
	childIDs []string

	loc int
	url string
}

// flatten walks the tree depth-first and produces at most maxNodes bodies
// in preorder. IDs are parent-path-qualified (parentID + "/" + name, the
// root being its own name), so they are unique for well-formed trees.
// Once the cap is reached the walk stops entirely; whatever subtrees were
// not yet visited are dropped without error.
//
// The explicit work stack makes the cap cutoff a plain loop condition and
// doubles as a guard against cyclic node structures, which can never
// produce more than maxNodes bodies.
func flatten(root *tree.Node, maxNodes int, rng *rand.Rand) []*body {
	if root == nil {
		return nil
	}

	type frame struct {
		node   *tree.Node
		parent *body
	}

	bodies := make([]*body, 0, min(maxNodes, root.Count()))
	stack := []frame{{node: root}}

	for len(stack) > 0 && len(bodies) < maxNodes {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b := newBody(f.node, f.parent, rng)
		bodies = append(bodies, b)

		// Push children in reverse so the first child is visited next,
		// preserving depth-first preorder.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], parent: b})
		}
	}

	linkChildren(bodies)
	return bodies
}

// newBody creates the simulation body for one tree node. The root sits at
// the origin; every other body starts at its parent's current position
// plus a bounded lateral jitter on the ground plane.
func newBody(n *tree.Node, parent *body, rng *rand.Rand) *body {
	b := &body{
		id:   n.Name,
		kind: n.Type,
		loc:  n.LOC,
		url:  n.URL,
	}

	if parent != nil {
		b.id = parent.id + "/" + n.Name
		b.parentID = parent.id
		b.pos = layout.Vec3{
			X: parent.pos.X + (rng.Float64()*2-1)*jitterRange,
			Z: parent.pos.Z + (rng.Float64()*2-1)*jitterRange,
		}
	}

	if n.IsFolder() {
		b.radius = folderRadius
		b.targetHeight = folderHeight
	} else {
		b.radius = fileRadius
		b.targetHeight = clamp(float64(n.LOC)*locHeightScale, minFileHeight, maxFileHeight)
	}

	return b
}

// linkChildren populates childIDs in a single linear pass. Every body's
// parent precedes it in the slice by construction, so the lookup never
// misses for bodies produced by flatten.
func linkChildren(bodies []*body) {
	byID := make(map[string]*body, len(bodies))
	for _, b := range bodies {
		byID[b.id] = b
	}
	for _, b := range bodies {
		if b.parentID == "" {
			continue
		}
		if p, ok := byID[b.parentID]; ok {
			p.childIDs = append(p.childIDs, b.id)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
