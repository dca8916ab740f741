package city

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/skylinehq/skyline/pkg/tree"
)

func folder(name string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Name: name, Type: tree.TypeFolder, Children: children}
}

func file(name string, loc int) *tree.Node {
	return &tree.Node{Name: name, Type: tree.TypeFile, LOC: loc}
}

// preorderIDs lists the path-qualified IDs of a tree in depth-first
// preorder, mirroring the traversal contract of flatten.
func preorderIDs(n *tree.Node, prefix string) []string {
	if n == nil {
		return nil
	}
	id := n.Name
	if prefix != "" {
		id = prefix + "/" + n.Name
	}
	ids := []string{id}
	for _, c := range n.Children {
		ids = append(ids, preorderIDs(c, id)...)
	}
	return ids
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(DefaultSeed, DefaultSeed^0xdeadbeef))
}

func TestFlattenIDsAndOrder(t *testing.T) {
	root := folder("repo",
		file("main.go", 100),
		folder("internal",
			file("a.go", 10),
			file("b.go", 20),
		),
		file("README.md", 5),
	)

	bodies := flatten(root, MaxNodes, testRand())

	want := []string{
		"repo",
		"repo/main.go",
		"repo/internal",
		"repo/internal/a.go",
		"repo/internal/b.go",
		"repo/README.md",
	}
	if len(bodies) != len(want) {
		t.Fatalf("bodies = %d, want %d", len(bodies), len(want))
	}
	for i, id := range want {
		if bodies[i].id != id {
			t.Errorf("bodies[%d].id = %q, want %q", i, bodies[i].id, id)
		}
	}
}

func TestFlattenLinkage(t *testing.T) {
	root := folder("repo",
		file("main.go", 100),
		folder("internal", file("a.go", 10)),
	)

	bodies := flatten(root, MaxNodes, testRand())
	byID := make(map[string]*body)
	for _, b := range bodies {
		byID[b.id] = b
	}

	if got := byID["repo"].parentID; got != "" {
		t.Errorf("root parentID = %q, want empty", got)
	}
	if got := byID["repo/internal/a.go"].parentID; got != "repo/internal" {
		t.Errorf("a.go parentID = %q, want repo/internal", got)
	}

	rootChildren := byID["repo"].childIDs
	if len(rootChildren) != 2 || rootChildren[0] != "repo/main.go" || rootChildren[1] != "repo/internal" {
		t.Errorf("root childIDs = %v", rootChildren)
	}
	if got := byID["repo/main.go"].childIDs; len(got) != 0 {
		t.Errorf("file childIDs = %v, want none", got)
	}
}

func TestFlattenInitialPlacement(t *testing.T) {
	root := folder("repo",
		file("a.go", 1),
		folder("sub", file("b.go", 1)),
	)

	bodies := flatten(root, MaxNodes, testRand())
	byID := make(map[string]*body)
	for _, b := range bodies {
		byID[b.id] = b
	}

	rootBody := byID["repo"]
	if rootBody.pos.X != 0 || rootBody.pos.Y != 0 || rootBody.pos.Z != 0 {
		t.Errorf("root position = %+v, want origin", rootBody.pos)
	}

	// Every non-root body starts within the jitter range of its parent.
	for _, b := range bodies {
		if b.parentID == "" {
			continue
		}
		p := byID[b.parentID]
		dx := b.pos.X - p.pos.X
		dz := b.pos.Z - p.pos.Z
		if dx < -jitterRange || dx > jitterRange || dz < -jitterRange || dz > jitterRange {
			t.Errorf("%s offset from parent = (%v, %v), exceeds +/-%v", b.id, dx, dz, jitterRange)
		}
		if b.pos.Y != 0 {
			t.Errorf("%s vertical coordinate = %v, want 0", b.id, b.pos.Y)
		}
	}
}

func TestFlattenRadiiAndHeights(t *testing.T) {
	tests := []struct {
		name       string
		node       *tree.Node
		wantRadius float64
		wantHeight float64
	}{
		{"Folder", folder("d"), folderRadius, folderHeight},
		{"FileNoLOC", file("f", 0), fileRadius, minFileHeight},
		{"FileTinyLOC", file("f", 1), fileRadius, minFileHeight},
		{"FileMidLOC", file("f", 100), fileRadius, 50},
		{"FileHugeLOC", file("f", 10000), fileRadius, maxFileHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := flatten(tt.node, MaxNodes, testRand())
			if len(bodies) != 1 {
				t.Fatalf("bodies = %d, want 1", len(bodies))
			}
			if bodies[0].radius != tt.wantRadius {
				t.Errorf("radius = %v, want %v", bodies[0].radius, tt.wantRadius)
			}
			if bodies[0].targetHeight != tt.wantHeight {
				t.Errorf("targetHeight = %v, want %v", bodies[0].targetHeight, tt.wantHeight)
			}
		})
	}
}

func TestFlattenCapStopsMidTraversal(t *testing.T) {
	// 1 root + 10 folders x 50 files = 511 nodes.
	var dirs []*tree.Node
	for i := 0; i < 10; i++ {
		var files []*tree.Node
		for j := 0; j < 50; j++ {
			files = append(files, file(fmt.Sprintf("f%02d.go", j), j))
		}
		dirs = append(dirs, folder(fmt.Sprintf("dir%d", i), files...))
	}
	root := folder("repo", dirs...)

	bodies := flatten(root, MaxNodes, testRand())
	if len(bodies) != MaxNodes {
		t.Fatalf("bodies = %d, want %d", len(bodies), MaxNodes)
	}

	want := preorderIDs(root, "")[:MaxNodes]
	for i, id := range want {
		if bodies[i].id != id {
			t.Fatalf("bodies[%d].id = %q, want %q (truncation must follow preorder)", i, bodies[i].id, id)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := flatten(nil, MaxNodes, testRand()); len(got) != 0 {
		t.Errorf("flatten(nil) = %d bodies, want 0", len(got))
	}
}
