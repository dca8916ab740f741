package city

import (
	"testing"
	"time"

	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/tree"
)

func TestExportRootOnly(t *testing.T) {
	blocks := Layout(folder("repo"))
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}

	b := blocks[0]
	if b.ID != "repo" {
		t.Errorf("ID = %q, want repo", b.ID)
	}
	if b.Position != (layout.Vec3{X: 0, Y: 0.5, Z: 0}) {
		t.Errorf("position = %+v, want (0, 0.5, 0)", b.Position)
	}
	if b.Size != (layout.Vec3{X: 15, Y: 1, Z: 15}) {
		t.Errorf("size = %+v, want (15, 1, 15)", b.Size)
	}
	if b.Type != string(tree.TypeFolder) {
		t.Errorf("type = %q, want folder", b.Type)
	}
	if b.Extension != "folder" {
		t.Errorf("extension = %q, want folder", b.Extension)
	}
}

func TestExportHeightsInvariantAcrossIterations(t *testing.T) {
	root := folder("repo",
		file("tiny.go", 1),
		file("mid.go", 100),
		file("huge.go", 5000),
	)
	want := map[string]float64{
		"repo":         1,
		"repo/tiny.go": 2,
		"repo/mid.go":  50,
		"repo/huge.go": 100,
	}

	for _, iterations := range []int{0, 1, 50} {
		blocks := Layout(root, WithIterations(iterations))
		for _, b := range blocks {
			if b.Size.Y != want[b.ID] {
				t.Errorf("iterations=%d: %s height = %v, want %v", iterations, b.ID, b.Size.Y, want[b.ID])
			}
			if b.Position.Y != want[b.ID]/2 {
				t.Errorf("iterations=%d: %s Y = %v, want %v", iterations, b.ID, b.Position.Y, want[b.ID]/2)
			}
		}
	}
}

func TestExportFootprints(t *testing.T) {
	blocks := Layout(folder("repo", file("a.go", 10)))
	for _, b := range blocks {
		switch b.Type {
		case string(tree.TypeFolder):
			if b.Size.X != 15 || b.Size.Z != 15 {
				t.Errorf("folder footprint = (%v, %v), want (15, 15)", b.Size.X, b.Size.Z)
			}
		case string(tree.TypeFile):
			if b.Size.X != 7.5 || b.Size.Z != 7.5 {
				t.Errorf("file footprint = (%v, %v), want (7.5, 7.5)", b.Size.X, b.Size.Z)
			}
		}
	}
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		id   string
		kind tree.NodeType
		want string
	}{
		{"repo/a.ts", tree.TypeFile, "ts"},
		{"repo/archive.tar.gz", tree.TypeFile, "gz"},
		{"repo/Makefile", tree.TypeFile, "txt"},
		{"repo/src", tree.TypeFolder, "folder"},
		{"repo.v2", tree.TypeFolder, "folder"},
	}
	for _, tt := range tests {
		if got := extensionOf(tt.id, tt.kind); got != tt.want {
			t.Errorf("extensionOf(%q, %s) = %q, want %q", tt.id, tt.kind, got, tt.want)
		}
	}
}

func TestExportPassthrough(t *testing.T) {
	root := folder("repo", &tree.Node{
		Name: "a.go",
		Type: tree.TypeFile,
		LOC:  42,
		URL:  "https://example.com/a.go",
	})

	blocks := Layout(root)
	var got layout.Block
	for _, b := range blocks {
		if b.ID == "repo/a.go" {
			got = b
		}
	}
	if got.LOC != 42 {
		t.Errorf("LOC = %d, want 42", got.LOC)
	}
	if got.URL != "https://example.com/a.go" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.ParentID != "repo" {
		t.Errorf("ParentID = %q, want repo", got.ParentID)
	}
}

func TestExportLastModifiedWindow(t *testing.T) {
	before := time.Now().Add(-maxModifiedAge)
	blocks := Layout(folder("repo", file("a.go", 1)))
	after := time.Now()

	for _, b := range blocks {
		if b.LastModified.Before(before) || b.LastModified.After(after) {
			t.Errorf("%s LastModified = %v, want within the last 30 days", b.ID, b.LastModified)
		}
	}
}
