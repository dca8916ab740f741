package layout

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleLayout() Layout {
	return Layout{
		Blocks: []Block{
			{
				ID:           "repo",
				Position:     Vec3{X: 0, Y: 0.5, Z: 0},
				Size:         Vec3{X: 15, Y: 1, Z: 15},
				Type:         "folder",
				Extension:    "folder",
				LastModified: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:           "repo/main.go",
				Position:     Vec3{X: 12.5, Y: 30, Z: -4.25},
				Size:         Vec3{X: 7.5, Y: 60, Z: 7.5},
				Type:         "file",
				ParentID:     "repo",
				LOC:          120,
				Extension:    "go",
				URL:          "https://example.com/main.go",
				LastModified: time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC),
			},
		},
		Seed:       42,
		Iterations: 50,
		NodeCount:  2,
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	l := sampleLayout()

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout failed: %v", err)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout failed: %v", err)
	}

	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.Blocks))
	}
	want := l.Blocks[1]
	b := got.Blocks[1]
	if b.ID != want.ID || b.Position != want.Position || b.Size != want.Size {
		t.Errorf("placement changed through round trip: %+v", b)
	}
	if b.Type != want.Type || b.ParentID != want.ParentID || b.LOC != want.LOC {
		t.Errorf("metadata changed through round trip: %+v", b)
	}
	if b.Extension != want.Extension || b.URL != want.URL {
		t.Errorf("passthrough fields changed: %+v", b)
	}
	if !b.LastModified.Equal(want.LastModified) {
		t.Errorf("LastModified = %v, want %v", b.LastModified, want.LastModified)
	}
	if got.Seed != 42 || got.Iterations != 50 || got.NodeCount != 2 {
		t.Errorf("metadata not preserved: %+v", got)
	}
}

func TestMarshalFieldNames(t *testing.T) {
	data, err := MarshalLayout(sampleLayout())
	if err != nil {
		t.Fatalf("MarshalLayout failed: %v", err)
	}

	// The JSON shape is consumed by external renderers; field names are a
	// compatibility contract.
	for _, want := range []string{
		`"blocks"`, `"position"`, `"size"`, `"parent_id"`,
		`"last_modified"`, `"extension"`, `"node_count"`,
		`"x"`, `"y"`, `"z"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("marshaled layout missing %s", want)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"blocks": `)); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city.layout.json")

	if err := WriteLayoutFile(sampleLayout(), path); err != nil {
		t.Fatalf("WriteLayoutFile failed: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile failed: %v", err)
	}
	if len(got.Blocks) != 2 || got.Blocks[0].ID != "repo" {
		t.Errorf("layout not preserved: %+v", got)
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing file should fail")
	}
}
