package city_test

import (
	"fmt"

	"github.com/skylinehq/skyline/pkg/city"
	"github.com/skylinehq/skyline/pkg/tree"
)

func ExampleLayout() {
	root := &tree.Node{
		Name: "repo",
		Type: tree.TypeFolder,
		Children: []*tree.Node{
			{Name: "main.go", Type: tree.TypeFile, LOC: 120},
			{Name: "README.md", Type: tree.TypeFile, LOC: 30},
		},
	}

	blocks := city.Layout(root)
	fmt.Println(len(blocks))
	for _, b := range blocks {
		fmt.Printf("%s height=%v\n", b.ID, b.Size.Y)
	}
	// Output:
	// 3
	// repo height=1
	// repo/main.go height=60
	// repo/README.md height=15
}
