package parameter_test

import (
	"fmt"

	"github.com/katalvlaran/lvfit/parameter"
)

// ExampleSet_SetPrefix shows how models sharing a parameter name are
// qualified once they are parented under a root set.
func ExampleSet_SetPrefix() {
	sphere, _ := parameter.NewSet("sphere", []*parameter.Parameter{parameter.New("scale", 1)})
	rod, _ := parameter.NewSet("rod", []*parameter.Parameter{parameter.New("scale", 1)})
	root, _ := parameter.NewSet("root", nil, sphere, rod)
	root.SetPrefix("")

	for _, p := range root.Flatten() {
		fmt.Println(p.Path())
	}
	// Output:
	// rod.scale
	// sphere.scale
}
