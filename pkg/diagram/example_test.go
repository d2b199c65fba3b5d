package diagram_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/particle"
)

func Example() {
	// Electron-positron annihilation into a photon, through three vertices.
	g, err := diagram.Construct(
		diagram.Externals{Electrons: []string{"i1"}, Positrons: []string{"i2"}},
		diagram.Externals{Photons: []string{"o1"}},
		[]string{"v1", "v2", "v3"},
	)
	if err != nil {
		panic(err)
	}

	e := diagram.Enumerate(g)
	first, _ := e.Next()
	fmt.Println(diagram.WiresOf(first, particle.Electron))
	fmt.Println(diagram.WiresOf(first, particle.Photon))
	// Output:
	// [i1-v2 v1-i2 v2-v3 v3-v1]
	// [o1-v1 v2-v3]
}

func ExampleCount() {
	g, _ := diagram.Construct(diagram.Externals{}, diagram.Externals{}, []string{"a", "b"})
	n, _ := diagram.Count(context.Background(), g)
	fmt.Println(n)
	// Output: 1
}
