package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-clip/dsp/window"
)

func ExampleGenerate() {
	w := window.Generate(window.TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleInfo() {
	m := window.Info(window.TypeHann)
	fmt.Printf("%s %.1f\n", m.Name, m.ENBW)
	// Output:
	// Hann 1.5
}
