package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-clip/dsp/core"
	"github.com/cwbudde/algo-clip/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	for i := range x {
		if math.Abs(float64(x[i])) < 1e-6 {
			x[i] = 0
		}
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleRamp() {
	x, err := signal.Ramp(-1, 1, 5)
	if err != nil {
		panic(err)
	}
	fmt.Println(x)

	// Output:
	// [-1 -0.5 0 0.5 1]
}
