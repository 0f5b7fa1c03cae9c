package harmonic_test

import (
	"fmt"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/measure/harmonic"
)

func ExampleAnalyze() {
	res, err := harmonic.Analyze(clip.SimpleSnapshot(1, 0.5), harmonic.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Level(3) > res.Level(2), res.THD > 0.1)
	// Output: true true
}
