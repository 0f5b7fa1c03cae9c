package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-clip/dsp/param"
)

func ExampleStore() {
	st := param.MustNewStore(
		param.Percent("threshold", 1.0, 0.05, param.Unbounded()),
		param.Percent("gain", 0.5, 0.01, param.Unbounded()),
	)

	st.Set(0, -1) // clamps to the floor
	fmt.Println(st.Name(0), st.Get(0), st.DisplayText(0)+st.Label(0))
	fmt.Println(st.Name(1), st.DisplayText(1)+st.Label(1))
	fmt.Printf("%q %v\n", st.Name(7), st.Get(7))

	// Output:
	// threshold 0.05 5%
	// gain 50%
	// "" 0
}
