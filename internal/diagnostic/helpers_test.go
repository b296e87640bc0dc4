package diagnostic

import (
	"math"

	"github.com/roguewave/hufcheck/pkg/types"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// el builds an element with a declared characteristic period.
func el(name string, share, declared float64, traced bool) types.Element {
	return types.Element{
		Name:                 name,
		Share:                types.Q(share),
		DeclaredWeight:       types.Q(declared),
		Traced:               traced,
		CharacteristicPeriod: "4",
	}
}

// sys wraps elements into a System observed over n cycles.
func sys(cycles int, elements ...types.Element) types.System {
	return types.System{Name: "test", Elements: elements, Cycles: types.NumberedCycles(cycles)}
}

// run evaluates a single rule against sys under the default thresholds.
func run(r Rule, s types.System) types.TestResult {
	return r.Evaluate(NewMetrics(s, DefaultThresholds()))
}

// balanced returns four elements at 0.25 share and weight each.
func balanced() []types.Element {
	return []types.Element{
		el("alpha", 0.25, 0.25, false),
		el("beta", 0.25, 0.25, false),
		el("gamma", 0.25, 0.25, false),
		el("delta", 0.25, 0.25, false),
	}
}
