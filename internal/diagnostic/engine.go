package diagnostic

import (
	"fmt"

	"github.com/roguewave/hufcheck/pkg/types"
)

// Engine runs the test battery under a fixed set of thresholds.
//
// An Engine holds no mutable state; Evaluate is safe for concurrent use.
type Engine struct {
	thresholds Thresholds
	rules      []Rule
}

var defaultEngine = &Engine{thresholds: DefaultThresholds(), rules: DefaultRules()}

// NewEngine returns an Engine using th, or an error if th is not usable.
func NewEngine(th Thresholds) (*Engine, error) {
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("diagnostic: %w", err)
	}
	return &Engine{thresholds: th, rules: DefaultRules()}, nil
}

// Default returns the Engine configured with DefaultThresholds.
func Default() *Engine {
	return defaultEngine
}

// Thresholds returns the limits the engine evaluates against.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Rules returns the rules in execution order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate runs every rule against sys and returns a new Report.
//
// Malformed numeric fields count as zero and an empty element list yields a
// degenerate but complete report; Evaluate never fails.
func (e *Engine) Evaluate(sys types.System) types.Report {
	m := NewMetrics(sys, e.thresholds)

	results := make([]types.TestResult, 0, len(e.rules))
	for _, rule := range e.rules {
		results = append(results, rule.Evaluate(m))
	}

	return types.Report{
		System:     sys.Name,
		Results:    results,
		Summary:    Summarize(results, e.thresholds),
		DriftItems: cloneDrift(m.DriftItems),
	}
}

// Evaluate runs the battery with the default thresholds.
func Evaluate(sys types.System) types.Report {
	return defaultEngine.Evaluate(sys)
}
