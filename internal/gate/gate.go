package gate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roguewave/hufcheck/pkg/types"
)

// Gate is a named condition a report must satisfy.
type Gate struct {
	Name      string `yaml:"name" json:"name"`
	Condition string `yaml:"condition" json:"condition"`
}

// Default is applied when no gates are configured.
var Default = Gate{Name: "not-noncompliant", Condition: "verdict != noncompliant"}

// Result is the outcome of one gate against one report.
type Result struct {
	Gate     Gate   `json:"gate"`
	Passed   bool   `json:"passed"`
	Observed string `json:"observed"`
}

// Validate parses every gate condition and reports all problems at once.
func Validate(gates []Gate) error {
	var errs []error
	for i, g := range gates {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("gates[%d]: name is required", i))
		}
		if _, err := Parse(g.Condition); err != nil {
			errs = append(errs, fmt.Errorf("gates[%d] %q: %w", i, g.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Evaluate runs gates against r in order. Default is used when gates is empty.
func Evaluate(r types.Report, gates []Gate) ([]Result, error) {
	if len(gates) == 0 {
		gates = []Gate{Default}
	}

	out := make([]Result, 0, len(gates))
	for _, g := range gates {
		c, err := Parse(g.Condition)
		if err != nil {
			return nil, err
		}
		ok, observed := c.Holds(r)
		if !ok {
			slog.Warn("gate: failed",
				"gate", g.Name,
				"system", r.System,
				"condition", g.Condition,
				"observed", observed,
			)
		}
		out = append(out, Result{Gate: g, Passed: ok, Observed: observed})
	}
	return out, nil
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
