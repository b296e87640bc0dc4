package types

// Element is one participant in the budget.
type Element struct {
	// Name identifies the element. Uniqueness is the caller's concern.
	Name string `json:"name"`

	// Share is the observed fraction of the budget ceiling in the current cycle.
	Share Quantity `json:"share"`

	// DeclaredWeight is the operator's intended fraction. An absent value is
	// reported by the declared-weights test; it is not the same as "0".
	DeclaredWeight Quantity `json:"declared_weight"`

	// Traced is true when drift on this element has a recorded justification.
	Traced bool `json:"traced"`

	// CharacteristicPeriod is the number of cycles needed to see the element's
	// full contribution. Optional.
	CharacteristicPeriod Quantity `json:"characteristic_period,omitempty"`
}

// Cycle is one observation round. Only the number of cycles matters to the
// engine; Label is carried for display.
type Cycle struct {
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label,omitempty"`
}

// System is the snapshot submitted for evaluation.
type System struct {
	Name     string    `json:"name,omitempty"`
	Elements []Element `json:"elements"`
	Cycles   []Cycle   `json:"cycles"`
}

// NumberedCycles returns n cycles with ordinals 1..n.
func NumberedCycles(n int) []Cycle {
	if n <= 0 {
		return nil
	}
	out := make([]Cycle, n)
	for i := range out {
		out[i] = Cycle{Ordinal: i + 1}
	}
	return out
}
