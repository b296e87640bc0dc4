package gate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roguewave/hufcheck/pkg/types"
)

type kind uint8

const (
	kindNumeric kind = iota
	kindVerdict
	kindStatus
)

// Condition is a parsed gate expression.
type Condition struct {
	text  string
	kind  kind
	field string
	op    string

	threshold float64
	verdict   types.Verdict
	status    types.Status
}

var numericFields = map[string]func(types.Report) float64{
	"passes": func(r types.Report) float64 { return float64(r.Summary.Passes) },
	"fails":  func(r types.Report) float64 { return float64(r.Summary.Fails) },
	"flags":  func(r types.Report) float64 { return float64(r.Summary.Flags) },
	"share_sum": func(r types.Report) float64 {
		p, _ := payload[types.UnityPayload](r, types.TestUnity)
		return p.ShareSum
	},
	"weight_sum": func(r types.Report) float64 {
		p, _ := payload[types.DeclarationPayload](r, types.TestDeclaration)
		return p.WeightSum
	},
	"mean_drift": func(r types.Report) float64 {
		p, _ := payload[types.GroundStatePayload](r, types.TestGroundState)
		return p.MeanDrift
	},
	"proof_count": func(r types.Report) float64 {
		p, _ := payload[types.ConcentrationPayload](r, types.TestConcentration)
		return float64(p.ProofCount)
	},
	"silent_drift": func(r types.Report) float64 {
		p, _ := payload[types.DriftPayload](r, types.TestDrift)
		return float64(len(p.Untraced))
	},
	"elements": func(r types.Report) float64 { return float64(len(r.DriftItems)) },
	"cycles": func(r types.Report) float64 {
		p, _ := payload[types.ObservationPayload](r, types.TestObservation)
		return float64(p.CycleCount)
	},
}

// payload returns the typed payload of the result with the given id.
func payload[P types.Payload](r types.Report, id types.TestID) (P, bool) {
	var zero P
	res, ok := r.Result(id)
	if !ok {
		return zero, false
	}
	p, ok := res.Payload.(P)
	return p, ok
}

// Parse parses a condition. Fields and values are case sensitive except for
// the status names, which are upper-cased.
func Parse(cond string) (Condition, error) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return Condition{}, fmt.Errorf("gate: condition %q: want \"field operator value\"", cond)
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	c := Condition{text: cond, field: field, op: op}
	if !validOp(op) {
		return Condition{}, fmt.Errorf("gate: condition %q: unknown operator %q", cond, op)
	}

	switch {
	case field == "verdict":
		v, ok := types.ParseVerdict(rhs)
		if !ok {
			return Condition{}, fmt.Errorf("gate: condition %q: unknown verdict %q", cond, rhs)
		}
		c.kind, c.verdict = kindVerdict, v

	case isTestID(field):
		s, err := types.ParseStatus(strings.ToUpper(rhs))
		if err != nil {
			return Condition{}, fmt.Errorf("gate: condition %q: %w", cond, err)
		}
		c.kind, c.status = kindStatus, s

	default:
		if _, ok := numericFields[field]; !ok {
			return Condition{}, fmt.Errorf("gate: condition %q: unknown field %q", cond, field)
		}
		threshold, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return Condition{}, fmt.Errorf("gate: condition %q: value %q is not a number", cond, rhs)
		}
		c.kind, c.threshold = kindNumeric, threshold
		return c, nil
	}

	if op != "==" && op != "!=" {
		return Condition{}, fmt.Errorf("gate: condition %q: %s only supports == and !=", cond, field)
	}
	return c, nil
}

// String returns the condition as written.
func (c Condition) String() string { return c.text }

// Holds evaluates the condition against r and returns the observed value of
// the field as text.
func (c Condition) Holds(r types.Report) (bool, string) {
	switch c.kind {
	case kindVerdict:
		v := r.Summary.Verdict()
		return (v == c.verdict) == (c.op == "=="), string(v)

	case kindStatus:
		res, ok := r.Result(types.TestID(c.field))
		if !ok {
			return false, "missing"
		}
		return (res.Status == c.status) == (c.op == "=="), res.Status.String()

	default:
		v := numericFields[c.field](r)
		return compareFloat(v, c.op, c.threshold), strconv.FormatFloat(v, 'g', 6, 64)
	}
}

func isTestID(field string) bool {
	for _, id := range types.TestIDs() {
		if string(id) == field {
			return true
		}
	}
	return false
}

func validOp(op string) bool {
	switch op {
	case ">", ">=", "<", "<=", "==", "!=":
		return true
	}
	return false
}

// compareFloat reports whether v op threshold holds; unknown operators never hold.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	default:
		return false
	}
}
