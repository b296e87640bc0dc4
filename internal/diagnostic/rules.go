package diagnostic

import (
	"fmt"
	"math"
	"strings"

	"github.com/roguewave/hufcheck/pkg/types"
)

// Rule is one test of the battery.
type Rule interface {
	ID() types.TestID
	Name() string
	Evaluate(m *Metrics) types.TestResult
}

// DefaultRules returns the eight rules in execution order.
func DefaultRules() []Rule {
	return []Rule{
		UnityRule{},
		DeclarationRule{},
		DriftRule{},
		ConcentrationRule{},
		FragmentationRule{},
		ObservationRule{},
		PeriodRule{},
		GroundStateRule{},
	}
}

// ── T1 Unity ────────────────────────────────────────────────────────────────

// UnityRule checks that element shares sum to the budget ceiling.
type UnityRule struct{}

func (UnityRule) ID() types.TestID { return types.TestUnity }
func (UnityRule) Name() string     { return "UNITY CONSTRAINT" }

func (r UnityRule) Evaluate(m *Metrics) types.TestResult {
	sum := m.ShareSum
	gap := math.Abs(1 - sum)
	p := types.UnityPayload{ShareSum: sum, Gap: gap, Direction: types.DirectionBalanced}

	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "All element shares must sum to 1.0. This is the budget ceiling test: " +
			"the system must account for 100% of its allocation.",
		Vocabulary: []string{"budget ceiling", "share", "ratio state"},
	}

	if withinUnity(sum, m.Thresholds.UnityTolerance) {
		res.Status = types.StatusPass
		res.Detail = fmt.Sprintf("Share sum = %.4f. Budget ceiling fully accounted.", sum)
	} else {
		finding, side := "Unaccounted allocation", "below"
		p.Direction = types.DirectionDeficit
		if sum > 1 {
			finding, side = "Overallocation", "above"
			p.Direction = types.DirectionSurplus
		}
		res.Status = types.StatusFail
		res.Detail = fmt.Sprintf(
			"Share sum = %.4f. %s detected: %.4f %s ceiling. "+
				"Silent mass exists outside the declared ratio state.",
			sum, finding, gap, side,
		)
	}
	res.Payload = p
	return res
}

// ── T2 Declared weights ─────────────────────────────────────────────────────

// DeclarationRule checks that every element declares a weight and that the
// declared weights themselves sum to the ceiling.
type DeclarationRule struct{}

func (DeclarationRule) ID() types.TestID { return types.TestDeclaration }
func (DeclarationRule) Name() string     { return "DECLARED WEIGHTS" }

func (r DeclarationRule) Evaluate(m *Metrics) types.TestResult {
	missing := cloneNames(m.MissingWeights)
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "Every element must have a declared weight, the operator's stated intention " +
			"for that element's share. Without declared weights, silent drift cannot be " +
			"distinguished from intentional reweighting.",
		Vocabulary: []string{"declared weight", "silent drift", "intentional reweighting"},
		Payload:    types.DeclarationPayload{WeightSum: m.WeightSum, Missing: missing},
	}

	switch {
	case len(missing) > 0:
		res.Status = types.StatusFail
		res.Detail = fmt.Sprintf(
			"%d element(s) missing declared weights: %s. "+
				"Without declaration, any share change is unclassifiable.",
			len(missing), strings.Join(missing, ", "),
		)
	case !withinUnity(m.WeightSum, m.Thresholds.UnityTolerance):
		res.Status = types.StatusPartial
		res.Detail = fmt.Sprintf(
			"All elements declared but weight sum = %.4f. "+
				"Declared weights must also satisfy the unity constraint.",
			m.WeightSum,
		)
	default:
		res.Status = types.StatusPass
		res.Detail = fmt.Sprintf(
			"All %d elements have declared weights. Weight sum = %.4f. "+
				"Self-referential reference is established.",
			len(m.Elements), m.WeightSum,
		)
	}
	return res
}

// ── T3 Drift classification ─────────────────────────────────────────────────

// DriftRule requires every significant gap to carry a trace.
type DriftRule struct{}

func (DriftRule) ID() types.TestID { return types.TestDrift }
func (DriftRule) Name() string     { return "DRIFT CLASSIFICATION" }

func (r DriftRule) Evaluate(m *Metrics) types.TestResult {
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: fmt.Sprintf("Every significant share gap (>=%s points) between observed share "+
			"and declared weight must be classified as intentional (traced to a decision) or "+
			"silent (no trace entry). Unclassified drift is the primary failure mode this "+
			"diagnostic is designed to detect.", points(m.Thresholds.DriftThreshold)),
		Vocabulary: []string{"silent drift", "intentional reweighting", "trace", "declared weight"},
		Payload: types.DriftPayload{
			Items:       cloneDrift(m.DriftItems),
			Significant: cloneDrift(m.SignificantDrift),
			Untraced:    cloneDrift(m.UntracedDrift),
		},
	}

	switch {
	case len(m.SignificantDrift) == 0:
		res.Status = types.StatusPass
		res.Detail = fmt.Sprintf(
			"No significant drift detected. All elements within %s points of declared weight. "+
				"System is near ground state.",
			points(m.Thresholds.DriftThreshold),
		)
	case len(m.UntracedDrift) == 0:
		res.Status = types.StatusPartial
		res.Detail = fmt.Sprintf(
			"%d drift item(s) detected, all classified as intentional reweighting with trace entries. "+
				"Drift is visible and accountable.",
			len(m.SignificantDrift),
		)
	default:
		res.Status = types.StatusFail
		var b strings.Builder
		fmt.Fprintf(&b, "%d SILENT DRIFT item(s) detected:", len(m.UntracedDrift))
		for _, d := range m.UntracedDrift {
			fmt.Fprintf(&b, "\n  %s: observed %.1f%% vs declared %.1f%% (gap: %+.1fpp), NO TRACE",
				d.Name, d.Share*100, d.Declared*100, d.Gap*100)
		}
		res.Detail = b.String()
	}
	return res
}

// ── T4 Concentration ────────────────────────────────────────────────────────

// ConcentrationRule flags portfolios whose PROOF line is covered by a small
// minority of elements.
type ConcentrationRule struct{}

func (ConcentrationRule) ID() types.TestID { return types.TestConcentration }
func (ConcentrationRule) Name() string     { return "CONCENTRATION DETECTION" }

func (r ConcentrationRule) Evaluate(m *Metrics) types.TestResult {
	n := len(m.Elements)
	limit := int(math.Floor(float64(n) * m.Thresholds.ConcentrationMinority))
	if limit < 1 {
		limit = 1
	}
	exempt := n <= m.Thresholds.ConcentrationExemptSize
	concentrated := m.ProofCount <= limit && !exempt

	coverage := fmt.Sprintf("%.0f%%", m.Thresholds.ConcentrationCoverage*100)
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "Measures how many elements cover " + coverage + " of total share (PROOF line). " +
			"A healthy portfolio distributes mass according to declared weights. Concentration " +
			"means a small number of elements are dominating the budget ceiling.",
		Vocabulary: []string{"concentration", "share", "silent reweighting", "budget ceiling"},
		Payload: types.ConcentrationPayload{
			ProofCount:    m.ProofCount,
			TotalElements: n,
			MinorityLimit: limit,
			Exempt:        exempt,
		},
	}

	headline := fmt.Sprintf("PROOF line: %d of %d elements cover %s share.", m.ProofCount, n, coverage)
	if concentrated {
		res.Status = types.StatusFlag
		res.Detail = fmt.Sprintf(
			"%s\nCONCENTRATION DETECTED: %d element(s) hold the majority of portfolio share. "+
				"Compare to declared weights: is this intentional? "+
				"Check for silent reweighting toward dominant elements.",
			headline, m.ProofCount,
		)
	} else {
		res.Status = types.StatusPass
		res.Detail = headline + "\nDistribution appears consistent with portfolio size. " +
			"No concentration anomaly detected."
	}
	return res
}

// ── T5 Fragmentation ────────────────────────────────────────────────────────

// FragmentationRule flags elements declared above the functional threshold
// that receive less than it.
type FragmentationRule struct{}

func (FragmentationRule) ID() types.TestID { return types.TestFragmentation }
func (FragmentationRule) Name() string     { return "FRAGMENTATION DETECTION" }

func (r FragmentationRule) Evaluate(m *Metrics) types.TestResult {
	threshold := m.FragmentationThreshold
	var fragmented []types.Element
	for _, e := range m.Elements {
		if e.Share.Float() < threshold && e.DeclaredWeight.Float() >= threshold {
			fragmented = append(fragmented, e)
		}
	}

	names := make([]string, 0, len(fragmented))
	for _, e := range fragmented {
		names = append(names, e.Name)
	}

	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "Elements with share far below their declared weight may be too fragmented to " +
			"function effectively. The reciprocal reading of the unity constraint makes " +
			"fragmentation visible on the same instrument as concentration.",
		Vocabulary: []string{"fragmentation", "share", "declared weight"},
		Payload:    types.FragmentationPayload{Threshold: threshold, Fragmented: names},
	}

	if len(fragmented) == 0 {
		res.Status = types.StatusPass
		res.Detail = "No fragmentation detected. All elements above functional threshold " +
			"relative to declared weights."
		return res
	}

	res.Status = types.StatusFlag
	var b strings.Builder
	fmt.Fprintf(&b, "%d element(s) below functional threshold (< %.1f%% share):", len(fragmented), threshold*100)
	for _, e := range fragmented {
		fmt.Fprintf(&b, "\n  %s: %.1f%% observed vs %.1f%% declared",
			e.Name, e.Share.Float()*100, e.DeclaredWeight.Float()*100)
	}
	b.WriteString("\nThese elements may be receiving insufficient allocation to operate at declared priority.")
	res.Detail = b.String()
	return res
}

// ── T6 Cross-cycle observation ──────────────────────────────────────────────

// ObservationRule requires enough cycles to separate phase from contribution.
type ObservationRule struct{}

func (ObservationRule) ID() types.TestID { return types.TestObservation }
func (ObservationRule) Name() string     { return "CROSS-CYCLE OBSERVATION" }

func (r ObservationRule) Evaluate(m *Metrics) types.TestResult {
	n := m.CycleCount
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: fmt.Sprintf("At least %d cycles are required to distinguish phase from contribution. "+
			"A single snapshot cannot detect silent drift: drift is a change in ratio state "+
			"across cycles, not a property of any single observation.", m.Thresholds.MinCycles),
		Vocabulary: []string{"cycle", "phase", "characteristic period", "silent drift"},
		Payload:    types.ObservationPayload{CycleCount: n},
	}

	if n >= m.Thresholds.MinCycles {
		res.Status = types.StatusPass
		res.Detail = fmt.Sprintf(
			"%d cycle(s) on record. Cross-cycle comparison is available. Phase can be "+
				"distinguished from contribution for elements with characteristic periods <= %d cycle(s).",
			n, n,
		)
		return res
	}

	res.Status = types.StatusFail
	observed := "Single cycle only. This is a snapshot."
	if n != 1 {
		observed = fmt.Sprintf("%d cycle(s) on record.", n)
	}
	res.Detail = fmt.Sprintf(
		"%s Snapshot observation cannot detect silent drift, cannot distinguish phase from "+
			"contribution, and cannot identify correction oscillation. Minimum requirement: %d cycles.",
		observed, m.Thresholds.MinCycles,
	)
	return res
}

// ── T7 Characteristic periods ───────────────────────────────────────────────

// PeriodRule checks that every element declares a characteristic period.
type PeriodRule struct{}

func (PeriodRule) ID() types.TestID { return types.TestPeriods }
func (PeriodRule) Name() string     { return "CHARACTERISTIC PERIODS" }

func (r PeriodRule) Evaluate(m *Metrics) types.TestResult {
	missing := cloneNames(m.MissingPeriods)
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "Each element should have a declared characteristic period, the time required " +
			"to see its full contribution. Elements observed for less than one full characteristic " +
			"period are susceptible to the phase misread failure mode.",
		Vocabulary: []string{"characteristic period", "phase", "ratio blindness"},
		Payload:    types.PeriodPayload{Missing: missing},
	}

	switch {
	case len(missing) == 0:
		res.Status = types.StatusPass
		res.Detail = fmt.Sprintf(
			"All %d elements have declared characteristic periods. Phase misread risk is quantifiable.",
			len(m.Elements),
		)
		return res
	case len(missing) < len(m.Elements):
		res.Status = types.StatusPartial
	default:
		res.Status = types.StatusFail
	}
	res.Detail = fmt.Sprintf(
		"%d element(s) missing characteristic periods: %s. These elements cannot be assessed "+
			"for phase misread risk. High-value, low-frequency contributors are most susceptible.",
		len(missing), strings.Join(missing, ", "),
	)
	return res
}

// ── T8 Ground state ─────────────────────────────────────────────────────────

// GroundStateRule grades the mean drift between observed shares and
// declared weights.
type GroundStateRule struct{}

func (GroundStateRule) ID() types.TestID { return types.TestGroundState }
func (GroundStateRule) Name() string     { return "GROUND STATE ASSESSMENT" }

func (r GroundStateRule) Evaluate(m *Metrics) types.TestResult {
	mean := m.MeanDrift
	res := types.TestResult{
		ID:   r.ID(),
		Name: r.Name(),
		Description: "Ground state is reached when observed shares match declared weights across all " +
			"elements and the change log shows no silent drift. It is the ratio state in which " +
			"the system's behavior matches its declared intent.",
		Vocabulary: []string{"ground state", "declared weight", "ratio state", "silent drift"},
		Payload:    types.GroundStatePayload{MeanDrift: mean, Balanced: m.Balanced()},
	}

	headline := fmt.Sprintf("Mean drift gap = %.1fpp.", mean*100)
	switch {
	case mean < m.Thresholds.GroundStatePass:
		res.Status = types.StatusPass
		res.Detail = headline + " System is at or near ground state. Ratio state matches declared intent."
		return res
	case mean < m.Thresholds.GroundStatePartial:
		res.Status = types.StatusPartial
		res.Detail = headline + " System is approaching ground state but drift remains."
	default:
		res.Status = types.StatusFail
		res.Detail = headline + " System is not at ground state."
	}
	res.Detail += " The gap between declared weights and observed shares represents the " +
		"accumulated distance from self-governing condition."
	return res
}

// points renders a fraction as percentage points, e.g. 0.05 -> "5".
func points(fraction float64) string {
	return fmt.Sprintf("%g", math.Round(fraction*10000)/100)
}

// cloneDrift and cloneNames return fresh, non-nil copies so payload lists
// encode as [] rather than null.
func cloneDrift(in []types.DriftItem) []types.DriftItem {
	out := make([]types.DriftItem, len(in))
	copy(out, in)
	return out
}

func cloneNames(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
