package diagnostic

import (
	"math"
	"sort"

	"github.com/roguewave/hufcheck/pkg/types"
)

// RankedShare is one entry of the concentration ranking.
type RankedShare struct {
	Name  string
	Share float64
}

// Metrics holds the figures every rule reads. It is computed once per
// evaluation by NewMetrics and treated as read-only afterwards.
type Metrics struct {
	Thresholds Thresholds

	Elements   []types.Element
	CycleCount int

	ShareSum  float64
	WeightSum float64

	DriftItems       []types.DriftItem
	SignificantDrift []types.DriftItem
	UntracedDrift    []types.DriftItem

	// Ranking is the elements sorted by share, largest first.
	Ranking []RankedShare
	// ProofCount is how many ranked elements it takes to reach
	// Thresholds.ConcentrationCoverage of cumulative share.
	ProofCount int

	// FragmentationThreshold is 1/(n x divisor); +Inf when n is 0.
	FragmentationThreshold float64

	// MeanDrift is the summed |gap| halved.
	MeanDrift float64

	MissingWeights []string
	MissingPeriods []string
}

// NewMetrics derives the shared metrics for sys under th.
// The element slice is copied; sys is never modified.
func NewMetrics(sys types.System, th Thresholds) *Metrics {
	m := &Metrics{
		Thresholds: th,
		Elements:   append([]types.Element(nil), sys.Elements...),
		CycleCount: len(sys.Cycles),
	}

	m.DriftItems = make([]types.DriftItem, 0, len(m.Elements))
	var absGap float64
	for _, e := range m.Elements {
		share := e.Share.Float()
		declared := e.DeclaredWeight.Float()
		m.ShareSum = clamp(m.ShareSum + share)
		m.WeightSum = clamp(m.WeightSum + declared)

		if !e.DeclaredWeight.Present() {
			m.MissingWeights = append(m.MissingWeights, e.Name)
		}
		if !e.CharacteristicPeriod.Present() {
			m.MissingPeriods = append(m.MissingPeriods, e.Name)
		}

		d := types.DriftItem{
			Name:     e.Name,
			Share:    share,
			Declared: declared,
			Gap:      clamp(share - declared),
			Traced:   e.Traced,
		}
		d.Leverage, d.LeverageFlag = leverage(share, th)
		m.DriftItems = append(m.DriftItems, d)
		absGap = clamp(absGap + math.Abs(d.Gap))

		if d.Significant(th.DriftThreshold) {
			m.SignificantDrift = append(m.SignificantDrift, d)
			if !d.Traced {
				m.UntracedDrift = append(m.UntracedDrift, d)
			}
		}
	}
	m.MeanDrift = absGap / 2

	m.Ranking = make([]RankedShare, len(m.Elements))
	for i, e := range m.Elements {
		m.Ranking[i] = RankedShare{Name: e.Name, Share: e.Share.Float()}
	}
	sort.SliceStable(m.Ranking, func(i, j int) bool {
		return m.Ranking[i].Share > m.Ranking[j].Share
	})
	var cumulative float64
	for _, r := range m.Ranking {
		cumulative += r.Share
		m.ProofCount++
		if cumulative >= th.ConcentrationCoverage {
			break
		}
	}

	m.FragmentationThreshold = 1 / (float64(len(m.Elements)) * th.FragmentationDivisor)
	return m
}

// Balanced reports whether both the share sum and the weight sum sit within
// the unity tolerance, which is what the mean drift halving assumes.
func (m *Metrics) Balanced() bool {
	return withinUnity(m.ShareSum, m.Thresholds.UnityTolerance) &&
		withinUnity(m.WeightSum, m.Thresholds.UnityTolerance)
}

func withinUnity(sum, tolerance float64) bool {
	return math.Abs(sum-1) < tolerance
}

// clamp keeps sums and gaps of extreme inputs finite so a Report always
// encodes.
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxFloat64:
		return math.MaxFloat64
	case v < -math.MaxFloat64:
		return -math.MaxFloat64
	}
	return v
}

// leverage returns 1/share and its band. Shares so small that 1/share
// overflows are Undefined like zero shares.
func leverage(share float64, th Thresholds) (float64, types.LeverageFlag) {
	if share <= 0 {
		return 0, types.LeverageUndefined
	}
	l := 1 / share
	if math.IsInf(l, 0) {
		return 0, types.LeverageUndefined
	}
	switch {
	case l > th.LeverageHigh:
		return l, types.LeverageHigh
	case l >= th.LeverageMedium:
		return l, types.LeverageMedium
	default:
		return l, types.LeverageLow
	}
}
