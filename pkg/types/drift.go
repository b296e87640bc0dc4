package types

import "math"

// DriftLabel classifies one row of the drift table.
type DriftLabel string

const (
	DriftAligned     DriftLabel = "ALIGNED"
	DriftIntentional DriftLabel = "INTENTIONAL"
	DriftSilent      DriftLabel = "SILENT DRIFT"
)

// LeverageFlag buckets an element's leverage (1/share).
type LeverageFlag string

const (
	LeverageHigh      LeverageFlag = "High"
	LeverageMedium    LeverageFlag = "Medium"
	LeverageLow       LeverageFlag = "Low"
	LeverageUndefined LeverageFlag = "Undefined"
)

// DriftItem is the derived per-element comparison of observed share against
// declared weight. Gap is Share - Declared.
type DriftItem struct {
	Name     string  `json:"name"`
	Share    float64 `json:"share"`
	Declared float64 `json:"declared"`
	Gap      float64 `json:"gap"`
	Traced   bool    `json:"traced"`

	// Leverage is 1/Share; 0 when Share <= 0 (LeverageFlag is then Undefined).
	Leverage     float64      `json:"leverage"`
	LeverageFlag LeverageFlag `json:"leverage_flag"`
}

// Significant reports whether |Gap| >= threshold.
func (d DriftItem) Significant(threshold float64) bool {
	return math.Abs(d.Gap) >= threshold
}

// Label returns the drift-table label for the row under the given
// significance threshold.
func (d DriftItem) Label(threshold float64) DriftLabel {
	switch {
	case !d.Significant(threshold):
		return DriftAligned
	case d.Traced:
		return DriftIntentional
	default:
		return DriftSilent
	}
}
