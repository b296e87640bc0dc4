package diagnostic

import "fmt"

// Reference values for the test battery.
const (
	DefaultUnityTolerance          = 0.011
	DefaultDriftThreshold          = 0.05
	DefaultConcentrationCoverage   = 0.90
	DefaultConcentrationMinority   = 0.25
	DefaultConcentrationExemptSize = 3
	DefaultFragmentationDivisor    = 3.0
	DefaultMinCycles               = 2
	DefaultGroundStatePass         = 0.05
	DefaultGroundStatePartial      = 0.15
	DefaultCompliantMaxFlags       = 1
	DefaultCapableMaxFails         = 1
	DefaultLeverageHigh            = 100.0
	DefaultLeverageMedium          = 10.0
)

// Thresholds holds every limit the rules and the aggregator compare against.
// Field names map 1:1 to the thresholds block of the tool config.
type Thresholds struct {
	// UnityTolerance is the allowed |sum - 1| for share and weight sums (T1, T2).
	UnityTolerance float64 `yaml:"unity_tolerance"`

	// DriftThreshold is the |gap| at which drift becomes significant (T3, T8 rows).
	DriftThreshold float64 `yaml:"drift_threshold"`

	// ConcentrationCoverage is the cumulative share that closes the PROOF line (T4).
	ConcentrationCoverage float64 `yaml:"concentration_coverage"`

	// ConcentrationMinority is the fraction of elements below which a PROOF
	// line counts as concentrated (T4).
	ConcentrationMinority float64 `yaml:"concentration_minority"`

	// ConcentrationExemptSize: portfolios with at most this many elements
	// always pass T4.
	ConcentrationExemptSize int `yaml:"concentration_exempt_size"`

	// FragmentationDivisor sets the T5 threshold to 1/(n x divisor).
	FragmentationDivisor float64 `yaml:"fragmentation_divisor"`

	// MinCycles is the number of cycles T6 requires.
	MinCycles int `yaml:"min_cycles"`

	// GroundStatePass and GroundStatePartial bound the T8 mean drift bands.
	GroundStatePass    float64 `yaml:"ground_state_pass"`
	GroundStatePartial float64 `yaml:"ground_state_partial"`

	// CompliantMaxFlags and CapableMaxFails drive the summary verdict.
	CompliantMaxFlags int `yaml:"compliant_max_flags"`
	CapableMaxFails   int `yaml:"capable_max_fails"`

	// LeverageHigh and LeverageMedium bucket 1/share on drift items.
	LeverageHigh   float64 `yaml:"leverage_high"`
	LeverageMedium float64 `yaml:"leverage_medium"`
}

// DefaultThresholds returns the reference thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UnityTolerance:          DefaultUnityTolerance,
		DriftThreshold:          DefaultDriftThreshold,
		ConcentrationCoverage:   DefaultConcentrationCoverage,
		ConcentrationMinority:   DefaultConcentrationMinority,
		ConcentrationExemptSize: DefaultConcentrationExemptSize,
		FragmentationDivisor:    DefaultFragmentationDivisor,
		MinCycles:               DefaultMinCycles,
		GroundStatePass:         DefaultGroundStatePass,
		GroundStatePartial:      DefaultGroundStatePartial,
		CompliantMaxFlags:       DefaultCompliantMaxFlags,
		CapableMaxFails:         DefaultCapableMaxFails,
		LeverageHigh:            DefaultLeverageHigh,
		LeverageMedium:          DefaultLeverageMedium,
	}
}

// Validate checks that every threshold is usable.
func (t Thresholds) Validate() error {
	switch {
	case t.UnityTolerance <= 0:
		return fmt.Errorf("unity_tolerance must be positive")
	case t.DriftThreshold <= 0:
		return fmt.Errorf("drift_threshold must be positive")
	case t.ConcentrationCoverage <= 0 || t.ConcentrationCoverage > 1:
		return fmt.Errorf("concentration_coverage must be in (0, 1]")
	case t.ConcentrationMinority <= 0 || t.ConcentrationMinority > 1:
		return fmt.Errorf("concentration_minority must be in (0, 1]")
	case t.ConcentrationExemptSize < 0:
		return fmt.Errorf("concentration_exempt_size must not be negative")
	case t.FragmentationDivisor <= 0:
		return fmt.Errorf("fragmentation_divisor must be positive")
	case t.MinCycles < 1:
		return fmt.Errorf("min_cycles must be at least 1")
	case t.GroundStatePass <= 0:
		return fmt.Errorf("ground_state_pass must be positive")
	case t.GroundStatePartial < t.GroundStatePass:
		return fmt.Errorf("ground_state_partial (%g) must not be below ground_state_pass (%g)",
			t.GroundStatePartial, t.GroundStatePass)
	case t.CompliantMaxFlags < 0:
		return fmt.Errorf("compliant_max_flags must not be negative")
	case t.CapableMaxFails < 0:
		return fmt.Errorf("capable_max_fails must not be negative")
	case t.LeverageMedium <= 0 || t.LeverageHigh <= t.LeverageMedium:
		return fmt.Errorf("leverage bands need 0 < leverage_medium < leverage_high")
	}
	return nil
}
