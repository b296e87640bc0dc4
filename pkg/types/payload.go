package types

// TestID identifies one of the eight rules.
type TestID string

const (
	TestUnity         TestID = "T1"
	TestDeclaration   TestID = "T2"
	TestDrift         TestID = "T3"
	TestConcentration TestID = "T4"
	TestFragmentation TestID = "T5"
	TestObservation   TestID = "T6"
	TestPeriods       TestID = "T7"
	TestGroundState   TestID = "T8"
)

// TestIDs lists the rule identifiers in execution order.
func TestIDs() []TestID {
	return []TestID{
		TestUnity, TestDeclaration, TestDrift, TestConcentration,
		TestFragmentation, TestObservation, TestPeriods, TestGroundState,
	}
}

// Payload is the rule-specific part of a TestResult. The set of
// implementations is closed; switch on the concrete type to handle each rule.
type Payload interface {
	TestID() TestID
	payload()
}

// Direction says on which side of the budget ceiling the share sum lies.
type Direction string

const (
	DirectionBalanced Direction = "balanced"
	DirectionSurplus  Direction = "surplus"
	DirectionDeficit  Direction = "deficit"
)

// UnityPayload accompanies T1.
type UnityPayload struct {
	ShareSum  float64   `json:"share_sum"`
	Gap       float64   `json:"gap"` // |1 - ShareSum|
	Direction Direction `json:"direction"`
}

// DeclarationPayload accompanies T2.
type DeclarationPayload struct {
	WeightSum float64  `json:"weight_sum"`
	Missing   []string `json:"missing"`
}

// DriftPayload accompanies T3.
type DriftPayload struct {
	Items       []DriftItem `json:"items"`
	Significant []DriftItem `json:"significant"`
	Untraced    []DriftItem `json:"untraced"`
}

// ConcentrationPayload accompanies T4.
type ConcentrationPayload struct {
	ProofCount    int  `json:"proof_count"`
	TotalElements int  `json:"total_elements"`
	MinorityLimit int  `json:"minority_limit"`
	Exempt        bool `json:"exempt"`
}

// FragmentationPayload accompanies T5.
type FragmentationPayload struct {
	Threshold  float64  `json:"threshold"`
	Fragmented []string `json:"fragmented"`
}

// ObservationPayload accompanies T6.
type ObservationPayload struct {
	CycleCount int `json:"cycle_count"`
}

// PeriodPayload accompanies T7.
type PeriodPayload struct {
	Missing []string `json:"missing"`
}

// GroundStatePayload accompanies T8.
//
// MeanDrift halves the summed absolute gaps, which only equals the one-sided
// drift when both share and weight sums are 1. Balanced records whether that
// held for this input.
type GroundStatePayload struct {
	MeanDrift float64 `json:"mean_drift"`
	Balanced  bool    `json:"balanced"`
}

func (UnityPayload) TestID() TestID         { return TestUnity }
func (DeclarationPayload) TestID() TestID   { return TestDeclaration }
func (DriftPayload) TestID() TestID         { return TestDrift }
func (ConcentrationPayload) TestID() TestID { return TestConcentration }
func (FragmentationPayload) TestID() TestID { return TestFragmentation }
func (ObservationPayload) TestID() TestID   { return TestObservation }
func (PeriodPayload) TestID() TestID        { return TestPeriods }
func (GroundStatePayload) TestID() TestID   { return TestGroundState }

func (UnityPayload) payload()         {}
func (DeclarationPayload) payload()   {}
func (DriftPayload) payload()         {}
func (ConcentrationPayload) payload() {}
func (FragmentationPayload) payload() {}
func (ObservationPayload) payload()   {}
func (PeriodPayload) payload()        {}
func (GroundStatePayload) payload()   {}
