package types

// TestResult is the outcome of one rule.
type TestResult struct {
	ID          TestID   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Detail      string   `json:"detail"`
	Vocabulary  []string `json:"vocabulary"`
	Payload     Payload  `json:"payload"`
}

// Summary is the aggregate over all test results.
type Summary struct {
	Passes       int  `json:"passes"`
	Fails        int  `json:"fails"`
	Flags        int  `json:"flags"` // FLAG and PARTIAL combined
	HufCompliant bool `json:"huf_compliant"`
	HufCapable   bool `json:"huf_capable"`
	TotalTests   int  `json:"total_tests"`
}

// Verdict is the three-tier reading of a Summary.
type Verdict string

const (
	VerdictCompliant    Verdict = "compliant"
	VerdictCapable      Verdict = "capable"
	VerdictNonCompliant Verdict = "noncompliant"
)

// Verdict returns the best tier the summary reaches. Compliant wins over
// capable when both flags are set.
func (s Summary) Verdict() Verdict {
	switch {
	case s.HufCompliant:
		return VerdictCompliant
	case s.HufCapable:
		return VerdictCapable
	default:
		return VerdictNonCompliant
	}
}

// Banner returns the headline shown for the verdict.
func (v Verdict) Banner() string {
	switch v {
	case VerdictCompliant:
		return "HUF COMPLIANT"
	case VerdictCapable:
		return "HUF CAPABLE: REMEDIATION REQUIRED"
	default:
		return "NON-COMPLIANT: RATIO BLINDNESS DETECTED"
	}
}

// ParseVerdict accepts the lower-case verdict names.
func ParseVerdict(text string) (Verdict, bool) {
	switch v := Verdict(text); v {
	case VerdictCompliant, VerdictCapable, VerdictNonCompliant:
		return v, true
	}
	return "", false
}

// Report is the full output of one evaluation.
type Report struct {
	System     string       `json:"system,omitempty"`
	Results    []TestResult `json:"results"`
	Summary    Summary      `json:"summary"`
	DriftItems []DriftItem  `json:"drift_items"`
}

// Result returns the result with the given id.
func (r Report) Result(id TestID) (TestResult, bool) {
	for _, res := range r.Results {
		if res.ID == id {
			return res, true
		}
	}
	return TestResult{}, false
}
