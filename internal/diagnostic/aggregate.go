package diagnostic

import "github.com/roguewave/hufcheck/pkg/types"

// Summarize counts results by status and derives the verdict flags.
//
//	compliant = fails == 0 && flags <= CompliantMaxFlags
//	capable   = fails <= CapableMaxFails
//
// FLAG and PARTIAL both count as flags. The two booleans are independent;
// a compliant summary is normally also capable.
func Summarize(results []types.TestResult, th Thresholds) types.Summary {
	s := types.Summary{TotalTests: len(results)}
	for _, r := range results {
		switch {
		case r.Status == types.StatusPass:
			s.Passes++
		case r.Status == types.StatusFail:
			s.Fails++
		case r.Status.IsFlag():
			s.Flags++
		}
	}
	s.HufCompliant = s.Fails == 0 && s.Flags <= th.CompliantMaxFlags
	s.HufCapable = s.Fails <= th.CapableMaxFails
	return s
}
