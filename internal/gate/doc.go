// Package gate decides whether a diagnostic report is good enough to pass a
// pipeline step.
//
// A Gate pairs a name with a condition of the form "field operator value":
//
//	fails == 0
//	flags <= 1
//	mean_drift < 0.05
//	silent_drift == 0
//	verdict == compliant
//	T6 != FAIL
//
// Numeric fields: passes, fails, flags, share_sum, weight_sum, mean_drift,
// proof_count, silent_drift, elements, cycles. They accept > >= < <= == !=.
// verdict compares against compliant, capable or noncompliant, and T1..T8
// against PASS, FAIL, FLAG or PARTIAL; both accept only == and !=.
//
// A gate passes when its condition holds. With no gates configured Evaluate
// applies Default, which rejects a non-compliant report.
package gate
