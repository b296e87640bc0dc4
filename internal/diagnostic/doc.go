// Package diagnostic evaluates a portfolio System against the fixed battery
// of eight consistency tests and folds the results into a compliance verdict.
//
// metrics.go derives the shared figures once per evaluation: share and weight
// sums, per-element drift, the concentration ranking (PROOF line), the
// fragmentation threshold and the mean drift.
//
// rules.go holds one Rule per test, T1 Unity through T8 Ground State. Each
// rule reads only the Metrics and never another rule's outcome, so any rule
// can be exercised on its own with NewMetrics.
//
// aggregate.go counts statuses and computes the compliant and capable flags.
//
// engine.go ties these together. Evaluate is a pure function: it keeps no
// state, reads no clock and returns a freshly allocated Report, so an Engine
// may be shared between goroutines.
//
// All numeric limits live in Thresholds; DefaultThresholds returns the
// reference values (unity tolerance 0.011, drift 0.05, coverage 0.90, ...).
package diagnostic
