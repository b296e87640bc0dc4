package exporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roguewave/hufcheck/pkg/types"
)

const namespace = "huf"

var (
	testStatusDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "test_status"),
		"1 for the status each test reported, 0 for the others.",
		[]string{"system", "id", "name", "status"}, nil,
	)
	summaryTestsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "summary", "tests"),
		"Number of tests per outcome (flag includes PARTIAL).",
		[]string{"system", "outcome"}, nil,
	)
	compliantDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "compliant"),
		"1 when the system is HUF compliant.",
		[]string{"system"}, nil,
	)
	capableDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "capable"),
		"1 when the system is HUF capable.",
		[]string{"system"}, nil,
	)
	shareSumDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "share_sum"),
		"Sum of observed shares.",
		[]string{"system"}, nil,
	)
	weightSumDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "weight_sum"),
		"Sum of declared weights.",
		[]string{"system"}, nil,
	)
	meanDriftDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "mean_drift"),
		"Mean drift between observed shares and declared weights.",
		[]string{"system"}, nil,
	)
	proofCountDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "proof", "elements"),
		"Number of elements needed to cover the PROOF line.",
		[]string{"system"}, nil,
	)
	elementShareDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "element", "share"),
		"Observed share of the budget ceiling.",
		[]string{"system", "element"}, nil,
	)
	elementDeclaredDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "element", "declared_weight"),
		"Declared target weight.",
		[]string{"system", "element"}, nil,
	)
	elementGapDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "element", "gap"),
		"Observed share minus declared weight.",
		[]string{"system", "element"}, nil,
	)
	elementSilentDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "element", "silent_drift"),
		"1 when the element drifts significantly without a trace.",
		[]string{"system", "element"}, nil,
	)
)

// Collector exports a fixed set of reports. A system or element name that
// repeats is exported as name#2, name#3 and so on, in report and element order.
type Collector struct {
	reports []types.Report
}

// NewCollector returns a Collector over reports.
func NewCollector(reports ...types.Report) *Collector {
	return &Collector{reports: reports}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		testStatusDesc, summaryTestsDesc, compliantDesc, capableDesc,
		shareSumDesc, weightSumDesc, meanDriftDesc, proofCountDesc,
		elementShareDesc, elementDeclaredDesc, elementGapDesc, elementSilentDesc,
	} {
		ch <- d
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	systems := labelSet{}
	for _, r := range c.reports {
		collectReport(ch, r, systems.unique(r.System))
	}
}

// labelSet hands out label values that have not been used before.
type labelSet map[string]bool

func (s labelSet) unique(name string) string {
	v := name
	for n := 2; s[v]; n++ {
		v = fmt.Sprintf("%s#%d", name, n)
	}
	s[v] = true
	return v
}

func collectReport(ch chan<- prometheus.Metric, r types.Report, sys string) {
	gauge := func(desc *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, append([]string{sys}, labels...)...)
	}

	var (
		shareSum, weightSum, meanDrift float64
		proofCount                     int
		untraced                       []types.DriftItem
	)
	for _, res := range r.Results {
		for _, s := range types.Statuses() {
			gauge(testStatusDesc, boolValue(res.Status == s), string(res.ID), res.Name, s.String())
		}
		switch p := res.Payload.(type) {
		case types.UnityPayload:
			shareSum = p.ShareSum
		case types.DeclarationPayload:
			weightSum = p.WeightSum
		case types.ConcentrationPayload:
			proofCount = p.ProofCount
		case types.DriftPayload:
			untraced = p.Untraced
		case types.GroundStatePayload:
			meanDrift = p.MeanDrift
		}
	}

	gauge(summaryTestsDesc, float64(r.Summary.Passes), "pass")
	gauge(summaryTestsDesc, float64(r.Summary.Fails), "fail")
	gauge(summaryTestsDesc, float64(r.Summary.Flags), "flag")
	gauge(compliantDesc, boolValue(r.Summary.HufCompliant))
	gauge(capableDesc, boolValue(r.Summary.HufCapable))
	gauge(shareSumDesc, shareSum)
	gauge(weightSumDesc, weightSum)
	gauge(meanDriftDesc, meanDrift)
	gauge(proofCountDesc, float64(proofCount))

	// Untraced is an ordered subsequence of DriftItems.
	elements := labelSet{}
	for _, d := range r.DriftItems {
		silent := len(untraced) > 0 && untraced[0] == d
		if silent {
			untraced = untraced[1:]
		}
		name := elements.unique(d.Name)
		gauge(elementShareDesc, d.Share, name)
		gauge(elementDeclaredDesc, d.Declared, name)
		gauge(elementGapDesc, d.Gap, name)
		gauge(elementSilentDesc, boolValue(silent), name)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
