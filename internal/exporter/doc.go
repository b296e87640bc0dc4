// Package exporter exposes diagnostic reports as Prometheus metrics.
//
// Collector implements prometheus.Collector over a fixed set of reports. All
// series carry a system label:
//
//	huf_test_status{id,name,status}   one-hot over PASS, FAIL, FLAG, PARTIAL
//	huf_summary_tests{outcome}        pass, fail and flag tallies
//	huf_compliant, huf_capable        1 or 0
//	huf_share_sum, huf_weight_sum     T1 and T2 sums
//	huf_mean_drift                    T8 mean drift
//	huf_proof_elements                T4 PROOF line size
//	huf_element_share{element}        per-element observed share
//	huf_element_declared_weight{element}
//	huf_element_gap{element}
//	huf_element_silent_drift{element} 1 for significant untraced drift
//
// Repeated system or element names get a #2, #3 suffix so series stay unique.
//
// WriteText encodes the families in the text exposition format and
// WriteTextfile writes them atomically for the node-exporter textfile
// collector.
package exporter
