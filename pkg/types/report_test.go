package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatus_Text(t *testing.T) {
	for _, s := range Statuses() {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back Status
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", b, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %s -> %v", s, b, back)
		}
	}

	var zero Status
	if zero.Valid() {
		t.Error("zero Status is valid")
	}
	if _, err := zero.MarshalText(); err == nil {
		t.Error("expected error marshalling zero Status")
	}
	if _, err := ParseStatus("PASSED"); err == nil {
		t.Error("expected error parsing unknown status")
	}
}

func TestStatus_IsFlag(t *testing.T) {
	want := map[Status]bool{StatusPass: false, StatusFail: false, StatusFlag: true, StatusPartial: true}
	for s, w := range want {
		if s.IsFlag() != w {
			t.Errorf("%s.IsFlag() = %v, want %v", s, s.IsFlag(), w)
		}
	}
}

func TestDriftItem_Label(t *testing.T) {
	tests := []struct {
		name string
		item DriftItem
		want DriftLabel
	}{
		{"small gap", DriftItem{Gap: 0.01}, DriftAligned},
		{"negative small gap", DriftItem{Gap: -0.049}, DriftAligned},
		{"traced drift", DriftItem{Gap: 0.1, Traced: true}, DriftIntentional},
		{"silent drift", DriftItem{Gap: -0.1}, DriftSilent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Label(0.05); got != tc.want {
				t.Errorf("Label = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSummary_Verdict(t *testing.T) {
	tests := []struct {
		s    Summary
		want Verdict
	}{
		{Summary{HufCompliant: true, HufCapable: true}, VerdictCompliant},
		{Summary{HufCapable: true}, VerdictCapable},
		{Summary{}, VerdictNonCompliant},
	}
	for _, tc := range tests {
		if got := tc.s.Verdict(); got != tc.want {
			t.Errorf("%+v.Verdict() = %s, want %s", tc.s, got, tc.want)
		}
		if tc.want.Banner() == "" {
			t.Errorf("%s has no banner", tc.want)
		}
	}
	if _, ok := ParseVerdict("capable"); !ok {
		t.Error("ParseVerdict(capable) failed")
	}
	if _, ok := ParseVerdict("Compliant"); ok {
		t.Error("ParseVerdict is case sensitive")
	}
}

func TestReport_JSON(t *testing.T) {
	r := Report{
		System: "demo",
		Results: []TestResult{{
			ID:      TestObservation,
			Name:    "CROSS-CYCLE OBSERVATION",
			Status:  StatusFail,
			Payload: ObservationPayload{CycleCount: 1},
		}},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"status":"FAIL"`, `"id":"T6"`, `"cycle_count":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}

	if _, ok := r.Result(TestObservation); !ok {
		t.Error("Result(T6) not found")
	}
	if _, ok := r.Result(TestUnity); ok {
		t.Error("Result(T1) found in a report without it")
	}
}
