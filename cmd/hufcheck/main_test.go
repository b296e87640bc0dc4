package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const compliantDoc = `
name: balanced
cycles: 2
elements:
  - {name: a, share: 0.25, declared_weight: 0.25, characteristic_period: 4}
  - {name: b, share: 0.25, declared_weight: 0.25, characteristic_period: 4}
  - {name: c, share: 0.25, declared_weight: 0.25, characteristic_period: 4}
  - {name: d, share: 0.25, declared_weight: 0.25, characteristic_period: 4}
`

const snapshotDoc = `{
  "name": "snapshot",
  "cycles": 1,
  "elements": [
    {"name": "a", "share": 0.7, "declared_weight": 0.5, "characteristic_period": 4},
    {"name": "b", "share": 0.3, "declared_weight": 0.5, "characteristic_period": 4}
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout bytes.Buffer
	code := execute(context.Background(), args, &stdout, io.Discard)
	return code, stdout.String()
}

func TestEvaluate_Compliant(t *testing.T) {
	path := writeTemp(t, "balanced.yaml", compliantDoc)

	code, out := run(t, "evaluate", path)
	if code != exitOK {
		t.Fatalf("exit code: got %d, want %d\n%s", code, exitOK, out)
	}

	var got struct {
		Path    string `json:"path"`
		Verdict string `json:"verdict"`
		Report  struct {
			System  string `json:"system"`
			Summary struct {
				Passes int `json:"passes"`
			} `json:"summary"`
		} `json:"report"`
		Gates []struct {
			Passed bool `json:"passed"`
		} `json:"gates"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Path != path || got.Verdict != "compliant" || got.Report.System != "balanced" {
		t.Errorf("output = %+v", got)
	}
	if got.Report.Summary.Passes != 8 {
		t.Errorf("passes: got %d, want 8", got.Report.Summary.Passes)
	}
	if len(got.Gates) != 1 || !got.Gates[0].Passed {
		t.Errorf("gates = %+v, want the default gate passing", got.Gates)
	}
}

func TestEvaluate_DefaultGateFails(t *testing.T) {
	path := writeTemp(t, "snapshot.json", snapshotDoc)

	code, out := run(t, "evaluate", path)
	if code != exitGateFailed {
		t.Fatalf("exit code: got %d, want %d", code, exitGateFailed)
	}
	if !strings.Contains(out, `"verdict": "noncompliant"`) {
		t.Errorf("output missing noncompliant verdict:\n%s", out)
	}
}

func TestEvaluate_ConfiguredGates(t *testing.T) {
	path := writeTemp(t, "snapshot.json", snapshotDoc)
	cfg := writeTemp(t, "hufcheck.yaml", `
log: {level: error}
gates:
  - name: shares-add-up
    condition: "T1 == PASS"
`)

	if code, _ := run(t, "evaluate", "--config", cfg, path); code != exitOK {
		t.Errorf("exit code: got %d, want %d", code, exitOK)
	}
}

func TestEvaluate_MultipleFilesKeepOrder(t *testing.T) {
	a := writeTemp(t, "balanced.yaml", compliantDoc)
	b := writeTemp(t, "snapshot.json", snapshotDoc)

	code, out := run(t, "evaluate", "--jobs", "2", a, b)
	if code != exitGateFailed {
		t.Fatalf("exit code: got %d, want %d", code, exitGateFailed)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var paths []string
	for dec.More() {
		var e struct {
			Path string `json:"path"`
		}
		if err := dec.Decode(&e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		paths = append(paths, e.Path)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("paths = %v, want [%s %s]", paths, a, b)
	}
}

func TestEvaluate_PromFormatAndTextfile(t *testing.T) {
	path := writeTemp(t, "balanced.yaml", compliantDoc)
	textfile := filepath.Join(t.TempDir(), "huf.prom")
	cfg := writeTemp(t, "hufcheck.yaml", "export:\n  textfile: "+textfile+"\n")

	code, out := run(t, "evaluate", "-c", cfg, "--format", "prom", path)
	if code != exitOK {
		t.Fatalf("exit code: got %d, want %d", code, exitOK)
	}
	if !strings.Contains(out, `huf_compliant{system="balanced"} 1`) {
		t.Errorf("prom output missing huf_compliant:\n%s", out)
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `huf_capable{system="balanced"} 1`) {
		t.Errorf("textfile missing huf_capable:\n%s", data)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	good := writeTemp(t, "balanced.yaml", compliantDoc)
	empty := writeTemp(t, "empty.yaml", "elements: []\n")
	badCfg := writeTemp(t, "bad.yaml", "gates:\n  - name: x\n    condition: nonsense\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"evaluate", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"no elements", []string{"evaluate", empty}},
		{"bad config", []string{"evaluate", "--config", badCfg, good}},
		{"missing config", []string{"evaluate", "--config", filepath.Join(t.TempDir(), "nope.yaml"), good}},
		{"unknown format", []string{"evaluate", "--format", "xml", good}},
		{"zero jobs", []string{"evaluate", "--jobs", "0", good}},
		{"no args", []string{"evaluate"}},
		{"unknown flag", []string{"evaluate", "--bogus", good}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code, _ := run(t, tc.args...); code != exitError {
				t.Errorf("exit code: got %d, want %d", code, exitError)
			}
		})
	}
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	path := writeTemp(t, "system.yaml", compliantDoc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan int, 1)
	go func() {
		done <- execute(ctx, []string{"watch", path}, out, io.Discard)
	}()

	waitFor(t, func() bool {
		return strings.Contains(out.String(), "balanced: HUF COMPLIANT")
	})

	// Rewrite until the watcher is registered and picks the change up.
	changed := strings.Replace(compliantDoc, "cycles: 2", "cycles: 1", 1)
	waitFor(t, func() bool {
		if err := os.WriteFile(path, []byte(changed), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		return strings.Contains(out.String(), "balanced: HUF CAPABLE")
	})

	cancel()
	select {
	case code := <-done:
		if code != exitOK {
			t.Errorf("exit code: got %d, want %d", code, exitOK)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	if code, _ := run(t, "watch", filepath.Join(t.TempDir(), "nope.yaml")); code != exitError {
		t.Errorf("exit code: got %d, want %d", code, exitError)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestEvaluate_Testdata(t *testing.T) {
	code, out := run(t, "evaluate", filepath.Join("testdata", "wetlands.yaml"))
	if code != exitOK {
		t.Fatalf("exit code: got %d, want %d\n%s", code, exitOK, out)
	}
	for _, want := range []string{
		`"verdict": "capable"`,
		`"banner": "HUF CAPABLE: REMEDIATION REQUIRED"`,
		`"name": "CHARACTERISTIC PERIODS"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestEvaluate_SameStemInTwoDirectories(t *testing.T) {
	dir := t.TempDir()
	doc := strings.Replace(compliantDoc, "name: balanced\n", "", 1)
	var paths []string
	for _, sub := range []string{"one", "two"} {
		if err := os.Mkdir(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, sub, "sys.yaml")
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	code, out := run(t, append([]string{"evaluate", "--format", "prom"}, paths...)...)
	if code != exitOK {
		t.Fatalf("exit code: got %d, want %d\n%s", code, exitOK, out)
	}
	for _, p := range paths {
		if !strings.Contains(out, `huf_compliant{system="`+p+`"} 1`) {
			t.Errorf("output missing series for %s:\n%s", p, out)
		}
	}
}

func TestEvaluate_RepeatedElementNames(t *testing.T) {
	path := writeTemp(t, "dup.yaml", `
name: dup
cycles: 2
elements:
  - {name: a, share: 0.5, declared_weight: 0.5, characteristic_period: 4}
  - {name: a, share: 0.5, declared_weight: 0.5, characteristic_period: 4}
`)
	textfile := filepath.Join(t.TempDir(), "huf.prom")
	cfg := writeTemp(t, "hufcheck.yaml", "export:\n  textfile: "+textfile+"\n")

	code, out := run(t, "evaluate", "--config", cfg, "--format", "prom", path)
	if code != exitOK {
		t.Fatalf("exit code: got %d, want %d\n%s", code, exitOK, out)
	}
	if !strings.Contains(out, `huf_element_share{element="a#2",system="dup"} 0.5`) {
		t.Errorf("output missing the repeated element:\n%s", out)
	}
	if _, err := os.Stat(textfile); err != nil {
		t.Errorf("textfile not written: %v", err)
	}
}

func TestEvaluate_ExtremeSharesEncode(t *testing.T) {
	path := writeTemp(t, "extreme.json", `{
  "name": "extreme",
  "cycles": 2,
  "elements": [
    {"name": "a", "share": "5e-324", "declared_weight": 0.5, "characteristic_period": 4},
    {"name": "b", "share": "1e308", "declared_weight": 0.5, "characteristic_period": 4},
    {"name": "c", "share": "1e308", "declared_weight": 0.5, "characteristic_period": 4}
  ]
}`)

	code, out := run(t, "evaluate", path)
	if code == exitError {
		t.Fatalf("exit code: got %d, the report should encode\n%s", code, out)
	}
	var got struct {
		Report struct {
			DriftItems []struct {
				Name         string  `json:"name"`
				Leverage     float64 `json:"leverage"`
				LeverageFlag string  `json:"leverage_flag"`
			} `json:"drift_items"`
		} `json:"report"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if d := got.Report.DriftItems[0]; d.Leverage != 0 || d.LeverageFlag != "Undefined" {
		t.Errorf("denormal share: leverage %v (%s), want 0 (Undefined)", d.Leverage, d.LeverageFlag)
	}
}
