// Package config loads the hufcheck tool configuration (hufcheck.yaml).
//
// Top-level types:
//   - Config{Thresholds, Log, Gates, Export}: full config tree parsed from YAML
//   - diagnostic.Thresholds: the limits every test compares against
//   - LogConfig: level (debug|info|warn|error) and format (text|json)
//   - gate.Gate: name and condition, checked by gate.Validate at load time
//   - ExportConfig: textfile path for the node-exporter textfile collector
//
// Load(path) reads the YAML file, applies defaults (reference thresholds,
// info level, text format), then validates. An empty path skips the file and
// returns the defaults.
package config
