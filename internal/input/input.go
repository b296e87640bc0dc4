package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roguewave/hufcheck/pkg/types"
)

// DefaultCycles is used when a document does not say how many cycles it covers.
const DefaultCycles = 1

// ErrNoElements is returned when a document has no named elements.
var ErrNoElements = errors.New("input: no elements")

// Format is the encoding of a system document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the document format from the file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads the document at path. When the document has no name, the file
// name without its extension is used.
func Load(path string) (types.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.System{}, fmt.Errorf("input: read file: %w", err)
	}

	sys, err := Parse(data, FormatFor(path))
	if err != nil {
		return types.System{}, err
	}
	if sys.Name == "" {
		sys.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sys, nil
}

// Parse decodes a document in the given format.
func Parse(data []byte, format Format) (types.System, error) {
	var doc document
	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return types.System{}, fmt.Errorf("input: parse json: %w", err)
			}
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.System{}, fmt.Errorf("input: parse yaml: %w", err)
		}
	default:
		return types.System{}, fmt.Errorf("input: unknown format %q", format)
	}
	return doc.system()
}

type document struct {
	Name     string       `yaml:"name" json:"name"`
	Cycles   cycleSpec    `yaml:"cycles" json:"cycles"`
	Elements []elementDoc `yaml:"elements" json:"elements"`
}

type elementDoc struct {
	Name                 string   `yaml:"name" json:"name"`
	Share                quantity `yaml:"share" json:"share"`
	DeclaredWeight       quantity `yaml:"declared_weight" json:"declared_weight"`
	Traced               bool     `yaml:"traced" json:"traced"`
	CharacteristicPeriod quantity `yaml:"characteristic_period" json:"characteristic_period"`
}

func (d document) system() (types.System, error) {
	sys := types.System{Name: strings.TrimSpace(d.Name)}

	for i, e := range d.Elements {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			slog.Debug("input: dropped element with blank name", "index", i)
			continue
		}
		sys.Elements = append(sys.Elements, types.Element{
			Name:                 name,
			Share:                types.Quantity(e.Share),
			DeclaredWeight:       types.Quantity(e.DeclaredWeight),
			Traced:               e.Traced,
			CharacteristicPeriod: types.Quantity(e.CharacteristicPeriod),
		})
	}
	if len(sys.Elements) == 0 {
		return types.System{}, ErrNoElements
	}

	cycles, err := d.Cycles.cycles()
	if err != nil {
		return types.System{}, err
	}
	sys.Cycles = cycles
	return sys, nil
}

// quantity keeps the raw scalar text of a numeric field.
type quantity string

func (q *quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*q = ""
		return nil
	}
	*q = quantity(node.Value)
	return nil
}

func (q *quantity) UnmarshalJSON(b []byte) error {
	var v types.Quantity
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*q = quantity(v)
	return nil
}

// cycleSpec is either a cycle count or a list of cycle labels.
type cycleSpec struct {
	set    bool
	count  int
	labels []string
}

func (c cycleSpec) cycles() ([]types.Cycle, error) {
	switch {
	case !c.set:
		return types.NumberedCycles(DefaultCycles), nil
	case c.labels != nil:
		out := make([]types.Cycle, len(c.labels))
		for i, l := range c.labels {
			out[i] = types.Cycle{Ordinal: i + 1, Label: l}
		}
		return out, nil
	case c.count < 0:
		return nil, fmt.Errorf("input: cycles must not be negative, got %d", c.count)
	default:
		return types.NumberedCycles(c.count), nil
	}
}

type cycleDoc struct {
	Label string `yaml:"label" json:"label"`
}

func (c *cycleSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*c = cycleSpec{}
			return nil
		}
		var n int
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("line %d: cycles must be a count or a list", node.Line)
		}
		*c = cycleSpec{set: true, count: n}
	case yaml.SequenceNode:
		labels := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				labels = append(labels, item.Value)
				continue
			}
			var cd cycleDoc
			if err := item.Decode(&cd); err != nil {
				return err
			}
			labels = append(labels, cd.Label)
		}
		*c = cycleSpec{set: true, labels: labels}
	default:
		return fmt.Errorf("line %d: cycles must be a count or a list", node.Line)
	}
	return nil
}

func (c *cycleSpec) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = cycleSpec{}
	case bytes.HasPrefix(b, []byte("[")):
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		labels := make([]string, 0, len(items))
		for _, item := range items {
			var label string
			if err := json.Unmarshal(item, &label); err == nil {
				labels = append(labels, label)
				continue
			}
			var cd cycleDoc
			if err := json.Unmarshal(item, &cd); err != nil {
				return fmt.Errorf("cycles: %w", err)
			}
			labels = append(labels, cd.Label)
		}
		*c = cycleSpec{set: true, labels: labels}
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("cycles must be a count or a list: %w", err)
		}
		*c = cycleSpec{set: true, count: n}
	}
	return nil
}
