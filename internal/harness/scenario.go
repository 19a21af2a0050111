package harness

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/boostcard/internal/engine"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Values is the input buffer.
	Values []float64 `yaml:"values"`

	// Selections are fitted selection records.
	Selections []map[string]any `yaml:"selections"`

	// Fallback, if set, appends an Identity catch-all with this fill.
	Fallback *Fallback `yaml:"fallback,omitempty"`

	// Workers bounds concurrent predicate evaluation. Zero or one runs
	// inline.
	Workers int `yaml:"workers,omitempty"`

	// Expect is the expected result buffer. Must have the length of Values.
	Expect []float64 `yaml:"expect"`

	// Assertions are checked after the buffer comparison.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Fallback is the fill of the Identity catch-all. In YAML it is either the
// string "passthrough" or a number.
type Fallback struct {
	Fill engine.Fill
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Fallback) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: fallback must be \"passthrough\" or a number", node.Line)
	}
	if strings.EqualFold(node.Value, "passthrough") {
		f.Fill = engine.PassThrough()
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: fallback must be \"passthrough\" or a number, got %q", node.Line, node.Value)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("line %d: fallback must not be NaN", node.Line)
	}
	f.Fill = engine.Constant(v)
	return nil
}

// Assertion validates a property of the resolution beyond the result
// buffer.
type Assertion struct {
	// Type specifies the assertion type:
	// - "claimed_by": Check the claiming selection of each slot
	// - "order": Check the sorted selection order
	// - "unresolved": Check the number of unresolved slots
	// - "idempotent": Check that re-applying changes nothing
	Type string `yaml:"type"`

	// Claims are the expected ClaimedBy indices (used by claimed_by).
	Claims []int `yaml:"claims,omitempty"`

	// Order is the expected sorted selection order (used by order).
	Order []string `yaml:"order,omitempty"`

	// Count is the expected unresolved count (used by unresolved).
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertClaimedBy  = "claimed_by"
	AssertOrder      = "order"
	AssertUnresolved = "unresolved"
	AssertIdempotent = "idempotent"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expected:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Selections) == 0 && s.Fallback == nil {
		return fmt.Errorf("selections list is required unless a fallback is set")
	}

	if len(s.Expect) != len(s.Values) {
		return fmt.Errorf("expect has %d values, want %d (one per input value)", len(s.Expect), len(s.Values))
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, len(s.Values)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, n int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertClaimedBy:
		if len(a.Claims) != n {
			return fmt.Errorf("assertions[%d]: claims has %d entries, want %d for claimed_by", index, len(a.Claims), n)
		}
	case AssertOrder:
		if len(a.Order) == 0 {
			return fmt.Errorf("assertions[%d]: order list is required for order", index)
		}
	case AssertUnresolved:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for unresolved", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for unresolved", index)
		}
	case AssertIdempotent:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
