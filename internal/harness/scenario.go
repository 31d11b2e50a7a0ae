package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a solver test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxCapacity and MaxItems bound the solver. Zero means 128.
	MaxCapacity int `yaml:"max_capacity,omitempty"`
	MaxItems    int `yaml:"max_items,omitempty"`

	// Candidates are added to the solver in order.
	Candidates []Candidate `yaml:"candidates"`

	// Solves run in order after all candidates are added.
	Solves []SolveStep `yaml:"solves"`
}

// Candidate is one solver Add call.
type Candidate struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
	Value  int    `yaml:"value"`

	// Error is the expected error code. Empty means Add must succeed.
	Error string `yaml:"error,omitempty"`
}

// SolveStep is one solver Solve call.
type SolveStep struct {
	Capacity int `yaml:"capacity"`

	// Expect constrains the result. If nil, the solve only has to succeed
	// and pass the reference checks.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect holds the expected result of a solve. Nil fields are not checked.
type Expect struct {
	Value    *int     `yaml:"value,omitempty"`
	Weight   *int     `yaml:"weight,omitempty"`
	Length   *int     `yaml:"length,omitempty"`
	Payloads []string `yaml:"payloads,omitempty"`

	// Error is the expected error code. Empty means Solve must succeed.
	Error string `yaml:"error,omitempty"`
}

// DefaultBound is used for MaxCapacity and MaxItems when a scenario leaves
// them unset.
const DefaultBound = 128

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

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "solve:" vs "solves:"
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

	if s.MaxCapacity < 0 {
		return fmt.Errorf("max_capacity must be non-negative")
	}

	if s.MaxItems < 0 {
		return fmt.Errorf("max_items must be non-negative")
	}

	if len(s.Solves) == 0 {
		return fmt.Errorf("solves list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Candidates))
	for i, c := range s.Candidates {
		if c.Name == "" {
			return fmt.Errorf("candidates[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("candidates[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	for i, step := range s.Solves {
		if step.Expect == nil {
			continue
		}
		for _, p := range step.Expect.Payloads {
			if !seen[p] {
				return fmt.Errorf("solves[%d].expect: unknown payload %q", i, p)
			}
		}
	}

	return nil
}

func (s *Scenario) bounds() (maxCapacity, maxItems int) {
	maxCapacity, maxItems = s.MaxCapacity, s.MaxItems
	if maxCapacity == 0 {
		maxCapacity = DefaultBound
	}
	if maxItems == 0 {
		maxItems = DefaultBound
	}
	return maxCapacity, maxItems
}
