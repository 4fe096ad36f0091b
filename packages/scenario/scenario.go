// Package scenario loads scripted assertion runs from YAML files and
// binds them onto an assertion surface.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/domspec/packages/driver"
)

// Scenario is one scripted run: a named list of checks, optionally
// with canned driver responses for offline replay.
type Scenario struct {
	Name      string     `yaml:"name"`
	Checks    []Step     `yaml:"checks"`
	Responses []Response `yaml:"responses,omitempty"`
}

// Step is either a single check (kind set) or a query block (query
// set), never both.
type Step struct {
	Kind     string   `yaml:"kind,omitempty"`
	Selector string   `yaml:"selector,omitempty"`
	Property string   `yaml:"property,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Expected any      `yaml:"expected,omitempty"`
	Message  string   `yaml:"message,omitempty"`
	Attach   []Attach `yaml:"attach,omitempty"`
	Query    *Block   `yaml:"query,omitempty"`
}

// Block scopes a list of checks to one selector.
type Block struct {
	Selector string `yaml:"selector"`
	Checks   []Step `yaml:"checks"`
}

// Attach names a comparator to judge the preceding check's value.
// For the between op, expected is a two-element [low, high] list.
type Attach struct {
	Op       string `yaml:"op"`
	Expected any    `yaml:"expected,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

// Response is a canned driver answer for replay mode.
type Response struct {
	Key      string `yaml:"key"`
	Selector string `yaml:"selector,omitempty"`
	Value    any    `yaml:"value"`
}

// Load reads, validates, and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse validates the document against the scenario schema and
// unmarshals it.
func Parse(data []byte) (*Scenario, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// HasResponses reports whether the scenario embeds canned answers.
func (s *Scenario) HasResponses() bool {
	return len(s.Responses) > 0
}

// SeedReplay stubs every embedded response into a replay driver, in
// document order.
func (s *Scenario) SeedReplay(rep *driver.Replay) {
	for _, r := range s.Responses {
		rep.Stub(r.Key, r.Selector, r.Value)
	}
}
