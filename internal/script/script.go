// Package script reads action scripts: YAML documents listing actions to
// dispatch in order.
//
//	actions:
//	  - type: counter/incremented
//	  - type: counter/amountAdded
//	    payload: 5
//	  - type: counter/decrement
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/spetersoncode/statekit"
)

// ErrEmptyType is returned when a script step has no action type.
var ErrEmptyType = errors.New("script: action type is required")

// Step is one action in a script.
type Step struct {
	Type    string `yaml:"type"`
	Payload any    `yaml:"payload,omitempty"`
}

// Script is a parsed action script.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"actions"`
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	for i, step := range s.Steps {
		if strings.TrimSpace(step.Type) == "" {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrEmptyType)
		}
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data)
}

// Actions returns the script steps as actions.
func (s *Script) Actions() []statekit.Action {
	actions := make([]statekit.Action, len(s.Steps))
	for i, step := range s.Steps {
		actions[i] = statekit.Action{Type: strings.TrimSpace(step.Type), Payload: step.Payload}
	}
	return actions
}
