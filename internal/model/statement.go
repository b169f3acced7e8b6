package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Polarity is the asserted direction of change for one side of a statement
type Polarity int8

const (
	PolarityNone     Polarity = 0  // No direction asserted (null in the corpus)
	PolarityIncrease Polarity = 1  // "X increases"
	PolarityDecrease Polarity = -1 // "X decreases"
)

// Known reports whether a direction was asserted
func (p Polarity) Known() bool {
	return p == PolarityIncrease || p == PolarityDecrease
}

func (p Polarity) String() string {
	switch p {
	case PolarityIncrease:
		return "+1"
	case PolarityDecrease:
		return "-1"
	default:
		return "none"
	}
}

// MarshalJSON encodes PolarityNone as null
func (p Polarity) MarshalJSON() ([]byte, error) {
	if !p.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(int(p))
}

// UnmarshalJSON accepts 1, -1 or null
func (p *Polarity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = PolarityNone
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("polarity: %w", err)
	}
	return p.set(v)
}

// UnmarshalYAML accepts 1, -1, null or ~
func (p *Polarity) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*p = PolarityNone
		return nil
	}
	var v int
	if err := value.Decode(&v); err != nil {
		return fmt.Errorf("polarity: %w", err)
	}
	return p.set(v)
}

func (p *Polarity) set(v int) error {
	switch v {
	case 1:
		*p = PolarityIncrease
	case -1:
		*p = PolarityDecrease
	default:
		return fmt.Errorf("polarity must be 1, -1 or null, got %d", v)
	}
	return nil
}

// Adjectives holds the intensity modifiers of a delta. A scalar adjective in
// the corpus decodes to a one-element list.
type Adjectives []string

// UnmarshalJSON accepts a string, a list of strings or null
func (a *Adjectives) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("adjectives: %w", err)
		}
		*a = Adjectives{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("adjectives: %w", err)
	}
	*a = list
	return nil
}

// UnmarshalYAML accepts a string, a list of strings or null
func (a *Adjectives) UnmarshalYAML(value *yaml.Node) error {
	switch {
	case value.Tag == "!!null":
		*a = nil
	case value.Kind == yaml.ScalarNode:
		*a = Adjectives{value.Value}
	default:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("adjectives: %w", err)
		}
		*a = list
	}
	return nil
}

// Delta is the direction and qualitative intensity attached to one side of a statement
type Delta struct {
	Polarity   Polarity   `json:"polarity" yaml:"polarity"`
	Adjectives Adjectives `json:"adjectives" yaml:"adjectives"`
}

// Adjective returns the first adjective, if any
func (d Delta) Adjective() (string, bool) {
	if len(d.Adjectives) == 0 {
		return "", false
	}
	return d.Adjectives[0], true
}

// Evidence is the provenance of a statement
type Evidence struct {
	// Text is the source sentence
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// SourceAPI names the reader that produced the statement (e.g. "eidos")
	SourceAPI string `json:"source_api,omitempty" yaml:"source_api,omitempty"`
	SourceID  string `json:"source_id,omitempty" yaml:"source_id,omitempty"`
}

// Statement is a qualitative causal assertion: subject influences object
type Statement struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Subj      Concept    `json:"subj" yaml:"subj"`
	Obj       Concept    `json:"obj" yaml:"obj"`
	SubjDelta Delta      `json:"subj_delta" yaml:"subj_delta"`
	ObjDelta  Delta      `json:"obj_delta" yaml:"obj_delta"`
	Evidence  []Evidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// Concepts returns the statement's agents: subject then object
func (s *Statement) Concepts() []Concept {
	return []Concept{s.Subj, s.Obj}
}

// SamePolarity reports whether subject and object move in the same direction
func (s *Statement) SamePolarity() bool {
	return s.SubjDelta.Polarity == s.ObjDelta.Polarity
}
