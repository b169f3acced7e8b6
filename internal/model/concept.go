package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Grounding is one scored candidate mapping of a concept onto an ontology node
type Grounding struct {
	Path  string  `json:"path" yaml:"path"`   // e.g. "UN/entities/natural/weather/rainfall"
	Score float64 `json:"score" yaml:"score"` // Confidence in [0,1]
}

// MarshalJSON encodes the grounding as a [path, score] pair
func (g Grounding) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{g.Path, g.Score})
}

// UnmarshalJSON accepts either a [path, score] pair or a {path, score} object
func (g *Grounding) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("grounding pair: expected 2 elements, got %d", len(pair))
		}
		if err := json.Unmarshal(pair[0], &g.Path); err != nil {
			return fmt.Errorf("grounding path: %w", err)
		}
		if err := json.Unmarshal(pair[1], &g.Score); err != nil {
			return fmt.Errorf("grounding score: %w", err)
		}
		return nil
	}

	type plain Grounding
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("grounding: %w", err)
	}
	*g = Grounding(p)
	return nil
}

// UnmarshalYAML accepts either a [path, score] sequence or a {path, score} mapping
func (g *Grounding) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		if len(value.Content) != 2 {
			return fmt.Errorf("grounding pair: expected 2 elements, got %d", len(value.Content))
		}
		if err := value.Content[0].Decode(&g.Path); err != nil {
			return fmt.Errorf("grounding path: %w", err)
		}
		if err := value.Content[1].Decode(&g.Score); err != nil {
			return fmt.Errorf("grounding score: %w", err)
		}
		return nil
	}

	type plain Grounding
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("grounding: %w", err)
	}
	*g = Grounding(p)
	return nil
}

// Concept is an entity mention with scored groundings per ontology, best first
type Concept struct {
	Name   string                 `json:"name" yaml:"name"`
	DBRefs map[string][]Grounding `json:"db_refs,omitempty" yaml:"db_refs,omitempty"`
}

// Concepts lets a single concept be evaluated like a statement
func (c Concept) Concepts() []Concept {
	return []Concept{c}
}

// Candidates returns the grounding candidates for an ontology
func (c Concept) Candidates(ontology string) []Grounding {
	return c.DBRefs[ontology]
}

// UnmarshalJSON decodes a concept, ignoring non-list db_refs such as "TEXT"
func (c *Concept) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string                     `json:"name"`
		DBRefs map[string]json.RawMessage `json:"db_refs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Name = raw.Name
	c.DBRefs = nil
	for ontology, msg := range raw.DBRefs {
		var candidates []Grounding
		if err := json.Unmarshal(msg, &candidates); err != nil {
			// Plain string refs (TEXT, etc.) carry no scored groundings
			continue
		}
		if c.DBRefs == nil {
			c.DBRefs = make(map[string][]Grounding)
		}
		c.DBRefs[ontology] = candidates
	}
	return nil
}

// UnmarshalYAML decodes a concept, ignoring non-list db_refs such as "TEXT"
func (c *Concept) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name   string               `yaml:"name"`
		DBRefs map[string]yaml.Node `yaml:"db_refs"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Name = raw.Name
	c.DBRefs = nil
	for ontology, node := range raw.DBRefs {
		if node.Kind != yaml.SequenceNode {
			continue
		}
		var candidates []Grounding
		if err := node.Decode(&candidates); err != nil {
			return fmt.Errorf("db_refs %s: %w", ontology, err)
		}
		if c.DBRefs == nil {
			c.DBRefs = make(map[string][]Grounding)
		}
		c.DBRefs[ontology] = candidates
	}
	return nil
}
