package model

import "time"

// Report is the complete assembly output: corpus statistics plus one entry per fitted edge
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Ontology    string       `json:"ontology"`
	Cutoff      float64      `json:"cutoff"`
	Bandwidth   string       `json:"bandwidth_rule"`
	Corpus      CorpusStats  `json:"corpus"`
	Concepts    []string     `json:"concepts"`
	Edges       []EdgeReport `json:"edges"`
}

// CorpusStats counts statements surviving each filtering stage
type CorpusStats struct {
	Total     int `json:"total"`              // Statements read
	Relevant  int `json:"relevant,omitempty"` // After concept relevance filter (0 if none requested)
	Modelable int `json:"modelable"`          // Both polarities present
	Filtered  int `json:"filtered"`           // Well-grounded and simulable
	Edges     int `json:"edges"`              // Non-empty edges
	Fitted    int `json:"fitted"`             // Edges with a distribution
	Skipped   int `json:"skipped"`            // Edges whose fit failed
}

// EdgeReport describes one edge and its fitted distribution
type EdgeReport struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceLabel  string   `json:"source_label"`
	TargetLabel  string   `json:"target_label"`
	StatementIDs []string `json:"statement_ids"`

	// Fit results, empty when Error is set
	Angles    int            `json:"angles,omitempty"`
	Mirrored  bool           `json:"mirrored,omitempty"`
	Bandwidth float64        `json:"bandwidth,omitempty"` // Kernel standard deviation (radians)
	Density   []DensityPoint `json:"density,omitempty"`   // Density on a grid over (-π, π]
	Samples   []float64      `json:"samples,omitempty"`

	Error string `json:"error,omitempty"`
}

// DensityPoint is the density at one angle
type DensityPoint struct {
	Theta   float64 `json:"theta"`
	Density float64 `json:"density"`
}
