// Package ground decides whether concepts and statements are grounded to an
// ontology and extracts canonical concept names from their groundings.
package ground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/causalia/internal/model"
)

// ErrNotGrounded is returned when a grounding score is requested for a
// concept that has no candidate in the ontology
var ErrNotGrounded = errors.New("concept has no grounding for ontology")

// propertiesBranch is the second path segment of ontology nodes describing
// properties of entities rather than entities themselves
const propertiesBranch = "properties"

// Groundable is anything made of concepts: a single concept or a statement
type Groundable interface {
	Concepts() []model.Concept
}

// CanonicalName returns the leaf segment of the concept's best grounding,
// falling back to the surface name when the ontology has no candidate
func CanonicalName(c model.Concept, ontology string) string {
	candidates := c.Candidates(ontology)
	if len(candidates) == 0 {
		return c.Name
	}
	path := candidates[0].Path
	return path[strings.LastIndex(path, "/")+1:]
}

// TopScore returns the score of the concept's best grounding
func TopScore(c model.Concept, ontology string) (float64, error) {
	candidates := c.Candidates(ontology)
	if len(candidates) == 0 {
		return 0, fmt.Errorf("top score of %q in %s: %w", c.Name, ontology, ErrNotGrounded)
	}
	return candidates[0].Score, nil
}

// IsGrounded reports whether every concept of g has a best grounding in the
// ontology that is not a property node
func IsGrounded(g Groundable, ontology string) bool {
	for _, c := range g.Concepts() {
		if !conceptGrounded(c, ontology) {
			return false
		}
	}
	return true
}

// IsWellGrounded reports whether every concept of g is grounded with a top
// score of at least cutoff
func IsWellGrounded(g Groundable, ontology string, cutoff float64) bool {
	for _, c := range g.Concepts() {
		if !conceptGrounded(c, ontology) {
			return false
		}
		// Grounded implies a candidate exists
		score, _ := TopScore(c, ontology)
		if score < cutoff {
			return false
		}
	}
	return true
}

func conceptGrounded(c model.Concept, ontology string) bool {
	candidates := c.Candidates(ontology)
	if len(candidates) == 0 {
		return false
	}
	return pathSegment(candidates[0].Path, 1) != propertiesBranch
}

// pathSegment returns the i-th "/"-separated segment, or "" if absent
func pathSegment(path string, i int) string {
	parts := strings.Split(path, "/")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// DisplayName turns a canonical name into readable text
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
