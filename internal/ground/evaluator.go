package ground

import (
	"github.com/ppiankov/causalia/internal/cache"
	"github.com/ppiankov/causalia/internal/model"
)

// Evaluator makes grounding decisions for one ontology and cutoff and
// memoizes statement-level well-groundedness
type Evaluator struct {
	ontology string
	cutoff   float64
	cache    cache.Cache
}

// NewEvaluator creates an evaluator. A nil cache disables memoization.
func NewEvaluator(cfg model.GroundingConfig, c cache.Cache) *Evaluator {
	if c == nil {
		c = cache.Noop{}
	}
	return &Evaluator{
		ontology: cfg.Ontology,
		cutoff:   cfg.Cutoff,
		cache:    c,
	}
}

// WithCutoff returns an evaluator sharing the same cache with a different cutoff
func (e *Evaluator) WithCutoff(cutoff float64) *Evaluator {
	return &Evaluator{
		ontology: e.ontology,
		cutoff:   cutoff,
		cache:    e.cache,
	}
}

// Ontology returns the evaluator's ontology
func (e *Evaluator) Ontology() string {
	return e.ontology
}

// Cutoff returns the evaluator's score cutoff
func (e *Evaluator) Cutoff() float64 {
	return e.cutoff
}

// CanonicalName returns the concept's canonical name in the evaluator's ontology
func (e *Evaluator) CanonicalName(c model.Concept) string {
	return CanonicalName(c, e.ontology)
}

// IsGrounded reports groundedness in the evaluator's ontology
func (e *Evaluator) IsGrounded(g Groundable) bool {
	return IsGrounded(g, e.ontology)
}

// IsWellGroundedConcept reports concept well-groundedness at the evaluator's cutoff
func (e *Evaluator) IsWellGroundedConcept(c model.Concept) bool {
	return IsWellGrounded(c, e.ontology, e.cutoff)
}

// IsWellGrounded reports statement well-groundedness. Results are cached by
// statement ID, ontology and cutoff, so IDs must be unique within a corpus; statements without an ID are always
// recomputed. Concurrent misses may compute the same answer twice, which is
// harmless.
func (e *Evaluator) IsWellGrounded(s *model.Statement) bool {
	if s.ID == "" {
		return IsWellGrounded(s, e.ontology, e.cutoff)
	}

	key := cache.GroundingKey(s.ID, e.ontology, e.cutoff)
	if v, found := e.cache.Get(key); found {
		return v
	}

	v := IsWellGrounded(s, e.ontology, e.cutoff)
	e.cache.Set(key, v)
	return v
}

// IsGroundedToName reports whether the concept is well grounded and its
// canonical name equals name
func (e *Evaluator) IsGroundedToName(c model.Concept, name string) bool {
	if !e.IsWellGroundedConcept(c) {
		return false
	}
	return e.CanonicalName(c) == name
}

// ContainsConcept reports whether any agent of the statement grounds to name
func (e *Evaluator) ContainsConcept(s *model.Statement, name string) bool {
	for _, c := range s.Concepts() {
		if e.IsGroundedToName(c, name) {
			return true
		}
	}
	return false
}

// ContainsRelevantConcept reports whether any agent of the statement grounds
// to any of names
func (e *Evaluator) ContainsRelevantConcept(s *model.Statement, names []string) bool {
	for _, name := range names {
		if e.ContainsConcept(s, name) {
			return true
		}
	}
	return false
}
