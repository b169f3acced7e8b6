// Package filter selects the statements usable for modeling.
package filter

import (
	"github.com/ppiankov/causalia/internal/ground"
	"github.com/ppiankov/causalia/internal/model"
)

// IsSimulable reports whether both deltas of the statement carry a polarity
func IsSimulable(s *model.Statement) bool {
	return s.SubjDelta.Polarity.Known() && s.ObjDelta.Polarity.Known()
}

// SelectModelable keeps statements with a polarity on both sides
func SelectModelable(sts []*model.Statement) []*model.Statement {
	return keep(sts, IsSimulable)
}

// ValidForModeling keeps grounded, simulable statements
func ValidForModeling(sts []*model.Statement, ontology string) []*model.Statement {
	return keep(sts, func(s *model.Statement) bool {
		return ground.IsGrounded(s, ontology) && IsSimulable(s)
	})
}

// Filter keeps well-grounded, simulable statements: the modeling corpus
func Filter(sts []*model.Statement, e *ground.Evaluator) []*model.Statement {
	return keep(sts, func(s *model.Statement) bool {
		return e.IsWellGrounded(s) && IsSimulable(s)
	})
}

// Relevant keeps statements with at least one agent grounded to one of names
func Relevant(sts []*model.Statement, e *ground.Evaluator, names []string) []*model.Statement {
	return keep(sts, func(s *model.Statement) bool {
		return e.ContainsRelevantConcept(s, names)
	})
}

func keep(sts []*model.Statement, pred func(*model.Statement) bool) []*model.Statement {
	out := make([]*model.Statement, 0, len(sts))
	for _, s := range sts {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
