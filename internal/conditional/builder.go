// Package conditional builds, for one edge, the circular distribution over
// the joint direction of subject/object change implied by its statements.
package conditional

import (
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/causalia/internal/kde"
	"github.com/ppiankov/causalia/internal/model"
)

// ErrEmptyEdge is returned when a distribution is requested for an edge
// without statements
var ErrEmptyEdge = errors.New("edge has no statements")

// ErrMissingPolarity is returned when a statement on the edge lacks a subject
// or object polarity
var ErrMissingPolarity = errors.New("statement has no polarity")

// Distribution is the fitted conditional distribution of an edge
type Distribution struct {
	*kde.Circular
	Angles   int  // Pooled angle count the density was fit on
	Mirrored bool // Whether the negated cloud was appended
}

// Pool holds the synthesized samples and angles for one edge
type Pool struct {
	Subject  []float64 // Signed subject responses, concatenated per statement
	Object   []float64 // Signed object responses, concatenated per statement
	Thetas   []float64 // atan2(object, subject) over the full cross product
	Mirrored bool
}

// ResolveAdjective returns the delta's first adjective if the table knows it
func ResolveAdjective(d model.Delta, table model.ResponseLookup) (string, bool) {
	adj, ok := d.Adjective()
	if !ok {
		return "", false
	}
	if _, known := table.Lookup(adj); !known {
		return "", false
	}
	return adj, true
}

// responses returns the delta's response sample scaled by its polarity
func responses(d model.Delta, table model.ResponseLookup, background []float64) []float64 {
	sample := background
	if adj, ok := ResolveAdjective(d, table); ok {
		sample, _ = table.Lookup(adj)
	}

	sign := float64(d.Polarity)
	out := make([]float64, len(sample))
	for i, v := range sample {
		out[i] = sign * v
	}
	return out
}

// Angles synthesizes the signed response pools of an edge and the angle of
// every (subject, object) sample pair. The pairs are ordered object-major:
// Thetas[i*len(Subject)+j] = atan2(Object[i], Subject[j]).
//
// If exactly one statement has matching subject and object polarity, the
// angles of the negated cloud are appended, doubling the pool.
func Angles(e model.Edge, table model.ResponseLookup, background []float64) (*Pool, error) {
	if len(e.Statements) == 0 {
		return nil, fmt.Errorf("edge %s: %w", e.Key(), ErrEmptyEdge)
	}

	p := &Pool{}
	same := 0
	for _, s := range e.Statements {
		if !s.SubjDelta.Polarity.Known() || !s.ObjDelta.Polarity.Known() {
			return nil, fmt.Errorf("edge %s: statement %q: %w", e.Key(), s.ID, ErrMissingPolarity)
		}
		p.Subject = append(p.Subject, responses(s.SubjDelta, table, background)...)
		p.Object = append(p.Object, responses(s.ObjDelta, table, background)...)
		if s.SamePolarity() {
			same++
		}
	}
	p.Mirrored = same == 1

	size := len(p.Subject) * len(p.Object)
	if p.Mirrored {
		p.Thetas = make([]float64, 0, 2*size)
	} else {
		p.Thetas = make([]float64, 0, size)
	}

	for _, y := range p.Object {
		for _, x := range p.Subject {
			p.Thetas = append(p.Thetas, math.Atan2(y, x))
		}
	}
	if p.Mirrored {
		for _, y := range p.Object {
			for _, x := range p.Subject {
				p.Thetas = append(p.Thetas, math.Atan2(-y, -x))
			}
		}
	}

	return p, nil
}

// Construct fits the conditional distribution of an edge. It fails with
// ErrEmptyEdge for an edge without statements, ErrMissingPolarity when a
// statement is not simulable, and with
// kde.ErrInsufficientData when fewer than two distinct angles are pooled.
func Construct(e model.Edge, table model.ResponseLookup, background []float64, rule kde.Rule) (*Distribution, error) {
	p, err := Angles(e, table, background)
	if err != nil {
		return nil, err
	}

	c, err := kde.FitCircular(p.Thetas, rule)
	if err != nil {
		return nil, fmt.Errorf("edge %s: %w", e.Key(), err)
	}

	return &Distribution{
		Circular: c,
		Angles:   len(p.Thetas),
		Mirrored: p.Mirrored,
	}, nil
}
