// Package edge aggregates filtered statements into directed concept-pair edges.
package edge

import (
	"sort"

	"github.com/ppiankov/causalia/internal/ground"
	"github.com/ppiankov/causalia/internal/model"
)

// NameTuple returns the canonical (subject, object) names of a statement
func NameTuple(s *model.Statement, ontology string) (string, string) {
	return ground.CanonicalName(s.Subj, ontology), ground.CanonicalName(s.Obj, ontology)
}

// ConceptNames returns the sorted set of canonical names of all statement agents
func ConceptNames(sts []*model.Statement, ontology string) []string {
	seen := make(map[string]bool)
	for _, s := range sts {
		subj, obj := NameTuple(s, ontology)
		seen[subj] = true
		seen[obj] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates one edge per ordered pair of concept names, including
// self-pairs, in sorted pair order. Each edge holds exactly the statements
// whose canonical pair matches its key, in corpus order; most edges are empty.
func Build(sts []*model.Statement, ontology string) []model.Edge {
	names := ConceptNames(sts, ontology)

	byPair := make(map[model.EdgeKey][]*model.Statement)
	for _, s := range sts {
		subj, obj := NameTuple(s, ontology)
		key := model.EdgeKey{Source: subj, Target: obj}
		byPair[key] = append(byPair[key], s)
	}

	edges := make([]model.Edge, 0, len(names)*len(names))
	for _, u := range names {
		for _, v := range names {
			edges = append(edges, model.Edge{
				Source:     u,
				Target:     v,
				Statements: byPair[model.EdgeKey{Source: u, Target: v}],
			})
		}
	}
	return edges
}

// NonEmpty drops edges without statements; no distribution can be fit for them
func NonEmpty(edges []model.Edge) []model.Edge {
	out := make([]model.Edge, 0, len(edges))
	for _, e := range edges {
		if len(e.Statements) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// BuildNonEmpty is Build followed by NonEmpty without materializing empty edges
func BuildNonEmpty(sts []*model.Statement, ontology string) []model.Edge {
	var keys []model.EdgeKey
	byPair := make(map[model.EdgeKey][]*model.Statement)
	for _, s := range sts {
		subj, obj := NameTuple(s, ontology)
		key := model.EdgeKey{Source: subj, Target: obj}
		if _, ok := byPair[key]; !ok {
			keys = append(keys, key)
		}
		byPair[key] = append(byPair[key], s)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Target < keys[j].Target
	})

	edges := make([]model.Edge, len(keys))
	for i, key := range keys {
		edges[i] = model.Edge{Source: key.Source, Target: key.Target, Statements: byPair[key]}
	}
	return edges
}
