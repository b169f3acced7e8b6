package edge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/causalia/internal/model"
)

func concept(name string) model.Concept {
	return model.Concept{
		Name: "surface " + name,
		DBRefs: map[string][]model.Grounding{
			"UN": {{Path: "UN/entities/" + name, Score: 0.9}},
		},
	}
}

func stmt(id, subj, obj string) *model.Statement {
	return &model.Statement{
		ID:        id,
		Subj:      concept(subj),
		Obj:       concept(obj),
		SubjDelta: model.Delta{Polarity: model.PolarityIncrease},
		ObjDelta:  model.Delta{Polarity: model.PolarityIncrease},
	}
}

func corpus() []*model.Statement {
	return []*model.Statement{
		stmt("s1", "rainfall", "crop"),
		stmt("s2", "conflict", "migration"),
		stmt("s3", "rainfall", "crop"),
		stmt("s4", "crop", "rainfall"),
		stmt("s5", "rainfall", "rainfall"),
	}
}

type summary struct {
	Source, Target string
	IDs            []string
}

func summarize(edges []model.Edge) []summary {
	out := make([]summary, len(edges))
	for i, e := range edges {
		out[i] = summary{Source: e.Source, Target: e.Target, IDs: e.StatementIDs()}
	}
	return out
}

func TestNameTuple(t *testing.T) {
	s := stmt("s", "rainfall", "crop")
	subj, obj := NameTuple(s, "UN")
	if subj != "rainfall" || obj != "crop" {
		t.Errorf("expected (rainfall, crop), got (%s, %s)", subj, obj)
	}

	subj, obj = NameTuple(s, "WM")
	if subj != "surface rainfall" || obj != "surface crop" {
		t.Errorf("expected surface-name fallback, got (%s, %s)", subj, obj)
	}
}

func TestConceptNames(t *testing.T) {
	want := []string{"conflict", "crop", "migration", "rainfall"}
	if diff := cmp.Diff(want, ConceptNames(corpus(), "UN")); diff != "" {
		t.Errorf("ConceptNames mismatch (-want +got):\n%s", diff)
	}

	if got := ConceptNames(nil, "UN"); len(got) != 0 {
		t.Errorf("expected no names for empty corpus, got %v", got)
	}
}

func TestBuild_AllPairs(t *testing.T) {
	edges := Build(corpus(), "UN")

	// 4 names -> 16 ordered pairs including self-pairs
	if len(edges) != 16 {
		t.Fatalf("expected 16 edges, got %d", len(edges))
	}
	if edges[0].Source != "conflict" || edges[0].Target != "conflict" {
		t.Errorf("expected first pair (conflict, conflict), got %s", edges[0].Key())
	}
}

func TestBuild_Partition(t *testing.T) {
	sts := corpus()
	edges := Build(sts, "UN")

	seen := make(map[string]int)
	for _, e := range edges {
		for _, s := range e.Statements {
			seen[s.ID]++
			subj, obj := NameTuple(s, "UN")
			if subj != e.Source || obj != e.Target {
				t.Errorf("statement %s (%s -> %s) in edge %s", s.ID, subj, obj, e.Key())
			}
		}
	}

	for _, s := range sts {
		if seen[s.ID] != 1 {
			t.Errorf("statement %s appears in %d edges, want 1", s.ID, seen[s.ID])
		}
	}
}

func TestBuildNonEmpty(t *testing.T) {
	want := []summary{
		{"conflict", "migration", []string{"s2"}},
		{"crop", "rainfall", []string{"s4"}},
		{"rainfall", "crop", []string{"s1", "s3"}},
		{"rainfall", "rainfall", []string{"s5"}},
	}

	if diff := cmp.Diff(want, summarize(NonEmpty(Build(corpus(), "UN")))); diff != "" {
		t.Errorf("NonEmpty(Build) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, summarize(BuildNonEmpty(corpus(), "UN"))); diff != "" {
		t.Errorf("BuildNonEmpty mismatch (-want +got):\n%s", diff)
	}
}
