package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAdjectives_Decode(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		yaml  string
		want  string
		found bool
	}{
		{"scalar", `"sharply"`, `sharply`, "sharply", true},
		{"list", `["slightly", "sharply"]`, `[slightly, sharply]`, "slightly", true},
		{"empty list", `[]`, `[]`, "", false},
		{"null", `null`, `~`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromJSON Delta
			if err := json.Unmarshal([]byte(`{"polarity": 1, "adjectives": `+tt.json+`}`), &fromJSON); err != nil {
				t.Fatalf("json: %v", err)
			}
			var fromYAML Delta
			if err := yaml.Unmarshal([]byte("polarity: 1\nadjectives: "+tt.yaml+"\n"), &fromYAML); err != nil {
				t.Fatalf("yaml: %v", err)
			}

			for src, d := range map[string]Delta{"json": fromJSON, "yaml": fromYAML} {
				got, ok := d.Adjective()
				if got != tt.want || ok != tt.found {
					t.Errorf("%s: Adjective() = %q, %v; want %q, %v", src, got, ok, tt.want, tt.found)
				}
			}
		})
	}
}

func TestPolarity_JSON(t *testing.T) {
	var d Delta
	if err := json.Unmarshal([]byte(`{"polarity": null}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Polarity.Known() {
		t.Errorf("null polarity decoded as %s", d.Polarity)
	}

	if err := json.Unmarshal([]byte(`{"polarity": 0}`), &d); err == nil {
		t.Error("expected error for polarity 0")
	}

	out, err := json.Marshal(Delta{Polarity: PolarityDecrease})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"polarity":-1,"adjectives":null}` {
		t.Errorf("unexpected encoding: %s", out)
	}
}

func TestStatement_SamePolarity(t *testing.T) {
	s := &Statement{
		SubjDelta: Delta{Polarity: PolarityDecrease},
		ObjDelta:  Delta{Polarity: PolarityDecrease},
	}
	if !s.SamePolarity() {
		t.Error("-1/-1 should be same polarity")
	}
	s.ObjDelta.Polarity = PolarityIncrease
	if s.SamePolarity() {
		t.Error("-1/+1 should not be same polarity")
	}
}

func TestConcept_DecodeSkipsTextRefs(t *testing.T) {
	data := `{"name": "rain", "db_refs": {"TEXT": "rain", "UN": [["UN/entities/natural/weather/rainfall", 0.9], {"path": "UN/entities/natural/weather/precipitation", "score": 0.4}]}}`

	var c Concept
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.DBRefs["TEXT"]; ok {
		t.Error("TEXT ref should be skipped")
	}
	got := c.Candidates("UN")
	if len(got) != 2 || got[0].Score != 0.9 || got[1].Path != "UN/entities/natural/weather/precipitation" {
		t.Errorf("unexpected candidates: %+v", got)
	}
	if c.Candidates("WM") != nil {
		t.Error("unknown ontology should have no candidates")
	}
}

func TestGrounding_MarshalPair(t *testing.T) {
	out, err := json.Marshal(Grounding{Path: "UN/a/b", Score: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["UN/a/b",0.5]` {
		t.Errorf("unexpected encoding: %s", out)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Density.Bandwidth = "wide"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown bandwidth rule")
	}

	cfg = DefaultConfig()
	cfg.Background.Samples = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty background")
	}
}
