package model

// EdgeKey identifies a directed concept pair by canonical grounded names
type EdgeKey struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (k EdgeKey) String() string {
	return k.Source + " -> " + k.Target
}

// Edge aggregates every statement whose canonical (subject, object) names
// equal (Source, Target)
type Edge struct {
	Source     string
	Target     string
	Statements []*Statement
}

// Key returns the edge's concept pair
func (e Edge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target}
}

// StatementIDs lists the IDs of the edge's statements, in order
func (e Edge) StatementIDs() []string {
	ids := make([]string, len(e.Statements))
	for i, s := range e.Statements {
		ids[i] = s.ID
	}
	return ids
}
