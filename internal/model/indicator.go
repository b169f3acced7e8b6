package model

import "time"

// ResponseLookup provides the empirical response sample for an adjective
type ResponseLookup interface {
	Lookup(adjective string) ([]float64, bool)
}

// IndicatorLookup resolves an indicator's observed value at a date. A nil
// value means no observation exists for that date.
type IndicatorLookup interface {
	Value(indicator string, date time.Time) (*float64, string, error)
}

// IndicatorMapper maps canonical concept names to the indicators that
// measure them
type IndicatorMapper interface {
	ConceptIndicators() map[string][]string
}
