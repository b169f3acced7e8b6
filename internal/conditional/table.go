package conditional

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ResponseTable maps adjectives to samples of reported response magnitude.
// It implements model.ResponseLookup.
type ResponseTable map[string][]float64

// Lookup returns the sample for an adjective
func (t ResponseTable) Lookup(adjective string) ([]float64, bool) {
	s, ok := t[adjective]
	return s, ok
}

// Adjectives returns the table keys, sorted
func (t ResponseTable) Adjectives() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every present adjective has a non-empty sample
func (t ResponseTable) Validate() error {
	for _, adj := range t.Adjectives() {
		if len(t[adj]) == 0 {
			return fmt.Errorf("adjective %q has an empty response sample", adj)
		}
	}
	return nil
}

// Column names expected in a response table file
const (
	adjectiveColumn = "adjective"
	responseColumn  = "respdev"
)

// LoadResponseTable reads a CSV or TSV file (chosen by extension) with
// adjective and respdev columns
func LoadResponseTable(path string) (ResponseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open response table: %w", err)
	}
	defer func() { _ = f.Close() }()

	delim := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}

	table, err := ReadResponseTable(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadResponseTable parses a delimited response table with a header row.
// Rows with an empty or NaN response are skipped.
func ReadResponseTable(r io.Reader, delim rune) (ResponseTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	adjCol, respCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case adjectiveColumn:
			adjCol = i
		case responseColumn:
			respCol = i
		}
	}
	if adjCol < 0 || respCol < 0 {
		return nil, fmt.Errorf("header must contain %q and %q columns", adjectiveColumn, responseColumn)
	}

	table := make(ResponseTable)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if adjCol >= len(record) || respCol >= len(record) {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(adjCol, respCol)+1, len(record))
		}

		adj := strings.TrimSpace(record[adjCol])
		raw := strings.TrimSpace(record[respCol])
		if adj == "" || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: respdev %q: %w", line, raw, err)
		}
		if math.IsNaN(v) {
			continue
		}
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("line %d: respdev %q is not finite", line, raw)
		}
		table[adj] = append(table[adj], v)
	}

	return table, table.Validate()
}
