package conditional

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/causalia/internal/kde"
)

func TestReadResponseTable(t *testing.T) {
	input := "id,Adjective,respdev\n" +
		"1,sharply,2.5\n" +
		"2,sharply,3\n" +
		"3,slightly,0.4\n" +
		"4,slightly,\n" +
		"5,,1\n" +
		"6,slightly,NaN\n"

	table, err := ReadResponseTable(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"sharply", "slightly"}, table.Adjectives())
	assert.Equal(t, []float64{2.5, 3}, table["sharply"])
	assert.Equal(t, []float64{0.4}, table["slightly"])

	s, ok := table.Lookup("sharply")
	assert.True(t, ok)
	assert.Len(t, s, 2)
	_, ok = table.Lookup("wildly")
	assert.False(t, ok)
}

func TestReadResponseTable_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "adjective,value\nsharply,1\n",
		"bad number":     "adjective,respdev\nsharply,lots\n",
		"empty input":    "",
		"short row":      "respdev,x,adjective\n1\n",
		"infinite":       "adjective,respdev\nsharply,2\nsharply,+Inf\n",
		"negative inf":   "adjective,respdev\nsharply,-Inf\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadResponseTable(strings.NewReader(input), ',')
			assert.Error(t, err)
		})
	}
}

func TestReadResponseTable_InfiniteNamesLine(t *testing.T) {
	_, err := ReadResponseTable(strings.NewReader("adjective,respdev\nsharply,2\nsharply,Inf\n"), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadResponseTable_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adjectives.tsv")
	require.NoError(t, os.WriteFile(path, []byte("adjective\trespdev\nsharply\t2\nsharply\t4\n"), 0644))

	table, err := LoadResponseTable(path)
	require.NoError(t, err)
	assert.Equal(t, ResponseTable{"sharply": {2, 4}}, table)

	_, err = LoadResponseTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestResponseTable_Validate(t *testing.T) {
	assert.NoError(t, ResponseTable{"a": {1}}.Validate())
	assert.Error(t, ResponseTable{"a": {1}, "b": nil}.Validate())
}

func TestBackgroundSample(t *testing.T) {
	table := ResponseTable{
		"sharply":  {2, 3, 4},
		"slightly": {0.2, 0.4},
		"constant": {1},
	}

	bg, err := BackgroundSample(table, 20, 300, rand.NewPCG(3, 4), kde.Scott)
	require.NoError(t, err)
	assert.Len(t, bg, 300)

	again, err := BackgroundSample(table, 20, 300, rand.NewPCG(3, 4), kde.Scott)
	require.NoError(t, err)
	assert.Equal(t, bg, again, "same seed must reproduce the background")

	_, err = BackgroundSample(ResponseTable{}, 20, 300, rand.NewPCG(3, 4), kde.Scott)
	assert.Error(t, err)

	_, err = BackgroundSample(ResponseTable{"only": {1, 1}}, 20, 300, rand.NewPCG(3, 4), kde.Scott)
	assert.ErrorIs(t, err, kde.ErrInsufficientData)
}
