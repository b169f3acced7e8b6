package conditional

import (
	"fmt"
	"math/rand/v2"

	"github.com/ppiankov/causalia/internal/kde"
)

// BackgroundSample derives a background response sample from the table: each
// adjective's sample is smoothed with a Gaussian KDE and resampled
// perAdjective times, and a KDE of the pooled draws is resampled n times.
// Adjectives whose sample holds a single distinct value contribute that value
// perAdjective times.
func BackgroundSample(table ResponseTable, perAdjective, n int, src rand.Source, rule kde.Rule) ([]float64, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("background sample: empty response table")
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("background sample: %w", err)
	}

	pooled := make([]float64, 0, perAdjective*len(table))
	for _, adj := range table.Adjectives() {
		sample := table[adj]
		g, err := kde.FitGaussian(sample, rule)
		if err != nil {
			for i := 0; i < perAdjective; i++ {
				pooled = append(pooled, sample[0])
			}
			continue
		}
		pooled = append(pooled, g.Resample(perAdjective, src)...)
	}

	g, err := kde.FitGaussian(pooled, rule)
	if err != nil {
		return nil, fmt.Errorf("background sample: %w", err)
	}
	return g.Resample(n, src), nil
}
