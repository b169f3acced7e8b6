package kde

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is a one-dimensional Gaussian kernel density estimate
type Gaussian struct {
	points    []float64
	bandwidth float64
}

// FitGaussian fits a Gaussian KDE to data
func FitGaussian(data []float64, rule Rule) (*Gaussian, error) {
	h, err := bandwidth(data, rule)
	if err != nil {
		return nil, err
	}
	points := make([]float64, len(data))
	copy(points, data)
	return &Gaussian{points: points, bandwidth: h}, nil
}

// Bandwidth returns the kernel standard deviation
func (g *Gaussian) Bandwidth() float64 {
	return g.bandwidth
}

// Density evaluates the estimate at x
func (g *Gaussian) Density(x float64) float64 {
	kernel := distuv.Normal{Mu: 0, Sigma: g.bandwidth}
	var sum float64
	for _, p := range g.points {
		sum += kernel.Prob(x - p)
	}
	return sum / float64(len(g.points))
}

// Resample draws n values: a random data point plus kernel noise
func (g *Gaussian) Resample(n int, src rand.Source) []float64 {
	rng := rand.New(src)
	noise := distuv.Normal{Mu: 0, Sigma: g.bandwidth, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = g.points[rng.IntN(len(g.points))] + noise.Rand()
	}
	return out
}
