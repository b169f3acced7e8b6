package kde

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Circular is a wrapped Gaussian kernel density estimate for angles. The
// density is periodic with period 2π and integrates to 1 over (-π, π].
type Circular struct {
	points    []float64
	bandwidth float64
	wraps     int
}

// FitCircular fits a circular KDE to angles in radians. The bandwidth is the
// rule factor times the sample standard deviation of the angles.
func FitCircular(angles []float64, rule Rule) (*Circular, error) {
	h, err := bandwidth(angles, rule)
	if err != nil {
		return nil, err
	}

	points := make([]float64, len(angles))
	for i, a := range angles {
		points[i] = Wrap(a)
	}

	// Kernel mass further than 8 bandwidths away is negligible
	wraps := int(math.Ceil(8*h/(2*math.Pi))) + 1

	return &Circular{points: points, bandwidth: h, wraps: wraps}, nil
}

// Wrap maps an angle into (-π, π]
func Wrap(theta float64) float64 {
	m := math.Mod(math.Pi-theta, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return math.Pi - m
}

// Bandwidth returns the kernel standard deviation in radians
func (c *Circular) Bandwidth() float64 {
	return c.bandwidth
}

// Len returns the number of fitted angles
func (c *Circular) Len() int {
	return len(c.points)
}

// Density evaluates the estimate at theta
func (c *Circular) Density(theta float64) float64 {
	theta = Wrap(theta)
	kernel := distuv.Normal{Mu: 0, Sigma: c.bandwidth}

	var sum float64
	for _, p := range c.points {
		d := theta - p
		for k := -c.wraps; k <= c.wraps; k++ {
			sum += kernel.Prob(d + 2*math.Pi*float64(k))
		}
	}
	return sum / float64(len(c.points))
}

// Grid evaluates the density at n evenly spaced angles covering (-π, π]
func (c *Circular) Grid(n int) (thetas, densities []float64) {
	if n <= 0 {
		return nil, nil
	}
	thetas = floats.Span(make([]float64, n+1), -math.Pi, math.Pi)[1:]
	densities = make([]float64, n)
	for i, theta := range thetas {
		densities[i] = c.Density(theta)
	}
	return thetas, densities
}

// Sample draws n angles in (-π, π]: a random fitted angle plus kernel noise,
// wrapped onto the circle
func (c *Circular) Sample(n int, src rand.Source) []float64 {
	rng := rand.New(src)
	noise := distuv.Normal{Mu: 0, Sigma: c.bandwidth, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = Wrap(c.points[rng.IntN(len(c.points))] + noise.Rand())
	}
	return out
}
