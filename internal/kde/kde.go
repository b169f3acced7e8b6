// Package kde fits Gaussian kernel density estimates on the line and on the
// circle.
package kde

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when fewer than two distinct values are
// available: the sample variance is zero and no kernel bandwidth exists
var ErrInsufficientData = errors.New("insufficient data for kernel density estimate")

// Rule selects the bandwidth factor applied to the sample standard deviation
type Rule string

const (
	Scott     Rule = "scott"     // n^(-1/5)
	Silverman Rule = "silverman" // (3n/4)^(-1/5)
)

// ParseRule converts a configuration value into a Rule
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case Scott, Silverman:
		return Rule(s), nil
	case "":
		return Scott, nil
	default:
		return "", fmt.Errorf("unknown bandwidth rule %q (supported: scott, silverman)", s)
	}
}

// Factor returns the bandwidth factor for n one-dimensional observations
func (r Rule) Factor(n int) float64 {
	switch r {
	case Silverman:
		return math.Pow(float64(n)*3/4, -1.0/5)
	default:
		return math.Pow(float64(n), -1.0/5)
	}
}

// bandwidth returns the kernel standard deviation for data under rule
func bandwidth(data []float64, rule Rule) (float64, error) {
	if distinct(data) < 2 {
		return 0, fmt.Errorf("%d values: %w", len(data), ErrInsufficientData)
	}
	sd := stat.StdDev(data, nil)
	return sd * rule.Factor(len(data)), nil
}

// distinct counts distinct values, stopping at two
func distinct(data []float64) int {
	if len(data) == 0 {
		return 0
	}
	first := data[0]
	for _, v := range data[1:] {
		if v != first {
			return 2
		}
	}
	return 1
}
