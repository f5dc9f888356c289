package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Belief is a one dimensional Gaussian belief about a scalar quantity.
type Belief struct {
	// Mean is the belief mean
	Mean float64
	// Variance is the belief variance; never negative
	Variance float64
}

// Std returns belief standard deviation.
func (b Belief) Std() float64 {
	return math.Sqrt(b.Variance)
}

// Prob returns the probability density of the belief at x.
// A zero variance belief is a point mass: Prob returns +Inf at the mean and 0 elsewhere.
func (b Belief) Prob(x float64) float64 {
	if b.Variance == 0 {
		if x == b.Mean {
			return math.Inf(1)
		}
		return 0
	}

	n := distuv.Normal{Mu: b.Mean, Sigma: b.Std()}

	return n.Prob(x)
}

// String implements the Stringer interface.
func (b Belief) String() string {
	return fmt.Sprintf("𝒩(μ=%.3f, σ²=%.3f)", b.Mean, b.Variance)
}
