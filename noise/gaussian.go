package noise

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/rand"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is gaussian noise
type Gaussian struct {
	// dist is a multivariate normal distribution; nil when cov is singular
	dist *distmv.Normal
	// src is the source of randomness
	src xrand.Source
	// seed seeds src
	seed uint64
	// mean is Gaussian mean
	mean []float64
	// cov is Gaussian covariance
	cov *mat.SymDense
}

// NewGaussian creates new Gaussian noise with given mean and covariance
// whose samples are drawn from a source seeded with seed.
// Positive semi-definite (singular) covariances are accepted.
// It returns error if mean length does not match cov dimensions.
func NewGaussian(mean []float64, cov mat.Symmetric, seed uint64) (*Gaussian, error) {
	if len(mean) != cov.SymmetricDim() {
		return nil, fmt.Errorf("invalid Gaussian noise dimensions: mean %d, cov %d", len(mean), cov.SymmetricDim())
	}

	m := make([]float64, len(mean))
	copy(m, mean)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	g := &Gaussian{
		seed: seed,
		mean: m,
		cov:  c,
	}
	g.Reset()

	return g, nil
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() mat.Vector {
	if g.dist != nil {
		r := g.dist.Rand(nil)
		return mat.NewVecDense(len(r), r)
	}

	// SVD sampling never fails for a symmetric matrix
	s, _ := rand.WithCovN(g.cov, 1, g.src)
	v := mat.VecDenseCopyOf(s.ColView(0))
	v.AddVec(v, mat.NewVecDense(len(g.mean), g.Mean()))

	return v
}

// Cov returns covariance matrix of Gaussian noise.
func (g *Gaussian) Cov() mat.Symmetric {
	cov := mat.NewSymDense(g.cov.SymmetricDim(), nil)
	cov.CopySym(g.cov)

	return cov
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() []float64 {
	mean := make([]float64, len(g.mean))
	copy(mean, g.mean)

	return mean
}

// Reset reseeds Gaussian noise: the sequence of samples starts over.
func (g *Gaussian) Reset() {
	g.src = xrand.NewSource(g.seed)
	// distmv fails to create a distribution for singular covariance
	g.dist, _ = distmv.NewNormal(g.mean, g.cov, g.src)
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
