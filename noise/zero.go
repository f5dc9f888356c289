package noise

import (
	"fmt"

	filter "github.com/milosgajdos/go-kalman"
	"gonum.org/v1/gonum/mat"
)

// Zero is deterministic noise: every sample is a zero vector and its covariance is a zero matrix.
// Models built from Zero noise of size 0 carry no noise covariance at all.
type Zero struct {
	// dim is noise dimension
	dim int
}

// NewZero creates new Zero noise of dimension dim and returns it.
// It returns *filter.InvalidInputError if dim is negative.
func NewZero(dim int) (*Zero, error) {
	if dim < 0 {
		return nil, &filter.InvalidInputError{Name: "noise dimension", Value: float64(dim)}
	}

	return &Zero{dim: dim}, nil
}

// Dim returns noise dimension
func (e *Zero) Dim() int {
	return e.dim
}

// Sample returns zero vector
func (e *Zero) Sample() mat.Vector {
	if e.dim == 0 {
		return &mat.VecDense{}
	}

	return mat.NewVecDense(e.dim, nil)
}

// Cov returns zero covariance matrix
func (e *Zero) Cov() mat.Symmetric {
	if e.dim == 0 {
		return &mat.SymDense{}
	}

	return mat.NewSymDense(e.dim, nil)
}

// Mean returns zero mean
func (e *Zero) Mean() []float64 {
	return make([]float64, e.dim)
}

// Reset is a no-op.
func (e *Zero) Reset() {}

// String implements the Stringer interface.
func (e *Zero) String() string {
	return fmt.Sprintf("Zero{Dim=%d}", e.dim)
}
