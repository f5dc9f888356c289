package estimate

import (
	"fmt"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/matrix"
	"gonum.org/v1/gonum/mat"
)

// State is a Gaussian state estimate: state vector and its covariance
type State struct {
	// val is estimated state
	val *mat.VecDense
	// cov is estimated state covariance
	cov *mat.SymDense
}

// NewState returns state estimate given state val and covariance cov.
// Both are copied. It returns *filter.DimensionMismatchError if cov is not a
// square matrix of the same size as val.
func NewState(val mat.Vector, cov mat.Symmetric) (*State, error) {
	if val == nil || cov == nil {
		return nil, fmt.Errorf("invalid state estimate: val %v, cov %v", val, cov)
	}

	n := val.Len()
	if err := matrix.CheckDims("covariance", cov, n, n); err != nil {
		return nil, err
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(n, nil)
	c.CopySym(cov)

	return &State{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated state
func (s *State) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(s.val)

	return v
}

// Cov returns estimated state covariance
func (s *State) Cov() mat.Symmetric {
	cov := mat.NewSymDense(s.cov.SymmetricDim(), nil)
	cov.CopySym(s.cov)

	return cov
}

// String implements the Stringer interface.
func (s *State) String() string {
	return fmt.Sprintf("State{\nVal=%v\nCov=%v\n}",
		mat.Formatted(s.val.T(), mat.Squeeze()),
		mat.Formatted(s.cov, mat.Prefix("    "), mat.Squeeze()))
}

// Marginal returns the scalar belief about i-th component of estimate e:
// its mean is the i-th state element and its variance the i-th covariance diagonal element.
// It returns error if i is out of range.
func Marginal(e filter.Estimate, i int) (Belief, error) {
	val := e.Val()
	if i < 0 || i >= val.Len() {
		return Belief{}, fmt.Errorf("invalid state component: %d", i)
	}

	return Belief{
		Mean:     val.AtVec(i),
		Variance: e.Cov().At(i, i),
	}, nil
}
