package matrix

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	gomatrix "github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// PSDTol is the relative tolerance of the smallest covariance eigenvalue:
// eigenvalues down to -PSDTol times the largest absolute eigenvalue (but at least -PSDTol)
// are accepted as zero.
const PSDTol = 1e-10

// CheckDims checks that m is a rows x cols matrix.
// It returns *filter.DimensionMismatchError if it is not.
func CheckDims(name string, m mat.Matrix, rows, cols int) error {
	r, c := m.Dims()
	if r != rows || c != cols {
		return &filter.DimensionMismatchError{
			Name:     name,
			Rows:     r,
			Cols:     c,
			WantRows: rows,
			WantCols: cols,
		}
	}

	return nil
}

// CheckVecLen checks that v has length n.
// It returns *filter.DimensionMismatchError if it does not.
func CheckVecLen(name string, v mat.Vector, n int) error {
	if v.Len() != n {
		return &filter.DimensionMismatchError{
			Name:     name,
			Rows:     v.Len(),
			Cols:     1,
			WantRows: n,
			WantCols: 1,
		}
	}

	return nil
}

// CheckFinite checks that every element of m is a finite number.
// It returns *filter.InvalidInputError for the first offending element.
func CheckFinite(name string, m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &filter.InvalidInputError{
					Name:  fmt.Sprintf("%s[%d,%d]", name, i, j),
					Value: v,
				}
			}
		}
	}

	return nil
}

// CheckCov checks that c is a finite positive semi-definite matrix within PSDTol.
// It returns *filter.InvalidInputError if any of these does not hold.
func CheckCov(name string, c mat.Symmetric) error {
	if err := CheckFinite(name, c); err != nil {
		return err
	}

	n := c.SymmetricDim()
	for i := 0; i < n; i++ {
		if v := c.At(i, i); v < 0 {
			return &filter.InvalidInputError{
				Name:  fmt.Sprintf("%s[%d,%d]", name, i, i),
				Value: v,
			}
		}
	}

	if n == 0 {
		return nil
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(c, false); !ok {
		return fmt.Errorf("%s: eigen decomposition failed", name)
	}

	// eigenvalues are returned in ascending order
	vals := eig.Values(nil)
	minVal, maxVal := vals[0], math.Max(math.Abs(vals[0]), math.Abs(vals[n-1]))
	if minVal < -PSDTol*math.Max(1, maxVal) {
		return &filter.InvalidInputError{
			Name:  name + " eigenvalue",
			Value: minVal,
		}
	}

	return nil
}

// Identity returns n x n identity matrix.
// It returns error if n is not a positive integer.
func Identity(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid identity matrix size: %d", n)
	}

	eye, err := gomatrix.NewDenseValIdentity(n, 1.0)
	if err != nil {
		return nil, err
	}

	return mat.DenseCopyOf(eye), nil
}

// Symmetrize returns a symmetric matrix which is the average of square matrix m and its transpose.
// It panics if m is not square.
func Symmetrize(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrSquare)
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return s
}

// IsSymmetric returns true if m is square and every element
// is within tol of its transposed counterpart.
func IsSymmetric(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}

	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			if !scalar.EqualWithinAbs(m.At(i, j), m.At(j, i), tol) {
				return false
			}
		}
	}

	return true
}

// ColSums returns a slice containing m column sums.
// It panics if m is nil.
func ColSums(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	sum := make([]float64, cols)

	for i := 0; i < cols; i++ {
		sum[i] = floats.Sum(mat.Col(nil, i, m))
	}

	return sum
}
