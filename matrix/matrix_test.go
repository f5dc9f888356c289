package matrix

import (
	"errors"
	"math"
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestCheckDims(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 3, nil)
	assert.NoError(CheckDims("m", m, 2, 3))

	err := CheckDims("m", m, 3, 3)
	assert.Error(err)

	var dErr *filter.DimensionMismatchError
	assert.True(errors.As(err, &dErr))
	assert.Equal("m", dErr.Name)
	assert.Equal(2, dErr.Rows)
	assert.Equal(3, dErr.WantRows)
}

func TestCheckVecLen(t *testing.T) {
	assert := assert.New(t)

	v := mat.NewVecDense(3, nil)
	assert.NoError(CheckVecLen("v", v, 3))

	err := CheckVecLen("v", v, 2)
	var dErr *filter.DimensionMismatchError
	assert.True(errors.As(err, &dErr))
}

func TestCheckCov(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		cov   *mat.SymDense
		valid bool
	}{
		{cov: mat.NewSymDense(2, []float64{1, 0, 0, 1}), valid: true},
		{cov: mat.NewSymDense(2, []float64{0, 0, 0, 0}), valid: true},
		{cov: mat.NewSymDense(2, []float64{1, 0, 0, -1}), valid: false},
		{cov: mat.NewSymDense(1, []float64{math.NaN()}), valid: false},
		{cov: mat.NewSymDense(1, []float64{math.Inf(1)}), valid: false},
		{cov: mat.NewSymDense(2, []float64{1, math.NaN(), math.NaN(), 1}), valid: false},
		// rank deficient
		{cov: mat.NewSymDense(2, []float64{1, 1, 1, 1}), valid: true},
		{cov: mat.NewSymDense(2, []float64{1e-12, 1e-12, 1e-12, 1e-12}), valid: true},
		// non-negative diagonal, indefinite
		{cov: mat.NewSymDense(2, []float64{0, 5, 5, 0}), valid: false},
		{cov: mat.NewSymDense(2, []float64{1, 2, 2, 1}), valid: false},
		{cov: &mat.SymDense{}, valid: true},
	} {
		err := CheckCov("Q", test.cov)
		if test.valid {
			assert.NoError(err)
			continue
		}
		var iErr *filter.InvalidInputError
		assert.True(errors.As(err, &iErr))
	}
}

func TestCheckCovEigenvalue(t *testing.T) {
	assert := assert.New(t)

	err := CheckCov("R", mat.NewSymDense(2, []float64{1, 2, 2, 1}))
	var iErr *filter.InvalidInputError
	assert.True(errors.As(err, &iErr))
	assert.Equal("R eigenvalue", iErr.Name)
	assert.InDelta(-1.0, iErr.Value, 1e-12)
}

func TestCheckFinite(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(CheckFinite("F", mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	assert.NoError(CheckFinite("u", &mat.VecDense{}))

	err := CheckFinite("F", mat.NewDense(2, 2, []float64{1, 2, math.Inf(-1), 4}))
	var iErr *filter.InvalidInputError
	assert.True(errors.As(err, &iErr))
	assert.Equal("F[1,0]", iErr.Name)
	assert.True(math.IsInf(iErr.Value, -1))

	err = CheckFinite("z", mat.NewVecDense(2, []float64{0, math.NaN()}))
	assert.True(errors.As(err, &iErr))
	assert.Equal("z[1,0]", iErr.Name)
}

func TestIdentity(t *testing.T) {
	assert := assert.New(t)

	eye, err := Identity(3)
	assert.NoError(err)
	assert.True(mat.Equal(eye, mat.NewDiagDense(3, []float64{1, 1, 1})))

	eye, err = Identity(0)
	assert.Nil(eye)
	assert.Error(err)
}

func TestSymmetrize(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 2, []float64{1, 2, 4, 3})
	s := Symmetrize(m)
	assert.Equal(3.0, s.At(0, 1))
	assert.Equal(3.0, s.At(1, 0))
	assert.Equal(1.0, s.At(0, 0))
	assert.True(IsSymmetric(s, 0))

	assert.Panics(func() { Symmetrize(mat.NewDense(2, 3, nil)) })
}

func TestIsSymmetric(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 2, []float64{1, 2, 2 + 1e-12, 3})
	assert.True(IsSymmetric(m, 1e-9))
	assert.False(IsSymmetric(m, 0))
	assert.False(IsSymmetric(mat.NewDense(2, 3, nil), 1e-9))
}

func TestColSums(t *testing.T) {
	assert := assert.New(t)

	data := []float64{1.2, 3.4, 4.5, 6.7, 8.9, 10.0}
	colSums := []float64{14.6, 20.1}
	delta := 0.001

	m := mat.NewDense(3, 2, data)
	assert.NotNil(m)

	resCols := ColSums(m)
	assert.NotNil(resCols)
	assert.InDeltaSlice(colSums, resCols, delta)
	// should panic
	assert.Panics(func() { ColSums(nil) })
}
