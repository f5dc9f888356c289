package noise

import (
	"errors"
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewZero(t *testing.T) {
	assert := assert.New(t)

	for _, dim := range []int{0, 1, 3} {
		e, err := NewZero(dim)
		assert.NoError(err)
		assert.Equal(dim, e.Dim())
	}

	e, err := NewZero(-10)
	assert.Nil(e)
	var iErr *filter.InvalidInputError
	assert.True(errors.As(err, &iErr))
	assert.Equal(-10.0, iErr.Value)
}

func TestZeroMeanCovSample(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NoError(err)

	assert.Equal([]float64{0, 0}, e.Mean())
	assert.True(mat.Equal(mat.NewSymDense(2, nil), e.Cov()))
	assert.True(mat.Equal(mat.NewVecDense(2, nil), e.Sample()))

	e.Reset()
	assert.True(mat.Equal(mat.NewVecDense(2, nil), e.Sample()))

	// returned values must not alias noise state
	mean := e.Mean()
	mean[0] = 1
	assert.Equal([]float64{0, 0}, e.Mean())
}

func TestZeroEmpty(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(0)
	assert.NoError(err)

	assert.Equal(0, e.Cov().SymmetricDim())
	assert.Equal(0, e.Sample().Len())
	assert.Empty(e.Mean())
}

func TestZeroString(t *testing.T) {
	assert := assert.New(t)

	e, err := NewZero(2)
	assert.NoError(err)
	assert.Equal("Zero{Dim=2}", e.String())
}
