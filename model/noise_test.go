package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscreteWhiteNoise(t *testing.T) {
	assert := assert.New(t)

	q, err := DiscreteWhiteNoise(2, 1.0, 0.1)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{0.025, 0.05}, []float64{q.At(0, 0), q.At(0, 1)}, 1e-12)
	assert.InDelta(0.1, q.At(1, 1), 1e-12)

	for _, dim := range []int{2, 3, 4} {
		q, err := DiscreteWhiteNoise(dim, 1.0, 2.0)
		assert.NoError(err)
		assert.Equal(dim, q.SymmetricDim())
		assert.Equal(2.0, q.At(dim-1, dim-1))
	}

	q, err = DiscreteWhiteNoise(5, 1.0, 1.0)
	assert.Nil(q)
	assert.Error(err)

	q, err = DiscreteWhiteNoise(2, -1.0, 1.0)
	assert.Nil(q)
	assert.Error(err)
}

func TestConstantVelocity(t *testing.T) {
	assert := assert.New(t)

	f := ConstantVelocity(0.1)
	assert.Equal(0.1, f.At(0, 1))
	assert.Equal(0.0, f.At(1, 0))
	assert.Equal(1.0, f.At(0, 0))
	assert.Equal(1.0, f.At(1, 1))
}
