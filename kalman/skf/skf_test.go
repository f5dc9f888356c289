package skf

import (
	"errors"
	"math"
	"testing"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/estimate"
	"github.com/milosgajdos/go-kalman/kalman"
	"github.com/stretchr/testify/assert"
)

func TestSKFNew(t *testing.T) {
	assert := assert.New(t)

	f, err := New(0, 100, nil)
	assert.NoError(err)
	assert.NotNil(f)
	assert.Equal(estimate.Belief{Mean: 0, Variance: 100}, f.Belief())

	var iErr *filter.InvalidInputError
	for _, test := range []struct {
		mean     float64
		variance float64
	}{
		{mean: 0, variance: -1},
		{mean: math.NaN(), variance: 1},
		{mean: 0, variance: math.Inf(1)},
	} {
		f, err = New(test.mean, test.variance, nil)
		assert.Nil(f)
		assert.True(errors.As(err, &iErr))
	}

	// invalid config
	f, err = New(0, 1, &kalman.Config{MinNoiseFloor: -1})
	assert.Nil(f)
	assert.Error(err)
}

func TestSKFPredict(t *testing.T) {
	assert := assert.New(t)

	f, err := New(10, 2, nil)
	assert.NoError(err)

	b, err := f.Predict(1.5, 0.5)
	assert.NoError(err)
	assert.Equal(11.5, b.Mean)
	assert.Equal(2.5, b.Variance)
	assert.Equal(b, f.Belief())

	// negative process noise leaves the belief unchanged
	b, err = f.Predict(1.0, -0.1)
	var iErr *filter.InvalidInputError
	assert.True(errors.As(err, &iErr))
	assert.Equal("process noise", iErr.Name)
	assert.Equal(11.5, f.Mean())
	assert.Equal(2.5, f.Variance())

	_, err = f.Predict(math.NaN(), 0.1)
	assert.True(errors.As(err, &iErr))
	assert.Equal(11.5, f.Mean())
}

func TestSKFUpdate(t *testing.T) {
	assert := assert.New(t)

	f, err := New(10, 4, nil)
	assert.NoError(err)

	b, err := f.Update(12, 4)
	assert.NoError(err)
	assert.Equal(11.0, b.Mean)
	assert.Equal(2.0, b.Variance)
	assert.Equal(0.5, f.Gain())
	assert.Equal(2.0, f.Residual())

	// negative measurement noise leaves the belief unchanged
	_, err = f.Update(12, -4)
	var iErr *filter.InvalidInputError
	assert.True(errors.As(err, &iErr))
	assert.Equal(11.0, f.Mean())
	assert.Equal(2.0, f.Variance())

	_, err = f.Update(math.Inf(-1), 4)
	assert.True(errors.As(err, &iErr))
	assert.Equal(11.0, f.Mean())
}

func TestSKFZeroNoise(t *testing.T) {
	assert := assert.New(t)

	f, err := New(0, 10, nil)
	assert.NoError(err)

	_, err = f.Predict(0, 0)
	assert.NoError(err)

	b, err := f.Update(7, 0)
	assert.NoError(err)
	assert.Equal(1.0, f.Gain())
	assert.Equal(7.0, b.Mean)
	assert.Equal(0.0, b.Variance)
}

func TestSKFNoiseFloor(t *testing.T) {
	assert := assert.New(t)

	// certain belief and exact measurement: noise floor prevents division by zero
	f, err := New(3, 0, nil)
	assert.NoError(err)

	b, err := f.Update(5, 0)
	assert.NoError(err)
	assert.False(math.IsNaN(b.Mean))
	assert.Equal(0.0, f.Gain())
	assert.Equal(3.0, b.Mean)
	assert.Equal(0.0, b.Variance)
}

func TestSKFLikelihood(t *testing.T) {
	assert := assert.New(t)

	f, err := New(0, 1, nil)
	assert.NoError(err)
	assert.True(math.IsNaN(f.Likelihood()))

	_, err = f.Update(1, 1)
	assert.NoError(err)
	// residual 1 under N(0, 2)
	assert.InDelta(math.Exp(-0.25)/math.Sqrt(4*math.Pi), f.Likelihood(), 1e-12)

	// failed update keeps the last likelihood
	lik := f.Likelihood()
	_, err = f.Update(math.NaN(), 1)
	assert.Error(err)
	assert.Equal(lik, f.Likelihood())
}

func TestSKFGainBounds(t *testing.T) {
	assert := assert.New(t)

	for _, variance := range []float64{0, 1e-9, 0.5, 1, 100, 1e9} {
		for _, r := range []float64{0, 1e-9, 0.5, 1, 100, 1e9} {
			f, err := New(0, variance, nil)
			assert.NoError(err)

			b, err := f.Update(1, r)
			assert.NoError(err)
			assert.True(f.Gain() >= 0 && f.Gain() <= 1, "gain %v out of bounds", f.Gain())
			assert.True(b.Variance >= 0)
		}
	}
}

func TestSKFConvergence(t *testing.T) {
	assert := assert.New(t)

	f, err := New(0, 100, nil)
	assert.NoError(err)

	prev := f.Variance()
	for i := 0; i < 50; i++ {
		b, err := f.Run(0, 0, 5, 1)
		assert.NoError(err)
		assert.True(b.Variance < prev, "step %d: variance %v did not shrink", i, b.Variance)
		assert.True(b.Variance <= 1)
		prev = b.Variance
	}

	assert.InDelta(5.0, f.Mean(), 0.01)
}

func TestSKFRun(t *testing.T) {
	assert := assert.New(t)

	f, err := New(1, 1, nil)
	assert.NoError(err)

	b, err := f.Run(1, 1, 4, 2)
	assert.NoError(err)
	assert.Equal(3.0, b.Mean)
	assert.Equal(1.0, b.Variance)

	// failed update rolls back the prediction
	_, err = f.Run(1, 1, 4, -2)
	assert.Error(err)
	assert.Equal(b, f.Belief())

	_, err = f.Run(1, -1, 4, 2)
	assert.Error(err)
	assert.Equal(b, f.Belief())
}
