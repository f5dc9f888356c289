package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DiscreteWhiteNoise returns process noise covariance of a piecewise white noise
// model of order dim (2: position/velocity, 3: with acceleration, 4: with jerk)
// sampled every dt and scaled by variance.
// It returns error if dim is not one of 2, 3, 4 or if dt or variance is negative.
func DiscreteWhiteNoise(dim int, dt, variance float64) (*mat.SymDense, error) {
	if dt < 0 || variance < 0 {
		return nil, fmt.Errorf("invalid noise parameters: dt %v, variance %v", dt, variance)
	}

	var data []float64
	switch dim {
	case 2:
		data = []float64{
			math.Pow(dt, 4) / 4, math.Pow(dt, 3) / 2,
			math.Pow(dt, 3) / 2, dt * dt,
		}
	case 3:
		data = []float64{
			math.Pow(dt, 4) / 4, math.Pow(dt, 3) / 2, dt * dt / 2,
			math.Pow(dt, 3) / 2, dt * dt, dt,
			dt * dt / 2, dt, 1,
		}
	case 4:
		data = []float64{
			math.Pow(dt, 6) / 36, math.Pow(dt, 5) / 12, math.Pow(dt, 4) / 6, math.Pow(dt, 3) / 6,
			math.Pow(dt, 5) / 12, math.Pow(dt, 4) / 4, math.Pow(dt, 3) / 2, dt * dt / 2,
			math.Pow(dt, 4) / 6, math.Pow(dt, 3) / 2, dt * dt, dt,
			math.Pow(dt, 3) / 6, dt * dt / 2, dt, 1,
		}
	default:
		return nil, fmt.Errorf("unsupported noise model order: %d", dim)
	}

	q := mat.NewSymDense(dim, data)
	q.ScaleSym(variance, q)

	return q, nil
}

// ConstantVelocity returns position/velocity state transition matrix for time step dt.
func ConstantVelocity(dt float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, dt,
		0, 1,
	})
}
