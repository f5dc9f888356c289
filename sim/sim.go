package sim

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/matrix"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulate runs discrete system d for steps steps starting from state x0.
// u contains control inputs for each step; it can be nil if the system is not controlled.
// q and r are process and measurement noise sources; either can be nil.
// It returns ground truth states and measurements stored in matrix rows.
// It returns error if steps is not positive, u length does not match steps or if system propagation fails.
func Simulate(d *Discrete, x0 mat.Vector, u []mat.Vector, q, r filter.Noise, steps int) (truth, meas *mat.Dense, err error) {
	if steps <= 0 {
		return nil, nil, fmt.Errorf("invalid number of steps: %d", steps)
	}

	if u != nil && len(u) != steps {
		return nil, nil, fmt.Errorf("invalid number of control inputs: %d != %d", len(u), steps)
	}

	nx, _, ny := d.Dims()
	truth = mat.NewDense(steps, nx, nil)
	meas = mat.NewDense(steps, ny, nil)

	x := x0
	for i := 0; i < steps; i++ {
		var ui, w, v mat.Vector
		if u != nil {
			ui = u[i]
		}
		if q != nil {
			w = q.Sample()
		}
		if r != nil {
			v = r.Sample()
		}

		x, err = d.Propagate(x, ui, w)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: system state propagation failed: %w", i, err)
		}

		z, err := d.Observe(x, v)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: failed to observe system output: %w", i, err)
		}

		truth.SetRow(i, mat.VecDenseCopyOf(x).RawVector().Data)
		meas.SetRow(i, mat.VecDenseCopyOf(z).RawVector().Data)
	}

	return truth, meas, nil
}

// Constant returns n noisy measurements of a constant value.
// Measurement noise is zero mean Gaussian with given variance drawn from a source seeded with seed.
// It returns error if n is not positive or variance is negative.
func Constant(value, variance float64, n int, seed uint64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of measurements: %d", n)
	}

	if variance < 0 {
		return nil, fmt.Errorf("invalid measurement variance: %v", variance)
	}

	norm := distuv.Normal{
		Mu:    value,
		Sigma: math.Sqrt(variance),
		Src:   rand.NewSource(seed),
	}

	zs := make([]float64, n)
	for i := range zs {
		zs[i] = norm.Rand()
	}

	return zs, nil
}

// RMSE returns root mean squared error of estimates est against truth for every state component.
// Both truth and est store states in their rows.
// It returns error if truth and est dimensions differ.
func RMSE(truth, est *mat.Dense) ([]float64, error) {
	if truth == nil || est == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	r, c := truth.Dims()
	if err := matrix.CheckDims("estimates", est, r, c); err != nil {
		return nil, err
	}

	diff := mat.NewDense(r, c, nil)
	diff.Sub(truth, est)
	diff.MulElem(diff, diff)

	rmse := matrix.ColSums(diff)
	for i := range rmse {
		rmse[i] = math.Sqrt(rmse[i] / float64(r))
	}

	return rmse, nil
}
