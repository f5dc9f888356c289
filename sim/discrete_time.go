package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Discrete is a basic model of a linear, discrete-time, dynamical system
type Discrete struct {
	System
}

// NewDiscrete creates a linear discrete-time model:
//
//	x[n+1] = F*x[n] + B*u[n] + w[n]
//	z[n] = H*x[n] + v[n]
func NewDiscrete(F, B, H *mat.Dense) (*Discrete, error) {
	if F == nil {
		return nil, fmt.Errorf("state matrix must be defined for a model")
	}

	if r, c := F.Dims(); r != c {
		return nil, fmt.Errorf("invalid state matrix dimensions: [%d x %d]", r, c)
	}

	return &Discrete{System: newSystem(F, B, H)}, nil
}

// Propagate returns the next internal state x
// of a linear, discrete-time system given an input vector u
// and process noise sample w.
func (d *Discrete) Propagate(x, u, w mat.Vector) (mat.Vector, error) {
	nx, nu, _ := d.Dims()
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := mat.NewVecDense(nx, nil)
	out.MulVec(d.F, x)
	if u != nil && d.B != nil {
		outU := mat.NewVecDense(nx, nil)
		outU.MulVec(d.B, u)

		out.AddVec(out, outU)
	}

	if w != nil && w.Len() == nx {
		out.AddVec(out, w)
	}

	return out, nil
}
