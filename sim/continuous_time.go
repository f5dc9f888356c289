package sim

import (
	"fmt"

	"github.com/milosgajdos/go-kalman/matrix"
	"gonum.org/v1/gonum/mat"
)

// c2dSteps is number of integration steps used to discretize control matrix of a singular system
const c2dSteps = 100

// Continuous is a basic model of a linear, continuous-time, dynamical system
type Continuous struct {
	System
}

// NewContinuous creates a linear continuous-time model:
//
//	dx/dt = A*x + B*u
//	z = H*x
func NewContinuous(A, B, H *mat.Dense) (*Continuous, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	if r, c := A.Dims(); r != c {
		return nil, fmt.Errorf("invalid system matrix dimensions: [%d x %d]", r, c)
	}

	return &Continuous{System: newSystem(A, B, H)}, nil
}

// ToDiscrete creates a discrete-time model from a continuous time model
// using Ts as the sampling time (zero-order hold).
func (ct *Continuous) ToDiscrete(Ts float64) (*Discrete, error) {
	if Ts <= 0 {
		return nil, fmt.Errorf("invalid sampling time: %v", Ts)
	}

	nx, _, _ := ct.Dims()
	dsys := newSystem(ct.F, ct.B, ct.H)

	// Fd = exp(A*Ts)
	dsys.F.Scale(Ts, ct.F)
	dsys.F.Exp(dsys.F)

	if ct.B == nil {
		return &Discrete{dsys}, nil
	}

	eye, err := matrix.Identity(nx)
	if err != nil {
		return nil, err
	}

	aux := mat.NewDense(nx, nx, nil)
	// Bd = (exp(A*Ts) - I)*inv(A)*B when A is not singular
	aux.Sub(dsys.F, eye)
	inv := mat.NewDense(nx, nx, nil)
	if err := inv.Inverse(ct.F); err == nil {
		aux.Mul(aux, inv)
		dsys.B.Mul(aux, ct.B)
		return &Discrete{dsys}, nil
	}

	// Bd = integrate(exp(A*t)dt, 0, Ts)*B using the trapezoidal rule
	sum := mat.NewDense(nx, nx, nil)
	dt := Ts / float64(c2dSteps)
	for i := 0; i <= c2dSteps; i++ {
		w := dt
		if i == 0 || i == c2dSteps {
			w = dt / 2
		}
		aux.Scale(dt*float64(i), ct.F)
		aux.Exp(aux)
		aux.Scale(w, aux)
		sum.Add(sum, aux)
	}
	dsys.B.Mul(sum, ct.B)

	return &Discrete{dsys}, nil
}
