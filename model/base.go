package model

import (
	"fmt"

	filter "github.com/milosgajdos/go-kalman"
	"gonum.org/v1/gonum/mat"
)

// InitCond implements filter.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state mat.Vector, cov mat.Symmetric) *InitCond {
	s := &mat.VecDense{}
	s.CloneFromVec(state)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := &mat.VecDense{}
	state.CloneFromVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// Process is a linear process model:
//
//	x[n+1] = F*x[n] + B*u[n] + w,  w ~ N(0, Q)
type Process struct {
	// F is state transition matrix
	F *mat.Dense
	// Q is process noise covariance; nil means no process noise
	Q mat.Symmetric
	// B is control matrix; nil means the process has no control input
	B *mat.Dense
}

// NewProcess creates new process model with transition matrix F, control matrix B
// and process noise covariance taken from q. Either q or B can be nil.
// Noise with empty covariance (e.g. zero-size noise.Zero) is treated as no process noise.
// It returns error if F is not square or if q or B dimensions do not agree with F.
func NewProcess(F *mat.Dense, q filter.Noise, B *mat.Dense) (*Process, error) {
	if F == nil {
		return nil, fmt.Errorf("state transition matrix must be defined")
	}

	rows, cols := F.Dims()
	if rows != cols {
		return nil, fmt.Errorf("invalid state transition matrix dimensions: [%d x %d]", rows, cols)
	}

	p := &Process{F: mat.DenseCopyOf(F)}

	if q != nil && q.Cov().SymmetricDim() != 0 {
		if q.Cov().SymmetricDim() != rows {
			return nil, fmt.Errorf("invalid process noise dimension: %d != %d", q.Cov().SymmetricDim(), rows)
		}
		p.Q = q.Cov()
	}

	if B != nil {
		if r, _ := B.Dims(); r != rows {
			return nil, fmt.Errorf("invalid control matrix rows: %d != %d", r, rows)
		}
		p.B = mat.DenseCopyOf(B)
	}

	return p, nil
}

// Measurement is a linear measurement model:
//
//	z[n] = H*x[n] + v,  v ~ N(0, R)
type Measurement struct {
	// H is measurement (observation) matrix
	H *mat.Dense
	// R is measurement noise covariance; nil means no measurement noise
	R mat.Symmetric
}

// NewMeasurement creates new measurement model with observation matrix H
// and measurement noise covariance taken from r. r can be nil.
// It returns error if r dimensions do not agree with H.
func NewMeasurement(H *mat.Dense, r filter.Noise) (*Measurement, error) {
	if H == nil {
		return nil, fmt.Errorf("measurement matrix must be defined")
	}

	rows, _ := H.Dims()
	m := &Measurement{H: mat.DenseCopyOf(H)}

	if r != nil && r.Cov().SymmetricDim() != 0 {
		if r.Cov().SymmetricDim() != rows {
			return nil, fmt.Errorf("invalid measurement noise dimension: %d != %d", r.Cov().SymmetricDim(), rows)
		}
		m.R = r.Cov()
	}

	return m, nil
}

// System bundles process and measurement models fixed for the lifetime of a filter
type System struct {
	// Process is system process model
	Process *Process
	// Measurement is system measurement model
	Measurement *Measurement
}

// NewSystem creates new System and returns it.
// It returns error if either model is nil or if the models disagree on the state dimension.
func NewSystem(p *Process, m *Measurement) (*System, error) {
	if p == nil || m == nil {
		return nil, fmt.Errorf("invalid system models: process %v, measurement %v", p, m)
	}

	nx, _ := p.F.Dims()
	if _, cols := m.H.Dims(); cols != nx {
		return nil, fmt.Errorf("invalid measurement matrix columns: %d != %d", cols, nx)
	}

	return &System{Process: p, Measurement: m}, nil
}
