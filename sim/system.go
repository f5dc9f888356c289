package sim

import (
	"fmt"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/model"
	"gonum.org/v1/gonum/mat"
)

// System defines a linear plant whose ground truth trajectory
// and measurements are simulated and fed to a filter.
//
// It contains the state (F), control (B) and measurement (H) matrices.
type System struct {
	// State matrix F
	F *mat.Dense
	// Control matrix B
	B *mat.Dense
	// Measurement matrix H
	H *mat.Dense
}

func newSystem(F, B, H *mat.Dense) System {
	sys := System{F: mat.DenseCopyOf(F)}
	if B != nil {
		sys.B = mat.DenseCopyOf(B)
	}
	if H != nil {
		sys.H = mat.DenseCopyOf(H)
	}
	return sys
}

// Dims returns internal state length (nx), input vector length (nu)
// and measurement vector length (ny).
func (s System) Dims() (nx, nu, ny int) {
	nx, _ = s.F.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.H != nil {
		ny, _ = s.H.Dims()
	}
	return nx, nu, ny
}

// Observe returns measurement of internal state x.
// v is added to the measurement as a noise vector.
func (s System) Observe(x, v mat.Vector) (mat.Vector, error) {
	nx, _, ny := s.Dims()
	if s.H == nil {
		return nil, fmt.Errorf("measurement matrix not defined")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := mat.NewVecDense(ny, nil)
	out.MulVec(s.H, x)

	if v != nil && v.Len() == ny {
		out.AddVec(out, v)
	}

	return out, nil
}

// Process returns filter process model of the system with process noise covariance taken from q.
func (s System) Process(q filter.Noise) (*model.Process, error) {
	return model.NewProcess(s.F, q, s.B)
}

// Measurement returns filter measurement model of the system with measurement noise covariance taken from r.
func (s System) Measurement(r filter.Noise) (*model.Measurement, error) {
	return model.NewMeasurement(s.H, r)
}
