package kf

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/estimate"
	"github.com/milosgajdos/go-kalman/kalman"
	"github.com/milosgajdos/go-kalman/matrix"
	"github.com/milosgajdos/go-kalman/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// KF is linear Kalman Filter
type KF struct {
	// c is filter configuration
	c *kalman.Config
	// nx is state dimension
	nx int
	// nu is control input dimension; 0 until the first controlled prediction
	nu int
	// ny is measurement dimension; 0 until the first update
	ny int
	// x is filter state
	x *mat.VecDense
	// p is filter state covariance
	p *mat.SymDense
	// inn is the last innovation vector
	inn *mat.VecDense
	// s is the last innovation covariance
	s *mat.SymDense
	// k is the last Kalman gain
	k *mat.Dense
}

// New creates new KF and returns it.
// It accepts the following parameters:
//   - init:   initial condition of the filter
//   - c:      filter configuration; nil means kalman.DefaultConfig
//
// It returns error if either of the following conditions is met:
//   - invalid configuration is given
//   - initial state is empty or its covariance dimensions do not match it
//   - initial state is not finite or initial covariance is not positive semi-definite
func New(init filter.InitCond, c *kalman.Config) (*KF, error) {
	c, err := kalman.Resolve(c)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	x := mat.VecDenseCopyOf(init.State())
	nx := x.Len()
	if nx <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", nx)
	}

	if err := matrix.CheckFinite("initial state", x); err != nil {
		return nil, err
	}

	cov := init.Cov()
	if err := matrix.CheckDims("initial covariance", cov, nx, nx); err != nil {
		return nil, err
	}

	if err := matrix.CheckCov("initial covariance", cov); err != nil {
		return nil, err
	}

	p := mat.NewSymDense(nx, nil)
	p.CopySym(cov)

	return &KF{
		c:  c,
		nx: nx,
		x:  x,
		p:  p,
	}, nil
}

// Predict propagates filter state through process model pm given control input u and returns the new estimate:
//
//	x' = F*x + B*u
//	P' = F*P*F' + Q
//
// u can be nil in which case B is ignored.
// It returns *filter.DimensionMismatchError if any model matrix or u disagrees with the filter dimensions
// and *filter.InvalidInputError if F, B or u contain non-finite values or Q is not positive semi-definite.
// Filter state is left unchanged on error.
func (k *KF) Predict(pm *model.Process, u mat.Vector) (filter.Estimate, error) {
	if pm == nil || pm.F == nil {
		return nil, fmt.Errorf("invalid process model: %v", pm)
	}

	if err := matrix.CheckDims("F", pm.F, k.nx, k.nx); err != nil {
		return nil, err
	}

	if err := matrix.CheckFinite("F", pm.F); err != nil {
		return nil, err
	}

	if pm.Q != nil {
		if err := matrix.CheckDims("Q", pm.Q, k.nx, k.nx); err != nil {
			return nil, err
		}
		if err := matrix.CheckCov("Q", pm.Q); err != nil {
			return nil, err
		}
	}

	nu, err := k.checkControl(pm.B, u)
	if err != nil {
		return nil, err
	}

	x := mat.NewVecDense(k.nx, nil)
	x.MulVec(pm.F, k.x)
	if nu > 0 {
		bu := mat.NewVecDense(k.nx, nil)
		bu.MulVec(pm.B, u)
		x.AddVec(x, bu)
	}

	cov := &mat.Dense{}
	cov.Product(pm.F, k.p, pm.F.T())
	if pm.Q != nil {
		cov.Add(cov, pm.Q)
	}

	if nu > 0 {
		k.nu = nu
	}
	k.x = x
	k.p = matrix.Symmetrize(cov)

	return estimate.NewState(k.x, k.p)
}

// checkControl validates control matrix B and control input u and returns the control dimension.
// It returns 0 if u is nil.
func (k *KF) checkControl(B *mat.Dense, u mat.Vector) (int, error) {
	if u == nil {
		return 0, nil
	}

	nu := u.Len()
	if k.nu != 0 {
		nu = k.nu
	}

	if B == nil {
		return 0, &filter.DimensionMismatchError{Name: "B", WantRows: k.nx, WantCols: nu}
	}

	if err := matrix.CheckDims("B", B, k.nx, nu); err != nil {
		return 0, err
	}

	if err := matrix.CheckVecLen("u", u, nu); err != nil {
		return 0, err
	}

	if err := matrix.CheckFinite("B", B); err != nil {
		return 0, err
	}

	if err := matrix.CheckFinite("u", u); err != nil {
		return 0, err
	}

	return nu, nil
}

// Update corrects filter state with measurement z observed through measurement model mm and returns the new estimate:
//
//	y  = z - H*x
//	S  = H*P*H' + R
//	K  = P*H'*inv(S)
//	x' = x + K*y
//	P' = (I - K*H)*P
//
// P' is averaged with its transpose unless Config.SkipSymmetrize is set.
// The Kalman gain is obtained by solving S*K' = H*P rather than inverting S.
// It returns *filter.SingularInnovationCovError if S is singular or its condition number
// exceeds the configured threshold, *filter.DimensionMismatchError if z, H or R disagree
// with the filter dimensions and *filter.InvalidInputError if z or H contain non-finite values
// or R is not positive semi-definite.
// Filter state is left unchanged on error.
func (k *KF) Update(z mat.Vector, mm *model.Measurement) (filter.Estimate, error) {
	if mm == nil || mm.H == nil {
		return nil, fmt.Errorf("invalid measurement model: %v", mm)
	}

	ny, _ := mm.H.Dims()
	if k.ny != 0 {
		ny = k.ny
	}

	if err := matrix.CheckDims("H", mm.H, ny, k.nx); err != nil {
		return nil, err
	}

	if err := matrix.CheckVecLen("z", z, ny); err != nil {
		return nil, err
	}

	if err := matrix.CheckFinite("H", mm.H); err != nil {
		return nil, err
	}

	if err := matrix.CheckFinite("z", z); err != nil {
		return nil, err
	}

	if mm.R != nil {
		if err := matrix.CheckDims("R", mm.R, ny, ny); err != nil {
			return nil, err
		}
		if err := matrix.CheckCov("R", mm.R); err != nil {
			return nil, err
		}
	}

	// innovation: z - H*x
	inn := mat.NewVecDense(ny, nil)
	inn.MulVec(mm.H, k.x)
	inn.SubVec(z, inn)

	// H*P
	hp := mat.NewDense(ny, k.nx, nil)
	hp.Mul(mm.H, k.p)

	// H*P*H' + R
	pyy := mat.NewDense(ny, ny, nil)
	pyy.Mul(hp, mm.H.T())
	if mm.R != nil {
		pyy.Add(pyy, mm.R)
	}
	s := matrix.Symmetrize(pyy)

	var lu mat.LU
	lu.Factorize(s)
	cond := lu.Cond()
	if math.IsNaN(cond) || cond > k.c.CondThreshold {
		return nil, &filter.SingularInnovationCovError{Cond: cond}
	}

	// S is symmetric, so S*K' = (P*H')' = H*P
	kt := &mat.Dense{}
	if err := lu.SolveTo(kt, false, hp); err != nil {
		return nil, &filter.SingularInnovationCovError{Cond: cond}
	}
	gain := mat.DenseCopyOf(kt.T())

	// update state x
	x := mat.NewVecDense(k.nx, nil)
	x.MulVec(gain, inn)
	x.AddVec(k.x, x)

	eye, err := matrix.Identity(k.nx)
	if err != nil {
		return nil, err
	}
	// I - K*H
	a := &mat.Dense{}
	a.Mul(gain, mm.H)
	a.Sub(eye, a)

	pCorr := &mat.Dense{}
	if k.c.JosephForm {
		// (I - K*H)*P*(I - K*H)' + K*R*K'
		pCorr.Product(a, k.p, a.T())
		if mm.R != nil {
			krk := &mat.Dense{}
			krk.Product(gain, mm.R, gain.T())
			pCorr.Add(pCorr, krk)
		}
	} else {
		pCorr.Mul(a, k.p)
	}

	k.x = x
	k.p = k.toSym(pCorr)
	k.ny = ny
	k.inn = inn
	k.s = s
	k.k = gain

	return estimate.NewState(k.x, k.p)
}

// toSym converts square matrix m to symmetric matrix either by averaging it with its transpose
// or, if symmetrization is skipped, by copying its upper triangle.
func (k *KF) toSym(m mat.Matrix) *mat.SymDense {
	if !k.c.SkipSymmetrize {
		return matrix.Symmetrize(m)
	}

	n, _ := m.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, m.At(i, j))
		}
	}

	return s
}

// Run runs one step of KF: it propagates the filter state through system sys process model
// given control input u and corrects it with measurement z.
// It returns error if it either fails to propagate or correct the state.
// Filter state is left unchanged on error.
func (k *KF) Run(sys *model.System, u, z mat.Vector) (filter.Estimate, error) {
	if sys == nil {
		return nil, fmt.Errorf("invalid system: %v", sys)
	}

	x, p, nu := k.x, k.p, k.nu

	if _, err := k.Predict(sys.Process, u); err != nil {
		return nil, err
	}

	est, err := k.Update(z, sys.Measurement)
	if err != nil {
		k.x, k.p, k.nu = x, p, nu
		return nil, err
	}

	return est, nil
}

// Dims returns state, control and measurement dimensions.
// Control and measurement dimensions are 0 until they are fixed by the first
// controlled prediction and the first update respectively.
func (k *KF) Dims() (nx, nu, ny int) {
	return k.nx, k.nu, k.ny
}

// State returns KF state
func (k *KF) State() mat.Vector {
	return mat.VecDenseCopyOf(k.x)
}

// Cov returns KF covariance
func (k *KF) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.nx, nil)
	cov.CopySym(k.p)

	return cov
}

// SetCov sets KF covariance matrix to cov.
// It returns error if either cov is nil, its dimensions are not the same as KF covariance dimensions
// or it is not positive semi-definite.
func (k *KF) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if err := matrix.CheckDims("covariance", cov, k.nx, k.nx); err != nil {
		return err
	}

	if err := matrix.CheckCov("covariance", cov); err != nil {
		return err
	}

	k.p.CopySym(cov)

	return nil
}

// Gain returns the last Kalman gain.
// It returns empty matrix if the filter has not been updated yet.
func (k *KF) Gain() mat.Matrix {
	if k.k == nil {
		return &mat.Dense{}
	}

	return mat.DenseCopyOf(k.k)
}

// Innovation returns the last innovation (measurement residual) vector.
// It returns empty vector if the filter has not been updated yet.
func (k *KF) Innovation() mat.Vector {
	if k.inn == nil {
		return &mat.VecDense{}
	}

	return mat.VecDenseCopyOf(k.inn)
}

// InnovationCov returns the last innovation covariance.
// It returns empty matrix if the filter has not been updated yet.
func (k *KF) InnovationCov() mat.Symmetric {
	if k.s == nil {
		return &mat.SymDense{}
	}

	s := mat.NewSymDense(k.s.SymmetricDim(), nil)
	s.CopySym(k.s)

	return s
}

// NIS returns normalized innovation squared y'*inv(S)*y of the last update.
// It returns NaN if the filter has not been updated yet.
func (k *KF) NIS() float64 {
	if k.inn == nil {
		return math.NaN()
	}

	v := &mat.VecDense{}
	if err := v.SolveVec(k.s, k.inn); err != nil {
		return math.NaN()
	}

	return mat.Dot(k.inn, v)
}

// LogLikelihood returns log-likelihood of the last innovation given its covariance.
// It returns NaN if the filter has not been updated yet and -Inf if the innovation
// covariance is not positive definite.
func (k *KF) LogLikelihood() float64 {
	if k.inn == nil {
		return math.NaN()
	}

	dist, ok := distmv.NewNormal(make([]float64, k.inn.Len()), k.s, nil)
	if !ok {
		return math.Inf(-1)
	}

	return dist.LogProb(k.inn.RawVector().Data)
}
