package skf

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/estimate"
	"github.com/milosgajdos/go-kalman/kalman"
)

// SKF is scalar (univariate) Kalman Filter.
// It keeps a single Gaussian belief which is shifted and widened by Predict
// and narrowed towards measurements by Update.
type SKF struct {
	// c is filter configuration
	c *kalman.Config
	// b is filter belief
	b estimate.Belief
	// gain is the last Kalman gain
	gain float64
	// res is the last measurement residual
	res float64
	// lik is the likelihood of the last measurement
	lik float64
}

// New creates new SKF with initial belief of given mean and variance and returns it.
// nil config c means kalman.DefaultConfig.
// It returns error if the config is invalid or if variance is negative or mean or variance are not finite numbers.
func New(mean, variance float64, c *kalman.Config) (*SKF, error) {
	c, err := kalman.Resolve(c)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := checkFinite("mean", mean); err != nil {
		return nil, err
	}

	if err := checkVariance("variance", variance); err != nil {
		return nil, err
	}

	return &SKF{
		c:   c,
		b:   estimate.Belief{Mean: mean, Variance: variance},
		lik: math.NaN(),
	}, nil
}

// Predict adds independent Gaussian movement u with variance q to the filter belief and returns the new belief:
//
//	mean' = mean + u
//	variance' = variance + q
//
// It returns *filter.InvalidInputError if q is negative or either u or q is not a finite number.
func (f *SKF) Predict(u, q float64) (estimate.Belief, error) {
	if err := checkFinite("control input", u); err != nil {
		return f.b, err
	}

	if err := checkVariance("process noise", q); err != nil {
		return f.b, err
	}

	f.b = estimate.Belief{
		Mean:     f.b.Mean + u,
		Variance: f.b.Variance + q,
	}

	return f.b, nil
}

// Update multiplies the filter belief by measurement z with variance r and returns the new belief:
//
//	gain = variance / (variance + r)
//	mean' = mean + gain * (z - mean)
//	variance' = variance * r / (variance + r)
//
// If both variance and r are zero the configured noise floor stands in for their sum.
// It returns *filter.InvalidInputError if r is negative or either z or r is not a finite number.
func (f *SKF) Update(z, r float64) (estimate.Belief, error) {
	if err := checkFinite("measurement", z); err != nil {
		return f.b, err
	}

	if err := checkVariance("measurement noise", r); err != nil {
		return f.b, err
	}

	s := f.b.Variance + r
	if s == 0 {
		s = f.c.MinNoiseFloor
	}

	gain := f.b.Variance / s
	res := z - f.b.Mean
	lik := estimate.Belief{Mean: f.b.Mean, Variance: s}.Prob(z)

	f.b = estimate.Belief{
		Mean:     f.b.Mean + gain*res,
		Variance: f.b.Variance * r / s,
	}
	f.gain = gain
	f.res = res
	f.lik = lik

	return f.b, nil
}

// Run runs one step of SKF: Predict with u and q followed by Update with z and r.
// Filter state is left unchanged on error.
func (f *SKF) Run(u, q, z, r float64) (estimate.Belief, error) {
	b := f.b

	if _, err := f.Predict(u, q); err != nil {
		return b, err
	}

	est, err := f.Update(z, r)
	if err != nil {
		f.b = b
		return b, err
	}

	return est, nil
}

// Belief returns filter belief
func (f *SKF) Belief() estimate.Belief {
	return f.b
}

// Mean returns filter belief mean
func (f *SKF) Mean() float64 {
	return f.b.Mean
}

// Variance returns filter belief variance
func (f *SKF) Variance() float64 {
	return f.b.Variance
}

// Gain returns the last Kalman gain
func (f *SKF) Gain() float64 {
	return f.gain
}

// Residual returns the last measurement residual
func (f *SKF) Residual() float64 {
	return f.res
}

// Likelihood returns the probability density of the last measurement
// under its predicted distribution N(mean, variance + r).
// It returns NaN if the filter has not been updated yet.
func (f *SKF) Likelihood() float64 {
	return f.lik
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &filter.InvalidInputError{Name: name, Value: v}
	}

	return nil
}

func checkVariance(name string, v float64) error {
	if v < 0 {
		return &filter.InvalidInputError{Name: name, Value: v}
	}

	return checkFinite(name, v)
}
