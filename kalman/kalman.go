package kalman

import (
	filter "github.com/milosgajdos/go-kalman"
	"github.com/milosgajdos/go-kalman/model"
	"gonum.org/v1/gonum/mat"
)

// Kalman is linear Kalman Filter
type Kalman interface {
	// Predict propagates the filter state through process model p given control u
	Predict(p *model.Process, u mat.Vector) (filter.Estimate, error)
	// Update corrects the filter state with measurement z observed through model m
	Update(z mat.Vector, m *model.Measurement) (filter.Estimate, error)
	// Cov returns Kalman filter state covariance
	Cov() mat.Symmetric
	// Gain returns Kalman filter gain
	Gain() mat.Matrix
}
