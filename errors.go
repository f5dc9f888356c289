package filter

import "fmt"

// InvalidInputError is returned when a variance or noise covariance is negative or not finite.
type InvalidInputError struct {
	// Name identifies the offending argument
	Name string
	// Value is the rejected value
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Name, e.Value)
}

// DimensionMismatchError is returned when a matrix or vector shape
// does not agree with the fixed dimensions of the filter.
type DimensionMismatchError struct {
	// Name identifies the offending matrix or vector
	Name string
	// Rows and Cols are the supplied dimensions
	Rows, Cols int
	// WantRows and WantCols are the expected dimensions
	WantRows, WantCols int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("invalid %s dimensions: [%d x %d], expected: [%d x %d]",
		e.Name, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

// SingularInnovationCovError is returned when the innovation covariance
// can not be inverted within the configured condition number threshold.
type SingularInnovationCovError struct {
	// Cond is the estimated condition number of the innovation covariance
	Cond float64
}

func (e *SingularInnovationCovError) Error() string {
	return fmt.Sprintf("singular innovation covariance: condition number %g", e.Cond)
}
