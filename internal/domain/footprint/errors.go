package footprint

import "fmt"

// PredictionError is returned when the model rejects a FeatureRecord or
// cannot produce a finite estimate.
type PredictionError struct {
	Reason string
	Column string
	Err    error
}

func (e *PredictionError) Error() string {
	msg := "prediction error: " + e.Reason
	if e.Column != "" {
		msg = fmt.Sprintf("%s (column %q)", msg, e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// NewPredictionError builds a PredictionError for the given column.
func NewPredictionError(reason, column string, err error) *PredictionError {
	return &PredictionError{Reason: reason, Column: column, Err: err}
}
