package predictor

import "errors"

var (
	// ErrUntrained is returned by Predict before any successful training.
	ErrUntrained = errors.New("predictor: model is not trained")

	// ErrInsufficientData is returned when the history yields fewer
	// training samples than the minimum threshold.
	ErrInsufficientData = errors.New("predictor: insufficient training samples")
)
