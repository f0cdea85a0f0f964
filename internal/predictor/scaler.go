package predictor

import (
	"math"

	"github.com/example/flashdeck/internal/features"
)

// scaler standardizes features to zero mean and unit variance. It is fit on
// the training matrix and the same transform is applied at inference time.
type scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// fitScaler computes per-column mean and standard deviation.
// Constant columns get std 1 so the transform maps them to zero instead of NaN.
func fitScaler(X [][]float64) *scaler {
	if len(X) == 0 {
		return &scaler{}
	}

	cols := len(X[0])
	s := &scaler{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}

	for j := 0; j < cols; j++ {
		var sum float64
		for _, row := range X {
			sum += row[j]
		}
		s.Mean[j] = sum / float64(len(X))

		var sq float64
		for _, row := range X {
			d := row[j] - s.Mean[j]
			sq += d * d
		}
		s.Std[j] = math.Sqrt(sq / float64(len(X)))
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}

	return s
}

// transform standardizes a single vector.
func (s *scaler) transform(v features.Vector) []float64 {
	out := make([]float64, len(v))
	for j := range v {
		out[j] = (v[j] - s.Mean[j]) / s.Std[j]
	}
	return out
}

// transformAll standardizes a whole matrix.
func (s *scaler) transformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.transform(row)
	}
	return out
}
