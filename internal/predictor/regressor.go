package predictor

import (
	"math/rand"
)

// Training hyperparameters. The seed is fixed so that fitting the same
// assembled training set always produces the same weights.
const (
	trainEpochs   = 200
	miniBatchSize = 32
	learningRate  = 0.1
	l2Penalty     = 0.001
	randomSeed    = 42
)

// regressor is a ridge regression model over scaled features. The parameter
// vector is the per-feature weights plus a bias term.
type regressor struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// predict returns the model output for one scaled feature row.
func (r *regressor) predict(x []float64) float64 {
	out := r.Bias
	for j, w := range r.Weights {
		out += w * x[j]
	}
	return out
}

// fitRegressor trains ridge regression on scaled features using mini-batch
// gradient descent with Adam and a cosine annealing learning rate, the same
// loop shape used to fit scheduler parameters elsewhere in the ecosystem.
// The bias starts at the target mean so the optimizer only has to learn the
// deviations.
func fitRegressor(X [][]float64, y []float64) *regressor {
	cols := len(X[0])
	params := make([]float64, cols+1) // weights then bias

	var ySum float64
	for _, t := range y {
		ySum += t
	}
	params[cols] = ySum / float64(len(y))

	batch := miniBatchSize
	if batch > len(X) {
		batch = len(X)
	}

	tMax := ((len(X) + batch - 1) / batch) * trainEpochs
	opt := newAdam(cols+1, learningRate)
	schedule := newCosineAnnealing(learningRate, tMax)
	rng := rand.New(rand.NewSource(randomSeed))

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}

	grad := make([]float64, cols+1)

	for epoch := 0; epoch < trainEpochs; epoch++ {
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})

		for start := 0; start < len(idx); start += batch {
			end := start + batch
			if end > len(idx) {
				end = len(idx)
			}

			for j := range grad {
				grad[j] = 0
			}

			// MSE gradient with L2 on the weights.
			n := float64(end - start)
			for _, i := range idx[start:end] {
				pred := params[cols]
				for j := 0; j < cols; j++ {
					pred += params[j] * X[i][j]
				}
				diff := 2 * (pred - y[i]) / n
				for j := 0; j < cols; j++ {
					grad[j] += diff * X[i][j]
				}
				grad[cols] += diff
			}
			for j := 0; j < cols; j++ {
				grad[j] += 2 * l2Penalty * params[j]
			}

			opt.setLR(schedule.lr())
			opt.update(params, grad)
			schedule.advance()
		}
	}

	return &regressor{
		Weights: params[:cols],
		Bias:    params[cols],
	}
}

// importances returns the relative weight magnitude per feature, normalized
// to sum to one. Purely diagnostic.
func (r *regressor) importances(names []string) map[string]float64 {
	var total float64
	for _, w := range r.Weights {
		total += abs(w)
	}

	out := make(map[string]float64, len(names))
	for j, name := range names {
		if total == 0 {
			out[name] = 0
			continue
		}
		out[name] = abs(r.Weights[j]) / total
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
