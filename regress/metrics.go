package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes out-of-sample fit. All values are on the scale the
// model was fitted on (here, log days). Residuals hold observed minus
// predicted, one per evaluated row, in input order.
type Metrics struct {
	R2        float64
	AdjR2     float64
	MAE       float64
	MSE       float64
	RMSE      float64
	N         int
	P         int
	Residuals []float64
}

// Evaluate scores a fitted model against held-out observations.
func Evaluate(m *Model, X [][]float64, y []float64) (Metrics, error) {
	n := len(X)
	if n != len(y) {
		return Metrics{}, fmt.Errorf("got %d rows but %d targets", n, len(y))
	}
	if n == 0 {
		return Metrics{}, fmt.Errorf("empty evaluation set: %w", ErrInsufficientData)
	}

	residuals := make([]float64, n)
	var ssRes, absSum float64
	for i, row := range X {
		pred, err := m.Predict(row)
		if err != nil {
			return Metrics{}, fmt.Errorf("row %d: %w", i, err)
		}
		r := y[i] - pred
		residuals[i] = r
		ssRes += r * r
		absSum += math.Abs(r)
	}

	yMean := stat.Mean(y, nil)
	var ssTot float64
	for _, v := range y {
		d := v - yMean
		ssTot += d * d
	}

	var r2 float64
	switch {
	case ssTot > 0:
		r2 = 1 - ssRes/ssTot
	case ssRes == 0:
		r2 = 1 // constant target, perfectly predicted
	default:
		r2 = math.NaN()
	}

	adjR2 := math.NaN()
	if n-m.P-1 > 0 && !math.IsNaN(r2) {
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(n-m.P-1)
	}

	mse := ssRes / float64(n)
	return Metrics{
		R2:        r2,
		AdjR2:     adjR2,
		MAE:       absSum / float64(n),
		MSE:       mse,
		RMSE:      math.Sqrt(mse),
		N:         n,
		P:         m.P,
		Residuals: residuals,
	}, nil
}

// ExpScale exponentiates a log-scale metric value. This is NOT the same
// metric computed on the day scale — exp(mean(x)) differs from
// mean(exp(x)) — so the result is a rough narrative approximation only
// and must be labeled as such wherever it is shown.
func ExpScale(v float64) float64 {
	return math.Exp(v)
}
