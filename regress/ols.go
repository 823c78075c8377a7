// Package regress fits and evaluates ordinary least squares models.
// The design matrix machinery is gonum; inference uses Student's t for
// per-term p-values and a normal approximation for the 95% intervals.
package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInsufficientData reports fewer observations than model terms.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerateInput reports a singular design matrix
	// (perfectly collinear predictor columns).
	ErrDegenerateInput = errors.New("degenerate input")
)

// Term is one fitted model term.
type Term struct {
	Name   string
	Coef   float64
	StdErr float64
	TStat  float64
	PValue float64
}

// ConfInt95 returns the normal-approximation 95% confidence interval,
// Coef ± 1.96·StdErr.
func (t Term) ConfInt95() (lo, hi float64) {
	return t.Coef - 1.96*t.StdErr, t.Coef + 1.96*t.StdErr
}

// Model is an OLS fit. Terms[0] is the intercept; the rest follow the
// predictor order given to Fit.
type Model struct {
	Terms []Term
	N     int // observations used in the fit
	P     int // predictors (excluding intercept)
	DF    int // residual degrees of freedom, N - P - 1
	RSS   float64
}

// Fit estimates y = b0 + b1·x1 + ... + bp·xp by ordinary least squares.
// X is row-major: one slice of p predictor values per observation.
func Fit(names []string, X [][]float64, y []float64) (*Model, error) {
	n := len(X)
	p := len(names)
	if n != len(y) {
		return nil, fmt.Errorf("got %d rows but %d targets", n, len(y))
	}
	if n < p+1 {
		return nil, fmt.Errorf("%d rows for %d terms: %w", n, p+1, ErrInsufficientData)
	}

	// Design matrix with a leading intercept column.
	design := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		if len(row) != p {
			return nil, fmt.Errorf("row %d has %d predictors, want %d", i, len(row), p)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	// Normal equations: beta = (XᵀX)⁻¹ Xᵀy. Inversion failure means
	// the columns are collinear.
	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("singular design matrix: %w", ErrDegenerateInput)
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), yVec)
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Residual sum of squares from the fitted values.
	var fitted mat.VecDense
	fitted.MulVec(design, &beta)
	var rss float64
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
	}

	df := n - p - 1
	var sigma2 float64
	if df > 0 {
		sigma2 = rss / float64(df)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}

	termNames := append([]string{"const"}, names...)
	terms := make([]Term, p+1)
	for j := range terms {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		coef := beta.AtVec(j)
		term := Term{Name: termNames[j], Coef: coef, StdErr: se}
		if se > 0 && df > 0 {
			term.TStat = coef / se
			term.PValue = 2 * (1 - tDist.CDF(math.Abs(term.TStat)))
		} else {
			term.TStat = math.NaN()
			term.PValue = math.NaN()
		}
		terms[j] = term
	}

	return &Model{Terms: terms, N: n, P: p, DF: df, RSS: rss}, nil
}

// Predict returns the fitted value for one predictor vector.
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != m.P {
		return 0, fmt.Errorf("got %d predictors, model has %d", len(x), m.P)
	}
	v := m.Terms[0].Coef
	for j, xv := range x {
		v += m.Terms[j+1].Coef * xv
	}
	return v, nil
}
