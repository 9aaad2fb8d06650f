package naive_bayes

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/tensor"
	"github.com/lakefield/bayesgo/pkg/errors"
)

// TestGaussianNBFitMeansAndStds tests per-class mean and population
// standard deviation against hand-computed values
func TestGaussianNBFitMeansAndStds(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 2,
		2, 3,
		3, 3,
	})
	y := []string{"c1", "c2", "c1", "c2"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	classes := fitted.Classes()
	if classes[0] != "c1" || classes[1] != "c2" {
		t.Fatalf("unexpected canonical order: %v", classes)
	}

	means := fitted.Means()
	stds := fitted.StdDevs()

	// c1 rows are [1,2] and [2,3]: means (1.5, 2.5), population stds
	// (0.5, 0.5).
	if !floatsNear(means[0][0], 1.5, floatTol) || !floatsNear(means[0][1], 2.5, floatTol) {
		t.Errorf("c1 means: expected (1.5, 2.5), got (%v, %v)", means[0][0], means[0][1])
	}
	if !floatsNear(stds[0][0], 0.5, floatTol) || !floatsNear(stds[0][1], 0.5, floatTol) {
		t.Errorf("c1 stds: expected (0.5, 0.5), got (%v, %v)", stds[0][0], stds[0][1])
	}

	// c2 rows are [2,2] and [3,3].
	if !floatsNear(means[1][0], 2.5, floatTol) || !floatsNear(means[1][1], 2.5, floatTol) {
		t.Errorf("c2 means: expected (2.5, 2.5), got (%v, %v)", means[1][0], means[1][1])
	}
	if !floatsNear(stds[1][0], 0.5, floatTol) || !floatsNear(stds[1][1], 0.5, floatTol) {
		t.Errorf("c2 stds: expected (0.5, 0.5), got (%v, %v)", stds[1][0], stds[1][1])
	}

	priors := fitted.ClassPriors()
	if !floatsNear(priors["c1"], 0.5, floatTol) || !floatsNear(priors["c2"], 0.5, floatTol) {
		t.Errorf("expected priors 0.5/0.5, got %v", priors)
	}
}

// TestGaussianNBPredict tests prediction on the two-cluster fit; the
// first query is an exact score tie between the classes and must
// resolve to the canonically first label
func TestGaussianNBPredict(t *testing.T) {
	X, err := tensor.FromRows([][]float64{
		{1, 2},
		{2, 2},
		{2, 3},
		{3, 3},
	})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	y := []string{"c1", "c2", "c1", "c2"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	queries := mat.NewDense(2, 2, []float64{
		2, 1,
		4, 3,
	})
	labels, err := fitted.Predict(queries)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if labels[0] != "c1" {
		t.Errorf("query [2,1]: expected c1, got %s", labels[0])
	}
	if labels[1] != "c2" {
		t.Errorf("query [4,3]: expected c2, got %s", labels[1])
	}
}

// TestGaussianNBLogDensityFormula tests the per-feature log density
// against a hand computation through the class score difference
func TestGaussianNBLogDensityFormula(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{
		1, 3,
		10, 14,
	})
	y := []string{"low", "low", "high", "high"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// low: mean 2, std 1. high: mean 12, std 2. Priors cancel.
	query := mat.NewDense(1, 1, []float64{4})
	logProba, err := fitted.PredictLogProba(query)
	if err != nil {
		t.Fatalf("PredictLogProba failed: %v", err)
	}

	logDensity := func(x, mu, sigma float64) float64 {
		variance := sigma * sigma
		return -0.5*math.Log(2*math.Pi*variance) - (x-mu)*(x-mu)/(2*variance)
	}
	wantDiff := logDensity(4, 12, 2) - logDensity(4, 2, 1)

	// Classes sort as [high, low].
	gotDiff := logProba.At(0, 0) - logProba.At(0, 1)
	if !floatsNear(gotDiff, wantDiff, 1e-12) {
		t.Errorf("log density difference: expected %v, got %v", wantDiff, gotDiff)
	}
}

// TestGaussianNBSingleRowFit tests the one-sample boundary: prior
// exactly 1.0 and zero standard deviations
func TestGaussianNBSingleRowFit(t *testing.T) {
	X := mat.NewDense(1, 3, []float64{1.5, -2, 7})
	fitted, err := NewGaussianNB().Fit(X, []string{"only"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if p := fitted.ClassPriors()["only"]; p != 1.0 {
		t.Errorf("expected prior exactly 1.0, got %v", p)
	}
	for j, sigma := range fitted.StdDevs()[0] {
		if sigma != 0 {
			t.Errorf("feature %d: expected std exactly 0, got %v", j, sigma)
		}
	}

	// Both the training row and an unrelated row must predict the sole
	// class with finite scores.
	for _, row := range [][]float64{{1.5, -2, 7}, {0, 0, 0}} {
		query := mat.NewDense(1, 3, row)
		labels, err := fitted.Predict(query)
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if labels[0] != "only" {
			t.Errorf("expected only, got %s", labels[0])
		}

		logProba, err := fitted.PredictLogProba(query)
		if err != nil {
			t.Fatalf("PredictLogProba failed: %v", err)
		}
		if v := logProba.At(0, 0); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("non-finite log probability: %v", v)
		}
	}
}

// TestGaussianNBZeroStdPolicy tests scoring with a constant feature
// inside a class: exact matches contribute log(1), mismatches the
// epsilon floor, and nothing is ever infinite
func TestGaussianNBZeroStdPolicy(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 5,
		1, 7,
		2, 6,
		4, 6,
	})
	y := []string{"c", "c", "d", "d"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// c: feature 0 constant at 1 (std 0), feature 1 mean 6 std 1.
	// d: feature 0 mean 3 std 1, feature 1 constant at 6 (std 0).
	stds := fitted.StdDevs()
	if stds[0][0] != 0 {
		t.Fatalf("expected zero std for c feature 0, got %v", stds[0][0])
	}
	if stds[1][1] != 0 {
		t.Fatalf("expected zero std for d feature 1, got %v", stds[1][1])
	}

	// Matching c's constant exactly keeps c competitive.
	labels, err := fitted.Predict(mat.NewDense(1, 2, []float64{1, 6}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if labels[0] != "c" {
		t.Errorf("query [1,6]: expected c, got %s", labels[0])
	}

	// Missing the constant invokes the epsilon floor and hands the row
	// to d, still with finite scores.
	query := mat.NewDense(1, 2, []float64{1.5, 6})
	labels, err = fitted.Predict(query)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if labels[0] != "d" {
		t.Errorf("query [1.5,6]: expected d, got %s", labels[0])
	}

	logProba, err := fitted.PredictLogProba(query)
	if err != nil {
		t.Fatalf("PredictLogProba failed: %v", err)
	}
	for c := 0; c < 2; c++ {
		if v := logProba.At(0, c); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("non-finite log probability for class %d: %v", c, v)
		}
	}
}

// TestGaussianNBEmptyInput tests that an empty training set is a typed
// error, not a silently empty model
func TestGaussianNBEmptyInput(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{1, 2})

	_, err := NewGaussianNB().Fit(X, []string{})
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

// TestGaussianNBLengthMismatch tests row/label misalignment
func TestGaussianNBLengthMismatch(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	_, err := NewGaussianNB().Fit(X, []string{"a", "b"})
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 || dimErr.Axis != 0 {
		t.Errorf("unexpected DimensionError fields: %+v", dimErr)
	}
}

// TestGaussianNBPredictWidthMismatch tests rejection of rows narrower
// than the fitted width
func TestGaussianNBPredictWidthMismatch(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	fitted, err := NewGaussianNB().Fit(X, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err = fitted.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 || dimErr.Axis != 1 {
		t.Errorf("unexpected DimensionError fields: %+v", dimErr)
	}
}

// TestGaussianNBFitDeterministic tests that fitting the same data
// twice yields bit-identical parameters
func TestGaussianNBFitDeterministic(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1.25, 3.5,
		2.5, 1.75,
		3.125, 2.25,
		0.5, 4.75,
		2.875, 3.25,
	})
	y := []string{"p", "q", "p", "q", "p"}

	nb := NewGaussianNB()
	first, err := nb.Fit(X, y)
	if err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	second, err := nb.Fit(X, y)
	if err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}

	meansA, meansB := first.Means(), second.Means()
	stdsA, stdsB := first.StdDevs(), second.StdDevs()
	for c := range meansA {
		for j := range meansA[c] {
			if meansA[c][j] != meansB[c][j] {
				t.Errorf("mean (%d,%d) differs between fits", c, j)
			}
			if stdsA[c][j] != stdsB[c][j] {
				t.Errorf("std (%d,%d) differs between fits", c, j)
			}
		}
	}
}

// TestGaussianNBPredictProba tests probability layout, range and
// normalization
func TestGaussianNBPredictProba(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1.5, 1.2,
		8, 9,
		8.5, 8.8,
	})
	y := []string{"near", "near", "far", "far"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	queries := mat.NewDense(2, 2, []float64{
		1.2, 1.1,
		8.2, 8.9,
	})
	proba, err := fitted.PredictProba(queries)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}

	rows, cols := proba.Dims()
	if rows != 2 || cols != 2 {
		t.Fatalf("expected 2x2 probabilities, got %dx%d", rows, cols)
	}
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			p := proba.At(i, j)
			if p < 0 || p > 1 {
				t.Errorf("probability out of range at (%d,%d): %v", i, j, p)
			}
			sum += p
		}
		if !floatsNear(sum, 1.0, floatTol) {
			t.Errorf("row %d: probabilities sum to %v", i, sum)
		}
	}

	// Classes sort as [far, near].
	if proba.At(0, 1) <= proba.At(0, 0) {
		t.Error("query near the low cluster should favor class near")
	}
	if proba.At(1, 0) <= proba.At(1, 1) {
		t.Error("query near the high cluster should favor class far")
	}
}

// TestGaussianNBScore tests mean accuracy on the cluster fixture
func TestGaussianNBScore(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1.5, 1.2,
		8, 9,
		8.5, 8.8,
	})
	y := []string{"near", "near", "far", "far"}

	fitted, err := NewGaussianNB().Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	score, err := fitted.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !floatsNear(score, 1.0, floatTol) {
		t.Errorf("expected training accuracy 1.0, got %v", score)
	}
}

// TestGaussianNBAccessorsReturnCopies tests that accessor results are
// detached from model state
func TestGaussianNBAccessorsReturnCopies(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	fitted, err := NewGaussianNB().Fit(X, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	means := fitted.Means()
	means[0][0] = 99
	if fitted.Means()[0][0] == 99 {
		t.Error("Means() exposed internal state")
	}

	stds := fitted.StdDevs()
	stds[0][0] = 99
	if fitted.StdDevs()[0][0] == 99 {
		t.Error("StdDevs() exposed internal state")
	}
}
