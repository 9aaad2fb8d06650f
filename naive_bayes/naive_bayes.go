// Package naive_bayes implements Naive Bayes classification over
// string class labels: a multinomial variant with additive (Laplace)
// smoothing for count-like features, and a Gaussian variant for
// continuous features.
//
// Both variants share one lifecycle: configure an estimator, call Fit
// with a feature matrix and a parallel label slice, and receive a
// fitted model as a new value. The fitted types are immutable and
// safe for concurrent use; only they carry Predict and the other
// read-only operations, so predicting with an unfitted model is not
// expressible.
package naive_bayes

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/pkg/errors"
	"github.com/lakefield/bayesgo/pkg/log"
)

// logEpsilon is added to priors and feature probabilities before
// taking logs so that zero probabilities stay finite in log space.
const logEpsilon = 1e-9

var globalProvider log.LoggerProvider

func defaultLogger(name string) log.Logger {
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	return globalProvider.GetLoggerWithName(name)
}

// summarizeClasses returns the distinct labels of y in canonical
// (lexicographically sorted) order, their empirical prior
// probabilities, and a label-to-index lookup. The canonical order is
// the class order used everywhere downstream, including tie-breaking.
func summarizeClasses(y []string) (classes []string, priors []float64, index map[string]int) {
	counts := make(map[string]int, len(y))
	for _, label := range y {
		counts[label]++
	}

	classes = make([]string, 0, len(counts))
	for label := range counts {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	priors = make([]float64, len(classes))
	index = make(map[string]int, len(classes))
	total := float64(len(y))
	for i, label := range classes {
		index[label] = i
		priors[i] = float64(counts[label]) / total
	}
	return classes, priors, index
}

// validateTrainingInput rejects empty and length-mismatched training
// data at the Fit boundary.
func validateTrainingInput(op string, X mat.Matrix, y []string) error {
	rows, _ := X.Dims()
	if rows == 0 || len(y) == 0 {
		return errors.NewModelError(op, "empty training set", errors.ErrEmptyData)
	}
	if rows != len(y) {
		return errors.NewDimensionError(op, rows, len(y), 0)
	}
	return nil
}

// validatePredictWidth rejects feature rows whose width disagrees with
// the width the model was fitted on.
func validatePredictWidth(op string, X mat.Matrix, nFeatures int) error {
	_, cols := X.Dims()
	if cols != nFeatures {
		return errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	return nil
}

// requireNonNegative rejects matrices containing negative values. The
// multinomial variant models pseudo-counts, which have no meaning
// below zero.
func requireNonNegative(op string, X mat.Matrix) error {
	rows, cols := X.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if X.At(i, j) < 0 {
				return errors.NewValueError(op, "features must be non-negative")
			}
		}
	}
	return nil
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = copyFloats(m[i])
	}
	return out
}

// priorsByLabel converts aligned class/prior slices into the map form
// the accessors expose.
func priorsByLabel(classes []string, priors []float64) map[string]float64 {
	out := make(map[string]float64, len(classes))
	for i, label := range classes {
		out[label] = priors[i]
	}
	return out
}
