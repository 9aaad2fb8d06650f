// Package metrics provides evaluation metrics for classification
// models.
//
// All metrics operate on string labels, matching the classifier API:
//   - Accuracy: fraction of correct predictions
//   - ErrorRate: fraction of incorrect predictions
//   - ConfusionMatrix: per-class counts of true versus predicted labels
//   - LogLoss: multiclass cross-entropy over predicted probabilities
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	bayesgoErrors "github.com/lakefield/bayesgo/pkg/errors"
)

// Accuracy calculates the classification accuracy.
//
// Accuracy is the fraction of predictions that match the ground truth.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The accuracy (between 0 and 1)
//   - An error if inputs are invalid
//
// Example:
//
//	yTrue := []string{"spam", "ham", "spam", "ham"}
//	yPred := []string{"spam", "ham", "ham", "ham"}
//	acc, err := metrics.Accuracy(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Accuracy: %.2f\n", acc) // Output: Accuracy: 0.75
func Accuracy(yTrue, yPred []string) (float64, error) {
	errorRate, err := ErrorRate(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// ErrorRate calculates the classification error rate.
//
// The error rate is the fraction of predictions that differ from the
// ground truth.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The error rate (between 0 and 1)
//   - An error if inputs are invalid
func ErrorRate(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, bayesgoErrors.NewValueError(
			"ErrorRate",
			"input labels cannot be empty",
		)
	}
	if len(yTrue) != len(yPred) {
		return 0, bayesgoErrors.NewDimensionError(
			"ErrorRate",
			len(yTrue),
			len(yPred),
			0,
		)
	}

	mistakes := 0
	for i := range yTrue {
		if yTrue[i] != yPred[i] {
			mistakes++
		}
	}
	return float64(mistakes) / float64(len(yTrue)), nil
}

// ConfusionMatrix tabulates predictions against ground truth.
//
// The class order is the sorted union of the labels appearing in
// yTrue and yPred. Entry (i, j) of the returned matrix counts the
// samples whose true label is class i and predicted label is class j,
// so correct predictions sit on the diagonal.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The classes in matrix order
//   - The (classes × classes) count matrix
//   - An error if inputs are invalid
//
// Example:
//
//	classes, counts, err := metrics.ConfusionMatrix(
//	    []string{"cat", "dog", "cat"},
//	    []string{"cat", "cat", "cat"},
//	)
//	// classes: [cat dog]
//	// counts:  [[2 0]
//	//           [1 0]]
func ConfusionMatrix(yTrue, yPred []string) ([]string, mat.Matrix, error) {
	if len(yTrue) == 0 {
		return nil, nil, bayesgoErrors.NewValueError(
			"ConfusionMatrix",
			"input labels cannot be empty",
		)
	}
	if len(yTrue) != len(yPred) {
		return nil, nil, bayesgoErrors.NewDimensionError(
			"ConfusionMatrix",
			len(yTrue),
			len(yPred),
			0,
		)
	}

	classSet := make(map[string]bool)
	for _, label := range yTrue {
		classSet[label] = true
	}
	for _, label := range yPred {
		classSet[label] = true
	}

	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	classToIdx := make(map[string]int, len(classes))
	for idx, class := range classes {
		classToIdx[class] = idx
	}

	counts := mat.NewDense(len(classes), len(classes), nil)
	for i := range yTrue {
		row := classToIdx[yTrue[i]]
		col := classToIdx[yPred[i]]
		counts.Set(row, col, counts.At(row, col)+1)
	}

	return classes, counts, nil
}

// LogLoss calculates the multiclass cross-entropy loss.
//
// For each sample the loss is the negative log of the probability the
// model assigned to the true class; LogLoss returns the mean over all
// samples. Probabilities are clipped away from 0 and 1 so the result
// stays finite.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - classes: The class order of the probability columns
//   - proba: A (len(yTrue) × len(classes)) probability matrix, as
//     returned by PredictProba
//
// Returns:
//   - The mean cross-entropy loss (lower is better)
//   - An error if inputs are invalid
//
// Example:
//
//	proba := mat.NewDense(2, 2, []float64{0.9, 0.1, 0.2, 0.8})
//	loss, err := metrics.LogLoss([]string{"ham", "spam"}, []string{"ham", "spam"}, proba)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Log Loss: %.4f\n", loss) // Output: Log Loss: 0.1643
func LogLoss(yTrue []string, classes []string, proba mat.Matrix) (float64, error) {
	if proba == nil {
		return 0, bayesgoErrors.NewValueError(
			"LogLoss",
			"probability matrix cannot be nil",
		)
	}
	if len(yTrue) == 0 {
		return 0, bayesgoErrors.NewValueError(
			"LogLoss",
			"input labels cannot be empty",
		)
	}

	rows, cols := proba.Dims()
	if rows != len(yTrue) {
		return 0, bayesgoErrors.NewDimensionError(
			"LogLoss",
			len(yTrue),
			rows,
			0,
		)
	}
	if cols != len(classes) {
		return 0, bayesgoErrors.NewDimensionError(
			"LogLoss",
			len(classes),
			cols,
			1,
		)
	}

	classToIdx := make(map[string]int, len(classes))
	for idx, class := range classes {
		classToIdx[class] = idx
	}

	// Clip probabilities away from the boundaries to avoid log(0).
	const epsilon = 1e-15
	loss := 0.0

	for i, label := range yTrue {
		idx, known := classToIdx[label]
		if !known {
			return 0, bayesgoErrors.NewValueErrorf(
				"LogLoss",
				"label %q at index %d is not in the class list",
				label, i,
			)
		}

		p := proba.At(i, idx)
		if p < epsilon {
			p = epsilon
		} else if p > 1-epsilon {
			p = 1 - epsilon
		}
		loss -= logSafe(p)
	}

	return loss / float64(len(yTrue)), nil
}

// logSafe computes natural logarithm with safety checks
func logSafe(x float64) float64 {
	if x <= 0 {
		return -1e10 // Return a large negative number instead of -Inf
	}
	return math.Log(x)
}
