package naive_bayes

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/parallel"
)

// Batches below this row count are scored on the calling goroutine.
const predictParallelThreshold = 1000

// rowScorer computes the per-class log scores of one feature row into
// scores, whose length equals the number of classes. Implementations
// must be pure: rows are scored concurrently.
type rowScorer func(row []float64, scores []float64)

// scoreRows evaluates scorer for every row of X and returns the raw
// (unnormalized) log scores as a rows-by-classes matrix. Rows are
// independent, so the batch is chunked across CPUs; each chunk writes
// only its own output rows and the result matches the sequential
// order exactly.
func scoreRows(X mat.Matrix, nClasses int, scorer rowScorer) *mat.Dense {
	rows, cols := X.Dims()
	scores := mat.NewDense(rows, nClasses, nil)

	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(row, i, X)
			scorer(row, scores.RawRowView(i))
		}
	})

	return scores
}

// argmaxLabels maps each score row to the label of its highest-scoring
// class. On an exact tie the earliest class in canonical order wins.
func argmaxLabels(scores *mat.Dense, classes []string) []string {
	rows, _ := scores.Dims()
	labels := make([]string, rows)

	for i := 0; i < rows; i++ {
		best := 0
		bestScore := scores.At(i, 0)
		for c := 1; c < len(classes); c++ {
			if s := scores.At(i, c); s > bestScore {
				best = c
				bestScore = s
			}
		}
		labels[i] = classes[best]
	}
	return labels
}

// normalizeLogProba rewrites raw log scores into normalized log
// probabilities in place, using the max-shifted log-sum-exp so large
// negative scores cannot underflow.
func normalizeLogProba(logProba *mat.Dense) {
	rows, _ := logProba.Dims()
	for i := 0; i < rows; i++ {
		row := logProba.RawRowView(i)

		maxLog := math.Inf(-1)
		for _, v := range row {
			if v > maxLog {
				maxLog = v
			}
		}

		sumExp := 0.0
		for _, v := range row {
			sumExp += math.Exp(v - maxLog)
		}
		logSumExp := math.Log(sumExp) + maxLog

		for c := range row {
			row[c] -= logSumExp
		}
	}
}

// probaFromLog exponentiates normalized log probabilities.
func probaFromLog(logProba *mat.Dense) *mat.Dense {
	rows, cols := logProba.Dims()
	proba := mat.NewDense(rows, cols, nil)
	proba.Apply(func(_, _ int, v float64) float64 {
		return math.Exp(v)
	}, logProba)
	return proba
}

// accuracyAgainst compares predictions with reference labels.
func accuracyAgainst(predicted, y []string) float64 {
	correct := 0
	for i := range predicted {
		if predicted[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}
