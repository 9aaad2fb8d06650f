package model

import "gonum.org/v1/gonum/mat"

// Classifier is the read-only surface every fitted bayesgo classifier
// exposes. Fitted models are immutable, so a Classifier is safe for
// concurrent use.
type Classifier interface {
	// Predict returns one label per row of X, in row order.
	Predict(X mat.Matrix) ([]string, error)

	// PredictProba returns per-class probabilities, one row per input
	// row, columns in Classes() order.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// PredictLogProba returns normalized log probabilities in the same
	// layout as PredictProba.
	PredictLogProba(X mat.Matrix) (mat.Matrix, error)

	// Score returns the mean accuracy of Predict(X) against y.
	Score(X mat.Matrix, y []string) (float64, error)

	// Classes returns the class labels in canonical (sorted) order.
	Classes() []string

	// ClassPriors returns the fitted prior probability of each class.
	ClassPriors() map[string]float64

	// NFeatures returns the feature width the model was fitted on.
	NFeatures() int

	// NSamples returns the number of training rows seen.
	NSamples() int
}

// Vectorizer turns raw strings into a numeric feature matrix. Both the
// count vectorizer and the label binarizer satisfy it.
type Vectorizer interface {
	Fit(input []string) error
	Transform(input []string) (mat.Matrix, error)
	FitTransform(input []string) (mat.Matrix, error)
	IsFitted() bool
}
