package naive_bayes

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/model"
	"github.com/lakefield/bayesgo/pkg/errors"
	"github.com/lakefield/bayesgo/pkg/log"
)

// MultinomialNB configures a multinomial Naive Bayes estimator for
// discrete, count-like features (word counts, event tallies). It holds
// hyperparameters only; Fit returns the learned model as a separate
// FittedMultinomialNB value and leaves the estimator untouched, so a
// single configuration can be fitted any number of times.
type MultinomialNB struct {
	alpha  float64 // additive (Laplace) smoothing parameter
	logger log.Logger
}

// NewMultinomialNB creates a multinomial Naive Bayes estimator with
// alpha = 1.0 (Laplace smoothing).
func NewMultinomialNB(options ...MultinomialNBOption) *MultinomialNB {
	nb := &MultinomialNB{
		alpha: 1.0,
	}

	for _, opt := range options {
		opt(nb)
	}

	nb.logger = defaultLogger("MultinomialNB")
	return nb
}

// MultinomialNBOption is a configuration option for MultinomialNB.
type MultinomialNBOption func(*MultinomialNB)

// WithAlpha sets the smoothing parameter. Zero disables smoothing;
// negative values are rejected at Fit.
func WithAlpha(alpha float64) MultinomialNBOption {
	return func(nb *MultinomialNB) {
		nb.alpha = alpha
	}
}

// Alpha returns the configured smoothing parameter.
func (nb *MultinomialNB) Alpha() float64 {
	return nb.alpha
}

// Fit estimates class priors and smoothed per-class feature
// probabilities from X and its parallel label slice y, and returns
// them as an immutable fitted model.
//
// For every class, the value of each feature is accumulated over the
// class's rows; the smoothed probability of feature j is
// (accumulated_j + alpha) / (total + alpha*width), where total is the
// class's accumulated value across all features. With alpha = 0 a
// class whose rows are all zero would divide zero by zero; that case
// is defined as probability zero for every feature.
func (nb *MultinomialNB) Fit(X mat.Matrix, y []string) (fitted *FittedMultinomialNB, err error) {
	defer errors.Recover(&err, "MultinomialNB.Fit")
	start := time.Now()

	if nb.alpha < 0 {
		return nil, errors.NewValueError("MultinomialNB.Fit", "smoothing alpha must be non-negative")
	}
	if err := validateTrainingInput("MultinomialNB.Fit", X, y); err != nil {
		return nil, err
	}
	if err := requireNonNegative("MultinomialNB.Fit", X); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	classes, priors, classIndex := summarizeClasses(y)

	nb.logger.Info("training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.ClassesKey, len(classes),
	)

	valueSum := make([][]float64, len(classes))
	for c := range valueSum {
		valueSum[c] = make([]float64, cols)
	}
	for i := 0; i < rows; i++ {
		sums := valueSum[classIndex[y[i]]]
		for j := 0; j < cols; j++ {
			sums[j] += X.At(i, j)
		}
	}

	featureProb := make([][]float64, len(classes))
	width := float64(cols)
	for c := range classes {
		total := 0.0
		for _, v := range valueSum[c] {
			total += v
		}
		total += nb.alpha * width

		featureProb[c] = make([]float64, cols)
		if total > 0 {
			for j := 0; j < cols; j++ {
				featureProb[c][j] = (valueSum[c][j] + nb.alpha) / total
			}
		}
	}

	fitted = &FittedMultinomialNB{
		alpha:       nb.alpha,
		classes:     classes,
		priors:      priors,
		featureProb: featureProb,
		nFeatures:   cols,
		nSamples:    rows,
		logger:      nb.logger,
	}

	nb.logger.Info("training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	return fitted, nil
}

// FittedMultinomialNB is a trained multinomial Naive Bayes model. It
// is immutable and safe for concurrent use.
type FittedMultinomialNB struct {
	alpha       float64
	classes     []string    // canonical (sorted) order
	priors      []float64   // aligned with classes
	featureProb [][]float64 // classes x features, smoothed
	nFeatures   int
	nSamples    int
	logger      log.Logger
}

var _ model.Classifier = (*FittedMultinomialNB)(nil)

// Predict returns the most probable class label for each row of X,
// in row order. Scoring runs in log space: each class starts from
// log(prior + epsilon) and every feature with a positive value adds
// value * log(probability + epsilon). Zero-valued features contribute
// nothing. On an exact score tie the earliest class in canonical
// (sorted) order wins.
func (m *FittedMultinomialNB) Predict(X mat.Matrix) (labels []string, err error) {
	defer errors.Recover(&err, "MultinomialNB.Predict")

	if err := validatePredictWidth("MultinomialNB.Predict", X, m.nFeatures); err != nil {
		return nil, err
	}
	if err := requireNonNegative("MultinomialNB.Predict", X); err != nil {
		return nil, err
	}

	scores := scoreRows(X, len(m.classes), m.scoreRow)
	labels = argmaxLabels(scores, m.classes)

	m.logger.Debug("prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(labels),
	)
	return labels, nil
}

// PredictProba returns per-class probability estimates for each row of
// X. Columns follow Classes() order and every row sums to 1.
func (m *FittedMultinomialNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	logProba, err := m.predictLogProba(X)
	if err != nil {
		return nil, err
	}
	return probaFromLog(logProba), nil
}

// PredictLogProba returns normalized log probability estimates in the
// same layout as PredictProba.
func (m *FittedMultinomialNB) PredictLogProba(X mat.Matrix) (mat.Matrix, error) {
	return m.predictLogProba(X)
}

func (m *FittedMultinomialNB) predictLogProba(X mat.Matrix) (logProba *mat.Dense, err error) {
	defer errors.Recover(&err, "MultinomialNB.PredictLogProba")

	if err := validatePredictWidth("MultinomialNB.PredictLogProba", X, m.nFeatures); err != nil {
		return nil, err
	}
	if err := requireNonNegative("MultinomialNB.PredictLogProba", X); err != nil {
		return nil, err
	}

	logProba = scoreRows(X, len(m.classes), m.scoreRow)
	normalizeLogProba(logProba)
	return logProba, nil
}

// scoreRow computes the unnormalized log score of one row for every
// class.
func (m *FittedMultinomialNB) scoreRow(row, scores []float64) {
	for c := range m.classes {
		score := math.Log(m.priors[c] + logEpsilon)
		probs := m.featureProb[c]
		for j, v := range row {
			if v > 0 {
				score += v * math.Log(probs[j]+logEpsilon)
			}
		}
		scores[c] = score
	}
}

// Score returns the mean accuracy of Predict(X) against y.
func (m *FittedMultinomialNB) Score(X mat.Matrix, y []string) (float64, error) {
	rows, _ := X.Dims()
	if rows != len(y) {
		return 0, errors.NewDimensionError("MultinomialNB.Score", rows, len(y), 0)
	}
	if len(y) == 0 {
		return 0, errors.NewModelError("MultinomialNB.Score", "empty evaluation set", errors.ErrEmptyData)
	}

	predicted, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return accuracyAgainst(predicted, y), nil
}

// Classes returns the class labels in canonical (sorted) order.
func (m *FittedMultinomialNB) Classes() []string {
	return copyStrings(m.classes)
}

// ClassPriors returns the empirical prior probability of each class.
func (m *FittedMultinomialNB) ClassPriors() map[string]float64 {
	return priorsByLabel(m.classes, m.priors)
}

// FeatureProb returns the smoothed per-class feature probabilities as
// a classes-by-features matrix aligned with Classes().
func (m *FittedMultinomialNB) FeatureProb() [][]float64 {
	return copyMatrix(m.featureProb)
}

// Alpha returns the smoothing parameter the model was fitted with.
func (m *FittedMultinomialNB) Alpha() float64 {
	return m.alpha
}

// NFeatures returns the feature width the model was fitted on.
func (m *FittedMultinomialNB) NFeatures() int {
	return m.nFeatures
}

// NSamples returns the number of training rows seen.
func (m *FittedMultinomialNB) NSamples() int {
	return m.nSamples
}
