package naive_bayes

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/model"
	"github.com/lakefield/bayesgo/pkg/errors"
	"github.com/lakefield/bayesgo/pkg/log"
)

// GaussianNB configures a Gaussian Naive Bayes estimator for
// continuous features. Like MultinomialNB it is a pure configuration
// value: Fit returns the learned model as a separate FittedGaussianNB.
type GaussianNB struct {
	logger log.Logger
}

// NewGaussianNB creates a Gaussian Naive Bayes estimator.
func NewGaussianNB() *GaussianNB {
	return &GaussianNB{
		logger: defaultLogger("GaussianNB"),
	}
}

// Fit estimates class priors and per-class, per-feature mean and
// population standard deviation (dividing by the class row count).
// A standard deviation of zero is a valid fitted value and marks a
// feature that is constant within its class.
func (nb *GaussianNB) Fit(X mat.Matrix, y []string) (fitted *FittedGaussianNB, err error) {
	defer errors.Recover(&err, "GaussianNB.Fit")
	start := time.Now()

	if err := validateTrainingInput("GaussianNB.Fit", X, y); err != nil {
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

	counts := make([]float64, len(classes))
	sums := make([][]float64, len(classes))
	for c := range sums {
		sums[c] = make([]float64, cols)
	}
	for i := 0; i < rows; i++ {
		c := classIndex[y[i]]
		counts[c]++
		for j := 0; j < cols; j++ {
			sums[c][j] += X.At(i, j)
		}
	}

	means := make([][]float64, len(classes))
	for c := range classes {
		means[c] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			means[c][j] = sums[c][j] / counts[c]
		}
	}

	// Two-pass variance: deviations from the final means, accumulated
	// in row order, keep the fit deterministic.
	sqDev := make([][]float64, len(classes))
	for c := range sqDev {
		sqDev[c] = make([]float64, cols)
	}
	for i := 0; i < rows; i++ {
		c := classIndex[y[i]]
		for j := 0; j < cols; j++ {
			d := X.At(i, j) - means[c][j]
			sqDev[c][j] += d * d
		}
	}

	stds := make([][]float64, len(classes))
	for c := range classes {
		stds[c] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			stds[c][j] = math.Sqrt(sqDev[c][j] / counts[c])
		}
	}

	fitted = &FittedGaussianNB{
		classes:   classes,
		priors:    priors,
		means:     means,
		stds:      stds,
		nFeatures: cols,
		nSamples:  rows,
		logger:    nb.logger,
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

// FittedGaussianNB is a trained Gaussian Naive Bayes model. It is
// immutable and safe for concurrent use.
type FittedGaussianNB struct {
	classes   []string
	priors    []float64
	means     [][]float64 // classes x features
	stds      [][]float64 // classes x features, population std
	nFeatures int
	nSamples  int
	logger    log.Logger
}

var _ model.Classifier = (*FittedGaussianNB)(nil)

// Predict returns the most probable class label for each row of X.
// Every feature contributes its log Gaussian density, evaluated in
// log space so extreme inputs cannot underflow. For a zero standard
// deviation the contribution is log(1) when the value equals the
// class mean exactly and log(epsilon) otherwise, keeping scores
// finite. Exact ties resolve to the earliest class in canonical
// order.
func (g *FittedGaussianNB) Predict(X mat.Matrix) (labels []string, err error) {
	defer errors.Recover(&err, "GaussianNB.Predict")

	if err := validatePredictWidth("GaussianNB.Predict", X, g.nFeatures); err != nil {
		return nil, err
	}

	scores := scoreRows(X, len(g.classes), g.scoreRow)
	labels = argmaxLabels(scores, g.classes)

	g.logger.Debug("prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(labels),
	)
	return labels, nil
}

// PredictProba returns per-class probability estimates for each row of
// X, columns in Classes() order.
func (g *FittedGaussianNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	logProba, err := g.predictLogProba(X)
	if err != nil {
		return nil, err
	}
	return probaFromLog(logProba), nil
}

// PredictLogProba returns normalized log probability estimates in the
// same layout as PredictProba.
func (g *FittedGaussianNB) PredictLogProba(X mat.Matrix) (mat.Matrix, error) {
	return g.predictLogProba(X)
}

func (g *FittedGaussianNB) predictLogProba(X mat.Matrix) (logProba *mat.Dense, err error) {
	defer errors.Recover(&err, "GaussianNB.PredictLogProba")

	if err := validatePredictWidth("GaussianNB.PredictLogProba", X, g.nFeatures); err != nil {
		return nil, err
	}

	logProba = scoreRows(X, len(g.classes), g.scoreRow)
	normalizeLogProba(logProba)
	return logProba, nil
}

func (g *FittedGaussianNB) scoreRow(row, scores []float64) {
	for c := range g.classes {
		score := math.Log(g.priors[c] + logEpsilon)
		means := g.means[c]
		stds := g.stds[c]
		for j, x := range row {
			sigma := stds[j]
			if sigma == 0 {
				if x != means[j] {
					score += math.Log(logEpsilon)
				}
				continue
			}
			diff := x - means[j]
			variance := sigma * sigma
			score += -0.5*math.Log(2*math.Pi*variance) - diff*diff/(2*variance)
		}
		scores[c] = score
	}
}

// Score returns the mean accuracy of Predict(X) against y.
func (g *FittedGaussianNB) Score(X mat.Matrix, y []string) (float64, error) {
	rows, _ := X.Dims()
	if rows != len(y) {
		return 0, errors.NewDimensionError("GaussianNB.Score", rows, len(y), 0)
	}
	if len(y) == 0 {
		return 0, errors.NewModelError("GaussianNB.Score", "empty evaluation set", errors.ErrEmptyData)
	}

	predicted, err := g.Predict(X)
	if err != nil {
		return 0, err
	}
	return accuracyAgainst(predicted, y), nil
}

// Classes returns the class labels in canonical (sorted) order.
func (g *FittedGaussianNB) Classes() []string {
	return copyStrings(g.classes)
}

// ClassPriors returns the empirical prior probability of each class.
func (g *FittedGaussianNB) ClassPriors() map[string]float64 {
	return priorsByLabel(g.classes, g.priors)
}

// Means returns the per-class feature means as a classes-by-features
// matrix aligned with Classes().
func (g *FittedGaussianNB) Means() [][]float64 {
	return copyMatrix(g.means)
}

// StdDevs returns the per-class population standard deviations aligned
// with Classes().
func (g *FittedGaussianNB) StdDevs() [][]float64 {
	return copyMatrix(g.stds)
}

// NFeatures returns the feature width the model was fitted on.
func (g *FittedGaussianNB) NFeatures() int {
	return g.nFeatures
}

// NSamples returns the number of training rows seen.
func (g *FittedGaussianNB) NSamples() int {
	return g.nSamples
}
