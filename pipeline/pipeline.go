// Package pipeline chains feature extraction and classification behind
// a single text-in, label-out API.
package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/feature_extraction"
	"github.com/lakefield/bayesgo/metrics"
	"github.com/lakefield/bayesgo/naive_bayes"
	"github.com/lakefield/bayesgo/pkg/errors"
	"github.com/lakefield/bayesgo/pkg/log"
)

var globalProvider log.LoggerProvider

func defaultLogger(name string) log.Logger {
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	return globalProvider.GetLoggerWithName(name)
}

// TextClassifier configures a two-step text classification pipeline: a
// CountVectorizer feeding a multinomial Naive Bayes classifier. Like
// the classifiers it wraps, the unfitted value holds configuration
// only; Fit returns the learned pipeline as a separate
// FittedTextClassifier.
type TextClassifier struct {
	modelOptions []naive_bayes.MultinomialNBOption

	model  *naive_bayes.MultinomialNB
	logger log.Logger
}

// TextClassifierOption is a configuration option for TextClassifier.
type TextClassifierOption func(*TextClassifier)

// WithAlpha sets the smoothing parameter of the underlying multinomial
// classifier.
func WithAlpha(alpha float64) TextClassifierOption {
	return func(t *TextClassifier) {
		t.modelOptions = append(t.modelOptions, naive_bayes.WithAlpha(alpha))
	}
}

// NewTextClassifier creates a text classification pipeline with
// Laplace smoothing (alpha = 1.0) unless configured otherwise.
func NewTextClassifier(options ...TextClassifierOption) *TextClassifier {
	t := &TextClassifier{}
	for _, opt := range options {
		opt(t)
	}

	t.model = naive_bayes.NewMultinomialNB(t.modelOptions...)
	t.logger = defaultLogger("TextClassifier")
	return t
}

// Alpha returns the smoothing parameter of the underlying classifier.
func (t *TextClassifier) Alpha() float64 {
	return t.model.Alpha()
}

// Fit learns the vocabulary from docs, vectorizes them, and fits the
// classifier on the resulting counts.
//
// Parameters:
//   - docs: Training documents, one string per document
//   - labels: The class label of each document
//
// Returns:
//   - *FittedTextClassifier: The learned pipeline
//   - error: Any error from either step, or a DimensionError when docs
//     and labels disagree in length
func (t *TextClassifier) Fit(docs []string, labels []string) (fitted *FittedTextClassifier, err error) {
	defer errors.Recover(&err, "TextClassifier.Fit")
	start := time.Now()

	if len(docs) != len(labels) {
		return nil, errors.NewDimensionError("TextClassifier.Fit", len(docs), len(labels), 0)
	}

	vectorizer := feature_extraction.NewCountVectorizer()
	counts, err := vectorizer.FitTransform(docs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fit vectorizer step")
	}

	model, err := t.model.Fit(counts, labels)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fit classifier step")
	}

	t.logger.Info("training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(docs),
		log.FeaturesKey, vectorizer.VocabularySize(),
		log.ClassesKey, len(model.Classes()),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &FittedTextClassifier{
		vectorizer: vectorizer,
		model:      model,
		logger:     t.logger,
	}, nil
}

// FittedTextClassifier is a learned text classification pipeline. It
// holds the fitted vocabulary and classifier and is safe for
// concurrent use.
type FittedTextClassifier struct {
	vectorizer *feature_extraction.CountVectorizer
	model      *naive_bayes.FittedMultinomialNB
	logger     log.Logger
}

// Predict returns the most probable class for each document. Tokens
// outside the training vocabulary are ignored; a document with no
// known tokens falls back to the class priors.
func (f *FittedTextClassifier) Predict(docs []string) (_ []string, err error) {
	defer errors.Recover(&err, "TextClassifier.Predict")

	counts, err := f.transform(docs)
	if err != nil {
		return nil, err
	}
	return f.model.Predict(counts)
}

// PredictProba returns per-class probabilities for each document,
// columns in Classes() order.
func (f *FittedTextClassifier) PredictProba(docs []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "TextClassifier.PredictProba")

	counts, err := f.transform(docs)
	if err != nil {
		return nil, err
	}
	return f.model.PredictProba(counts)
}

// PredictLogProba returns normalized log probabilities for each
// document, columns in Classes() order.
func (f *FittedTextClassifier) PredictLogProba(docs []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "TextClassifier.PredictLogProba")

	counts, err := f.transform(docs)
	if err != nil {
		return nil, err
	}
	return f.model.PredictLogProba(counts)
}

// Score returns the mean accuracy of Predict(docs) against labels.
func (f *FittedTextClassifier) Score(docs []string, labels []string) (_ float64, err error) {
	defer errors.Recover(&err, "TextClassifier.Score")

	if len(docs) != len(labels) {
		return 0, errors.NewDimensionError("TextClassifier.Score", len(docs), len(labels), 0)
	}

	predicted, err := f.Predict(docs)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(labels, predicted)
}

// Classes returns the class labels in canonical (sorted) order.
func (f *FittedTextClassifier) Classes() []string {
	return f.model.Classes()
}

// ClassPriors returns the fitted prior probability of each class.
func (f *FittedTextClassifier) ClassPriors() map[string]float64 {
	return f.model.ClassPriors()
}

// FeatureNames returns the learned vocabulary in column order.
func (f *FittedTextClassifier) FeatureNames() []string {
	return f.vectorizer.FeatureNames()
}

// VocabularySize returns the number of tokens in the learned
// vocabulary.
func (f *FittedTextClassifier) VocabularySize() int {
	return f.vectorizer.VocabularySize()
}

// Model returns the fitted classifier behind the pipeline.
func (f *FittedTextClassifier) Model() *naive_bayes.FittedMultinomialNB {
	return f.model
}

func (f *FittedTextClassifier) transform(docs []string) (mat.Matrix, error) {
	counts, err := f.vectorizer.Transform(docs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to transform documents")
	}
	return counts, nil
}
