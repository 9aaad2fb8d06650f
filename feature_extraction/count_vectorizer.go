// Package feature_extraction turns raw text into the numeric matrices
// the bayesgo classifiers consume.
package feature_extraction

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/model"
	"github.com/lakefield/bayesgo/core/tensor"
	"github.com/lakefield/bayesgo/pkg/errors"
)

// CountVectorizer converts a collection of documents into a matrix of
// token counts. Documents are split on whitespace runs; the vocabulary
// learned at Fit is sorted lexicographically so column order is
// deterministic. Tokens unseen during fitting contribute nothing at
// Transform.
type CountVectorizer struct {
	*model.StateManager

	vocabulary map[string]int
	terms      []string
}

// NewCountVectorizer creates an unfitted CountVectorizer.
//
// Returns:
//   - *CountVectorizer: A new vectorizer instance
//
// Example:
//
//	vectorizer := feature_extraction.NewCountVectorizer()
//	err := vectorizer.Fit(docs)
//	counts, err := vectorizer.Transform(docs)
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{
		StateManager: model.NewStateManager(),
	}
}

var _ model.Vectorizer = (*CountVectorizer)(nil)

// Fit learns the vocabulary from the training documents.
//
// Parameters:
//   - docs: Training documents, one string per document
//
// Returns:
//   - error: ErrEmptyData if docs is empty, ValueError if no document
//     contains a token
func (v *CountVectorizer) Fit(docs []string) (err error) {
	defer errors.Recover(&err, "CountVectorizer.Fit")

	if len(docs) == 0 {
		return errors.NewModelError("CountVectorizer.Fit", "empty document set", errors.ErrEmptyData)
	}

	tokenSet := make(map[string]bool)
	for _, doc := range docs {
		for _, token := range strings.Fields(doc) {
			tokenSet[token] = true
		}
	}
	if len(tokenSet) == 0 {
		return errors.NewValueError("CountVectorizer.Fit", "documents contain no tokens")
	}

	terms := make([]string, 0, len(tokenSet))
	for token := range tokenSet {
		terms = append(terms, token)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	for idx, token := range terms {
		vocabulary[token] = idx
	}

	v.terms = terms
	v.vocabulary = vocabulary
	v.SetDimensions(len(terms), len(docs))
	v.SetFitted()
	return nil
}

// Transform counts vocabulary tokens in each document.
//
// Parameters:
//   - docs: Documents to vectorize
//
// Returns:
//   - mat.Matrix: A (len(docs) × vocabulary size) count matrix
//   - error: NotFittedError if Fit has not been called, ErrEmptyData
//     if docs is empty
func (v *CountVectorizer) Transform(docs []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "CountVectorizer.Transform")

	if !v.IsFitted() {
		return nil, errors.NewNotFittedError("CountVectorizer", "Transform")
	}
	if len(docs) == 0 {
		return nil, errors.NewModelError("CountVectorizer.Transform", "empty document set", errors.ErrEmptyData)
	}

	counts := mat.NewDense(len(docs), len(v.terms), nil)
	for i, doc := range docs {
		row := counts.RawRowView(i)
		for _, token := range strings.Fields(doc) {
			if idx, known := v.vocabulary[token]; known {
				row[idx]++
			}
		}
	}

	return tensor.NewTensorFromDense(counts), nil
}

// FitTransform learns the vocabulary and vectorizes the same documents
// in one call.
//
// Parameters:
//   - docs: Training documents
//
// Returns:
//   - mat.Matrix: A (len(docs) × vocabulary size) count matrix
//   - error: Any error from Fit or Transform
func (v *CountVectorizer) FitTransform(docs []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "CountVectorizer.FitTransform")

	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// FeatureNames returns the vocabulary tokens in column order.
func (v *CountVectorizer) FeatureNames() []string {
	if !v.IsFitted() {
		return nil
	}
	names := make([]string, len(v.terms))
	copy(names, v.terms)
	return names
}

// Vocabulary returns a copy of the token to column index mapping.
func (v *CountVectorizer) Vocabulary() map[string]int {
	if !v.IsFitted() {
		return nil
	}
	vocabulary := make(map[string]int, len(v.vocabulary))
	for token, idx := range v.vocabulary {
		vocabulary[token] = idx
	}
	return vocabulary
}

// VocabularySize returns the number of learned tokens, which is the
// width of the matrices Transform produces.
func (v *CountVectorizer) VocabularySize() int {
	if !v.IsFitted() {
		return 0
	}
	return len(v.terms)
}
