// Package preprocessing provides label-side transformers: encoding
// string labels as integer indices or one-hot rows and back.
package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/core/model"
	"github.com/lakefield/bayesgo/pkg/errors"
)

// sortedClasses collects the distinct labels in lexicographic order
// together with their index map. Both encoders learn their alphabet
// this way so their class order matches the classifiers'.
func sortedClasses(labels []string) ([]string, map[string]int) {
	classSet := make(map[string]bool)
	for _, label := range labels {
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
	return classes, classToIdx
}

// LabelEncoder maps string labels to integer indices over the sorted
// distinct classes seen at Fit. Transform rejects labels outside the
// training alphabet.
type LabelEncoder struct {
	*model.StateManager

	classes    []string
	classToIdx map[string]int
}

// NewLabelEncoder creates an unfitted LabelEncoder.
//
// Example:
//
//	encoder := preprocessing.NewLabelEncoder()
//	err := encoder.Fit(labels)
//	indices, err := encoder.Transform(labels)
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		StateManager: model.NewStateManager(),
	}
}

// Fit learns the class alphabet from the training labels.
//
// Parameters:
//   - labels: Training labels, one per sample
//
// Returns:
//   - error: ErrEmptyData if labels is empty
func (e *LabelEncoder) Fit(labels []string) (err error) {
	defer errors.Recover(&err, "LabelEncoder.Fit")

	if len(labels) == 0 {
		return errors.NewModelError("LabelEncoder.Fit", "empty label set", errors.ErrEmptyData)
	}

	e.classes, e.classToIdx = sortedClasses(labels)
	e.SetDimensions(len(e.classes), len(labels))
	e.SetFitted()
	return nil
}

// Transform maps each label to its class index.
//
// Parameters:
//   - labels: Labels to encode
//
// Returns:
//   - []int: One class index per label
//   - error: NotFittedError before Fit, ValueError for a label outside
//     the training alphabet
func (e *LabelEncoder) Transform(labels []string) (_ []int, err error) {
	defer errors.Recover(&err, "LabelEncoder.Transform")

	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}

	indices := make([]int, len(labels))
	for i, label := range labels {
		idx, known := e.classToIdx[label]
		if !known {
			return nil, errors.NewValueError("LabelEncoder.Transform", "unknown label: "+label)
		}
		indices[i] = idx
	}
	return indices, nil
}

// FitTransform learns the alphabet and encodes the same labels.
func (e *LabelEncoder) FitTransform(labels []string) (_ []int, err error) {
	defer errors.Recover(&err, "LabelEncoder.FitTransform")

	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform maps class indices back to labels.
//
// Parameters:
//   - indices: Class indices to decode
//
// Returns:
//   - []string: One label per index
//   - error: NotFittedError before Fit, ValueError for an index outside
//     [0, number of classes)
func (e *LabelEncoder) InverseTransform(indices []int) (_ []string, err error) {
	defer errors.Recover(&err, "LabelEncoder.InverseTransform")

	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	labels := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(e.classes) {
			return nil, errors.NewValueErrorf("LabelEncoder.InverseTransform", "class index %d out of range [0, %d)", idx, len(e.classes))
		}
		labels[i] = e.classes[idx]
	}
	return labels, nil
}

// Classes returns the learned labels in index order.
func (e *LabelEncoder) Classes() []string {
	if !e.IsFitted() {
		return nil
	}
	classes := make([]string, len(e.classes))
	copy(classes, e.classes)
	return classes
}

// LabelBinarizer maps string labels to one-hot rows over the sorted
// distinct classes seen at Fit. A fitted binarizer with k classes
// produces rows of width k with a single 1.
type LabelBinarizer struct {
	*model.StateManager

	classes    []string
	classToIdx map[string]int
}

// NewLabelBinarizer creates an unfitted LabelBinarizer.
func NewLabelBinarizer() *LabelBinarizer {
	return &LabelBinarizer{
		StateManager: model.NewStateManager(),
	}
}

var _ model.Vectorizer = (*LabelBinarizer)(nil)

// Fit learns the class alphabet from the training labels.
func (b *LabelBinarizer) Fit(labels []string) (err error) {
	defer errors.Recover(&err, "LabelBinarizer.Fit")

	if len(labels) == 0 {
		return errors.NewModelError("LabelBinarizer.Fit", "empty label set", errors.ErrEmptyData)
	}

	b.classes, b.classToIdx = sortedClasses(labels)
	b.SetDimensions(len(b.classes), len(labels))
	b.SetFitted()
	return nil
}

// Transform maps each label to a one-hot row.
//
// Parameters:
//   - labels: Labels to binarize
//
// Returns:
//   - mat.Matrix: A (len(labels) × number of classes) one-hot matrix
//   - error: NotFittedError before Fit, ErrEmptyData for no labels,
//     ValueError for a label outside the training alphabet
func (b *LabelBinarizer) Transform(labels []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LabelBinarizer.Transform")

	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("LabelBinarizer", "Transform")
	}
	if len(labels) == 0 {
		return nil, errors.NewModelError("LabelBinarizer.Transform", "empty label set", errors.ErrEmptyData)
	}

	binarized := mat.NewDense(len(labels), len(b.classes), nil)
	for i, label := range labels {
		idx, known := b.classToIdx[label]
		if !known {
			return nil, errors.NewValueError("LabelBinarizer.Transform", "unknown label: "+label)
		}
		binarized.Set(i, idx, 1.0)
	}
	return binarized, nil
}

// FitTransform learns the alphabet and binarizes the same labels.
func (b *LabelBinarizer) FitTransform(labels []string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LabelBinarizer.FitTransform")

	if err := b.Fit(labels); err != nil {
		return nil, err
	}
	return b.Transform(labels)
}

// InverseTransform decodes one-hot (or score) rows back to labels by
// taking the per-row argmax. Ties resolve to the earliest class, the
// same rule the classifiers use.
//
// Parameters:
//   - Y: A (samples × number of classes) matrix
//
// Returns:
//   - []string: One label per row
//   - error: NotFittedError before Fit, DimensionError if the width
//     does not match the number of classes
func (b *LabelBinarizer) InverseTransform(Y mat.Matrix) (_ []string, err error) {
	defer errors.Recover(&err, "LabelBinarizer.InverseTransform")

	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("LabelBinarizer", "InverseTransform")
	}

	rows, cols := Y.Dims()
	if cols != len(b.classes) {
		return nil, errors.NewDimensionError("LabelBinarizer.InverseTransform", len(b.classes), cols, 1)
	}

	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for j := 1; j < cols; j++ {
			if Y.At(i, j) > Y.At(i, best) {
				best = j
			}
		}
		labels[i] = b.classes[best]
	}
	return labels, nil
}

// Classes returns the learned labels in column order.
func (b *LabelBinarizer) Classes() []string {
	if !b.IsFitted() {
		return nil
	}
	classes := make([]string, len(b.classes))
	copy(classes, b.classes)
	return classes
}
