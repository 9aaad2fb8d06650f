// Package tensor wraps gonum's mat.Dense with shape-checked
// construction. It is the supported bridge from raw [][]float64 rows
// to the mat.Matrix values the classifiers consume: FromRows rejects
// ragged input, so everything downstream can assume rectangular data.
package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lakefield/bayesgo/pkg/errors"
)

// Tensor is a 2-D float64 array backed by mat.Dense. It satisfies
// mat.Matrix, so a Tensor can be passed directly to Fit and Predict.
type Tensor struct {
	data  *mat.Dense
	shape []int
}

// NewTensor creates a tensor from row-major data and an explicit
// shape. Only 2-D shapes are supported.
func NewTensor(data []float64, shape ...int) (*Tensor, error) {
	if len(shape) != 2 {
		return nil, errors.NewValueError("NewTensor", "only 2D tensors are supported")
	}

	size := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, errors.NewValueError("NewTensor", "all dimensions must be positive")
		}
		size *= s
	}

	if len(data) != size {
		return nil, errors.NewDimensionError("NewTensor", size, len(data), 0)
	}

	return &Tensor{
		data:  mat.NewDense(shape[0], shape[1], data),
		shape: []int{shape[0], shape[1]},
	}, nil
}

// FromRows creates a tensor from a slice of rows, validating that the
// input is non-empty and rectangular. A width mismatch reports which
// row disagrees and unwraps to ErrRaggedRows.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError("tensor.FromRows", "no rows", errors.ErrEmptyData)
	}

	width := len(rows[0])
	if width == 0 {
		return nil, errors.NewValueError("tensor.FromRows", "rows must have at least one column")
	}

	data := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(errors.ErrRaggedRows,
				"tensor.FromRows: row %d has width %d, want %d", i, len(row), width)
		}
		data = append(data, row...)
	}

	return &Tensor{
		data:  mat.NewDense(len(rows), width, data),
		shape: []int{len(rows), width},
	}, nil
}

// NewTensorFromDense wraps an existing mat.Dense without copying.
func NewTensorFromDense(dense *mat.Dense) *Tensor {
	r, c := dense.Dims()
	return &Tensor{
		data:  dense,
		shape: []int{r, c},
	}
}

// NewZeros creates a zero-filled tensor of the given 2-D shape.
func NewZeros(shape ...int) (*Tensor, error) {
	if len(shape) != 2 {
		return nil, errors.NewValueError("NewZeros", "only 2D tensors are supported")
	}

	size := shape[0] * shape[1]
	if size <= 0 {
		return nil, errors.NewValueError("NewZeros", "all dimensions must be positive")
	}
	return NewTensor(make([]float64, size), shape...)
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return append([]int{}, t.shape...)
}

// Dims returns the number of rows and columns.
func (t *Tensor) Dims() (int, int) {
	return t.data.Dims()
}

// At returns the value at row i, column j.
func (t *Tensor) At(i, j int) float64 {
	return t.data.At(i, j)
}

// Set assigns v at row i, column j.
func (t *Tensor) Set(i, j int, v float64) {
	t.data.Set(i, j, v)
}

// T returns the transpose as a mat.Matrix view; no data is copied.
func (t *Tensor) T() mat.Matrix {
	return t.data.T()
}

// Data returns the underlying mat.Dense. Mutating it mutates the
// tensor.
func (t *Tensor) Data() *mat.Dense {
	return t.data
}

// RawData returns a row-major copy of the tensor's contents.
func (t *Tensor) RawData() []float64 {
	r, c := t.data.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = t.data.At(i, j)
		}
	}
	return data
}

// Copy returns a deep copy of the tensor.
func (t *Tensor) Copy() *Tensor {
	var cloned mat.Dense
	cloned.CloneFrom(t.data)
	return &Tensor{
		data:  &cloned,
		shape: append([]int{}, t.shape...),
	}
}
