// Package shapes defines Shape, the descriptor of the structural type of a value: its data type
// (dtypes.DType) and the dimensions of each of its axes.
//
// A Shape is a value type: operations return new shapes, and the dimensions slice of a shape
// should not be changed once it is built.
//
// A Shape can also be a tuple of shapes: this is how the shapes of all outputs of a multi-output
// operation are described as one value.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Shape describes a multidimensional array (or a tuple of them): its DType and the dimensions of
// each axis. If len(Dimensions) is 0, it represents a scalar.
//
// If TupleShapes is set, the shape is a tuple and DType is InvalidDType.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int

	TupleShapes []Shape
}

// Make returns a Shape of the given dtype and dimensions.
//
// It panics if any dimension is negative: use MakeOrError if the dimensions are not trusted.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s, err := MakeOrError(dtype, dimensions...)
	if err != nil {
		panic(err)
	}
	return s
}

// MakeOrError is the same as Make, but it returns an error instead if a dimension is negative.
func MakeOrError(dtype dtypes.DType, dimensions ...int) (Shape, error) {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 {
			return Invalid(), errors.Errorf("shapes.Make(%s): cannot create a shape with an axis with dimension < 0", s)
		}
	}
	return s, nil
}

// MakeTuple returns a tuple shape with a copy of the given element shapes.
func MakeTuple(elements ...Shape) Shape {
	s := Shape{DType: dtypes.InvalidDType, TupleShapes: make([]Shape, len(elements))}
	for ii, element := range elements {
		s.TupleShapes[ii] = element.Clone()
	}
	return s
}

// Invalid returns an invalid shape.
//
// Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape: a valid DType or a tuple.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType || s.IsTuple() }

// IsTuple returns whether the shape is a tuple of other shapes.
func (s Shape) IsTuple() bool { return len(s.TupleShapes) > 0 }

// TupleSize is an alias to len(Shape.TupleShapes).
func (s Shape) TupleSize() int { return len(s.TupleShapes) }

// IsScalar returns whether the Shape is a scalar, i.e. its len(Shape.Dimensions) == 0.
func (s Shape) IsScalar() bool { return !s.IsTuple() && s.Rank() == 0 }

// Rank of a shape is the number of axes. A shortcut to len(Shape.Dimensions).
// Scalar values have rank 0.
func (s Shape) Rank() int { return len(s.Dimensions) }

// Dim returns the dimension of the given axis. Negative axes are counted from the end, so -1 is the last axis.
//
// It panics if the axis is out of range.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if axis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		panic(errors.Errorf("Shape.Dim(%d) out of range for shape %s", axis, s))
	}
	return s.Dimensions[adjustedAxis]
}

// Size returns the number of elements of the shape. E.g.: a Shape of dimensions [3, 5] has size 15.
// A scalar has size 1.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Memory returns the number of bytes used to store an array of the given shape.
// For tuples, it is the sum of the memory of its elements.
func (s Shape) Memory() uintptr {
	if s.IsTuple() {
		var total uintptr
		for _, element := range s.TupleShapes {
			total += element.Memory()
		}
		return total
	}
	return s.DType.Memory() * uintptr(s.Size())
}

// Clone makes a deep copy (including dimensions and tuples) of the given shape.
func (s Shape) Clone() (newS Shape) {
	newS.DType = s.DType
	if len(s.Dimensions) > 0 {
		newS.Dimensions = slices.Clone(s.Dimensions)
	}
	if len(s.TupleShapes) > 0 {
		newS.TupleShapes = make([]Shape, len(s.TupleShapes))
		for ii, subS := range s.TupleShapes {
			newS.TupleShapes[ii] = subS.Clone()
		}
	}
	return
}

// Equal compares two shapes for equality: dtype, dimensions and tuple elements must match.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType || !slices.Equal(s.Dimensions, s2.Dimensions) {
		return false
	}
	if s.TupleSize() != s2.TupleSize() {
		return false
	}
	for ii, element := range s.TupleShapes {
		if !element.Equal(s2.TupleShapes[ii]) {
			return false
		}
	}
	return true
}

// EqualDimensions compares only the dimensions of two shapes, ignoring their DType.
func (s Shape) EqualDimensions(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Check returns an error if the shape doesn't have the given dtype and dimensions.
func (s Shape) Check(dtype dtypes.DType, dimensions ...int) error {
	if s.DType != dtype {
		return errors.Errorf("shape %s has dtype %s, expected %s", s, s.DType, dtype)
	}
	return s.CheckDims(dimensions...)
}

// CheckDims returns an error if the shape doesn't have the given dimensions.
func (s Shape) CheckDims(dimensions ...int) error {
	if !slices.Equal(s.Dimensions, dimensions) {
		return errors.Errorf("shape %s has dimensions %v, expected %v", s, s.Dimensions, dimensions)
	}
	return nil
}

// String implements fmt.Stringer and pretty-prints the shape.
func (s Shape) String() string {
	if s.IsTuple() {
		parts := make([]string, 0, s.TupleSize())
		for _, element := range s.TupleShapes {
			parts = append(parts, element.String())
		}
		return fmt.Sprintf("Tuple<%s>", strings.Join(parts, ", "))
	}
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}
