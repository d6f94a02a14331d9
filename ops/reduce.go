package ops

import (
	"reflect"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/shapeinference"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// Dot returns the matrix multiplication of lhs and rhs: lhs must be a matrix, and rhs a matrix or a vector.
// It contracts the last axis of lhs with the first axis of rhs.
func (b *Builder) Dot(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(lhs, rhs)
		if err != nil {
			return shapes.Invalid(), err
		}
		lhsShape, rhsShape := operands[0], operands[1]
		if lhsShape.Rank() != 2 || (rhsShape.Rank() != 1 && rhsShape.Rank() != 2) {
			return shapes.Invalid(), errors.Errorf("Dot requires a matrix and a matrix or vector, got %s and %s", lhsShape, rhsShape)
		}
		return shapeinference.DotGeneral(lhsShape, []int{1}, nil, rhsShape, []int{0}, nil, lhsShape.DType)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Dot(operands[0], operands[1])
	})
	return b.deferred(KindDot, []lazyhlo.Output{lhs, rhs}, shapeFn, lowerer)
}

type reduceType int

const (
	reduceSum reduceType = iota
	reduceMax
	reduceMin
)

// initialValue returns the identity of the reduction for the dtype.
func (r reduceType) initialValue(dtype dtypes.DType) any {
	switch r {
	case reduceMax:
		return dtype.LowestValue()
	case reduceMin:
		return dtype.HighestValue()
	default:
		return reflect.Zero(dtype.GoType()).Interface()
	}
}

// combine emits the binary operation of the reduction.
func (r reduceType) combine(lhs, rhs *stablehlo.Value) (*stablehlo.Value, error) {
	switch r {
	case reduceMax:
		return stablehlo.Maximum(lhs, rhs)
	case reduceMin:
		return stablehlo.Minimum(lhs, rhs)
	default:
		return stablehlo.Add(lhs, rhs)
	}
}

// reduce creates a reduction node over the axes of x. If no axes are given, all axes are reduced.
func (b *Builder) reduce(op lazyhlo.OpKind, reduction reduceType, x lazyhlo.Output, axes []int) (*lazyhlo.Node, error) {
	axes = slices.Clone(axes)
	reducedAxes := func(rank int) []int {
		if len(axes) > 0 {
			return slices.Clone(axes)
		}
		all := make([]int, rank)
		for i := range all {
			all[i] = i
		}
		return all
	}
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		scalar := shapes.Make(operand.DType)
		outputs, err := shapeinference.Reduce(
			[]shapes.Shape{operand}, []shapes.Shape{scalar},
			[]shapes.Shape{scalar, scalar}, []shapes.Shape{scalar},
			reducedAxes(operand.Rank()))
		if err != nil {
			return shapes.Invalid(), err
		}
		return outputs[0], nil
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, fn *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		operand := operands[0]
		dtype := operand.Shape().DType
		initial, err := fn.ConstantFromScalar(reduction.initialValue(dtype))
		if err != nil {
			return nil, err
		}
		reductionFn := fn.Closure()
		scalar := shapes.Make(dtype)
		lhs, err := reductionFn.Input(scalar)
		if err != nil {
			return nil, err
		}
		rhs, err := reductionFn.Input(scalar)
		if err != nil {
			return nil, err
		}
		combined, err := reduction.combine(lhs, rhs)
		if err != nil {
			return nil, err
		}
		if err = reductionFn.Return(combined); err != nil {
			return nil, err
		}
		return stablehlo.Reduce(operand, initial, reductionFn, reducedAxes(operand.Shape().Rank())...)
	})
	return b.deferred(op, []lazyhlo.Output{x}, shapeFn, lowerer, axes)
}

// ReduceSum returns the sum of x over the given axes, or over all axes if none are given.
func (b *Builder) ReduceSum(x lazyhlo.Output, axes ...int) (*lazyhlo.Node, error) {
	return b.reduce(KindReduceSum, reduceSum, x, axes)
}

// ReduceMax returns the maximum of x over the given axes, or over all axes if none are given.
func (b *Builder) ReduceMax(x lazyhlo.Output, axes ...int) (*lazyhlo.Node, error) {
	return b.reduce(KindReduceMax, reduceMax, x, axes)
}

// ReduceMin returns the minimum of x over the given axes, or over all axes if none are given.
func (b *Builder) ReduceMin(x lazyhlo.Output, axes ...int) (*lazyhlo.Node, error) {
	return b.reduce(KindReduceMin, reduceMin, x, axes)
}
