package ops

import (
	"slices"

	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/shapeinference"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// Reshape returns x with the new dimensions, keeping the order of the elements.
// One of the dimensions can be -1, in which case it is inferred from the size of x.
func (b *Builder) Reshape(x lazyhlo.Output, dimensions ...int) (*lazyhlo.Node, error) {
	dimensions = slices.Clone(dimensions)
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Reshape(operand, dimensions)
	}
	lowerer := lowerWith(func(node *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		shape, err := node.Shape(0)
		if err != nil {
			return nil, err
		}
		return stablehlo.Reshape(operands[0], shape)
	})
	return b.deferred(KindReshape, []lazyhlo.Output{x}, shapeFn, lowerer, dimensions)
}

// Transpose permutes the axes of x: output axis i is the axis permutation[i] of x.
func (b *Builder) Transpose(x lazyhlo.Output, permutation ...int) (*lazyhlo.Node, error) {
	permutation = slices.Clone(permutation)
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Transpose(operand, permutation)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Transpose(operands[0], permutation...)
	})
	return b.deferred(KindTranspose, []lazyhlo.Output{x}, shapeFn, lowerer, permutation)
}

// BroadcastInDim broadcasts x to the target shape. The axesMapping gives, for each axis of x, the
// corresponding axis in the target shape: it must have dimension 1 or the target's dimension.
func (b *Builder) BroadcastInDim(x lazyhlo.Output, target shapes.Shape, axesMapping []int) (*lazyhlo.Node, error) {
	target = target.Clone()
	axesMapping = slices.Clone(axesMapping)
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		if err = shapeinference.BroadcastInDim(operand, target, slices.Clone(axesMapping)); err != nil {
			return shapes.Invalid(), err
		}
		return target, nil
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.BroadcastInDim(operands[0], target, axesMapping)
	})
	return b.deferred(KindBroadcastInDim, []lazyhlo.Output{x}, shapeFn, lowerer, target, axesMapping)
}

// Concatenate the operands along the axis. All other dimensions must match.
// A negative axis counts from the end.
func (b *Builder) Concatenate(axis int, operands ...lazyhlo.Output) (*lazyhlo.Node, error) {
	if len(operands) == 0 {
		return nil, errors.New("Concatenate requires at least one operand")
	}
	operands = slices.Clone(operands)
	shapeFn := func() (shapes.Shape, error) {
		inputs, err := operandShapes(operands...)
		if err != nil {
			return shapes.Invalid(), err
		}
		adjustedAxis, err := shapeinference.AdjustAxisToRank(axis, inputs[0].Rank())
		if err != nil {
			return shapes.Invalid(), errors.WithMessage(err, "Concatenate")
		}
		return shapeinference.Concatenate(inputs, adjustedAxis)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, values []*stablehlo.Value) (*stablehlo.Value, error) {
		adjustedAxis, err := shapeinference.AdjustAxisToRank(axis, values[0].Shape().Rank())
		if err != nil {
			return nil, err
		}
		return stablehlo.Concatenate(adjustedAxis, values...)
	})
	return b.deferred(KindConcatenate, operands, shapeFn, lowerer, axis)
}

// Slice returns the elements of x from starts (inclusive) to limits (exclusive) on each axis, with the
// given strides. If strides is empty, it defaults to 1 on every axis.
func (b *Builder) Slice(x lazyhlo.Output, starts, limits, strides []int) (*lazyhlo.Node, error) {
	starts, limits = slices.Clone(starts), slices.Clone(limits)
	if len(strides) == 0 {
		strides = onesLike(starts)
	} else {
		strides = slices.Clone(strides)
	}
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Slice(operand, starts, limits, strides)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Slice(operands[0], starts, limits, strides)
	})
	return b.deferred(KindSlice, []lazyhlo.Output{x}, shapeFn, lowerer, starts, limits, strides)
}

func onesLike(values []int) []int {
	ones := make([]int, len(values))
	for i := range ones {
		ones[i] = 1
	}
	return ones
}

// Split x in numParts equal parts along the axis. It returns a node with numParts outputs.
// Only the parts used by the lowered graph are emitted.
func (b *Builder) Split(x lazyhlo.Output, axis, numParts int) (*lazyhlo.Node, error) {
	if numParts <= 0 {
		return nil, errors.Errorf("Split requires a positive number of parts, got %d", numParts)
	}
	lowerer := lazyhlo.LowererFunc(func(node *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
		operands, err := ctx.OperandValues(node)
		if err != nil {
			return nil, err
		}
		operand := operands[0]
		rank := operand.Shape().Rank()
		adjustedAxis, err := shapeinference.AdjustAxisToRank(axis, rank)
		if err != nil {
			return nil, err
		}
		partSize := operand.Shape().Dimensions[adjustedAxis] / numParts
		starts := make([]int, rank)
		limits := slices.Clone(operand.Shape().Dimensions)
		values := make([]*stablehlo.Value, numParts)
		for part := range numParts {
			output, err := node.Output(part)
			if err != nil {
				return nil, err
			}
			if !ctx.IsOutputUsed(output) {
				continue
			}
			starts[adjustedAxis] = part * partSize
			limits[adjustedAxis] = (part + 1) * partSize
			values[part], err = stablehlo.Slice(operand, slices.Clone(starts), slices.Clone(limits), nil)
			if err != nil {
				return nil, errors.WithMessagef(err, "part #%d of Split", part)
			}
		}
		return values, nil
	})
	opts := append(b.options(lowerer, axis, numParts), lazyhlo.WithNumOutputs(numParts))
	node, err := lazyhlo.NewDeferredNode(KindSplit, []lazyhlo.Output{x}, nil, opts...)
	if err != nil {
		return nil, err
	}
	err = node.SetShapeDeferred(func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		parts, err := shapeinference.Split(operand, axis, numParts)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapes.MakeTuple(parts...), nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Identity returns a single output node with the value of x. It can be used to give one output of a
// multi-output node its own node.
func (b *Builder) Identity(x lazyhlo.Output) (*lazyhlo.Node, error) {
	lowerer := lazyhlo.LowererFunc(func(node *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
		return ctx.OperandValues(node)
	})
	return b.deferred(KindIdentity, []lazyhlo.Output{x}, x.Shape, lowerer)
}
