package lazyhlo

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

var (
	opParameter = NewOpKind("test", "parameter")
	opAdd       = NewOpKind("test", "add")
	opSplit     = NewOpKind("test", "split")
)

func TestLeafNode(t *testing.T) {
	shape := shapes.Make(dtypes.Float32, 2, 3)
	x := must1(NewLeafNode(opParameter, shape))
	assert.Empty(t, x.Operands())
	assert.Equal(t, 0, x.NumOperands())
	assert.Equal(t, 1, x.NumOutputs())
	assert.True(t, x.IsShapeResolved())
	s0 := must1(x.Shape(0))
	assert.True(t, shape.Equal(s0))
	assert.Len(t, must1(x.Shapes()), x.NumOutputs())

	_, err := x.Shape(1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = x.Operand(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = x.Output(1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewLeafNode(opParameter, shapes.Invalid())
	require.Error(t, err)
}

// TestAddScenario builds X [2,3]float32 and Y = add(X, X), with a deferred shape.
func TestAddScenario(t *testing.T) {
	shape := shapes.Make(dtypes.Float32, 2, 3)
	x := must1(NewLeafNode(opParameter, shape))

	var calls atomic.Int32
	y := must1(NewDeferredNode(opAdd, []Output{x.Out(), x.Out()}, func() (shapes.Shape, error) {
		calls.Add(1)
		return shapes.Make(dtypes.Float32, 2, 3), nil
	}))
	operands := y.Operands()
	require.Len(t, operands, 2)
	for _, operand := range operands {
		assert.Same(t, x, operand.Node())
		assert.Equal(t, x.ID(), operand.NodeID())
		assert.Equal(t, 0, operand.Index())
	}
	assert.Equal(t, operands[0], operands[1])
	assert.Len(t, y.operands, len(y.operandOutputs))

	assert.False(t, y.IsShapeResolved())
	assert.Equal(t, "test::add, <deferred>", y.String())
	assert.Equal(t, int32(0), calls.Load())

	for range 3 {
		s := must1(y.Shape(0))
		assert.True(t, shape.Equal(s))
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, y.IsShapeResolved())
	assert.Equal(t, "test::add, (Float32)[2 3]", y.String())
	assert.Equal(t, fmt.Sprintf("%%%d = test::add(%%%d:0, %%%d:0), (Float32)[2 3]", y.ID(), x.ID(), x.ID()),
		fmt.Sprintf("%+v", y))

	_, err := y.Shape(1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = y.Operand(len(y.Operands()))
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, operands[1], must1(y.Operand(1)))
}

func TestDeferredShape_Concurrent(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Int32, 7)))
	var calls atomic.Int32
	y := must1(NewDeferredNode(opAdd, []Output{x.Out(), x.Out()}, func() (shapes.Shape, error) {
		calls.Add(1)
		return x.Out().Shape()
	}))

	var wg sync.WaitGroup
	results := make([]shapes.Shape, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = must1(y.Shape(0))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
	for _, s := range results {
		require.NoError(t, s.Check(dtypes.Int32, 7))
	}
}

func TestDeferredShape_FailureIsRetryable(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32, 3)))
	var calls int
	fail := true
	y := must1(NewDeferredNode(opAdd, []Output{x.Out(), x.Out()}, func() (shapes.Shape, error) {
		calls++
		if fail {
			return shapes.Invalid(), errors.New("operand shapes don't match")
		}
		return shapes.Make(dtypes.Float32, 3), nil
	}))

	_, err := y.Shape(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operand shapes don't match")
	assert.False(t, y.IsShapeResolved())
	_, err = y.Shapes()
	require.Error(t, err)
	_, err = y.Hash()
	require.Error(t, err)

	assert.Equal(t, 3, calls)

	fail = false
	require.NoError(t, must1(y.Shape(0)).Check(dtypes.Float32, 3))
	assert.Equal(t, 4, calls)
	require.NoError(t, must1(y.Shape(0)).Check(dtypes.Float32, 3))
	assert.Equal(t, 4, calls)
}

func TestSetShapeDeferred(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32, 4)))
	split := must1(NewDeferredNode(opSplit, []Output{x.Out()}, nil, WithNumOutputs(2)))

	_, err := split.Shape(0)
	require.ErrorIs(t, err, ErrShapeNotSet)

	require.NoError(t, split.SetShapeDeferred(func() (shapes.Shape, error) {
		half := shapes.Make(dtypes.Float32, 2)
		return shapes.MakeTuple(half, half), nil
	}))
	require.ErrorIs(t, split.SetShapeDeferred(func() (shapes.Shape, error) { return shapes.Invalid(), nil }),
		ErrShapeAlreadySet)

	all := must1(split.Shapes())
	require.Len(t, all, 2)
	for _, s := range all {
		require.NoError(t, s.Check(dtypes.Float32, 2))
	}
	assert.True(t, must1(split.GetOpShape(nil)).IsTuple())
	assert.Equal(t, "test::split, [(Float32)[2], (Float32)[2]]", split.String())
	require.ErrorIs(t, split.SetShapeDeferred(func() (shapes.Shape, error) { return shapes.Invalid(), nil }),
		ErrShapeAlreadySet)

	// Consuming the second output.
	second := must1(split.Output(1))
	neg := must1(NewNodeWithShapeFn(NewOpKind("test", "neg"), []Output{second}, second.Shape))
	assert.Equal(t, 1, must1(neg.Operand(0)).Index())
	assert.Len(t, split.Outputs(), 2)
}

func TestMultiOutputShapeMismatch(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32, 4)))
	split := must1(NewDeferredNode(opSplit, []Output{x.Out()}, func() (shapes.Shape, error) {
		return shapes.Make(dtypes.Float32, 2), nil
	}, WithNumOutputs(2)))
	_, err := split.Shape(0)
	require.Error(t, err)
	assert.False(t, split.IsShapeResolved())

	_, err = NewNode(opSplit, []Output{x.Out()}, []shapes.Shape{shapes.Make(dtypes.Float32, 2)}, WithNumOutputs(2))
	require.Error(t, err)
	_, err = NewNode(opSplit, nil, nil, WithNumOutputs(0))
	require.Error(t, err)
}

func TestNewNode(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32, 4)))
	half := shapes.Make(dtypes.Float32, 2)
	split := must1(NewNode(opSplit, []Output{x.Out()}, []shapes.Shape{half, half}, WithNumOutputs(2)))
	assert.True(t, split.IsShapeResolved())
	assert.Len(t, must1(split.Shapes()), split.NumOutputs())

	// Invalid operand output index.
	_, err := NewNode(opAdd, []Output{{}}, []shapes.Shape{half})
	require.ErrorIs(t, err, ErrNodeReleased)
	badOutput := x.Out()
	badOutput.index = 3
	_, err = NewNode(opAdd, []Output{badOutput}, []shapes.Shape{half})
	require.ErrorIs(t, err, ErrOutOfRange)

	// Eager shape function errors are returned at construction.
	_, err = NewNodeWithShapeFn(opAdd, []Output{x.Out()}, func() (shapes.Shape, error) {
		return shapes.Invalid(), errors.New("bad shape")
	})
	require.Error(t, err)
}

func TestConstructionOrder(t *testing.T) {
	a := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32)))
	b := must1(NewNodeWithShapeFn(opAdd, []Output{a.Out(), a.Out()}, a.Out().Shape))
	c := must1(NewNodeWithShapeFn(opAdd, []Output{b.Out(), b.Out()}, b.Out().Shape))
	assert.Less(t, uint64(a.ID()), uint64(b.ID()))
	assert.Less(t, uint64(b.ID()), uint64(c.ID()))
	// Operands can only be given at construction: a's operands are fixed forever.
	assert.Empty(t, a.Operands())
	ops := c.Operands()
	ops[0] = a.Out()
	assert.Same(t, b, must1(c.Operand(0)).Node(), "Operands returns a copy")
}

func TestOutput(t *testing.T) {
	x := must1(NewLeafNode(opParameter, shapes.Make(dtypes.Float32)))
	o := x.Out()
	assert.Equal(t, must1(x.Output(0)), o)
	assert.Equal(t, fmt.Sprintf("%%%d:0", x.ID()), o.String())
	outputs := map[Output]int{o: 1}
	outputs[must1(x.Output(0))]++
	assert.Equal(t, 2, outputs[o])

	var zero Output
	assert.Nil(t, zero.Node())
	_, err := zero.Shape()
	require.ErrorIs(t, err, ErrNodeReleased)
}

func TestOpKind(t *testing.T) {
	k := NewOpKind("hlo", "add")
	assert.Equal(t, "hlo::add", k.String())
	assert.Equal(t, k, must1(ParseOpKind("hlo::add")))
	for _, invalid := range []string{"add", "::add", "hlo::", "a::b::c"} {
		_, err := ParseOpKind(invalid)
		require.Errorf(t, err, "ParseOpKind(%q) should fail", invalid)
	}
	assert.Equal(t, 0, k.Compare(NewOpKind("hlo", "add")))
	assert.Equal(t, -1, k.Compare(NewOpKind("hlo", "mul")))
	assert.Equal(t, 1, k.Compare(NewOpKind("aaa", "zzz")))
}
