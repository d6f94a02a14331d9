package lazyhlo

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOpHash(t *testing.T) {
	op := NewOpKind("hlo", "add")
	s23 := shapes.Make(dtypes.Float32, 2, 3)
	s45 := shapes.Make(dtypes.Float32, 4, 5)

	t.Run("deterministic", func(t *testing.T) {
		for _, bake := range []bool{true, false} {
			assert.Equal(t, GetOpHash(op, s23, 7, bake), GetOpHash(op, s23.Clone(), 7, bake))
		}
	})

	t.Run("seed", func(t *testing.T) {
		assert.NotEqual(t, GetOpHash(op, s23, 7, true), GetOpHash(op, s23, 8, true))
		assert.NotEqual(t, GetOpHash(op, s23, 7, false), GetOpHash(op, s23, 8, false))
	})

	t.Run("bakeInSizes", func(t *testing.T) {
		assert.Equal(t, GetOpHash(op, s23, 7, false), GetOpHash(op, s45, 7, false))
		assert.NotEqual(t, GetOpHash(op, s23, 7, true), GetOpHash(op, s45, 7, true))
	})

	t.Run("dtype, rank and op", func(t *testing.T) {
		for _, bake := range []bool{true, false} {
			h := GetOpHash(op, s23, 7, bake)
			assert.NotEqual(t, h, GetOpHash(op, shapes.Make(dtypes.Float64, 2, 3), 7, bake))
			assert.NotEqual(t, h, GetOpHash(op, shapes.Make(dtypes.Float32, 6), 7, bake))
			assert.NotEqual(t, h, GetOpHash(NewOpKind("hlo", "mul"), s23, 7, bake))
			assert.NotEqual(t, h, GetOpHash(NewOpKind("hl", "oadd"), s23, 7, bake))
		}
	})

	t.Run("tuples", func(t *testing.T) {
		t1 := shapes.MakeTuple(s23, s45)
		t2 := shapes.MakeTuple(s45, s23)
		assert.NotEqual(t, GetOpHash(op, t1, 0, true), GetOpHash(op, t2, 0, true))
		assert.Equal(t, GetOpHash(op, t1, 0, false), GetOpHash(op, t2, 0, false))
	})
}

func TestHashValues(t *testing.T) {
	assert.Equal(t, HashValues(1, []int{1, 2}, "x", 0.5), HashValues(1, []int{1, 2}, "x", 0.5))
	assert.NotEqual(t, HashValues(1, []int{1, 2}), HashValues(1, []int{2, 1}))
	assert.NotEqual(t, HashValues(1, int32(1)), HashValues(1, uint32(1)))
	assert.NotEqual(t, HashValues(1, "ab", "c"), HashValues(1, "a", "bc"))
	assert.NotEqual(t, HashValues(1, dtypes.Float32), HashValues(1, dtypes.Float64))
	assert.NotEqual(t, HashValues(1), HashValues(2))
	assert.NotEqual(t, HashCombine(1, 2), HashCombine(2, 1))
}

// buildAddGraph builds add(x, x) with x a leaf of the given shape.
func buildAddGraph(t *testing.T, shape shapes.Shape, bake bool) (x, y *Node) {
	x = must1(NewLeafNode(opParameter, shape, WithSizesInHash(bake)))
	y = must1(NewDeferredNode(opAdd, []Output{x.Out(), x.Out()}, x.Out().Shape, WithSizesInHash(bake)))
	return
}

func TestNodeHash(t *testing.T) {
	s23 := shapes.Make(dtypes.Float32, 2, 3)
	s45 := shapes.Make(dtypes.Float32, 4, 5)

	_, y1 := buildAddGraph(t, s23, true)
	_, y2 := buildAddGraph(t, s23, true)
	h1 := must1(y1.Hash())
	assert.Equal(t, h1, must1(y1.Hash()))
	assert.Equal(t, h1, must1(y2.Hash()), "structurally identical graphs must hash the same")

	_, y3 := buildAddGraph(t, s45, true)
	assert.NotEqual(t, h1, must1(y3.Hash()))

	_, y4 := buildAddGraph(t, s23, false)
	_, y5 := buildAddGraph(t, s45, false)
	assert.Equal(t, must1(y4.Hash()), must1(y5.Hash()))

	// Different seeds.
	x := must1(NewLeafNode(opParameter, s23))
	c1 := must1(NewLeafNode(opParameter, s23, WithHashSeed(HashValues(DefaultHashSeed, 0))))
	c2 := must1(NewLeafNode(opParameter, s23, WithHashSeed(HashValues(DefaultHashSeed, 1))))
	assert.NotEqual(t, must1(c1.Hash()), must1(c2.Hash()))
	assert.NotEqual(t, must1(x.Hash()), must1(c1.Hash()))

	// Which output of the operand is consumed matters.
	half := shapes.Make(dtypes.Float32, 2)
	split := must1(NewNode(opSplit, []Output{x.Out()}, []shapes.Shape{half, half}, WithNumOutputs(2)))
	neg := NewOpKind("test", "neg")
	n0 := must1(NewNodeWithShapeFn(neg, []Output{must1(split.Output(0))}, must1(split.Output(0)).Shape))
	n1 := must1(NewNodeWithShapeFn(neg, []Output{must1(split.Output(1))}, must1(split.Output(1)).Shape))
	assert.NotEqual(t, must1(n0.Hash()), must1(n1.Hash()))

	// Operand order matters.
	a := must1(NewLeafNode(opParameter, half, WithHashSeed(1)))
	b := must1(NewLeafNode(opParameter, half, WithHashSeed(2)))
	ab := must1(NewNodeWithShapeFn(opAdd, []Output{a.Out(), b.Out()}, a.Out().Shape))
	ba := must1(NewNodeWithShapeFn(opAdd, []Output{b.Out(), a.Out()}, a.Out().Shape))
	assert.NotEqual(t, must1(ab.Hash()), must1(ba.Hash()))
}

func TestNodeHash_Deferred(t *testing.T) {
	_, y := buildAddGraph(t, shapes.Make(dtypes.Float32, 2), true)
	require.False(t, y.IsShapeResolved())
	_, err := y.Hash()
	require.NoError(t, err)
	assert.True(t, y.IsShapeResolved(), "hashing resolves the shape")
}
