package gopjrt

import (
	"fmt"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/pjrt"
	"github.com/gomlx/lazyhlo/lowering"
	"github.com/gomlx/lazyhlo/ops"
	"github.com/gomlx/lazyhlo/types"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/stretchr/testify/require"
)

func TestLoweredGraphs(t *testing.T) {
	for pluginName, client := range pjrtClientsIterator(t) {
		t.Run(pluginName, func(t *testing.T) {
			testLoweredGraphs(t, client)
		})
	}
}

func testLoweredGraphs(t *testing.T, client *pjrt.Client) {
	t.Run("Add", func(t *testing.T) {
		b := ops.New()
		y := must1(b.Parameter(1, shapes.Make(dtypes.Float32, 2, 3)))
		x := must1(b.Parameter(0, shapes.Make(dtypes.Float32, 2, 3)))
		z := must1(b.Add(x.Out(), y.Out()))
		program := must1(lowering.Lower(t.Name(), z.Out()))
		fmt.Printf("%s program:\n%s", t.Name(), program)
		output := compileAndExecute(t, client, program.Text,
			toBuffer(client, []float32{1, 2, 3, 4, 5, 6}, 2, 3),
			toBuffer(client, []float32{10, 20, 30, 40, 50, 60}, 2, 3))
		requireBuffersEqual(t, []FlatAndDims{{[]float32{11, 22, 33, 44, 55, 66}, []int{2, 3}}}, output)
	})

	t.Run("Softmax", func(t *testing.T) {
		b := ops.New()
		x := must1(b.Parameter(0, shapes.Make(dtypes.Float64, 2, 2)))
		maxX := must1(b.ReduceMax(x.Out(), 1))
		maxB := must1(b.BroadcastInDim(maxX.Out(), shapes.Make(dtypes.Float64, 2, 2), []int{0}))
		shifted := must1(b.Sub(x.Out(), maxB.Out()))
		exp := must1(b.Exp(shifted.Out()))
		sum := must1(b.ReduceSum(exp.Out(), 1))
		sumB := must1(b.BroadcastInDim(sum.Out(), shapes.Make(dtypes.Float64, 2, 2), []int{0}))
		softmax := must1(b.Div(exp.Out(), sumB.Out()))
		program := must1(lowering.Lower(t.Name(), softmax.Out()))
		output := compileAndExecute(t, client, program.Text, toBuffer(client, []float64{0, 0, 1, 3}, 2, 2))
		requireBuffersEqual(t, []FlatAndDims{{[]float64{0.5, 0.5, 0.11920292, 0.88079708}, []int{2, 2}}}, output)
	})

	t.Run("Split-Where", func(t *testing.T) {
		b := ops.New()
		x := must1(b.Constant([]int32{1, 8, 3, 4, 5, 2}, 6))
		parts := must1(b.Split(x.Out(), 0, 2))
		outputs := parts.Outputs()
		greater := must1(b.Compare(outputs[0], outputs[1], types.CompareGT))
		maxed := must1(b.Where(greater.Out(), outputs[0], outputs[1]))
		program := must1(lowering.Lower(t.Name(), maxed.Out(), outputs[1]))
		output := compileAndExecute(t, client, program.Text)
		requireBuffersEqual(t, []FlatAndDims{
			{[]int32{4, 8, 3}, []int{3}},
			{[]int32{4, 5, 2}, []int{3}},
		}, output)
	})

	t.Run("Cache", func(t *testing.T) {
		cache := lowering.NewCache()
		b := ops.New().WithSizesInHash(false)
		for _, dim := range []int{2, 3, 2} {
			x := must1(b.Parameter(0, shapes.Make(dtypes.Int64, dim)))
			sum := must1(b.ReduceSum(x.Out()))
			program := must1(cache.Lower(t.Name(), sum.Out()))
			flat := make([]int64, dim)
			for i := range flat {
				flat[i] = int64(i + 1)
			}
			output := compileAndExecute(t, client, program.Text, toBuffer(client, flat, dim))
			requireBuffersEqual(t, []FlatAndDims{{[]int64{int64(dim * (dim + 1) / 2)}, nil}}, output)
		}
		require.Equal(t, lowering.CacheStats{Hits: 1, Misses: 2, Entries: 2}, cache.Stats())
	})
}
