// Package gopjrt tests the generated StableHLO programs by compiling and executing them with PJRT.
//
// It requires the PJRT plugins given by -plugins to be installed, otherwise the tests are skipped.
package gopjrt

import (
	"flag"
	"fmt"
	"iter"
	"math"
	"strings"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/pjrt"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/stretchr/testify/require"
)

var flagPluginNames = flag.String("plugins", "cpu", "List (|-separated) of PJRT plugin names or full paths. E.g. \"cpu|cuda\"")

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

// withLines prefix each line of text with a "%04d: " of the line number.
func withLines(text []byte) string {
	var sb strings.Builder
	for i, line := range strings.Split(string(text), "\n") {
		fmt.Fprintf(&sb, "%04d: %s\n", i+1, line)
	}
	return sb.String()
}

func getPluginNames() []string {
	var names []string
	for _, name := range strings.Split(*flagPluginNames, "|") {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		panic("no XLA plugin names defined with -plugins")
	}
	return names
}

func pjrtClientsIterator(t *testing.T) iter.Seq2[string, *pjrt.Client] {
	return func(yield func(string, *pjrt.Client) bool) {
		for _, pluginName := range getPluginNames() {
			plugin, err := pjrt.GetPlugin(pluginName)
			if err != nil {
				t.Skipf("PJRT plugin %q not available: %v", pluginName, err)
				return
			}
			client, err := plugin.NewClient(nil)
			require.NoError(t, err, "failed to create client for plugin %q", pluginName)
			done := !yield(pluginName, client)
			require.NoError(t, client.Destroy())
			if done {
				return
			}
		}
	}
}

// compileAndExecute program with PJRT. All inputs are donated.
func compileAndExecute(t *testing.T, client *pjrt.Client, program []byte, inputs ...*pjrt.Buffer) []*pjrt.Buffer {
	loadedExec, err := client.Compile().WithStableHLO(program).Done()
	require.NoErrorf(t, err, "failed to compile program: \n%s", withLines(program))
	defer func() {
		err := loadedExec.Destroy()
		if err != nil {
			t.Errorf("failed to destroy loaded exec: %+v", err)
		}
	}()
	outputBuffers, err := loadedExec.Execute(inputs...).DonateAll().Done()
	require.NoErrorf(t, err, "failed to execute program: \n%s", withLines(program))
	return outputBuffers
}

// toBuffer transfers the flat values with the given dimensions to the device.
func toBuffer(client *pjrt.Client, flat any, dims ...int) *pjrt.Buffer {
	return must1(client.BufferFromHost().FromFlatDataWithDimensions(flat, dims).Done())
}

type FlatAndDims struct {
	Flat any
	Dims []int
}

// requireBuffersEqual checks that the actual buffers contents match the expected flat values.
// It destroys the buffers.
func requireBuffersEqual(t *testing.T, expected []FlatAndDims, got []*pjrt.Buffer) {
	defer func() {
		for _, b := range got {
			err := b.Destroy()
			if err != nil {
				t.Errorf("failed to destroy buffer: %+v", err)
			}
		}
	}()
	require.Len(t, got, len(expected))
	for i, b := range got {
		gotFlat, gotDims, err := b.ToFlatDataAndDimensions()
		require.NoErrorf(t, err, "failed to get buffer contents for output #%d, expected flat value %v", i, expected[i].Flat)
		expectedShape, err := shapes.FromAnyValue(expected[i].Flat)
		require.NoErrorf(t, err, "failed to get shape for output #%d: %v", i, expected[i].Flat)
		dtype := expectedShape.DType
		fmt.Printf("\t - output #%d:\n\t   - Got: dims=%v, flat_values=%v\n", i, gotDims, gotFlat)
		fmt.Printf("\t   - Want(%s): dims=%v, flat_values=%v\n", dtype, expected[i].Dims, expected[i].Flat)
		if len(expected[i].Dims) == 0 {
			require.Emptyf(t, gotDims, "output #%d should be a scalar", i)
		} else {
			require.Equalf(t, expected[i].Dims, gotDims, "output #%d dims don't match", i)
		}
		switch dtype {
		case dtypes.Float64, dtypes.Float32:
			require.InDeltaSlicef(t, expected[i].Flat, gotFlat, 1e-4, "output #%d flat values don't match", i)
		default:
			require.Equalf(t, expected[i].Flat, gotFlat, "output #%d flat values don't match", i)
		}
	}
}

func TestStableHLO(t *testing.T) {
	for pluginName, client := range pjrtClientsIterator(t) {
		t.Run(pluginName, func(t *testing.T) {
			testStableHLO(t, client)
		})
	}
}

func testStableHLO(t *testing.T, client *pjrt.Client) {
	t.Run("Return-multi-output", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		c1 := must1(fn.ConstantFromScalar(1.0))
		c2 := must1(fn.ConstantFromScalar(2.0))
		c3 := must1(fn.ConstantFromScalar(float32(math.Inf(-1))))
		sum := must1(stablehlo.Add(c1, c2))
		must(fn.Return(c1, sum, c3))
		program := must1(b.Build())
		fmt.Printf("%s program:\n%s", t.Name(), program)
		output := compileAndExecute(t, client, program)
		requireBuffersEqual(t, []FlatAndDims{
			{[]float64{1}, nil},
			{[]float64{3}, nil},
			{[]float32{float32(math.Inf(-1))}, nil},
		}, output)
	})

	t.Run("Clamp", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		minV := must1(fn.NamedInput("min", shapes.Make(dtypes.Float32)))
		xV := must1(fn.NamedInput("x", shapes.Make(dtypes.Float32, 3)))
		maxV := must1(fn.NamedInput("max", shapes.Make(dtypes.Float32)))
		must(fn.Return(must1(stablehlo.Clamp(minV, xV, maxV))))
		program := must1(b.Build())
		output := compileAndExecute(t, client, program,
			toBuffer(client, []float32{-1}), toBuffer(client, []float32{0.1, -2.2, 3.3}, 3), toBuffer(client, []float32{1}))
		requireBuffersEqual(t, []FlatAndDims{{[]float32{0.1, -1, 1}, []int{3}}}, output)
	})

	t.Run("Iota", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		must(fn.Return(
			must1(fn.Iota(shapes.Make(dtypes.F32, 2, 2), 0)),
			must1(fn.Iota(shapes.Make(dtypes.F32, 2, 2), 1))))
		program := must1(b.Build())
		output := compileAndExecute(t, client, program)
		requireBuffersEqual(t, []FlatAndDims{
			{[]float32{0, 0, 1, 1}, []int{2, 2}},
			{[]float32{0, 1, 0, 1}, []int{2, 2}},
		}, output)
	})

	t.Run("Compare", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		lhs := must1(fn.ConstantFromFlatAndDimensions([]int32{1, 5, 3}, 3))
		rhs := must1(fn.ConstantFromFlatAndDimensions([]int32{2, 5, 1}, 3))
		must(fn.Return(
			must1(stablehlo.Compare(lhs, rhs, types.CompareGE, types.CompareSigned)),
			must1(stablehlo.Compare(lhs, rhs, types.CompareLT, types.CompareSigned))))
		program := must1(b.Build())
		output := compileAndExecute(t, client, program)
		requireBuffersEqual(t, []FlatAndDims{
			{[]bool{false, true, true}, []int{3}},
			{[]bool{true, false, false}, []int{3}},
		}, output)
	})

	t.Run("DotGeneral", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		lhs := must1(fn.NamedInput("lhs", shapes.Make(dtypes.F32, 2, 3, 4)))
		rhs := must1(fn.NamedInput("rhs", shapes.Make(dtypes.F32, 2, 4, 5)))
		dot := must1(stablehlo.DotGeneral(lhs, []int{2}, []int{0}, rhs, []int{1}, []int{0}).Done())
		must(fn.Return(dot))
		program := must1(b.Build())
		lhsFlat := make([]float32, 2*3*4)
		for i := range lhsFlat {
			lhsFlat[i] = 1
		}
		rhsFlat := make([]float32, 2*4*5)
		for i := range rhsFlat {
			rhsFlat[i] = float32(i % 5)
		}
		output := compileAndExecute(t, client, program, toBuffer(client, lhsFlat, 2, 3, 4), toBuffer(client, rhsFlat, 2, 4, 5))
		want := make([]float32, 2*3*5)
		for i := range want {
			want[i] = float32(4 * (i % 5))
		}
		requireBuffersEqual(t, []FlatAndDims{{want, []int{2, 3, 5}}}, output)
	})

	t.Run("Reduce", func(t *testing.T) {
		b := stablehlo.New(t.Name())
		fn := b.Main()
		x := must1(fn.ConstantFromFlatAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
		zero := must1(fn.ConstantFromScalar(0.0))
		reductionFn := fn.Closure()
		lhs := must1(reductionFn.Input(shapes.Make(dtypes.Float64)))
		rhs := must1(reductionFn.Input(shapes.Make(dtypes.Float64)))
		must(reductionFn.Return(must1(stablehlo.Add(lhs, rhs))))
		must(fn.Return(must1(stablehlo.Reduce(x, zero, reductionFn, 1))))
		program := must1(b.Build())
		output := compileAndExecute(t, client, program)
		requireBuffersEqual(t, []FlatAndDims{{[]float64{6, 15}, []int{2}}}, output)
	})
}
