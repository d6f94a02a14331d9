package stablehlo

import (
	"fmt"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/types"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestBuilder(t *testing.T) {
	t.Run("no inputs", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		c1 := must(fn.ConstantFromScalar(1.0))
		c2 := must(fn.ConstantFromScalar(2.0))
		sum := must(Add(c1, c2))
		require.NoError(t, fn.Return(sum))
		program := string(must(b.Build()))
		fmt.Printf("%s program:\n%s", t.Name(), program)
		assert.Contains(t, program, "module @TestBuilder_no_inputs {\n")
		assert.Contains(t, program,
			`  func.func @main() -> tensor<f64> {
    %0 = "stablehlo.constant"() {value = dense<1.0> : tensor<f64>} : () -> tensor<f64>
    %1 = "stablehlo.constant"() {value = dense<2.0> : tensor<f64>} : () -> tensor<f64>
    %2 = "stablehlo.add"(%0, %1) : (tensor<f64>, tensor<f64>) -> tensor<f64>
    "func.return"(%2) : (tensor<f64>) -> ()
  }`)
	})

	t.Run("with inputs", func(t *testing.T) {
		b := New(t.Name())
		shape := shapes.Make(dtypes.Float64)
		fn := b.Main()
		lhs := must(fn.NamedInput("lhs", shape))
		rhs := must(fn.NamedInput("rhs", shape))
		sum := must(Add(lhs, rhs))
		require.NoError(t, fn.Return(sum))
		program := string(must(b.Build()))
		fmt.Printf("%s program:\n%s", t.Name(), program)
		assert.Contains(t, program,
			`  func.func @main(%lhs: tensor<f64>, %rhs: tensor<f64>) -> tensor<f64> {
    %0 = "stablehlo.add"(%lhs, %rhs) : (tensor<f64>, tensor<f64>) -> tensor<f64>
    "func.return"(%0) : (tensor<f64>) -> ()
  }`)
	})

	t.Run("multiple outputs", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		x := must(fn.Input(shapes.Make(dtypes.Float32, 2)))
		neg := must(Negate(x))
		require.NoError(t, fn.Return(x, neg))
		program := string(must(b.Build()))
		assert.Contains(t, program,
			`  func.func @main(%arg0: tensor<2xf32>) -> (tensor<2xf32>, tensor<2xf32>) {
    %0 = "stablehlo.negate"(%arg0) : (tensor<2xf32>) -> tensor<2xf32>
    "func.return"(%arg0, %0) : (tensor<2xf32>, tensor<2xf32>) -> ()
  }`)
	})
}

func TestConstants(t *testing.T) {
	b := New(t.Name())
	fn := b.Main()
	c := must(fn.ConstantFromFlatAndDimensions([]float32{1, 2.5, 3, 4, 5, 6}, 2, 3))
	assert.Equal(t, "(Float32)[2 3]", c.Shape().String())
	i := must(fn.ConstantFromFlatAndDimensions([]int32{7}))
	assert.True(t, i.Shape().IsScalar())
	require.NoError(t, fn.Return(c, i))
	program := string(must(b.Build()))
	assert.Contains(t, program,
		`%0 = "stablehlo.constant"() {value = dense<[[1.0, 2.5, 3.0], [4.0, 5.0, 6.0]]> : tensor<2x3xf32>} : () -> tensor<2x3xf32>`)
	assert.Contains(t, program,
		`%1 = "stablehlo.constant"() {value = dense<7> : tensor<i32>} : () -> tensor<i32>`)

	_, err := fn.ConstantFromFlatAndDimensions([]float32{1, 2, 3}, 2, 2)
	require.Error(t, err)
	_, err = fn.ConstantFromScalar(struct{}{})
	require.Error(t, err)
}

func TestFormatElement(t *testing.T) {
	assert.Equal(t, "1.0", formatElement(float32(1)))
	assert.Equal(t, "0.5", formatElement(0.5))
	assert.Equal(t, "1.0e+21", formatElement(1e21))
	assert.Equal(t, "-3", formatElement(int64(-3)))
	assert.Equal(t, "true", formatElement(true))
	assert.Equal(t, "(1.0, -2.0)", formatElement(complex64(complex(1, -2))))
}

func TestOps(t *testing.T) {
	t.Run("Compare", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		x := must(fn.NamedInput("x", shapes.Make(dtypes.Float32, 3)))
		y := must(fn.NamedInput("y", shapes.Make(dtypes.Float32, 3)))
		cmp := must(Compare(x, y, types.CompareLT, types.CompareFloat))
		assert.Equal(t, dtypes.Bool, cmp.Shape().DType)
		require.NoError(t, fn.Return(cmp))
		program := string(must(b.Build()))
		assert.Contains(t, program,
			`%0 = "stablehlo.compare"(%x, %y) {compare_type = #stablehlo<comparison_type FLOAT>, `+
				`comparison_direction = #stablehlo<comparison_direction LT>} : (tensor<3xf32>, tensor<3xf32>) -> tensor<3xi1>`)
	})

	t.Run("DotGeneral", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		lhs := must(fn.NamedInput("lhs", shapes.Make(dtypes.Float32, 2, 3)))
		rhs := must(fn.NamedInput("rhs", shapes.Make(dtypes.Float32, 3, 4)))
		dot := must(Dot(lhs, rhs))
		assert.Equal(t, []int{2, 4}, dot.Shape().Dimensions)
		require.NoError(t, fn.Return(dot))
		program := string(must(b.Build()))
		assert.Contains(t, program,
			`%0 = "stablehlo.dot_general"(%lhs, %rhs) {dot_dimension_numbers = #stablehlo.dot<lhs_contracting_dimensions = [1], rhs_contracting_dimensions = [0]>} : (tensor<2x3xf32>, tensor<3x4xf32>) -> tensor<2x4xf32>`)
	})

	t.Run("ShapeOps", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		x := must(fn.NamedInput("x", shapes.Make(dtypes.Float32, 2, 3)))
		tr := must(Transpose(x, 1, 0))
		assert.Equal(t, []int{3, 2}, tr.Shape().Dimensions)
		r := must(Reshape(tr, shapes.Make(dtypes.Float32, 6)))
		s := must(Slice(r, []int{1}, []int{5}, nil))
		assert.Equal(t, []int{4}, s.Shape().Dimensions)
		bc := must(BroadcastInDim(s, shapes.Make(dtypes.Float32, 2, 4), []int{1}))
		cc := must(Concatenate(0, bc, bc))
		assert.Equal(t, []int{4, 4}, cc.Shape().Dimensions)
		require.NoError(t, fn.Return(cc))
		program := string(must(b.Build()))
		assert.Contains(t, program, `{permutation = array<i64: 1, 0>}`)
		assert.Contains(t, program, `{limit_indices = array<i64: 5>, start_indices = array<i64: 1>, strides = array<i64: 1>}`)
		assert.Contains(t, program, `{broadcast_dimensions = array<i64: 1>}`)
		assert.Contains(t, program, `{dimension = 0 : i64}`)

		_, err := Reshape(x, shapes.Make(dtypes.Float32, 7))
		require.Error(t, err)
	})

	t.Run("Iota", func(t *testing.T) {
		b := New(t.Name())
		fn := b.Main()
		iota := must(fn.Iota(shapes.Make(dtypes.Int32, 2, 2), -1))
		require.NoError(t, fn.Return(iota))
		program := string(must(b.Build()))
		assert.Contains(t, program, `%0 = "stablehlo.iota"() {iota_dimension = 1 : i64} : () -> tensor<2x2xi32>`)
	})
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("no main", func(t *testing.T) {
		b := New("test_program")
		fn := b.NewFunction("not_main")
		c1 := must(fn.ConstantFromScalar(1.0))
		require.NoError(t, fn.Return(c1))
		_, err := b.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "program must have a main function")
	})

	t.Run("no return", func(t *testing.T) {
		b := New("test_program")
		fn := b.Main()
		_ = must(fn.ConstantFromScalar(1.0))
		_, err := b.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no return statement")
	})

	t.Run("after return", func(t *testing.T) {
		b := New("test_program")
		fn := b.Main()
		c1 := must(fn.ConstantFromScalar(1.0))
		require.NoError(t, fn.Return(c1))
		require.Error(t, fn.Return(c1))
		_, err := Negate(c1)
		require.Error(t, err)
	})

	t.Run("values from another function", func(t *testing.T) {
		b := New("test_program")
		fn1 := b.Main()
		fn2 := b.NewFunction("other")
		x := must(fn1.ConstantFromScalar(1.0))
		y := must(fn2.ConstantFromScalar(2.0))
		_, err := Add(x, y)
		require.Error(t, err)
		require.Error(t, fn2.Return(x))
	})

	t.Run("shape mismatch", func(t *testing.T) {
		b := New("test_program")
		fn := b.Main()
		x := must(fn.Input(shapes.Make(dtypes.Float32, 2)))
		y := must(fn.Input(shapes.Make(dtypes.Float32, 3)))
		_, err := Add(x, y)
		require.Error(t, err)
	})
}
