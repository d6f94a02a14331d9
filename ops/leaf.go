package ops

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// parameterLowerer lowers a parameter as an input of the lowered function.
type parameterLowerer struct {
	index int
}

// ParameterIndex returns the position of the parameter in the lowered function inputs.
func (p parameterLowerer) ParameterIndex() int {
	return p.index
}

// Lower implements lazyhlo.Lowerer.
func (p parameterLowerer) Lower(node *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
	shape, err := node.Shape(0)
	if err != nil {
		return nil, err
	}
	v, err := ctx.Function().NamedInput(fmt.Sprintf("p%d", p.index), shape)
	if err != nil {
		return nil, err
	}
	return []*stablehlo.Value{v}, nil
}

// Parameter creates an input of the computation, given at execution time. The index is the position of the
// parameter in the lowered program inputs.
func (b *Builder) Parameter(index int, shape shapes.Shape) (*lazyhlo.Node, error) {
	if index < 0 {
		return nil, errors.Errorf("Parameter index must be >= 0, got %d", index)
	}
	if !shape.Ok() || shape.IsTuple() {
		return nil, errors.Errorf("Parameter #%d requires a valid non-tuple shape, got %s", index, shape)
	}
	lowerer := parameterLowerer{index: index}
	return lazyhlo.NewLeafNode(KindParameter, shape, b.options(lowerer, index)...)
}

// Constant creates a constant from a flat slice of values and the dimensions of its shape.
// The data is copied.
func (b *Builder) Constant(flat any, dimensions ...int) (*lazyhlo.Node, error) {
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("Constant requires a flat slice of values, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("Constant: unsupported flat values type %T", flat)
	}
	shape, err := shapes.MakeOrError(dtype, dimensions...)
	if err != nil {
		return nil, err
	}
	if shape.Size() != flatV.Len() {
		return nil, errors.Errorf("Constant: flat values size %d doesn't match shape %s", flatV.Len(), shape)
	}
	dimensions = slices.Clone(dimensions)
	copied := reflect.MakeSlice(flatV.Type(), flatV.Len(), flatV.Len())
	reflect.Copy(copied, flatV)
	data := copied.Interface()
	lowerer := lazyhlo.LowererFunc(func(_ *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
		v, err := ctx.Function().ConstantFromFlatAndDimensions(data, dimensions...)
		if err != nil {
			return nil, err
		}
		return []*stablehlo.Value{v}, nil
	})
	return lazyhlo.NewLeafNode(KindConstant, shape, b.options(lowerer, dimensions, data)...)
}

// Scalar creates a scalar constant. The dtype is inferred from the Go type of the value.
func (b *Builder) Scalar(value any) (*lazyhlo.Node, error) {
	dtype := dtypes.FromAny(value)
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("Scalar: unsupported value type %T", value)
	}
	lowerer := lazyhlo.LowererFunc(func(_ *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
		v, err := ctx.Function().ConstantFromScalar(value)
		if err != nil {
			return nil, err
		}
		return []*stablehlo.Value{v}, nil
	})
	return lazyhlo.NewLeafNode(KindConstant, shapes.Make(dtype), b.options(lowerer, dtype, value)...)
}
