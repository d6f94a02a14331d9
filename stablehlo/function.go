package stablehlo

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/internal/optypes"
	"github.com/gomlx/lazyhlo/shapeinference"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// Function represents a `func.func` in StableHLO.
type Function struct {
	Builder *Builder

	// Name of the function. It should not include the "@" prefix.
	Name string

	// Inputs to the function.
	Inputs []*Value

	// Outputs types of the function.
	Outputs []shapes.Shape

	// Statements in the function body.
	Statements []*Statement

	// values holds all the values (e.g., %0, %1, %arg0) created in the function's scope.
	values []*Value

	// Parent of a closure function. It is only set if the function is a closure, and it's the function that created it.
	Parent *Function

	// nextArgID is the next ID to be assigned to new input arguments.
	nextArgID int

	// nextTmpID is the next ID to be assigned to new intermediary values.
	nextTmpID int

	// nextClosureID is the next ID to be assigned to new closures.
	nextClosureID int

	// Returned indicates if the function has a return statement, so it can no longer be changed.
	Returned bool
}

// findRootFn returns the root function of a function tree.
func (fn *Function) findRootFn() *Function {
	rootFn := fn
	for rootFn.Parent != nil {
		rootFn = rootFn.Parent
	}
	return rootFn
}

// newValue creates a new value with the given shape and assigns it to the next available id.
// Ids are shared with closures, so values are unique across the whole function tree.
func (fn *Function) newValue(shape shapes.Shape) (v *Value) {
	rootFn := fn.findRootFn()
	v = &Value{
		fn:    fn,
		name:  strconv.Itoa(rootFn.nextTmpID),
		shape: shape,
	}
	rootFn.nextTmpID++
	fn.values = append(fn.values, v)
	return v
}

// Input creates a new input parameter for a function.
//
// If creating multiple inputs (one at a time), the order matters, since during execution of a compiled function,
// the input parameters must be given in the same order they were created.
//
// It picks a default unique name for the input parameter, you can also
// provide a name with NamedInput.
func (fn *Function) Input(shape shapes.Shape) (*Value, error) {
	rootFn := fn.findRootFn()
	value, err := fn.NamedInput(fmt.Sprintf("arg%d", rootFn.nextArgID), shape)
	if err != nil {
		return nil, err
	}
	rootFn.nextArgID++
	return value, nil
}

// NamedInput creates a new input parameter for a function with the given name. It must be a unique input name.
//
// The name is passed through NormalizeIdentifier, which converts any non-digit or ASCII letter to an underscore.
// Names with the format "%d" and "arg%d" are reserved for the default input parameters.
func (fn *Function) NamedInput(name string, shape shapes.Shape) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	if !shape.Ok() {
		return nil, errors.Errorf("invalid shape for input %q of function %q", name, fn.Name)
	}
	name = NormalizeIdentifier(name)
	for _, input := range fn.Inputs {
		if input.name == name {
			return nil, errors.Errorf("duplicate input name %q in function %q", name, fn.Name)
		}
	}
	value := &Value{
		fn:    fn,
		name:  name,
		shape: shape,
	}
	fn.Inputs = append(fn.Inputs, value)
	return value, nil
}

// ConstantFromScalar creates a new constant statement and returns the resulting value.
func (fn *Function) ConstantFromScalar(value any) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	dtype := dtypes.FromAny(value)
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported constant value type %T", value)
	}
	t, err := newTensorLiteralFromFlatAndDimensions(value)
	if err != nil {
		return nil, err
	}
	c := &Statement{
		Function: fn,
		OpType:   optypes.Constant,
		Attributes: map[string]any{
			"value": t,
		},
		Outputs: []*Value{fn.newValue(shapes.Make(dtype))},
	}
	fn.Statements = append(fn.Statements, c)
	return c.Outputs[0], nil
}

// ConstantFromFlatAndDimensions creates a new constant statement from a flat slice with the raw values and the dimensions of the shape.
func (fn *Function) ConstantFromFlatAndDimensions(flat any, dimensions ...int) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("constant flat values must be a slice, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported constant flat values type %T -- expected a slice of a basic data type", flat)
	}
	shape, err := shapes.MakeOrError(dtype, dimensions...)
	if err != nil {
		return nil, err
	}
	if shape.Size() != flatV.Len() {
		return nil, errors.Errorf("flat values size %d doesn't match shape size %d (%s)", flatV.Len(), shape.Size(), shape)
	}
	var t *tensorLiteral
	if shape.IsScalar() {
		t, err = newTensorLiteralFromFlatAndDimensions(flatV.Index(0).Interface())
	} else {
		t, err = newTensorLiteralFromFlatAndDimensions(flat, dimensions...)
	}
	if err != nil {
		return nil, err
	}
	c := &Statement{
		Function:   fn,
		OpType:     optypes.Constant,
		Attributes: map[string]any{"value": t},
		Outputs:    []*Value{fn.newValue(shape)},
	}
	fn.Statements = append(fn.Statements, c)
	return c.Outputs[0], nil
}

// Return adds a return statement to the function with the given return values.
// There must be at least one return value.
//
// There can be only one return statement from a Function, and it must be the last
// operation of a function.
func (fn *Function) Return(firstValue *Value, otherValues ...*Value) error {
	if fn.Returned {
		return errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	allValues := make([]*Value, 1, len(otherValues)+1)
	allValues[0] = firstValue
	allValues = append(allValues, otherValues...)
	outputShapes := make([]shapes.Shape, len(allValues))
	for i, value := range allValues {
		if value == nil || value.fn != fn {
			return errors.Errorf("Function.Return for %q given values that are not owned by the function", fn.Name)
		}
		outputShapes[i] = value.shape
	}
	fn.Returned = true
	fn.Outputs = outputShapes

	op := optypes.FuncReturn
	if fn.Parent != nil {
		op = optypes.Return
	}
	stmt := &Statement{
		Function: fn,
		OpType:   op,
		Inputs:   allValues,
	}
	fn.Statements = append(fn.Statements, stmt)
	return nil
}

// Iota creates a constant of the given shape with increasing numbers (starting from 0)
// on the given axis. So Iota([2,2], 1) returns [[0 1][0 1]], while Iota([2,2], 0)
// returns [[0 0][1 1]].
func (fn *Function) Iota(shape shapes.Shape, axis int) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	adjustedAxis, err := shapeinference.AdjustAxisToRank(axis, shape.Rank())
	if err != nil {
		return nil, errors.WithMessagef(err, "Iota axis is invalid for shape %s", shape)
	}
	stmt := fn.addOp(optypes.Iota, shape)
	stmt.Attributes = map[string]any{"iota_dimension": int64(adjustedAxis)}
	return stmt.Outputs[0], nil
}

// Closure creates an unnamed closure function that can be used as an argument to operations like Reduce.
//
// After created, the Closure should not be changed. But it can be used multiple times within the same parent function.
func (fn *Function) Closure() *Function {
	rootFn := fn.findRootFn()

	// The name is only used for debugging: the closure is written inline as a region.
	name := fmt.Sprintf("closure%d", rootFn.nextClosureID)
	rootFn.nextClosureID++
	closureFn := fn.Builder.NewFunction(name)
	closureFn.Parent = fn
	return closureFn
}

// Write the function as StableHLO code, with the given indentation.
func (fn *Function) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}
	if fn.Parent != nil {
		return fn.writeRegion(writer, indentation)
	}
	nextIndent := indentation + IndentationStep

	w("%sfunc.func @%s(", indentation, fn.Name)
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input, nextIndent)
		w(": %s", input.shape.ToStableHLO())
	}
	w(") -> ")
	if len(fn.Outputs) != 1 {
		w("(")
	}
	for i, output := range fn.Outputs {
		if i > 0 {
			w(", ")
		}
		w("%s", output.ToStableHLO())
	}
	if len(fn.Outputs) != 1 {
		w(")")
	}
	w(" {\n")
	for _, stmt := range fn.Statements {
		we(stmt, nextIndent)
		w("\n")
	}
	w("%s}", indentation)
	return err
}

// writeRegion writes a closure as an inline region of the statement that uses it, in the form:
//
//	{
//	  ^bb0(%arg0: tensor<f32>, %arg1: tensor<f32>):
//	    ...
//	}
func (fn *Function) writeRegion(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	blockIndent := indentation + IndentationStep
	stmtIndent := blockIndent + IndentationStep
	w("{\n%s^bb0(", blockIndent)
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s: %s", input, input.shape.ToStableHLO())
	}
	w("):\n")
	for _, stmt := range fn.Statements {
		if err == nil {
			err = stmt.Write(writer, stmtIndent)
		}
		w("\n")
	}
	w("%s}", indentation)
	return err
}
