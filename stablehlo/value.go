package stablehlo

import (
	"fmt"
	"io"

	"github.com/gomlx/lazyhlo/types/shapes"
)

// Value represents a value in a StableHLO program, like `%0` or `%arg0`.
// It has a name, shape and the function that owns it.
type Value struct {
	fn    *Function
	name  string
	shape shapes.Shape
}

// Shape returns the shape of the value.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// Function returns the function that owns the value.
func (v *Value) Function() *Function {
	return v.fn
}

// Write writes the value in StableHLO text format to the given writer.
func (v *Value) Write(w io.Writer, indentation string) error {
	_ = indentation
	_, err := fmt.Fprintf(w, "%%%s", v.name)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return "%" + v.name
}
