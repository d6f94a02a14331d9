package stablehlo

import (
	"fmt"
	"io"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/internal/optypes"
	"github.com/gomlx/lazyhlo/internal/utils"
	"github.com/gomlx/lazyhlo/types/shapes"
)

// Statement represents a single operation line in StableHLO.
type Statement struct {
	// Function that owns the statement.
	Function *Function

	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation. They are written sorted by name.
	Attributes map[string]any

	// FunctionParameters are closures used as regions of the operation (e.g.: the reduction function of a Reduce).
	FunctionParameters []*Function

	// Outputs of the operation. It may be nil for operations like func.return.
	Outputs []*Value
}

// Write writes a string representation of the statement to the given writer.
func (s *Statement) Write(writer io.Writer, indentation string) error {
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

	// Output values are written first:
	w("%s", indentation)
	if len(s.Outputs) > 0 {
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			we(output, indentation)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%q(", s.OpType.ToStableHLO())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input, indentation)
	}
	w(")")

	// Write regions:
	if len(s.FunctionParameters) > 0 {
		w(" (")
		for i, region := range s.FunctionParameters {
			if i > 0 {
				w(", ")
			}
			if err == nil {
				err = region.writeRegion(writer, indentation)
			}
		}
		w(")")
	}

	// Write attributes:
	if len(s.Attributes) > 0 {
		w(" {")
		for i, key := range utils.SortedKeys(s.Attributes) {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, literalToStableHLO(s.Attributes[key]))
		}
		w("}")
	}

	// Write signature:
	w(" : (")
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s", input.shape.ToStableHLO())
	}
	w(") -> ")
	if len(s.Outputs) == 0 {
		w("()")
	} else {
		// There are outputs: we use "(" and ")" only if there are more than one.
		if len(s.Outputs) > 1 {
			w("(")
		}
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output.shape.ToStableHLO())
		}
		if len(s.Outputs) > 1 {
			w(")")
		}
	}
	return err
}

type hasToStableHLO interface {
	ToStableHLO() string
}

// literalToStableHLO converts a literal value, usually used in attributes, to its StableHLO string representation.
func literalToStableHLO(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float32, float64:
		dtype := dtypes.FromAny(v)
		return fmt.Sprintf("%s : %s", formatElement(v), utils.DTypeToStableHLO(dtype))
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		dtype := dtypes.FromAny(v)
		return fmt.Sprintf("%d : %s", v, utils.DTypeToStableHLO(dtype))
	case bool:
		if v {
			return "true"
		}
		return "false"

	case hasToStableHLO:
		// For types that implement their own conversion to stablehlo, use that.
		return v.ToStableHLO()

	default:
		return fmt.Sprintf("Unknown literal type: %T %#v", v, v)
	}
}

// literalStr is a raw StableHLO attribute value, written as is.
type literalStr string

// ToStableHLO implements hasToStableHLO.
func (s literalStr) ToStableHLO() string {
	return string(s)
}

func literalStrF(format string, args ...any) literalStr {
	return literalStr(fmt.Sprintf(format, args...))
}

// intArray is rendered as a StableHLO `array<i64: ...>` attribute.
type intArray []int

// ToStableHLO implements hasToStableHLO.
func (a intArray) ToStableHLO() string {
	if len(a) == 0 {
		return "array<i64>"
	}
	return "array<i64: " + joinInts(a) + ">"
}

// joinInts renders ints separated by ", ".
func joinInts(values []int) string {
	var s string
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", v)
	}
	return s
}

// valuesToShapes returns the shapes of the given values.
func valuesToShapes(values []*Value) []shapes.Shape {
	s := make([]shapes.Shape, len(values))
	for i, v := range values {
		s[i] = v.shape
	}
	return s
}
