package stablehlo

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// tensorLiteral is a constant value rendered as a StableHLO `dense<...>` attribute.
type tensorLiteral struct {
	// flat holds the values, as a slice of a supported Go type, or a scalar value.
	flat  reflect.Value
	shape shapes.Shape
}

// newTensorLiteralFromFlatAndDimensions creates a tensorLiteral from a flat slice of values (or a scalar value,
// if no dimensions are given).
func newTensorLiteralFromFlatAndDimensions(flat any, dimensions ...int) (*tensorLiteral, error) {
	flatV := reflect.ValueOf(flat)
	if len(dimensions) == 0 && flatV.Kind() != reflect.Slice {
		dtype := dtypes.FromAny(flat)
		if dtype == dtypes.InvalidDType {
			return nil, errors.Errorf("unsupported constant value type %T", flat)
		}
		sliceV := reflect.MakeSlice(reflect.SliceOf(flatV.Type()), 1, 1)
		sliceV.Index(0).Set(flatV)
		return &tensorLiteral{flat: sliceV, shape: shapes.Make(dtype)}, nil
	}
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("constant with dimensions %v requires a flat slice of values, got %T", dimensions, flat)
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
	return &tensorLiteral{flat: flatV, shape: shape}, nil
}

// ToStableHLO implements hasToStableHLO.
func (t *tensorLiteral) ToStableHLO() string {
	var sb strings.Builder
	sb.WriteString("dense<")
	if t.shape.IsScalar() {
		sb.WriteString(formatElement(t.flat.Index(0).Interface()))
	} else if t.shape.Size() > 0 {
		pos := 0
		t.writeAxis(&sb, 0, &pos)
	}
	sb.WriteString("> : ")
	sb.WriteString(t.shape.ToStableHLO())
	return sb.String()
}

// writeAxis writes the nested list of values of the given axis, recursively.
func (t *tensorLiteral) writeAxis(sb *strings.Builder, axis int, pos *int) {
	sb.WriteString("[")
	for ii := range t.shape.Dimensions[axis] {
		if ii > 0 {
			sb.WriteString(", ")
		}
		if axis == t.shape.Rank()-1 {
			sb.WriteString(formatElement(t.flat.Index(*pos).Interface()))
			*pos++
		} else {
			t.writeAxis(sb, axis+1, pos)
		}
	}
	sb.WriteString("]")
}

// formatElement formats one scalar value in StableHLO literal format.
//
// Floats always carry a decimal point, and non-finite values are written with their hexadecimal bit pattern.
func formatElement(v any) string {
	switch e := v.(type) {
	case float32:
		if math32.IsNaN(e) || math32.IsInf(e, 0) {
			return fmt.Sprintf("0x%08X", math32.Float32bits(e))
		}
		return formatFloat(float64(e), 32)
	case float64:
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Sprintf("0x%016X", math.Float64bits(e))
		}
		return formatFloat(e, 64)
	case float16.Float16:
		if e.IsNaN() || e.IsInf(0) {
			return fmt.Sprintf("0x%04X", e.Bits())
		}
		return formatFloat(float64(e.Float32()), 32)
	case complex64:
		return fmt.Sprintf("(%s, %s)", formatElement(real(e)), formatElement(imag(e)))
	case complex128:
		return fmt.Sprintf("(%s, %s)", formatElement(real(e)), formatElement(imag(e)))
	case bool:
		if e {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%d", v)
	}
}

// formatFloat formats a finite float making sure there is a decimal point, as required by StableHLO.
func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".") {
		return s
	}
	if idx := strings.IndexByte(s, 'e'); idx >= 0 {
		return s[:idx] + ".0" + s[idx:]
	}
	return s + ".0"
}
