// Package optypes defines OpType and lists the supported StableHLO operations.
package optypes

import (
	"fmt"

	"github.com/gomlx/lazyhlo/internal/utils"
)

// OpType is an enum of the StableHLO operations the lowering backend can emit.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn
	Return
	Constant
	Iota

	// Binary element-wise operations.
	Add
	Subtract
	Multiply
	Divide
	Maximum
	Minimum
	Power
	Remainder
	And
	Or
	Xor
	Atan2
	ShiftLeft
	ShiftRightArithmetic
	ShiftRightLogical

	// Unary element-wise operations.
	Abs
	Negate
	Sign
	Not
	Popcnt
	CountLeadingZeros
	Exponential
	ExponentialMinusOne
	Log
	LogPlusOne
	Logistic
	Ceil
	Floor
	RoundNearestEven
	RoundNearestAfz
	Rsqrt
	Sqrt
	Cbrt
	Cosine
	Sine
	Tan
	Tanh
	Erf
	IsFinite
	Real
	Imag

	Compare
	Complex
	Select
	Clamp
	Convert
	Reshape
	Transpose
	BroadcastInDim
	Concatenate
	Slice
	DotGeneral
	Reduce

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

var (
	// stableHLOMappings maps OpType to the corresponding StableHLO name, when the default
	// "snake case" doesn't work.
	stableHLOMappings = map[OpType]string{
		FuncReturn: "func.return",
	}
)

// ToStableHLO returns the StableHLO name of the operation.
func (op OpType) ToStableHLO() string {
	name, ok := stableHLOMappings[op]
	if !ok {
		name = fmt.Sprintf("stablehlo.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}
