package ops

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/internal/optypes"
	"github.com/gomlx/lazyhlo/shapeinference"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types"
	"github.com/gomlx/lazyhlo/types/shapes"
)

// binary creates a node for a standard binary operation: lhs and rhs must have the same shape.
func (b *Builder) binary(op lazyhlo.OpKind, opType optypes.OpType,
	emit func(lhs, rhs *stablehlo.Value) (*stablehlo.Value, error), lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(lhs, rhs)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.BinaryOp(opType, operands[0], operands[1])
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return emit(operands[0], operands[1])
	})
	return b.deferred(op, []lazyhlo.Output{lhs, rhs}, shapeFn, lowerer)
}

// Add returns lhs + rhs.
func (b *Builder) Add(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindAdd, optypes.Add, stablehlo.Add, lhs, rhs)
}

// Sub returns lhs - rhs.
func (b *Builder) Sub(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindSub, optypes.Subtract, stablehlo.Subtract, lhs, rhs)
}

// Mul returns lhs * rhs, element-wise.
func (b *Builder) Mul(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindMul, optypes.Multiply, stablehlo.Multiply, lhs, rhs)
}

// Div returns lhs / rhs, element-wise.
func (b *Builder) Div(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindDiv, optypes.Divide, stablehlo.Divide, lhs, rhs)
}

// Max returns the element-wise maximum of lhs and rhs.
func (b *Builder) Max(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindMax, optypes.Maximum, stablehlo.Maximum, lhs, rhs)
}

// Min returns the element-wise minimum of lhs and rhs.
func (b *Builder) Min(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindMin, optypes.Minimum, stablehlo.Minimum, lhs, rhs)
}

// Pow returns lhs raised to the power rhs.
func (b *Builder) Pow(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindPow, optypes.Power, stablehlo.Power, lhs, rhs)
}

// Rem returns the remainder of lhs / rhs. The sign of the result follows lhs.
func (b *Builder) Rem(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindRem, optypes.Remainder, stablehlo.Remainder, lhs, rhs)
}

// And returns the logical (for booleans) or bitwise (for integers) and of lhs and rhs.
func (b *Builder) And(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindAnd, optypes.And, stablehlo.And, lhs, rhs)
}

// Or returns the logical (for booleans) or bitwise (for integers) or of lhs and rhs.
func (b *Builder) Or(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindOr, optypes.Or, stablehlo.Or, lhs, rhs)
}

// Xor returns the logical (for booleans) or bitwise (for integers) exclusive or of lhs and rhs.
func (b *Builder) Xor(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindXor, optypes.Xor, stablehlo.Xor, lhs, rhs)
}

// Atan2 returns the arc tangent of lhs/rhs, using the signs of both to pick the quadrant.
func (b *Builder) Atan2(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindAtan2, optypes.Atan2, stablehlo.Atan2, lhs, rhs)
}

// ShiftLeft shifts the bits of the integer lhs by rhs positions to the left.
func (b *Builder) ShiftLeft(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindShiftLeft, optypes.ShiftLeft, stablehlo.ShiftLeft, lhs, rhs)
}

// ShiftRightArithmetic shifts the bits of the integer lhs by rhs positions to the right, keeping the sign bit.
func (b *Builder) ShiftRightArithmetic(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindShiftRightArithmetic, optypes.ShiftRightArithmetic, stablehlo.ShiftRightArithmetic, lhs, rhs)
}

// ShiftRightLogical shifts the bits of the integer lhs by rhs positions to the right, filling with zeros.
func (b *Builder) ShiftRightLogical(lhs, rhs lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.binary(KindShiftRightLogical, optypes.ShiftRightLogical, stablehlo.ShiftRightLogical, lhs, rhs)
}

// unary creates a node for a standard unary operation: the output has the shape of the operand.
func (b *Builder) unary(op lazyhlo.OpKind, opType optypes.OpType,
	emit func(x *stablehlo.Value) (*stablehlo.Value, error), x lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.UnaryOp(opType, operand)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return emit(operands[0])
	})
	return b.deferred(op, []lazyhlo.Output{x}, shapeFn, lowerer)
}

// Neg returns -x.
func (b *Builder) Neg(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindNeg, optypes.Negate, stablehlo.Negate, x)
}

// Abs returns |x|.
func (b *Builder) Abs(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindAbs, optypes.Abs, stablehlo.Abs, x)
}

// Exp returns e^x.
func (b *Builder) Exp(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindExp, optypes.Exponential, stablehlo.Exponential, x)
}

// Log returns the natural logarithm of x.
func (b *Builder) Log(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindLog, optypes.Log, stablehlo.Log, x)
}

// Sqrt returns the square root of x.
func (b *Builder) Sqrt(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindSqrt, optypes.Sqrt, stablehlo.Sqrt, x)
}

// Rsqrt returns 1/sqrt(x).
func (b *Builder) Rsqrt(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindRsqrt, optypes.Rsqrt, stablehlo.Rsqrt, x)
}

// Tanh returns the hyperbolic tangent of x.
func (b *Builder) Tanh(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindTanh, optypes.Tanh, stablehlo.Tanh, x)
}

// Logistic returns 1/(1+exp(-x)), also known as sigmoid.
func (b *Builder) Logistic(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindLogistic, optypes.Logistic, stablehlo.Logistic, x)
}

// Sin returns the sine of x.
func (b *Builder) Sin(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindSin, optypes.Sine, stablehlo.Sine, x)
}

// Cos returns the cosine of x.
func (b *Builder) Cos(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindCos, optypes.Cosine, stablehlo.Cosine, x)
}

// Floor rounds x down.
func (b *Builder) Floor(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindFloor, optypes.Floor, stablehlo.Floor, x)
}

// Ceil rounds x up.
func (b *Builder) Ceil(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindCeil, optypes.Ceil, stablehlo.Ceil, x)
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func (b *Builder) Sign(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindSign, optypes.Sign, stablehlo.Sign, x)
}

// Not returns the logical (for booleans) or bitwise (for integers) negation of x.
func (b *Builder) Not(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindNot, optypes.Not, stablehlo.Not, x)
}

// Popcnt returns the number of bits set in each element of the integer x.
func (b *Builder) Popcnt(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindPopcnt, optypes.Popcnt, stablehlo.Popcnt, x)
}

// Clz returns the number of leading zero bits in each element of the integer x.
func (b *Builder) Clz(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindClz, optypes.CountLeadingZeros, stablehlo.CountLeadingZeros, x)
}

// Expm1 returns e^x - 1, accurate for x close to 0.
func (b *Builder) Expm1(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindExpm1, optypes.ExponentialMinusOne, stablehlo.ExponentialMinusOne, x)
}

// Log1p returns log(1 + x), accurate for x close to 0.
func (b *Builder) Log1p(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindLog1p, optypes.LogPlusOne, stablehlo.LogPlusOne, x)
}

// Round rounds x to the nearest integer, with ties to even.
func (b *Builder) Round(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindRound, optypes.RoundNearestEven, stablehlo.RoundNearestEven, x)
}

// RoundHalfAwayZero rounds x to the nearest integer, with ties away from zero.
func (b *Builder) RoundHalfAwayZero(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindRoundHalfAwayZero, optypes.RoundNearestAfz, stablehlo.RoundNearestAfz, x)
}

// Cbrt returns the cubic root of x.
func (b *Builder) Cbrt(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindCbrt, optypes.Cbrt, stablehlo.Cbrt, x)
}

// Erf returns the error function of x.
func (b *Builder) Erf(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindErf, optypes.Erf, stablehlo.Erf, x)
}

// Tan returns the tangent of x.
func (b *Builder) Tan(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.unary(KindTan, optypes.Tan, stablehlo.Tan, x)
}

// IsFinite returns a boolean node, true where x is neither infinite nor NaN.
func (b *Builder) IsFinite(x lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.IsFinite(operand)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.IsFinite(operands[0])
	})
	return b.deferred(KindIsFinite, []lazyhlo.Output{x}, shapeFn, lowerer)
}

// Complex builds a complex node from its real and imaginary parts, which must be Float32 or Float64.
func (b *Builder) Complex(real, imag lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(real, imag)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Complex(operands[0], operands[1])
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Complex(operands[0], operands[1])
	})
	return b.deferred(KindComplex, []lazyhlo.Output{real, imag}, shapeFn, lowerer)
}

// Real returns the real part of the complex x.
func (b *Builder) Real(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.complexPart(KindReal, stablehlo.Real, x)
}

// Imag returns the imaginary part of the complex x.
func (b *Builder) Imag(x lazyhlo.Output) (*lazyhlo.Node, error) {
	return b.complexPart(KindImag, stablehlo.Imag, x)
}

func (b *Builder) complexPart(op lazyhlo.OpKind, emit func(x *stablehlo.Value) (*stablehlo.Value, error),
	x lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.RealOrImag(operand)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return emit(operands[0])
	})
	return b.deferred(op, []lazyhlo.Output{x}, shapeFn, lowerer)
}

// compareType returns the comparison type used for the dtype.
func compareType(dtype dtypes.DType) types.ComparisonType {
	switch {
	case dtype.IsFloat() || dtype.IsComplex():
		return types.CompareFloat
	case dtype == dtypes.Bool || dtype.IsUnsigned():
		return types.CompareUnsigned
	default:
		return types.CompareSigned
	}
}

// Compare returns the boolean result of comparing lhs and rhs element-wise with the given direction.
func (b *Builder) Compare(lhs, rhs lazyhlo.Output, direction types.ComparisonDirection) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(lhs, rhs)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Compare(operands[0], operands[1], direction, compareType(operands[0].DType))
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Compare(operands[0], operands[1], direction, compareType(operands[0].Shape().DType))
	})
	return b.deferred(KindCompare, []lazyhlo.Output{lhs, rhs}, shapeFn, lowerer, direction)
}

// Where returns onTrue where pred is true and onFalse otherwise. The pred can be a scalar or have the
// same dimensions as onTrue and onFalse.
func (b *Builder) Where(pred, onTrue, onFalse lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(pred, onTrue, onFalse)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Select(operands[0], operands[1], operands[2])
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Select(operands[0], operands[1], operands[2])
	})
	return b.deferred(KindWhere, []lazyhlo.Output{pred, onTrue, onFalse}, shapeFn, lowerer)
}

// Clamp returns x limited to the range [min, max]. The min and max can be scalars.
func (b *Builder) Clamp(min, x, max lazyhlo.Output) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operands, err := operandShapes(min, x, max)
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.Clamp(operands[0], operands[1], operands[2])
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Clamp(operands[0], operands[1], operands[2])
	})
	return b.deferred(KindClamp, []lazyhlo.Output{min, x, max}, shapeFn, lowerer)
}

// Convert returns x converted to dtype.
func (b *Builder) Convert(x lazyhlo.Output, dtype dtypes.DType) (*lazyhlo.Node, error) {
	shapeFn := func() (shapes.Shape, error) {
		operand, err := x.Shape()
		if err != nil {
			return shapes.Invalid(), err
		}
		return shapeinference.ConvertDType(operand, dtype)
	}
	lowerer := lowerWith(func(_ *lazyhlo.Node, _ *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error) {
		return stablehlo.Convert(operands[0], dtype)
	})
	return b.deferred(KindConvert, []lazyhlo.Output{x}, shapeFn, lowerer, dtype)
}
