/***** File generated by ./internal/cmd/ops_generator. Don't edit it directly. *****/

package stablehlo

import (
	"github.com/gomlx/lazyhlo/internal/optypes"
)

// Add implements the corresponding standard binary operation.
func Add(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Add, lhs, rhs)
}

// Subtract implements the corresponding standard binary operation.
func Subtract(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Subtract, lhs, rhs)
}

// Multiply implements the corresponding standard binary operation.
func Multiply(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Multiply, lhs, rhs)
}

// Divide implements the corresponding standard binary operation.
func Divide(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Divide, lhs, rhs)
}

// Maximum implements the corresponding standard binary operation.
func Maximum(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Maximum, lhs, rhs)
}

// Minimum implements the corresponding standard binary operation.
func Minimum(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Minimum, lhs, rhs)
}

// Power implements the corresponding standard binary operation.
func Power(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Power, lhs, rhs)
}

// Remainder implements the corresponding standard binary operation.
//
// The sign of the result follows the dividend (lhs).
func Remainder(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Remainder, lhs, rhs)
}

// And implements the corresponding standard binary operation.
//
// It is a logical operation for booleans and a bitwise operation for integers.
func And(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.And, lhs, rhs)
}

// Or implements the corresponding standard binary operation.
//
// It is a logical operation for booleans and a bitwise operation for integers.
func Or(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Or, lhs, rhs)
}

// Xor implements the corresponding standard binary operation.
//
// It is a logical operation for booleans and a bitwise operation for integers.
func Xor(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Xor, lhs, rhs)
}

// Atan2 implements the corresponding standard binary operation.
func Atan2(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Atan2, lhs, rhs)
}

// ShiftLeft implements the corresponding standard binary operation.
func ShiftLeft(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.ShiftLeft, lhs, rhs)
}

// ShiftRightArithmetic implements the corresponding standard binary operation.
func ShiftRightArithmetic(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.ShiftRightArithmetic, lhs, rhs)
}

// ShiftRightLogical implements the corresponding standard binary operation.
func ShiftRightLogical(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.ShiftRightLogical, lhs, rhs)
}

// Abs implements the corresponding standard unary operation.
func Abs(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Abs, operand)
}

// Negate implements the corresponding standard unary operation.
func Negate(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Negate, operand)
}

// Sign implements the corresponding standard unary operation.
//
// It returns -1, 0 or 1, and NaN for NaN inputs.
func Sign(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Sign, operand)
}

// Not implements the corresponding standard unary operation.
func Not(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Not, operand)
}

// Popcnt implements the corresponding standard unary operation.
func Popcnt(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Popcnt, operand)
}

// CountLeadingZeros implements the corresponding standard unary operation.
func CountLeadingZeros(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.CountLeadingZeros, operand)
}

// Exponential implements the corresponding standard unary operation.
func Exponential(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Exponential, operand)
}

// ExponentialMinusOne implements the corresponding standard unary operation.
func ExponentialMinusOne(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.ExponentialMinusOne, operand)
}

// Log implements the corresponding standard unary operation.
func Log(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Log, operand)
}

// LogPlusOne implements the corresponding standard unary operation.
func LogPlusOne(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.LogPlusOne, operand)
}

// Logistic implements the corresponding standard unary operation.
//
// Also known as sigmoid: 1/(1+exp(-x)).
func Logistic(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Logistic, operand)
}

// Ceil implements the corresponding standard unary operation.
func Ceil(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Ceil, operand)
}

// Floor implements the corresponding standard unary operation.
func Floor(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Floor, operand)
}

// RoundNearestEven implements the corresponding standard unary operation.
func RoundNearestEven(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.RoundNearestEven, operand)
}

// RoundNearestAfz implements the corresponding standard unary operation.
//
// Ties are rounded away from zero.
func RoundNearestAfz(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.RoundNearestAfz, operand)
}

// Rsqrt implements the corresponding standard unary operation.
//
// It returns the reciprocal of the square root: 1/sqrt(x).
func Rsqrt(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Rsqrt, operand)
}

// Sqrt implements the corresponding standard unary operation.
func Sqrt(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Sqrt, operand)
}

// Cbrt implements the corresponding standard unary operation.
func Cbrt(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Cbrt, operand)
}

// Erf implements the corresponding standard unary operation.
//
// Erf is the Gauss error function.
func Erf(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Erf, operand)
}

// Cosine implements the corresponding standard unary operation.
func Cosine(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Cosine, operand)
}

// Sine implements the corresponding standard unary operation.
func Sine(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Sine, operand)
}

// Tan implements the corresponding standard unary operation.
func Tan(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Tan, operand)
}

// Tanh implements the corresponding standard unary operation.
func Tanh(operand *Value) (*Value, error) {
	return operand.fn.unaryOp(optypes.Tanh, operand)
}
