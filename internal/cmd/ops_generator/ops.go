package main

// opInfo describes one generated element-wise op.
// Name must match the optypes.OpType constant.
type opInfo struct {
	Name string
	Doc  string
}

var binaryOps = []opInfo{
	{Name: "Add"},
	{Name: "Subtract"},
	{Name: "Multiply"},
	{Name: "Divide"},
	{Name: "Maximum"},
	{Name: "Minimum"},
	{Name: "Power"},
	{Name: "Remainder", Doc: "The sign of the result follows the dividend (lhs)."},
	{Name: "And", Doc: "It is a logical operation for booleans and a bitwise operation for integers."},
	{Name: "Or", Doc: "It is a logical operation for booleans and a bitwise operation for integers."},
	{Name: "Xor", Doc: "It is a logical operation for booleans and a bitwise operation for integers."},
	{Name: "Atan2"},
	{Name: "ShiftLeft"},
	{Name: "ShiftRightArithmetic"},
	{Name: "ShiftRightLogical"},
}

var unaryOps = []opInfo{
	{Name: "Abs"},
	{Name: "Negate"},
	{Name: "Sign", Doc: "It returns -1, 0 or 1, and NaN for NaN inputs."},
	{Name: "Not"},
	{Name: "Popcnt"},
	{Name: "CountLeadingZeros"},
	{Name: "Exponential"},
	{Name: "ExponentialMinusOne"},
	{Name: "Log"},
	{Name: "LogPlusOne"},
	{Name: "Logistic", Doc: "Also known as sigmoid: 1/(1+exp(-x))."},
	{Name: "Ceil"},
	{Name: "Floor"},
	{Name: "RoundNearestEven"},
	{Name: "RoundNearestAfz", Doc: "Ties are rounded away from zero."},
	{Name: "Rsqrt", Doc: "It returns the reciprocal of the square root: 1/sqrt(x)."},
	{Name: "Sqrt"},
	{Name: "Cbrt"},
	{Name: "Erf", Doc: "Erf is the Gauss error function."},
	{Name: "Cosine"},
	{Name: "Sine"},
	{Name: "Tan"},
	{Name: "Tanh"},
}
