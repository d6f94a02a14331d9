// Package shapeinference calculates the shape resulting from operations and validates its inputs.
//
// It is used by the deferred shape functions of the IR nodes, and it validates operands before anything is lowered.
//
// Element-wise operations are handled by BinaryOp and UnaryOp, which only check the data types accepted by each
// operation: StableHLO doesn't broadcast implicitly, so operands must have the same shape.
//
// Every other operation gets its own shape inference function.
package shapeinference

import (
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/internal/optypes"
	"github.com/gomlx/lazyhlo/internal/utils"
	"github.com/gomlx/lazyhlo/types"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// dtypeClass is the set of data types accepted by an element-wise operation.
type dtypeClass int

const (
	anyDType dtypeClass = iota
	logicalDType
	integerDType
	numberDType
	signedNumberDType
	floatDType
	floatOrComplexDType
)

func (c dtypeClass) accepts(dtype dtypes.DType) bool {
	isNumber := dtype.IsInt() || dtype.IsFloat() || dtype.IsComplex()
	switch c {
	case logicalDType:
		return dtype == dtypes.Bool || dtype.IsInt()
	case integerDType:
		return dtype.IsInt()
	case numberDType:
		return isNumber
	case signedNumberDType:
		return isNumber && !dtype.IsUnsigned()
	case floatDType:
		return dtype.IsFloat()
	case floatOrComplexDType:
		return dtype.IsFloat() || dtype.IsComplex()
	default:
		return dtype != dtypes.InvalidDType
	}
}

func (c dtypeClass) String() string {
	switch c {
	case logicalDType:
		return "a boolean or integer"
	case integerDType:
		return "an integer (Int8, Uint8, Int32, ...)"
	case numberDType:
		return "a number (Int32, Float32, Complex64, ...)"
	case signedNumberDType:
		return "a signed number (Int32, Float32, Complex64, ...)"
	case floatDType:
		return "a float (Float32, Float64, ...)"
	case floatOrComplexDType:
		return "a float or complex (Float32, Complex64, ...)"
	default:
		return "any valid"
	}
}

var (
	// binaryOps maps the element-wise binary operations to the data types they accept.
	// Both operands must have the same shape: StableHLO doesn't broadcast implicitly.
	binaryOps = map[optypes.OpType]dtypeClass{
		optypes.Add:                  numberDType,
		optypes.Subtract:             numberDType,
		optypes.Multiply:             numberDType,
		optypes.Divide:               numberDType,
		optypes.Power:                numberDType,
		optypes.Remainder:            numberDType,
		optypes.Maximum:              anyDType,
		optypes.Minimum:              anyDType,
		optypes.Atan2:                floatOrComplexDType,
		optypes.And:                  logicalDType,
		optypes.Or:                   logicalDType,
		optypes.Xor:                  logicalDType,
		optypes.ShiftLeft:            integerDType,
		optypes.ShiftRightArithmetic: integerDType,
		optypes.ShiftRightLogical:    integerDType,
	}

	// unaryOps maps the element-wise unary operations to the data types they accept.
	unaryOps = map[optypes.OpType]dtypeClass{
		optypes.Not:                 logicalDType,
		optypes.Popcnt:              integerDType,
		optypes.CountLeadingZeros:   integerDType,
		optypes.Abs:                 numberDType,
		optypes.Sign:                numberDType,
		optypes.Negate:              signedNumberDType,
		optypes.Erf:                 floatDType,
		optypes.Logistic:            floatDType,
		optypes.Cosine:              floatDType,
		optypes.Sine:                floatDType,
		optypes.Tanh:                floatDType,
		optypes.Ceil:                floatDType,
		optypes.Floor:               floatDType,
		optypes.RoundNearestEven:    floatDType,
		optypes.RoundNearestAfz:     floatDType,
		optypes.Tan:                 floatOrComplexDType,
		optypes.Cbrt:                floatOrComplexDType,
		optypes.Exponential:         floatOrComplexDType,
		optypes.ExponentialMinusOne: floatOrComplexDType,
		optypes.Log:                 floatOrComplexDType,
		optypes.LogPlusOne:          floatOrComplexDType,
		optypes.Rsqrt:               floatOrComplexDType,
		optypes.Sqrt:                floatOrComplexDType,
	}
)

// BinaryOp returns the output shape of an element-wise binary operation (Add, Multiply, And, ...).
//
// The operands must have the same shape, and a data type accepted by the operation: e.g. And requires booleans
// or integers.
func BinaryOp(opType optypes.OpType, lhsShape, rhsShape shapes.Shape) (output shapes.Shape, err error) {
	class, found := binaryOps[opType]
	if !found {
		err = errors.Errorf("operation %s is not an element-wise binary operation", opType)
		return
	}
	if lhsShape.DType == dtypes.InvalidDType || rhsShape.DType == dtypes.InvalidDType {
		err = errors.Errorf("invalid shape for %s or %s for %s", lhsShape, rhsShape, opType)
		return
	}
	if !lhsShape.Equal(rhsShape) {
		err = errors.Errorf("shapes for %s must match, got %s and %s", opType, lhsShape, rhsShape)
		return
	}
	if !class.accepts(lhsShape.DType) {
		err = errors.Errorf("%s requires %s data type, got %s", opType, class, lhsShape)
		return
	}
	return lhsShape.Clone(), nil
}

// Compare returns the shape of a comparison: the shape of the operands, with dtype Bool.
//
// The compareType must be valid for the operands data type: e.g. CompareSigned requires signed integers.
func Compare(lhsShape, rhsShape shapes.Shape, direction types.ComparisonDirection, compareType types.ComparisonType) (output shapes.Shape, err error) {
	if lhsShape.DType == dtypes.InvalidDType || rhsShape.DType == dtypes.InvalidDType {
		err = errors.Errorf("invalid shape for %s or %s for Compare", lhsShape, rhsShape)
		return
	}
	if !lhsShape.Equal(rhsShape) {
		err = errors.Errorf("shapes for Compare must match, got %s and %s", lhsShape, rhsShape)
		return
	}
	if !direction.IsAComparisonDirection() {
		err = errors.Errorf("invalid comparison direction %d for Compare", direction)
		return
	}
	dtype := lhsShape.DType
	var valid bool
	switch compareType {
	case types.CompareFloat:
		valid = dtype.IsFloat() || dtype.IsComplex()
	case types.CompareTotalOrder:
		valid = dtype.IsFloat()
	case types.CompareSigned:
		valid = dtype.IsInt() && !dtype.IsUnsigned()
	case types.CompareUnsigned:
		valid = dtype.IsUnsigned() || dtype == dtypes.Bool
	default:
		err = errors.Errorf("invalid comparison type %d for Compare", compareType)
		return
	}
	if !valid {
		err = errors.Errorf("data type %s cannot be compared with Compare(direction=%s, type=%s)", dtype, direction, compareType)
		return
	}
	output = lhsShape.Clone()
	output.DType = dtypes.Bool
	return
}

// UnaryOp returns the output shape of an element-wise unary operation, which is the shape of the operand,
// except for Abs of complex numbers, which returns the real dtype.
func UnaryOp(opType optypes.OpType, operand shapes.Shape) (output shapes.Shape, err error) {
	class, found := unaryOps[opType]
	if !found {
		err = errors.Errorf("operation %s is not an element-wise unary operation", opType)
		return
	}
	if operand.DType == dtypes.InvalidDType {
		err = errors.Errorf("invalid shape %s for %s", operand, opType)
		return
	}
	if !class.accepts(operand.DType) {
		err = errors.Errorf("%s requires %s data type, got %s", opType, class, operand)
		return
	}
	output = operand.Clone()
	if opType == optypes.Abs && operand.DType.IsComplex() {
		output.DType = operand.DType.RealDType()
	}
	return
}

// Select returns the shape resulting from the Select operation.
//
// The pred must be boolean and can be a scalar or have the same shape as isTrue and isFalse.
// isTrue and isFalse must have the same shape and dtypes.
func Select(pred, onTrue, onFalse shapes.Shape) (output shapes.Shape, err error) {
	if pred.DType != dtypes.Bool {
		err = errors.Errorf("pred for Select() must be a boolean, got %s instead", pred)
		return
	}
	if !onTrue.Equal(onFalse) {
		err = errors.Errorf("onTrue (%s) and onFalse (%s) values for Select() must have the same shape",
			onTrue, onFalse)
		return
	}
	if !pred.IsScalar() && pred.CheckDims(onTrue.Dimensions...) != nil {
		err = errors.Errorf("pred for Select() must either be a scalar or match onTrue and onFalse shapes, instead got shapes pred=%s, onTrue=%s and onFalse=%s",
			pred, onTrue, onFalse)
		return
	}
	if !onTrue.IsScalar() && !onFalse.IsScalar() && !onTrue.Equal(onFalse) {
		err = errors.Errorf("onTrue (%s) and onFalse (%s) values for Select() must either be scalar or match each other's shape",
			onTrue, onFalse)
		return
	}
	return onTrue.Clone(), nil
}

// Complex returns the shape resulting from the Complex operation.
func Complex(real, imag shapes.Shape) (output shapes.Shape, err error) {
	if real.DType != imag.DType {
		err = errors.Errorf("real and imaginary parts for Complex() must have the same data type, got %s and %s",
			real, imag)
		return
	}
	if real.DType != dtypes.Float32 && real.DType != dtypes.Float64 {
		err = errors.Errorf("real and imaginary parts for Complex() must have a float data type, got %s",
			real)
		return
	}
	output = real.Clone()
	if real.DType == dtypes.Float32 {
		output.DType = dtypes.Complex64
	} else { // dtype = float64
		output.DType = dtypes.Complex128
	}
	return
}

// RealOrImag returns the shape resulting from the corresponding operations.
func RealOrImag(complexOperand shapes.Shape) (output shapes.Shape, err error) {
	if !complexOperand.DType.IsComplex() {
		err = errors.Errorf("Real() and Imag() require a complex data type, got %s", complexOperand)
		return
	}
	output = complexOperand.Clone()
	if complexOperand.DType == dtypes.Complex64 {
		output.DType = dtypes.Float32
	} else { // dtype = complex128
		output.DType = dtypes.Float64
	}
	return
}

// Clamp returns the shape resulting from the corresponding operation.
func Clamp(min, operand, max shapes.Shape) (output shapes.Shape, err error) {
	if operand.DType != min.DType || operand.DType != max.DType {
		err = errors.Errorf("operand, min and max for Clamp() must have the same data type, got %s, %s and %s",
			operand, min, max)
		return
	}
	if operand.DType.IsComplex() || operand.DType == dtypes.Bool {
		err = errors.Errorf("Clamp() does not support complex or boolean data types, got %s", operand)
		return
	}
	if !min.IsScalar() && !min.Equal(operand) {
		err = errors.Errorf("min for Clamp() must either be a scalar or match the operand shape, instead got min=%s and operand=%s",
			min, operand)
		return
	}
	if !max.IsScalar() && !max.Equal(operand) {
		err = errors.Errorf("max for Clamp() must either be a scalar or match the operand shape, instead got max=%s and operand=%s",
			max, operand)
		return
	}
	output = operand.Clone()
	return
}

// Transpose all axes of the operand.
// There must be one value in permutations for each axis in the operand.
// The output will have: output.Shape.Dimension[ii] = operand.Shape.Dimension[permutations[i]].
func Transpose(operand shapes.Shape, permutation []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(permutation) != rank {
		err = errors.Errorf("Transpose() requires all axes permutation to be defined, operand has shape %s, but %d permutation were given",
			operand, len(permutation))
		return
	}
	if rank == 0 {
		return operand, nil
	}

	// Check permutation axes are within range and unique.
	axesSet := slices.Clone(permutation)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			err = errors.Errorf("invalid permutation axis %d given to Transpose(%s), it must be within the range of its rank",
				srcAxis, operand)
			return
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			err = errors.Errorf("invalid permutation given to Transpose(%s, %v), there cannot be any repeated axis, each must appear exactly once",
				operand, permutation)
			return
		}
	}

	output = operand.Clone()
	for axis := range output.Dimensions {
		srcAxis := permutation[axis]
		output.Dimensions[axis] = operand.Dimensions[srcAxis]
	}
	return
}

// BroadcastInDim verifies that the arguments are valid.
// The output shape is already known, so nothing is returned.
//
// The axesMapping is changed in place, replacing negative axes with their positive equivalent.
func BroadcastInDim(operand, targetShape shapes.Shape, axesMapping []int) error {
	if operand.DType != targetShape.DType {
		return errors.Errorf("BroadcastInDim() requires the operand and the target shape to have the same data type, got operand=%s and targetShape=%s",
			operand, targetShape)
	}
	targetRank := targetShape.Rank()
	if targetRank < operand.Rank() {
		return errors.Errorf("BroadcastInDim() cannot be used to shrink the rank of the operand, got operand=%s and targetShape=%s",
			operand, targetShape)
	}
	if len(axesMapping) != operand.Rank() {
		return errors.Errorf("BroadcastInDim() requires all operand's axes mappings to be defined, operand has targetShape %s, but %d axes were given",
			operand, len(axesMapping))
	}
	usedAxis := utils.MakeSet[int](len(axesMapping))
	for operandAxis, targetAxis := range axesMapping {
		targetAxis, err := AdjustAxisToRank(targetAxis, targetRank)
		if err != nil {
			return errors.WithMessagef(err, "invalid axes mapping of operand axis %d to targetShape axis %d, targetShape targetShape is %s", operandAxis, targetAxis, targetShape)
		}
		if usedAxis.Has(targetAxis) {
			return errors.Errorf("BroadcastInDim() requires all targetShape axes to be unique, got duplicate axis %d", targetAxis)
		}
		usedAxis.Insert(targetAxis)
		operandDim := operand.Dimensions[operandAxis]
		targetDim := targetShape.Dimensions[targetAxis]
		if operandDim != 1 && operandDim != targetDim {
			return errors.Errorf("BroadcastInDim() requires all operand axes to be broadcast to be of dimension 1, but got operand.Dimensions[%d]=%d and targetShape.Dimension[%d]=%d",
				operandAxis, operandDim, targetAxis, targetDim)
		}
		axesMapping[operandAxis] = targetAxis
	}
	return nil
}

// Concatenate calculates the output shape of a Concatenate operation.
// It takes a slice of input shapes and the dimension along which to concatenate.
func Concatenate(inputs []shapes.Shape, axis int) (output shapes.Shape, err error) {
	if len(inputs) == 0 {
		return shapes.Invalid(), errors.Errorf("Concatenate requires at least one input shape")
	}

	// Initialize output dimensions with the first shape.
	firstShape := inputs[0]
	dtype := firstShape.DType
	rank := firstShape.Rank()
	output = firstShape.Clone()
	if dtype == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("invalid shape %s for first input of Concatenate", firstShape)
	}
	if len(inputs) == 1 {
		return firstShape, nil
	}

	if axis < 0 || axis >= rank {
		return shapes.Invalid(), errors.Errorf("invalid concatenation axis %d for shapes with rank %d", axis, rank)
	}

	// Validate further inputs and accumulate the concatenation axis size.
	for i := 1; i < len(inputs); i++ {
		currentShape := inputs[i]
		if currentShape.DType == dtypes.InvalidDType {
			return shapes.Invalid(), errors.Errorf("invalid shape %s for input #%d of Concatenate", currentShape, i)
		}
		if currentShape.DType != dtype {
			return shapes.Invalid(), errors.Errorf("mismatched DTypes for Concatenate: input #0 has %s, input #%d has %s",
				dtype, i, currentShape.DType)
		}
		if currentShape.Rank() != rank {
			return shapes.Invalid(), errors.Errorf("mismatched ranks for Concatenate: input #0 has rank %d, input #%d has rank %d",
				rank, i, currentShape.Rank())
		}

		for d := 0; d < rank; d++ {
			if d == axis {
				output.Dimensions[d] += currentShape.Dimensions[d]
			} else {
				if currentShape.Dimensions[d] != output.Dimensions[d] {
					return shapes.Invalid(), errors.Errorf("mismatched dimensions for Concatenate at axis %d (non-concatenation axis): input #0 has %d, input #%d has %d",
						d, output.Dimensions[d], i, currentShape.Dimensions[d])
				}
			}
		}
	}
	return output, nil
}

// Slice calculates the output shape for a Slice operation.
// It checks that starts, limits, and strides have the correct length (matching operand rank),
// and that the slice parameters are valid for the operand's dimensions.
// Strides must be positive.
func Slice(operand shapes.Shape, starts, limits, strides []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	opName := "Slice"
	if operand.DType == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("%s: invalid operand shape %s", opName, operand)
	}
	if len(starts) != rank {
		return shapes.Invalid(), errors.Errorf("%s: len(starts)=%d, but operand rank is %d", opName, len(starts), rank)
	}
	if len(limits) != rank {
		return shapes.Invalid(), errors.Errorf("%s: len(limits)=%d, but operand rank is %d", opName, len(limits), rank)
	}
	if len(strides) != rank {
		return shapes.Invalid(), errors.Errorf("%s: len(strides)=%d, but operand rank is %d", opName, len(strides), rank)
	}

	output = shapes.Shape{
		DType:      operand.DType,
		Dimensions: make([]int, rank),
	}

	for axis := 0; axis < rank; axis++ {
		start, limit, stride := starts[axis], limits[axis], strides[axis]
		dimSize := operand.Dimensions[axis]

		if stride <= 0 {
			return shapes.Invalid(), errors.Errorf("%s: stride must be positive, but got stride[%d]=%d for operand shape %s",
				opName, axis, stride, operand)
		}
		if start < 0 || start >= dimSize {
			return shapes.Invalid(), errors.Errorf("%s: start index %d is out of bounds for axis %d with size %d (operand shape %s)",
				opName, start, axis, dimSize, operand)
		}
		// Limit can be equal to dimSize.
		if limit < start || limit > dimSize {
			return shapes.Invalid(), errors.Errorf("%s: limit index %d is out of bounds for axis %d (start=%d, size=%d, operand shape %s)",
				opName, limit, axis, start, dimSize, operand)
		}

		// The first one is always taken, so we use the ceiling of the division.
		outputDimSize := (limit - start + (stride - 1)) / stride
		output.Dimensions[axis] = outputDimSize
	}

	return output, nil
}

// AdjustAxisToRank returns a positive axis, adjusting negative numbers to the correct rank.
func AdjustAxisToRank(axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return -1, errors.Errorf("axis %d is out of range for the rank %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}

// DotGeneral returns the shape resulting from the corresponding operations.
//
// It also has a side effect on the axes' specifications: it converts negative axes to their
// corresponding positive axes, and it sorts the axes in ascending order.
func DotGeneral(
	lhs shapes.Shape, lhsContractingAxes, lhsBatchAxes []int,
	rhs shapes.Shape, rhsContractingAxes, rhsBatchAxes []int,
	outputDType dtypes.DType) (output shapes.Shape, err error) {
	dtype := lhs.DType
	if dtype != rhs.DType {
		err = errors.Errorf("DotGeneral lhs (left-hand-side) and rhs operands don't match data types: %s and %s", dtype, rhs.DType)
		return
	}
	if len(lhsContractingAxes) != len(rhsContractingAxes) {
		err = errors.Errorf("DotGeneral number of contracting axes for lhs (%d) doesn't match rhs (%d)",
			len(lhsContractingAxes), len(rhsContractingAxes))
		return
	}
	if len(lhsBatchAxes) != len(rhsBatchAxes) {
		err = errors.Errorf("DotGeneral number of batch axes for lhs (%d) doesn't match rhs (%d)",
			len(lhsBatchAxes), len(rhsBatchAxes))
		return
	}
	lhsRank := lhs.Rank()
	rhsRank := rhs.Rank()

	// Validate and adjust axes.
	for ii, axis := range lhsContractingAxes {
		lhsContractingAxes[ii], err = AdjustAxisToRank(axis, lhsRank)
		if err != nil {
			err = errors.WithMessagef(err, "while adjusting contractingAxes for DotGeneral(lhs=%s, lhsContractingAxes=%v)", lhs, lhsContractingAxes)
			return
		}
	}
	for ii, axis := range lhsBatchAxes {
		lhsBatchAxes[ii], err = AdjustAxisToRank(axis, lhsRank)
		if err != nil {
			err = errors.WithMessagef(err, "while adjusting batchAxes for DotGeneral(lhs=%s, lhsBatchAxes=%v)", lhs, lhsBatchAxes)
			return
		}
	}
	for ii, axis := range rhsContractingAxes {
		rhsContractingAxes[ii], err = AdjustAxisToRank(axis, rhsRank)
		if err != nil {
			err = errors.WithMessagef(err, "while adjusting contractingAxes for DotGeneral(rhs=%s, rhsContractingAxes=%v)", rhs, rhsContractingAxes)
			return
		}
	}
	for ii, axis := range rhsBatchAxes {
		rhsBatchAxes[ii], err = AdjustAxisToRank(axis, rhsRank)
		if err != nil {
			err = errors.WithMessagef(err, "while adjusting batchAxes for DotGeneral(rhs=%s, rhsBatchAxes=%v)", rhs, rhsBatchAxes)
			return
		}
	}

	// Check that batch and contracting dimensions from lhs and rhs match.
	batchDims := make([]int, len(lhsBatchAxes))
	contractingDims := make([]int, len(lhsContractingAxes))
	for ii, lhsAxis := range lhsContractingAxes {
		rhsAxis := rhsContractingAxes[ii]
		if lhs.Dimensions[lhsAxis] != rhs.Dimensions[rhsAxis] {
			err = errors.Errorf("DotGeneral contracting dimensions don't match: lhs[%d]=%d != rhs[%d]=%d",
				lhsAxis, lhs.Dimensions[lhsAxis], rhsAxis, rhs.Dimensions[rhsAxis])
			return
		}
		contractingDims[ii] = lhs.Dimensions[lhsAxis]
	}
	for ii, lhsAxis := range lhsBatchAxes {
		rhsAxis := rhsBatchAxes[ii]
		if lhs.Dimensions[lhsAxis] != rhs.Dimensions[rhsAxis] {
			err = errors.Errorf("DotGeneral batch dimensions don't match: lhs[%d]=%d != rhs[%d]=%d",
				lhsAxis, lhs.Dimensions[lhsAxis], rhsAxis, rhs.Dimensions[rhsAxis])
			return
		}
		batchDims[ii] = lhs.Dimensions[lhsAxis]
	}

	// Find sizes of the normalized operands ([batchSize, crossSize, contractSize]).
	var lhsCrossDims, rhsCrossDims []int
	batchSize, lhsCrossSize, contractingSize, lhsCrossDims := dotGeneralFindSizes(lhs, lhsContractingAxes, lhsBatchAxes)
	_, rhsCrossSize, _, rhsCrossDims := dotGeneralFindSizes(rhs, rhsContractingAxes, rhsBatchAxes)

	// Check that all sizes are positive
	if batchSize < 0 || lhsCrossSize < 0 || contractingSize < 0 || rhsCrossSize < 0 {
		err = errors.Errorf("DotGeneral sizes must be positive: lhs(batch=%d, cross=%d, contracting=%d), rhs(cross=%d)",
			batchSize, lhsCrossSize, contractingSize, rhsCrossSize)
		return
	}

	// Reshape result to recover batch and cross dimensions.
	resultingDims := make([]int, 0, len(batchDims)+len(lhsCrossDims)+len(rhsCrossDims))
	resultingDims = append(resultingDims, batchDims...)
	resultingDims = append(resultingDims, lhsCrossDims...)
	resultingDims = append(resultingDims, rhsCrossDims...)
	output = shapes.Make(outputDType, resultingDims...)
	return
}

func dotGeneralFindSizes(shape shapes.Shape, contractingAxes, batchAxes []int) (batchSize, crossSize, contractingSize int, crossDims []int) {
	rank := shape.Rank()
	axesTypes := make([]int, rank)

	// Mark axes types: 1 for contracting, 2 for batch
	for _, axis := range contractingAxes {
		axesTypes[axis] = 1
	}
	for _, axis := range batchAxes {
		axesTypes[axis] = 2
	}

	// Calculate sizes by multiplying dimensions according to the axis type.
	batchSize, crossSize, contractingSize = 1, 1, 1
	crossDims = make([]int, 0, rank-len(contractingAxes)-len(batchAxes))
	for axis, axisType := range axesTypes {
		dim := shape.Dimensions[axis]
		switch axisType {
		case 0: // Cross axes (unmarked)
			crossSize *= dim
			crossDims = append(crossDims, dim)
		case 1: // Contracting axes
			contractingSize *= dim
		case 2: // Batch axes
			batchSize *= dim
		}
	}
	return
}

// IsFinite returns the shape of the IsFinite operation: same dimensions as the operand, with dtype Bool.
func IsFinite(operand shapes.Shape) (output shapes.Shape, err error) {
	dtype := operand.DType
	if !dtype.IsFloat() {
		err = errors.Errorf("IsFinite: operand data type %s is not a floating point type", dtype)
		return
	}
	output = operand.Clone()
	output.DType = dtypes.Bool
	return
}

// Reduce returns the operation's output shapes and checks all shapes and dtypes are valid.
// The axes are also normalized to positive in-place.
func Reduce(inputs, initialValues, reductionInputs, reductionOutputs []shapes.Shape, axes []int) (outputs []shapes.Shape, err error) {
	// Check inputs and initialValues.
	numReductions := len(inputs)
	if numReductions == 0 {
		return nil, errors.New("Reduce requires at least one input")
	}
	if len(initialValues) != numReductions {
		return nil, errors.Errorf("Reduce requires the same number of initial values as inputs, got %d initial values and %d inputs",
			len(initialValues), len(inputs))
	}
	baseDimensions := inputs[0].Dimensions
	for i, input := range inputs {
		if input.DType != initialValues[i].DType {
			return nil, errors.Errorf("Reduce requires the same dtype for initial values and inputs, got %s and %s for input #%d",
				initialValues[i].DType, input.DType, i)
		}
		if !slices.Equal(input.Dimensions, baseDimensions) {
			return nil, errors.Errorf("Reduce requires the same shape (dimensions only) for all inputs, got %s and %s for inputs #0 and #%d",
				inputs[0], input, i)
		}
	}

	// Check that all reduction inputs and outputs are valid.
	if len(reductionInputs) != 2*numReductions {
		return nil, errors.Errorf("The reduction function for the Reduce operation must have 2 inputs for each initialValue, but reduction has %d inputs for 2*%d=%d initial values",
			len(reductionInputs), len(initialValues), 2*len(initialValues))
	}
	if len(reductionOutputs) != numReductions {
		return nil, errors.Errorf("The reduction function for the Reduce operation must have 1 output for each initialValue, but reduction has %d outputs for %d initial values",
			len(reductionOutputs), len(initialValues))
	}
	for i := range numReductions {
		if reductionInputs[i].DType != reductionInputs[i+numReductions].DType || reductionInputs[i].DType != reductionOutputs[i].DType {
			return nil, errors.Errorf("Reduce requires the same dtype for lhs[i], rhs[i] inputs and output[i], got lhs[%d]=%s and rhs[%d+%d]=%s and output[%d]=%s",
				i, reductionInputs[i], i, numReductions, reductionInputs[i+numReductions], i, reductionOutputs[i])
		}
	}

	// Check the axis are valid.
	rank := inputs[0].Rank()
	if len(axes) > rank {
		return nil, errors.Errorf("input for Reduce has rank=%d, but %d axes for reduction were given", rank, len(axes))
	}
	axesSet := utils.MakeSet[int]()
	for i, axis := range axes {
		adjustedAxis, err := AdjustAxisToRank(axis, rank)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid value for axes[%d]=%d for Reduce, inputs[0].shape=%s)",
				i, axis, inputs[0])
		}
		if axesSet.Has(adjustedAxis) {
			return nil, errors.Errorf("duplicate value for axes[%d]=%d for Reduce, axes=%v)",
				i, axis, axes)
		}
		axesSet.Insert(adjustedAxis)
		axes[i] = adjustedAxis
	}

	// Build the output shapes.
	reducedDims := slices.Clone(inputs[0].Dimensions)
	var toAxis int
	for axis, dim := range reducedDims {
		if axesSet.Has(axis) {
			// This axis will be reduced, and it disappears from the output shape.
			continue
		}
		reducedDims[toAxis] = dim
		toAxis++
	}
	reducedDims = reducedDims[:toAxis]
	outputs = make([]shapes.Shape, len(inputs))
	for ii, outputBase := range reductionOutputs {
		outputs[ii] = shapes.Make(outputBase.DType, reducedDims...)
	}
	return
}

// Reshape returns the shape of a reshaped operand.
//
// At most one of the dimensions can be -1, in which case it is inferred from the size of the operand.
// The total size (number of elements) must be preserved.
func Reshape(operand shapes.Shape, dimensions []int) (output shapes.Shape, err error) {
	if operand.DType == dtypes.InvalidDType {
		err = errors.Errorf("invalid shape %s for Reshape", operand)
		return
	}
	inferredAxis := -1
	knownSize := 1
	for axis, dim := range dimensions {
		switch {
		case dim == -1:
			if inferredAxis != -1 {
				err = errors.Errorf("Reshape(%s, %v) can have at most one dimension set to -1", operand, dimensions)
				return
			}
			inferredAxis = axis
		case dim < 0:
			err = errors.Errorf("Reshape(%s, %v) got invalid dimension %d for axis %d", operand, dimensions, dim, axis)
			return
		default:
			knownSize *= dim
		}
	}
	dims := slices.Clone(dimensions)
	if inferredAxis != -1 {
		if knownSize == 0 || operand.Size()%knownSize != 0 {
			err = errors.Errorf("Reshape(%s, %v) cannot infer the dimension of axis %d: size %d is not divisible by %d",
				operand, dimensions, inferredAxis, operand.Size(), knownSize)
			return
		}
		dims[inferredAxis] = operand.Size() / knownSize
		knownSize *= dims[inferredAxis]
	}
	if knownSize != operand.Size() {
		err = errors.Errorf("Reshape(%s, %v) must preserve the size of the operand (%d), but new size is %d",
			operand, dimensions, operand.Size(), knownSize)
		return
	}
	return shapes.Make(operand.DType, dims...), nil
}

// ConvertDType returns the shape of the operand converted to the given dtype.
func ConvertDType(operand shapes.Shape, dtype dtypes.DType) (output shapes.Shape, err error) {
	if operand.DType == dtypes.InvalidDType || dtype == dtypes.InvalidDType {
		err = errors.Errorf("invalid dtypes for ConvertDType(%s, %s)", operand, dtype)
		return
	}
	if operand.DType.IsComplex() && !dtype.IsComplex() {
		err = errors.Errorf("ConvertDType(%s, %s) cannot convert complex numbers to a non-complex type, use Real or Imag instead",
			operand, dtype)
		return
	}
	output = operand.Clone()
	output.DType = dtype
	return
}

// Split returns the shapes of the numParts parts resulting of splitting the operand along the given axis.
// The axis dimension must be divisible by numParts. Negative axes are adjusted to the operand's rank.
func Split(operand shapes.Shape, axis, numParts int) (outputs []shapes.Shape, err error) {
	if numParts <= 0 {
		return nil, errors.Errorf("Split(%s) requires a positive number of parts, got %d", operand, numParts)
	}
	adjustedAxis, err := AdjustAxisToRank(axis, operand.Rank())
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid axis for Split(%s)", operand)
	}
	dim := operand.Dimensions[adjustedAxis]
	if dim%numParts != 0 {
		return nil, errors.Errorf("Split(%s) of axis %d (dimension %d) in %d parts: dimension is not divisible by the number of parts",
			operand, axis, dim, numParts)
	}
	part := operand.Clone()
	part.Dimensions[adjustedAxis] = dim / numParts
	outputs = make([]shapes.Shape, numParts)
	for ii := range outputs {
		outputs[ii] = part.Clone()
	}
	return outputs, nil
}
