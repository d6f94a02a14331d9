// Package ops defines the operation kinds of the lazy IR, in the "hlo" namespace.
//
// Each operation bundles a deferred shape function (using package shapeinference) and a
// lazyhlo.Lowerer that emits the corresponding StableHLO statements.
//
// Operations are created with a Builder, which holds the hashing policy of the nodes it creates:
//
//	b := ops.New()
//	x, _ := b.Parameter(0, shapes.Make(dtypes.Float32, 2, 3))
//	y, _ := b.Add(x.Out(), x.Out())
//
// Operands are given as lazyhlo.Output, which don't keep their nodes alive: hold on to the operand nodes
// until the new node is created.
package ops

import (
	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// Namespace of the operation kinds defined in this package.
const Namespace = "hlo"

func kind(name string) lazyhlo.OpKind {
	return lazyhlo.NewOpKind(Namespace, name)
}

// Operation kinds.
var (
	KindParameter = kind("parameter")
	KindConstant  = kind("constant")

	KindAdd = kind("add")
	KindSub = kind("sub")
	KindMul = kind("mul")
	KindDiv = kind("div")
	KindMax = kind("max")
	KindMin = kind("min")
	KindPow = kind("pow")
	KindRem = kind("rem")

	KindAnd                  = kind("and")
	KindOr                   = kind("or")
	KindXor                  = kind("xor")
	KindAtan2                = kind("atan2")
	KindShiftLeft            = kind("shift_left")
	KindShiftRightArithmetic = kind("shift_right_arithmetic")
	KindShiftRightLogical    = kind("shift_right_logical")

	KindNeg      = kind("neg")
	KindAbs      = kind("abs")
	KindExp      = kind("exp")
	KindLog      = kind("log")
	KindSqrt     = kind("sqrt")
	KindRsqrt    = kind("rsqrt")
	KindTanh     = kind("tanh")
	KindLogistic = kind("logistic")
	KindSin      = kind("sin")
	KindCos      = kind("cos")
	KindFloor    = kind("floor")
	KindCeil     = kind("ceil")
	KindSign     = kind("sign")

	KindNot               = kind("not")
	KindPopcnt            = kind("popcnt")
	KindClz               = kind("clz")
	KindExpm1             = kind("expm1")
	KindLog1p             = kind("log1p")
	KindRound             = kind("round")
	KindRoundHalfAwayZero = kind("round_half_away_zero")
	KindCbrt              = kind("cbrt")
	KindErf               = kind("erf")
	KindTan               = kind("tan")
	KindIsFinite          = kind("is_finite")
	KindComplex           = kind("complex")
	KindReal              = kind("real")
	KindImag              = kind("imag")

	KindCompare = kind("compare")
	KindWhere   = kind("where")
	KindClamp   = kind("clamp")
	KindConvert = kind("convert")

	KindReshape        = kind("reshape")
	KindTranspose      = kind("transpose")
	KindBroadcastInDim = kind("broadcast_in_dim")
	KindConcatenate    = kind("concatenate")
	KindSlice          = kind("slice")
	KindSplit          = kind("split")
	KindIdentity       = kind("identity")

	KindDot       = kind("dot")
	KindReduceSum = kind("reduce_sum")
	KindReduceMax = kind("reduce_max")
	KindReduceMin = kind("reduce_min")
)

// Builder creates the nodes of the operations. It is configured with the hashing policy applied to the nodes
// it creates.
//
// Configure it before creating nodes, it can then be used concurrently.
type Builder struct {
	sizesInHash bool
	hashSeed    uint64
}

// New returns a Builder whose nodes include the output dimensions in their structural hash.
func New() *Builder {
	return &Builder{
		sizesInHash: true,
		hashSeed:    lazyhlo.DefaultHashSeed,
	}
}

// WithSizesInHash configures whether the output dimensions of the nodes are part of their structural hash.
//
// With false, graphs that differ only by the dimensions of their parameters have the same hash, and share
// the same bucket in a lowering.Cache.
func (b *Builder) WithSizesInHash(sizesInHash bool) *Builder {
	b.sizesInHash = sizesInHash
	return b
}

// WithHashSeed sets the base seed of the structural hash of the nodes, which can be used to version the hashes.
func (b *Builder) WithHashSeed(seed uint64) *Builder {
	b.hashSeed = seed
	return b
}

// SizesInHash returns whether the output dimensions of the nodes are part of their structural hash.
func (b *Builder) SizesInHash() bool {
	return b.sizesInHash
}

// options returns the node options common to all operations: the hash seed is derived from the
// operation attributes.
func (b *Builder) options(lowerer lazyhlo.Lowerer, attributes ...any) []lazyhlo.NodeOption {
	seed := b.hashSeed
	if len(attributes) > 0 {
		seed = lazyhlo.HashValues(b.hashSeed, attributes...)
	}
	return []lazyhlo.NodeOption{
		lazyhlo.WithHashSeed(seed),
		lazyhlo.WithSizesInHash(b.sizesInHash),
		lazyhlo.WithLowerer(lowerer),
	}
}

// deferred creates a single output node with a deferred shape function.
func (b *Builder) deferred(op lazyhlo.OpKind, operands []lazyhlo.Output, shapeFn lazyhlo.ShapeFn,
	lowerer lazyhlo.LowererFunc, attributes ...any) (*lazyhlo.Node, error) {
	return lazyhlo.NewDeferredNode(op, operands, shapeFn, b.options(lowerer, attributes...)...)
}

// operandShapes returns the shapes of the outputs.
func operandShapes(operands ...lazyhlo.Output) ([]shapes.Shape, error) {
	result := make([]shapes.Shape, len(operands))
	for i, operand := range operands {
		var err error
		result[i], err = operand.Shape()
		if err != nil {
			return nil, errors.WithMessagef(err, "operand #%d", i)
		}
	}
	return result, nil
}

// lowerWith returns a lowerer for single output operations that emits the statement with emit, given the
// operand values.
func lowerWith(emit func(node *lazyhlo.Node, fn *stablehlo.Function, operands []*stablehlo.Value) (*stablehlo.Value, error)) lazyhlo.LowererFunc {
	return func(node *lazyhlo.Node, ctx lazyhlo.LoweringContext) ([]*stablehlo.Value, error) {
		operands, err := ctx.OperandValues(node)
		if err != nil {
			return nil, err
		}
		v, err := emit(node, ctx.Function(), operands)
		if err != nil {
			return nil, err
		}
		return []*stablehlo.Value{v}, nil
	}
}
