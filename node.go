package lazyhlo

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"weak"

	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// NodeID is the unique id of a node, assigned in construction order: an operand always has a smaller
// id than its consumers.
type NodeID uint64

var lastNodeID atomic.Uint64

// Node is one operation in the deferred computation graph.
//
// It owns its operands (operands), and mirrors them with a non-owning list of Output descriptors
// (operandOutputs), one per consumption, in the same order. Only the mirror is exposed, see
// Node.Operands and Node.Operand.
//
// A Node is immutable after construction, except for the one-time resolution of its shapes.
// It is safe for concurrent use.
type Node struct {
	id         NodeID
	op         OpKind
	numOutputs int

	operands       []*Node
	operandOutputs []Output

	shapes shapeCell

	hashSeed    uint64
	sizesInHash bool
	hashed      atomic.Bool
	hash        atomic.Uint64

	lowerer Lowerer
}

// NodeOption configures a node at construction.
type NodeOption func(n *Node)

// WithNumOutputs sets the number of outputs of the node. The default is 1.
func WithNumOutputs(numOutputs int) NodeOption {
	return func(n *Node) {
		n.numOutputs = numOutputs
	}
}

// WithHashSeed sets the seed of the node's structural hash. Operations use it to distinguish nodes
// that differ only by their attributes (e.g.: the axes of a reduction, or the value of a constant).
//
// The default is DefaultHashSeed.
func WithHashSeed(seed uint64) NodeOption {
	return func(n *Node) {
		n.hashSeed = seed
	}
}

// WithSizesInHash sets whether the dimensions of the output shapes are part of the node's structural hash.
// If false, only the dtype and rank of the outputs contribute. The default is true.
func WithSizesInHash(sizesInHash bool) NodeOption {
	return func(n *Node) {
		n.sizesInHash = sizesInHash
	}
}

// WithLowerer sets the Lowerer used by Node.Lower.
func WithLowerer(lowerer Lowerer) NodeOption {
	return func(n *Node) {
		n.lowerer = lowerer
	}
}

// newNode creates the node and records its operands.
func newNode(op OpKind, operands []Output, opts []NodeOption) (*Node, error) {
	n := &Node{
		op:          op,
		numOutputs:  1,
		hashSeed:    DefaultHashSeed,
		sizesInHash: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.numOutputs < 1 {
		return nil, errors.Errorf("node %s must have at least one output, got %d", op, n.numOutputs)
	}
	n.operands = make([]*Node, 0, len(operands))
	n.operandOutputs = make([]Output, 0, len(operands))
	for i, operand := range operands {
		if err := n.addOperand(operand); err != nil {
			return nil, errors.WithMessagef(err, "operand #%d of %s", i, op)
		}
	}
	n.id = NodeID(lastNodeID.Add(1))
	return n, nil
}

// addOperand records one consumption of the output: the owning node and its mirror Output.
func (n *Node) addOperand(output Output) error {
	producer := output.Node()
	if producer == nil {
		return errors.Wrapf(ErrNodeReleased, "operand %s", output)
	}
	if output.index < 0 || output.index >= producer.numOutputs {
		return errors.Wrapf(ErrOutOfRange, "operand %s refers to output %d of a node with %d outputs",
			output, output.index, producer.numOutputs)
	}
	n.operands = append(n.operands, producer)
	n.operandOutputs = append(n.operandOutputs, output)
	if len(n.operands) != len(n.operandOutputs) {
		panic(errors.Errorf("node %s: %d owned operands but %d operand outputs", n.op, len(n.operands), len(n.operandOutputs)))
	}
	return nil
}

// NewNode creates a node with the given output shapes: there must be one shape per output.
func NewNode(op OpKind, operands []Output, outputShapes []shapes.Shape, opts ...NodeOption) (*Node, error) {
	n, err := newNode(op, operands, opts)
	if err != nil {
		return nil, err
	}
	if len(outputShapes) != n.numOutputs {
		return nil, errors.Errorf("node %s has %d outputs, but %d shapes were given", op, n.numOutputs, len(outputShapes))
	}
	shape := outputShapes[0]
	if n.numOutputs > 1 {
		shape = shapes.MakeTuple(outputShapes...)
	}
	if err = n.shapes.set(n.numOutputs, shape); err != nil {
		return nil, errors.WithMessagef(err, "node %s", op)
	}
	return n, nil
}

// NewNodeWithShapeFn creates a node whose shape is computed immediately by shapeFn.
func NewNodeWithShapeFn(op OpKind, operands []Output, shapeFn ShapeFn, opts ...NodeOption) (*Node, error) {
	if shapeFn == nil {
		return nil, errors.Errorf("node %s requires a shape function", op)
	}
	n, err := newNode(op, operands, opts)
	if err != nil {
		return nil, err
	}
	if _, err = n.GetOpShape(shapeFn); err != nil {
		return nil, errors.WithMessagef(err, "shape of node %s", op)
	}
	return n, nil
}

// NewDeferredNode creates a node whose shape is computed by shapeFn on the first query.
//
// The shapeFn can be nil, in which case it must be given later with Node.SetShapeDeferred,
// before the shape is queried.
func NewDeferredNode(op OpKind, operands []Output, shapeFn ShapeFn, opts ...NodeOption) (*Node, error) {
	n, err := newNode(op, operands, opts)
	if err != nil {
		return nil, err
	}
	n.shapes.deferred = shapeFn
	return n, nil
}

// NewLeafNode creates a node with no operands and the given shape (a tuple, if the node has more than one output).
// It is used for parameters and constants.
func NewLeafNode(op OpKind, shape shapes.Shape, opts ...NodeOption) (*Node, error) {
	n, err := newNode(op, nil, opts)
	if err != nil {
		return nil, err
	}
	if err = n.shapes.set(n.numOutputs, shape); err != nil {
		return nil, errors.WithMessagef(err, "node %s", op)
	}
	return n, nil
}

// SetShapeDeferred sets the function that computes the shape of the node on the first query.
//
// It returns an error wrapping ErrShapeAlreadySet if the shape is already resolved or if a shape function was
// already set.
func (n *Node) SetShapeDeferred(shapeFn ShapeFn) error {
	if shapeFn == nil {
		return errors.Errorf("node %s: SetShapeDeferred requires a shape function", n.op)
	}
	if err := n.shapes.setDeferred(shapeFn); err != nil {
		return errors.Wrapf(err, "node %s", n)
	}
	return nil
}

// ID returns the unique id of the node.
func (n *Node) ID() NodeID { return n.id }

// Op returns the operation kind of the node.
func (n *Node) Op() OpKind { return n.op }

// NumOutputs returns the number of outputs of the node.
func (n *Node) NumOutputs() int { return n.numOutputs }

// HashSeed returns the seed of the node's structural hash.
func (n *Node) HashSeed() uint64 { return n.hashSeed }

// SizesInHash returns whether the output dimensions are part of the node's structural hash.
func (n *Node) SizesInHash() bool { return n.sizesInHash }

// Lowerer returns the node's Lowerer, or nil if it has none.
func (n *Node) Lowerer() Lowerer { return n.lowerer }

// Output returns the handle to the i-th output of the node.
func (n *Node) Output(i int) (Output, error) {
	if i < 0 || i >= n.numOutputs {
		return Output{}, errors.Wrapf(ErrOutOfRange, "output %d of node %s with %d outputs", i, n, n.numOutputs)
	}
	return Output{node: weak.Make(n), id: n.id, index: i}, nil
}

// Out returns the handle to the first output of the node.
func (n *Node) Out() Output {
	return Output{node: weak.Make(n), id: n.id}
}

// Outputs returns the handles to all outputs of the node.
func (n *Node) Outputs() []Output {
	ptr := weak.Make(n)
	outputs := make([]Output, n.numOutputs)
	for i := range outputs {
		outputs[i] = Output{node: ptr, id: n.id, index: i}
	}
	return outputs
}

// GetOpShape returns the shape of the node (a tuple if the node has more than one output).
//
// If the shape is not resolved yet, it runs shapeFn (or the deferred shape function, if shapeFn is nil)
// and caches the result. If the shape function fails the error is returned and the shape remains unresolved.
func (n *Node) GetOpShape(shapeFn ShapeFn) (shapes.Shape, error) {
	if n.shapes.resolved.Load() {
		return n.shapes.shape, nil
	}
	shape, _, err := n.shapes.get(n.numOutputs, shapeFn)
	if err != nil {
		if errors.Is(err, ErrShapeNotSet) {
			return shapes.Invalid(), errors.Wrapf(err, "node %s", n)
		}
		return shapes.Invalid(), errors.WithMessagef(err, "shape of node %s", n)
	}
	if klog.V(2).Enabled() {
		klog.Infof("Resolved shape of node #%d %s: %s", n.id, n.op, shape)
	}
	return shape, nil
}

// Shape returns the shape of the i-th output. It resolves the node's shape if it is deferred.
func (n *Node) Shape(i int) (shapes.Shape, error) {
	if i < 0 || i >= n.numOutputs {
		return shapes.Invalid(), errors.Wrapf(ErrOutOfRange, "shape %d of node %s with %d outputs", i, n, n.numOutputs)
	}
	if _, err := n.GetOpShape(nil); err != nil {
		return shapes.Invalid(), err
	}
	return n.shapes.outputs[i], nil
}

// Shapes returns the shapes of all outputs. It resolves the node's shape if it is deferred.
func (n *Node) Shapes() ([]shapes.Shape, error) {
	if _, err := n.GetOpShape(nil); err != nil {
		return nil, err
	}
	return slices.Clone(n.shapes.outputs), nil
}

// IsShapeResolved returns whether the shapes of the node are already known.
func (n *Node) IsShapeResolved() bool {
	return n.shapes.resolved.Load()
}

// Operands returns the outputs consumed by the node, one per consumption and in order.
// The returned slice is a copy.
func (n *Node) Operands() []Output {
	return slices.Clone(n.operandOutputs)
}

// Operand returns the i-th output consumed by the node.
func (n *Node) Operand(i int) (Output, error) {
	if i < 0 || i >= len(n.operandOutputs) {
		return Output{}, errors.Wrapf(ErrOutOfRange, "operand %d of node %s with %d operands", i, n, len(n.operandOutputs))
	}
	return n.operandOutputs[i], nil
}

// NumOperands returns the number of operands, one per consumption.
func (n *Node) NumOperands() int {
	return len(n.operandOutputs)
}

// String implements fmt.Stringer: a one-line summary with the operation kind and the output shapes.
//
// It never triggers the resolution of a deferred shape: an unresolved shape is rendered as "<deferred>".
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.op.String())
	sb.WriteString(", ")
	n.writeShapes(&sb)
	return sb.String()
}

func (n *Node) writeShapes(sb *strings.Builder) {
	if !n.shapes.resolved.Load() {
		sb.WriteString("<deferred>")
		return
	}
	if n.numOutputs == 1 {
		sb.WriteString(n.shapes.outputs[0].String())
		return
	}
	sb.WriteString("[")
	for i, shape := range n.shapes.outputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(shape.String())
	}
	sb.WriteString("]")
}

// Format implements fmt.Formatter. The "%+v" format also includes the node id and its operands, e.g.:
// "%3 = hlo::add(%1:0, %1:0), (Float32)[2 3]".
func (n *Node) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		if verb == 'v' && f.Flag('+') {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%%%d = %s(", n.id, n.op)
			for i, operand := range n.operandOutputs {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(operand.String())
			}
			sb.WriteString("), ")
			n.writeShapes(&sb)
			_, _ = f.Write([]byte(sb.String()))
			return
		}
		_, _ = f.Write([]byte(n.String()))
	default:
		_, _ = fmt.Fprintf(f, "%%!%c(*lazyhlo.Node=%s)", verb, n.String())
	}
}
