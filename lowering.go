package lazyhlo

import (
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// LoweringContext accumulates the StableHLO statements of a graph being lowered, and maps the outputs of
// the nodes already lowered to their StableHLO values.
//
// When a node is lowered, the values of all its operands are already in the context.
type LoweringContext interface {
	// Function where the statements are emitted.
	Function() *stablehlo.Function

	// OutputValue returns the value of an already lowered output.
	OutputValue(output Output) (*stablehlo.Value, error)

	// OperandValues returns the values of the operands of the node, in order.
	OperandValues(node *Node) ([]*stablehlo.Value, error)

	// IsOutputUsed returns whether the output is consumed by another node of the graph or is one of its roots.
	// Lowerers of multi-output nodes may skip the statements of unused outputs, and return nil values for them.
	IsOutputUsed(output Output) bool
}

// Lowerer emits the StableHLO statements of a node, and returns one value per output of the node.
//
// Each operation kind provides its own Lowerer, usually together with the node's shape function.
type Lowerer interface {
	Lower(node *Node, ctx LoweringContext) ([]*stablehlo.Value, error)
}

// LowererFunc adapts a function to a Lowerer.
type LowererFunc func(node *Node, ctx LoweringContext) ([]*stablehlo.Value, error)

// Lower implements Lowerer.
func (fn LowererFunc) Lower(node *Node, ctx LoweringContext) ([]*stablehlo.Value, error) {
	return fn(node, ctx)
}

// Lower emits the node's statements into the context, and returns one value per output.
//
// It returns an error wrapping ErrLoweringNotImplemented if the node has no Lowerer.
func (n *Node) Lower(ctx LoweringContext) ([]*stablehlo.Value, error) {
	if n.lowerer == nil {
		return nil, errors.Wrapf(ErrLoweringNotImplemented, "op %s (node #%d)", n.op, n.id)
	}
	values, err := n.lowerer.Lower(n, ctx)
	if err != nil {
		return nil, errors.WithMessagef(err, "lowering node #%d %s", n.id, n)
	}
	if len(values) != n.numOutputs {
		return nil, errors.Errorf("lowering node #%d %s returned %d values, expected %d",
			n.id, n, len(values), n.numOutputs)
	}
	if klog.V(2).Enabled() {
		klog.Infof("Lowered node #%d %s", n.id, n)
	}
	return values, nil
}
