package lazyhlo

import (
	"fmt"
	"weak"

	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// Output identifies the output slot Index of a node. It is the handle used for operand edges and for the
// results of a node.
//
// An Output doesn't keep its node alive: it only holds a weak pointer. The node is kept alive by its owners,
// the nodes that consume it and whoever holds the *Node. So hold on to the *Node while using an Output to
// construct new nodes.
//
// Output is comparable and can be used as a map key. Many Output values may refer to the same slot.
type Output struct {
	node  weak.Pointer[Node]
	id    NodeID
	index int
}

// Node returns the node that produces the output, or nil if it has been released (or for the zero Output).
func (o Output) Node() *Node {
	return o.node.Value()
}

// NodeID returns the id of the node that produces the output. It is valid even if the node has been released.
func (o Output) NodeID() NodeID {
	return o.id
}

// Index of the output in its node.
func (o Output) Index() int {
	return o.index
}

// Shape of the output. It triggers the resolution of a deferred shape.
func (o Output) Shape() (shapes.Shape, error) {
	node := o.Node()
	if node == nil {
		return shapes.Invalid(), errors.Wrapf(ErrNodeReleased, "output %s", o)
	}
	return node.Shape(o.index)
}

// String implements fmt.Stringer, in the format "%<node_id>:<index>".
func (o Output) String() string {
	return fmt.Sprintf("%%%d:%d", o.id, o.index)
}
