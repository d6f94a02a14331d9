// Package lowering converts a graph of lazyhlo nodes into a StableHLO program, and caches the programs
// by the structural hash of the graph.
//
// Lower walks the graph from its roots, in dependency order, and calls each node's Lowerer with a
// Context that holds the values of the nodes already lowered.
package lowering

import (
	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/pkg/errors"
)

// Context implements lazyhlo.LoweringContext: it maps the lowered nodes to their StableHLO values.
type Context struct {
	builder *stablehlo.Builder
	fn      *stablehlo.Function
	values  map[lazyhlo.NodeID][]*stablehlo.Value
	used    map[outputKey]bool
}

type outputKey struct {
	id    lazyhlo.NodeID
	index int
}

var _ lazyhlo.LoweringContext = (*Context)(nil)

// NewContext returns a Context that lowers into the main function of a new StableHLO program with the given name.
func NewContext(name string) *Context {
	builder := stablehlo.New(name)
	return &Context{
		builder: builder,
		fn:      builder.Main(),
		values:  make(map[lazyhlo.NodeID][]*stablehlo.Value),
	}
}

// Builder returns the StableHLO program builder.
func (c *Context) Builder() *stablehlo.Builder {
	return c.builder
}

// Function implements lazyhlo.LoweringContext.
func (c *Context) Function() *stablehlo.Function {
	return c.fn
}

// Record stores the values of a lowered node. There must be one value per output.
func (c *Context) Record(node *lazyhlo.Node, values []*stablehlo.Value) error {
	if len(values) != node.NumOutputs() {
		return errors.Errorf("node #%d %s has %d outputs, got %d values", node.ID(), node, node.NumOutputs(), len(values))
	}
	if _, found := c.values[node.ID()]; found {
		return errors.Errorf("node #%d %s already lowered", node.ID(), node)
	}
	c.values[node.ID()] = values
	return nil
}

// IsLowered returns whether the node was already recorded.
func (c *Context) IsLowered(node *lazyhlo.Node) bool {
	_, found := c.values[node.ID()]
	return found
}

// SetUsedOutputs sets the outputs consumed by the graph being lowered: see IsOutputUsed.
func (c *Context) SetUsedOutputs(outputs []lazyhlo.Output) {
	c.used = make(map[outputKey]bool, len(outputs))
	for _, output := range outputs {
		c.used[outputKey{output.NodeID(), output.Index()}] = true
	}
}

// IsOutputUsed implements lazyhlo.LoweringContext.
// If SetUsedOutputs was never called, every output is considered used.
func (c *Context) IsOutputUsed(output lazyhlo.Output) bool {
	if c.used == nil {
		return true
	}
	return c.used[outputKey{output.NodeID(), output.Index()}]
}

// OutputValue implements lazyhlo.LoweringContext.
func (c *Context) OutputValue(output lazyhlo.Output) (*stablehlo.Value, error) {
	values, found := c.values[output.NodeID()]
	if !found {
		return nil, errors.Errorf("output %s was not lowered yet", output)
	}
	if output.Index() < 0 || output.Index() >= len(values) {
		return nil, errors.Wrapf(lazyhlo.ErrOutOfRange, "output %s", output)
	}
	value := values[output.Index()]
	if value == nil {
		return nil, errors.Errorf("output %s was not emitted, it was not marked as used", output)
	}
	return value, nil
}

// OperandValues implements lazyhlo.LoweringContext.
func (c *Context) OperandValues(node *lazyhlo.Node) ([]*stablehlo.Value, error) {
	operands := node.Operands()
	values := make([]*stablehlo.Value, len(operands))
	for i, operand := range operands {
		var err error
		values[i], err = c.OutputValue(operand)
		if err != nil {
			return nil, errors.WithMessagef(err, "operand #%d of node #%d %s", i, node.ID(), node)
		}
	}
	return values, nil
}
