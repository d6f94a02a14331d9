// Package lazyhlo implements the nodes of a deferred (lazily-evaluated) tensor IR.
//
// User code builds a DAG of Node objects, one per operation, as operations are issued. Nothing is
// executed at construction time: the graph is later lowered to a StableHLO program (see package
// lowering), which can be compiled and executed many times against inputs of the same shape.
//
// A Node owns its operand nodes (keeping the upstream subgraph alive), and separately keeps a
// non-owning mirror of Output descriptors used for traversal. Nodes are immutable after
// construction, except for the one-time resolution of a deferred shape, so the graph is acyclic
// by construction.
//
// Shapes can be given directly, computed eagerly by a closure, or deferred: a deferred shape
// closure is run on first query, at most once on success, and the result is cached.
//
// Each node has a structural hash (see GetOpHash and Node.Hash) used as a key to reuse compiled
// programs, and a Lowerer that emits the node's StableHLO statements.
package lazyhlo

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned (wrapped) when an output or operand index is out of range.
	ErrOutOfRange = errors.New("index out of range")

	// ErrLoweringNotImplemented is returned (wrapped) when lowering a node whose operation kind has no Lowerer.
	ErrLoweringNotImplemented = errors.New("lowering not implemented")

	// ErrShapeAlreadySet is returned (wrapped) by Node.SetShapeDeferred if the shape is already resolved,
	// or if a deferred shape function was already given.
	ErrShapeAlreadySet = errors.New("shape already set")

	// ErrShapeNotSet is returned (wrapped) when querying the shape of a deferred node that has no shape function yet.
	ErrShapeNotSet = errors.New("shape not set")

	// ErrNodeReleased is returned (wrapped) when an Output refers to a node that has been garbage collected.
	ErrNodeReleased = errors.New("node released")
)
