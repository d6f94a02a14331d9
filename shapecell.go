package lazyhlo

import (
	"sync"
	"sync/atomic"

	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// ShapeFn computes the shape of a node. For nodes with more than one output it must return a tuple shape
// with one element per output.
//
// It should be synchronous and not block: it is called while holding the node's shape lock, so it
// must not query the shape of its own node.
type ShapeFn func() (shapes.Shape, error)

// shapeCell holds the shapes of a node's outputs, resolved at most once.
//
// The first resolution is serialized by mu, and resolved is only set after the shapes are stored, so
// readers that observe resolved == true never see partial values.
// A failing shape function leaves the cell unresolved.
type shapeCell struct {
	mu       sync.Mutex
	resolved atomic.Bool

	// shape is the full shape: a tuple if numOutputs > 1.
	shape shapes.Shape

	// outputs holds one shape per output.
	outputs []shapes.Shape

	// deferred is the stored shape function, cleared once resolved.
	deferred ShapeFn
}

// get returns the resolved shapes, resolving them with fn (or the deferred shape function, if fn is nil)
// if needed.
func (c *shapeCell) get(numOutputs int, fn ShapeFn) (shapes.Shape, []shapes.Shape, error) {
	if c.resolved.Load() {
		return c.shape, c.outputs, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved.Load() {
		return c.shape, c.outputs, nil
	}
	if fn == nil {
		fn = c.deferred
	}
	if fn == nil {
		return shapes.Invalid(), nil, ErrShapeNotSet
	}
	shape, err := fn()
	if err != nil {
		return shapes.Invalid(), nil, err
	}
	if err = c.setLocked(numOutputs, shape); err != nil {
		return shapes.Invalid(), nil, err
	}
	return c.shape, c.outputs, nil
}

// set stores the resolved shape directly.
func (c *shapeCell) set(numOutputs int, shape shapes.Shape) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved.Load() {
		return ErrShapeAlreadySet
	}
	return c.setLocked(numOutputs, shape)
}

// setDeferred stores the shape function to use on the first query.
func (c *shapeCell) setDeferred(fn ShapeFn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved.Load() || c.deferred != nil {
		return ErrShapeAlreadySet
	}
	c.deferred = fn
	return nil
}

func (c *shapeCell) setLocked(numOutputs int, shape shapes.Shape) error {
	outputs, err := splitShape(numOutputs, shape)
	if err != nil {
		return err
	}
	c.shape = shape
	c.outputs = outputs
	c.deferred = nil
	c.resolved.Store(true)
	return nil
}

// splitShape returns the per-output shapes of a node's shape.
func splitShape(numOutputs int, shape shapes.Shape) ([]shapes.Shape, error) {
	if numOutputs == 1 {
		if !shape.Ok() {
			return nil, errors.Errorf("invalid shape %s", shape)
		}
		return []shapes.Shape{shape}, nil
	}
	if !shape.IsTuple() || shape.TupleSize() != numOutputs {
		return nil, errors.Errorf("node with %d outputs requires a tuple shape with %d elements, got %s",
			numOutputs, numOutputs, shape)
	}
	outputs := make([]shapes.Shape, numOutputs)
	for i, element := range shape.TupleShapes {
		if !element.Ok() {
			return nil, errors.Errorf("invalid shape %s for output #%d", element, i)
		}
		outputs[i] = element
	}
	return outputs, nil
}
