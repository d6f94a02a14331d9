package lowering

import (
	"bytes"
	"slices"

	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/stablehlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ParameterLowerer is implemented by the lowerers of parameter nodes: parameters are lowered first,
// as the inputs of the program, sorted by their index.
type ParameterLowerer interface {
	lazyhlo.Lowerer
	ParameterIndex() int
}

// Program is a lowered StableHLO program.
type Program struct {
	// Name of the program (the module name).
	Name string

	// Text of the StableHLO program, ready to be compiled by PJRT.
	Text []byte

	// Fingerprint is the structural hash of the graph, see Fingerprint.
	Fingerprint uint64

	// ParameterShapes are the shapes of the program inputs, in order.
	ParameterShapes []shapes.Shape

	// OutputShapes are the shapes of the program outputs, one per root.
	OutputShapes []shapes.Shape
}

// String returns the program text.
func (p *Program) String() string {
	return string(p.Text)
}

// graph holds the nodes reachable from the roots, in dependency order.
type graph struct {
	roots      []lazyhlo.Output
	nodes      []*lazyhlo.Node
	parameters []*lazyhlo.Node
}

// parameterIndex returns the index of a parameter node, or -1 if the node is not a parameter.
func parameterIndex(node *lazyhlo.Node) int {
	if p, ok := node.Lowerer().(ParameterLowerer); ok {
		return p.ParameterIndex()
	}
	return -1
}

// collect walks the graph from the roots, through the operands of each node, and returns the nodes in
// post-order (operands before their consumers).
func collect(roots []lazyhlo.Output) (*graph, error) {
	if len(roots) == 0 {
		return nil, errors.New("lowering requires at least one root output")
	}
	g := &graph{roots: roots}
	type frame struct {
		node *lazyhlo.Node
		next int
	}
	visited := make(map[lazyhlo.NodeID]bool)
	var stack []frame
	for i, root := range roots {
		node := root.Node()
		if node == nil {
			return nil, errors.Wrapf(lazyhlo.ErrNodeReleased, "root #%d %s", i, root)
		}
		if root.Index() < 0 || root.Index() >= node.NumOutputs() {
			return nil, errors.Wrapf(lazyhlo.ErrOutOfRange, "root #%d %s", i, root)
		}
		if visited[node.ID()] {
			continue
		}
		visited[node.ID()] = true
		stack = append(stack, frame{node: node})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < top.node.NumOperands() {
				operand, err := top.node.Operand(top.next)
				if err != nil {
					return nil, err
				}
				top.next++
				producer := operand.Node()
				if producer == nil {
					return nil, errors.Wrapf(lazyhlo.ErrNodeReleased, "operand %s of node #%d", operand, top.node.ID())
				}
				if !visited[producer.ID()] {
					visited[producer.ID()] = true
					stack = append(stack, frame{node: producer})
				}
				continue
			}
			g.nodes = append(g.nodes, top.node)
			if parameterIndex(top.node) >= 0 {
				g.parameters = append(g.parameters, top.node)
			}
			stack = stack[:len(stack)-1]
		}
	}
	slices.SortFunc(g.parameters, func(a, b *lazyhlo.Node) int {
		return parameterIndex(a) - parameterIndex(b)
	})
	for i := 1; i < len(g.parameters); i++ {
		if parameterIndex(g.parameters[i]) == parameterIndex(g.parameters[i-1]) {
			return nil, errors.Errorf("parameter index %d used by nodes #%d and #%d",
				parameterIndex(g.parameters[i]), g.parameters[i-1].ID(), g.parameters[i].ID())
		}
	}
	return g, nil
}

// signature returns the shapes of the parameters and of the roots.
func (g *graph) signature() (parameterShapes, outputShapes []shapes.Shape, err error) {
	parameterShapes = make([]shapes.Shape, len(g.parameters))
	for i, parameter := range g.parameters {
		parameterShapes[i], err = parameter.Shape(0)
		if err != nil {
			return nil, nil, err
		}
	}
	outputShapes = make([]shapes.Shape, len(g.roots))
	for i, root := range g.roots {
		outputShapes[i], err = root.Shape()
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "root #%d", i)
		}
	}
	return
}

// usedOutputs returns the roots and every output consumed as an operand by a node of the graph.
func (g *graph) usedOutputs() []lazyhlo.Output {
	used := slices.Clone(g.roots)
	for _, node := range g.nodes {
		used = append(used, node.Operands()...)
	}
	return used
}

// fingerprint combines the structural hashes of the roots, and the outputs selected.
func (g *graph) fingerprint() (uint64, error) {
	h := lazyhlo.DefaultHashSeed
	for i, root := range g.roots {
		nodeHash, err := root.Node().Hash()
		if err != nil {
			return 0, errors.WithMessagef(err, "hash of root #%d", i)
		}
		h = lazyhlo.HashCombine(h, lazyhlo.HashCombine(nodeHash, uint64(root.Index())))
	}
	return h, nil
}

// Fingerprint returns the structural hash of the graph with the given roots.
//
// Structurally identical graphs (same operations, attributes and shapes, under the size hashing policy of
// their nodes) have the same fingerprint.
func Fingerprint(roots ...lazyhlo.Output) (uint64, error) {
	g, err := collect(roots)
	if err != nil {
		return 0, err
	}
	return g.fingerprint()
}

// Lower converts the graph with the given roots to a StableHLO program with the given name.
// The program returns one value per root, and takes one input per parameter node, sorted by their index.
func Lower(name string, roots ...lazyhlo.Output) (*Program, error) {
	g, err := collect(roots)
	if err != nil {
		return nil, err
	}
	return g.lower(name)
}

func (g *graph) lower(name string) (*Program, error) {
	program := &Program{Name: name}
	var err error
	program.ParameterShapes, program.OutputShapes, err = g.signature()
	if err != nil {
		return nil, err
	}
	program.Fingerprint, err = g.fingerprint()
	if err != nil {
		return nil, err
	}

	ctx := NewContext(name)
	ctx.SetUsedOutputs(g.usedOutputs())
	lowerNode := func(node *lazyhlo.Node) error {
		values, err := node.Lower(ctx)
		if err != nil {
			return errors.WithMessagef(err, "while lowering program %q", name)
		}
		return ctx.Record(node, values)
	}
	for _, parameter := range g.parameters {
		if err = lowerNode(parameter); err != nil {
			return nil, err
		}
	}
	for _, node := range g.nodes {
		if ctx.IsLowered(node) {
			continue
		}
		if err = lowerNode(node); err != nil {
			return nil, err
		}
	}

	results := make([]*stablehlo.Value, len(g.roots))
	for i, root := range g.roots {
		results[i], err = ctx.OutputValue(root)
		if err != nil {
			return nil, err
		}
	}
	if err = ctx.Function().Return(results[0], results[1:]...); err != nil {
		return nil, err
	}
	program.Text, err = ctx.Builder().Build()
	if err != nil {
		return nil, errors.WithMessagef(err, "while building program %q", name)
	}
	if klog.V(1).Enabled() {
		klog.Infof("Lowered program %q: %d nodes, %d parameters, fingerprint %016x, %d bytes",
			name, len(g.nodes), len(g.parameters), program.Fingerprint, len(program.Text))
	}
	if klog.V(3).Enabled() {
		klog.Infof("Program %q:\n%s", name, bytes.TrimSpace(program.Text))
	}
	return program, nil
}
