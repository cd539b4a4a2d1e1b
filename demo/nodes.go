// Package demo provides a small arithmetic node set for the CLI and tests.
package demo

import (
	"fmt"

	"graphed/editor"
	"graphed/geometry"
	"graphed/graph"
)

// Op is the operation a node performs. It is the node payload.
type Op string

const (
	OpConstant Op = "constant"
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
	OpCompare  Op = "compare"
	OpSelect   Op = "select"
)

// DataType is the type carried by a parameter. Only equal types connect.
type DataType string

const (
	Scalar DataType = "scalar"
	Bool   DataType = "bool"
)

// Port describes one parameter of a template.
type Port struct {
	Name string
	Type DataType
}

// Template is a kind of node offered by the node finder.
type Template struct {
	Op      Op
	Name    string
	Inputs  []Port
	Outputs []Port
}

// Label returns the name shown in the finder.
func (t Template) Label() string { return t.Name }

// Data returns the node payload.
func (t Template) Data() Op { return t.Op }

// Build adds the template's parameters to node. Scalar inputs start at 0.
func (t Template) Build(g *graph.Graph[Op, DataType, float64], node graph.NodeID) error {
	for _, p := range t.Inputs {
		if _, err := g.AddInput(node, p.Name, p.Type, 0); err != nil {
			return fmt.Errorf("%s input %s: %w", t.Name, p.Name, err)
		}
	}
	for _, p := range t.Outputs {
		if _, err := g.AddOutput(node, p.Name, p.Type); err != nil {
			return fmt.Errorf("%s output %s: %w", t.Name, p.Name, err)
		}
	}
	return nil
}

// State is an editor over the arithmetic node set.
type State = editor.State[Op, DataType, float64, Template, struct{}]

// Snapshot is the persisted form of State.
type Snapshot = editor.Snapshot[Op, DataType, float64]

func binary(op Op, name string) Template {
	return Template{
		Op:      op,
		Name:    name,
		Inputs:  []Port{{"a", Scalar}, {"b", Scalar}},
		Outputs: []Port{{"result", Scalar}},
	}
}

// Templates returns the node set in finder order.
func Templates() []Template {
	return []Template{
		{
			Op:      OpConstant,
			Name:    "Constant",
			Inputs:  []Port{{"value", Scalar}},
			Outputs: []Port{{"value", Scalar}},
		},
		binary(OpAdd, "Add"),
		binary(OpSubtract, "Subtract"),
		binary(OpMultiply, "Multiply"),
		binary(OpDivide, "Divide"),
		{
			Op:      OpCompare,
			Name:    "Compare",
			Inputs:  []Port{{"a", Scalar}, {"b", Scalar}},
			Outputs: []Port{{"less", Bool}},
		},
		{
			Op:      OpSelect,
			Name:    "Select",
			Inputs:  []Port{{"when", Bool}, {"then", Scalar}, {"else", Scalar}},
			Outputs: []Port{{"result", Scalar}},
		},
	}
}

// Lookup returns the template for op.
func Lookup(op Op) (Template, bool) {
	for _, t := range Templates() {
		if t.Op == op {
			return t, true
		}
	}
	return Template{}, false
}

// New returns an empty editor over the arithmetic node set.
func New(opts ...editor.Option) *State {
	return editor.New[Op, DataType, float64, Template, struct{}](opts...)
}

// Sample returns an editor holding (2 + 3) * 4 laid out left to right.
func Sample(opts ...editor.Option) (*State, error) {
	s := New(opts...)

	place := func(op Op, x, y float64) (graph.Node[Op], error) {
		t, _ := Lookup(op)
		id, err := s.Instantiate(t, geometry.Pos2{X: x, Y: y})
		if err != nil {
			return graph.Node[Op]{}, err
		}
		n, _ := s.Graph().Node(id)
		return n, nil
	}

	var nodes []graph.Node[Op]
	for _, p := range []struct {
		op   Op
		x, y float64
	}{
		{OpConstant, 0, 0},
		{OpConstant, 0, 40},
		{OpAdd, 80, 20},
		{OpMultiply, 160, 40},
	} {
		n, err := place(p.op, p.x, p.y)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	two, three, sum, product := nodes[0], nodes[1], nodes[2], nodes[3]

	g := s.Graph()
	for _, c := range []struct{ out, in graph.ParamID }{
		{two.Outputs[0], sum.Inputs[0]},
		{three.Outputs[0], sum.Inputs[1]},
		{sum.Outputs[0], product.Inputs[0]},
	} {
		if err := g.Connect(c.out, c.in); err != nil {
			return nil, err
		}
	}
	for _, v := range []struct {
		in    graph.ParamID
		value float64
	}{
		{two.Inputs[0], 2},
		{three.Inputs[0], 3},
		{product.Inputs[1], 4},
	} {
		if err := g.SetInputValue(v.in, v.value); err != nil {
			return nil, err
		}
	}

	s.SetViewportSize(geometry.Vec2{X: 240, Y: 80})
	return s, nil
}
